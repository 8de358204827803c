package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "secureid/pkg/domain-errors"
)

// LimitsSuite tests the size limit helpers.
//
// The invariants "max+1 must fail" and "max must pass" guard the request body limit.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestCheckByteSize() {
	s.Run("passes when size equals max", func() {
		s.NoError(CheckByteSize("image", MaxImageBytes, MaxImageBytes))
	})

	s.Run("passes when size is below max", func() {
		s.NoError(CheckByteSize("image", 1, MaxImageBytes))
	})

	s.Run("fails when size exceeds max", func() {
		err := CheckByteSize("image front.jpg", MaxImageBytes+1, MaxImageBytes)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIllegalArgument))
		s.Equal("image front.jpg exceeds max size of 10485760 bytes", err.Error())
	})
}
