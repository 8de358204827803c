package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the error primitives every client operation reports through.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeImplausibleAge, Message: "age of 130 is implausible"}
		s.Equal("age of 130 is implausible", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotSignedIn}
		s.Equal("not_signed_in", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("connection refused")
		err := &Error{Code: CodeUnknownGraphQL, Message: "request failed", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeFatal, Message: "no result"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeUnsupportedCountry, Message: "XX is not supported"}
		err2 := &Error{Code: CodeUnsupportedCountry, Message: "YY is not supported"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		s.False((&Error{Code: CodeInvalidAge}).Is(&Error{Code: CodeImplausibleAge}))
	})

	s.Run("does not match non-domain errors", func() {
		s.False((&Error{Code: CodeFatal}).Is(errors.New("fatal")))
	})

	s.Run("works with errors.Is through fmt wrapping", func() {
		wrapped := fmt.Errorf("verify identity: %w", New(CodeNotSignedIn, ""))
		s.True(errors.Is(wrapped, New(CodeNotSignedIn, "")))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		inner := New(CodeVersionMismatch, "conflict")
		err := Wrap(inner, CodeUnknownGraphQL, "mutation failed")
		s.True(HasCode(err, CodeVersionMismatch))
		s.Equal("mutation failed", err.Error())
	})

	s.Run("applies code to plain errors", func() {
		err := Wrap(errors.New("eof"), CodeUnknownGraphQL, "request failed")
		s.True(HasCode(err, CodeUnknownGraphQL))
		s.ErrorContains(errors.Unwrap(err), "eof")
	})
}

func (s *DomainErrorsSuite) TestCategories() {
	s.True(IsPrecondition(New(CodeNotSignedIn, "")))
	s.True(IsPrecondition(New(CodeIllegalArgument, "bad method")))
	s.False(IsPrecondition(New(CodeImplausibleAge, "")))
	s.False(IsPrecondition(New(CodeInvalidArgument, "rejected by the service")))

	s.True(IsFatal(New(CodeFatal, "unrecognized value")))
	s.False(IsFatal(errors.New("plain")))

	s.Equal(CodeInvalidAge, CodeOf(fmt.Errorf("x: %w", New(CodeInvalidAge, ""))))
	s.Equal(CodeUnknownGraphQL, CodeOf(errors.New("plain")))
}
