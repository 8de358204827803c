package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// AgeSuite tests the date of birth rules.
//
// The boundary birthday must count as plausible.
type AgeSuite struct {
	suite.Suite
	now time.Time
}

func TestAgeSuite(t *testing.T) {
	suite.Run(t, new(AgeSuite))
}

func (s *AgeSuite) SetupTest() {
	s.now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
}

func (s *AgeSuite) TestParseDateOfBirth() {
	s.Run("accepts ISO dates", func() {
		dob, err := ParseDateOfBirth(" 1975-02-28 ")
		s.Require().NoError(err)
		s.Equal(time.Date(1975, 2, 28, 0, 0, 0, 0, time.UTC), dob)
	})

	s.Run("rejects other layouts", func() {
		for _, value := range []string{"28/02/1975", "1975-02-30", "", "not-a-date"} {
			_, err := ParseDateOfBirth(value)
			s.Error(err, value)
		}
	})
}

func (s *AgeSuite) TestIsPlausibleDateOfBirth_Boundaries() {
	s.Run("exactly max years ago is plausible", func() {
		s.True(IsPlausibleDateOfBirth(time.Date(1906, 10, 17, 12, 0, 0, 0, time.UTC), s.now, 120))
	})

	s.Run("a day beyond max years is implausible", func() {
		s.False(IsPlausibleDateOfBirth(time.Date(1906, 10, 16, 0, 0, 0, 0, time.UTC), s.now, 120))
	})

	s.Run("today is plausible", func() {
		s.True(IsPlausibleDateOfBirth(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), s.now, 120))
	})

	s.Run("future dates are implausible", func() {
		s.False(IsPlausibleDateOfBirth(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), s.now, 120))
	})
}

func (s *AgeSuite) TestBornWithin_NormalizesTimezones() {
	loc := time.FixedZone("UTC+10", 10*60*60)
	birth := time.Date(2006, 10, 17, 22, 0, 0, 0, loc) // 12:00 UTC
	s.True(BornWithin(birth, s.now, 20))
	s.False(BornWithin(birth, s.now.Add(time.Second).AddDate(20, 0, 0), 20))
}
