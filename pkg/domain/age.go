// Package domain holds small rules about personal data shared by the client
// tooling and the simulator.
package domain

import (
	"strings"
	"time"
)

// ParseDateOfBirth parses a YYYY-MM-DD date of birth as midnight UTC.
func ParseDateOfBirth(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(value))
}

// BornWithin reports whether birthDate lies no more than years before now.
// Uses calendar arithmetic (AddDate), so the boundary birthday counts as within.
func BornWithin(birthDate, now time.Time, years int) bool {
	return !birthDate.UTC().AddDate(years, 0, 0).Before(now.UTC())
}

// IsPlausibleDateOfBirth reports whether birthDate is not in the future and at
// most maxYears before now.
//
//	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
//	IsPlausibleDateOfBirth(time.Date(1906, 10, 17, 0, 0, 0, 0, time.UTC), now, 120) // true
//	IsPlausibleDateOfBirth(time.Date(1906, 10, 16, 0, 0, 0, 0, time.UTC), now, 120) // false
func IsPlausibleDateOfBirth(birthDate, now time.Time, maxYears int) bool {
	if birthDate.After(now) {
		return false
	}
	return BornWithin(birthDate, now, maxYears)
}
