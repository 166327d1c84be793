package domain

import (
	"regexp"
	"time"
)

// SuspensionThreshold is the monthly no-show count that triggers suspension.
const SuspensionThreshold = 3

// NoShowRecord tallies missed bookings per user per calendar month.
type NoShowRecord struct {
	ID        string
	UserID    string
	YearMonth string // YYYY-MM
	Count     int
}

// NoShowWithStudent joins a monthly tally with the student's identity.
type NoShowWithStudent struct {
	NoShowRecord
	StudentName    string
	StudentAccount string
}

var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidYearMonth reports whether the value is a well-formed YYYY-MM key.
func ValidYearMonth(value string) bool {
	return yearMonthPattern.MatchString(value)
}

// CurrentYearMonth renders the month key for a point in time.
func CurrentYearMonth(t time.Time) string {
	return t.Format("2006-01")
}
