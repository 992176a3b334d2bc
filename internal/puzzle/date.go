package puzzle

import (
	"regexp"
	"time"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s has the YYYY-MM-DD shape the upstream expects.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// DateKey returns YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Shift moves t by whole days; the puzzle driver uses it to target another day's puzzle.
func Shift(t time.Time, days int) time.Time {
	return t.Add(time.Duration(days) * 24 * time.Hour)
}

// Today returns the local date key shifted by days.
func Today(days int) string {
	return DateKey(Shift(time.Now(), days))
}
