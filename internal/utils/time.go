package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
)

// Clock supplies "today" as a date string so streak and stats computations
// can be pinned to a fixed date in tests.
type Clock interface {
	Today() string
}

// SystemClock is the production Clock backed by the local wall clock.
type SystemClock struct{}

func (SystemClock) Today() string {
	return time.Now().Format(constants.DateFormat)
}

// Today returns the current date in the standard format (YYYY-MM-DD).
func Today() string {
	return SystemClock{}.Today()
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}
	return t, nil
}

// FormatDate formats a time as a standard date string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBefore returns the date string n calendar days before the given date.
func DaysBefore(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, -n)), nil
}

// ValidateDate checks if the string matches the standard date format.
func ValidateDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}
