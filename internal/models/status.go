package models

// DayStatus is the tri-state outcome of a single day for a habit. The
// distinction between an explicit failure and an absent mark is load-bearing
// for streak computation, so it is an enumeration rather than a nullable bool.
type DayStatus int

const (
	StatusUnmarked DayStatus = iota
	StatusSuccess
	StatusFailure
)

func (s DayStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unmarked"
	}
}

// Marked reports whether the day carries an explicit outcome.
func (s DayStatus) Marked() bool {
	return s == StatusSuccess || s == StatusFailure
}
