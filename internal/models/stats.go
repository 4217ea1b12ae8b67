package models

import "time"

// MonthStats is a derived snapshot of one habit's month. Never persisted.
type MonthStats struct {
	Year         int
	Month        time.Month
	TotalDays    int
	SuccessDays  int
	FailureDays  int
	UnmarkedDays int
	SuccessRate  int // percent of marked days that are successes, floored
}

// HabitStats is a derived lifetime snapshot of one habit. Never persisted.
type HabitStats struct {
	HabitID         string
	TotalMarkedDays int
	SuccessDays     int
	FailureDays     int
	SuccessRate     int
	CurrentStreak   int
}
