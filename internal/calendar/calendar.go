package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/utils"
)

// Day is a single cell of a month grid.
type Day struct {
	DayOfMonth int
	Date       string // YYYY-MM-DD format
	InMonth    bool   // false for leading/trailing fill days
	Today      bool
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Move to the next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// DatesInMonth enumerates every date string in the given month, in order.
func DatesInMonth(year int, month time.Month) []string {
	days := DaysInMonth(year, month)
	dates := make([]string, 0, days)
	for day := 1; day <= days; day++ {
		dates = append(dates, utils.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)))
	}
	return dates
}

// MonthGrid builds the 7x6 Monday-first grid for a month view, filled out
// with days from the previous and next months.
func MonthGrid(year int, month time.Month, today string) [][]Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7 // Monday = 0
	start := first.AddDate(0, 0, -lead)

	grid := make([][]Day, 0, 6)
	for week := 0; week < 6; week++ {
		row := make([]Day, 0, 7)
		for weekday := 0; weekday < 7; weekday++ {
			d := start.AddDate(0, 0, week*7+weekday)
			date := utils.FormatDate(d)
			row = append(row, Day{
				DayOfMonth: d.Day(),
				Date:       date,
				InMonth:    d.Year() == year && d.Month() == month,
				Today:      date == today,
			})
		}
		grid = append(grid, row)
	}
	return grid
}

// PreviousMonth returns the month before the given one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the month after the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// FormatMonth formats a month heading like "March 2025".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// CurrentMonth returns the current year and month.
func CurrentMonth() (int, time.Month) {
	now := time.Now()
	return now.Year(), now.Month()
}
