package calendar

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDatesInMonth(t *testing.T) {
	dates := DatesInMonth(2025, time.March)

	if len(dates) != 31 {
		t.Fatalf("Expected 31 dates, got %d", len(dates))
	}
	if dates[0] != "2025-03-01" {
		t.Errorf("Expected first date 2025-03-01, got %s", dates[0])
	}
	if dates[30] != "2025-03-31" {
		t.Errorf("Expected last date 2025-03-31, got %s", dates[30])
	}
}

func TestMonthGrid_ShapeAndFill(t *testing.T) {
	// March 2025 starts on a Saturday, so a Monday-first grid leads with
	// five days of February.
	grid := MonthGrid(2025, time.March, "2025-03-15")

	if len(grid) != 6 {
		t.Fatalf("Expected 6 weeks, got %d", len(grid))
	}
	for i, week := range grid {
		if len(week) != 7 {
			t.Fatalf("Expected week %d to have 7 days, got %d", i, len(week))
		}
	}

	firstWeek := grid[0]
	for i := 0; i < 5; i++ {
		if firstWeek[i].InMonth {
			t.Errorf("Expected leading day %d (%s) to be outside the month", i, firstWeek[i].Date)
		}
	}
	if firstWeek[5].Date != "2025-03-01" || !firstWeek[5].InMonth {
		t.Errorf("Expected March 1st in Saturday slot, got %s (inMonth=%v)", firstWeek[5].Date, firstWeek[5].InMonth)
	}
}

func TestMonthGrid_MarksToday(t *testing.T) {
	grid := MonthGrid(2025, time.March, "2025-03-15")

	found := 0
	for _, week := range grid {
		for _, day := range week {
			if day.Today {
				found++
				if day.Date != "2025-03-15" {
					t.Errorf("Expected today to be 2025-03-15, got %s", day.Date)
				}
			}
		}
	}
	if found != 1 {
		t.Errorf("Expected exactly one today cell, got %d", found)
	}
}

func TestMonthGrid_MondayFirstStart(t *testing.T) {
	// September 2025 starts on a Monday: no leading fill at all.
	grid := MonthGrid(2025, time.September, "")

	if grid[0][0].Date != "2025-09-01" || !grid[0][0].InMonth {
		t.Errorf("Expected grid to start on 2025-09-01, got %s", grid[0][0].Date)
	}
}

func TestPreviousMonth_YearRollover(t *testing.T) {
	year, month := PreviousMonth(2025, time.January)
	if year != 2024 || month != time.December {
		t.Errorf("Expected December 2024, got %v %d", month, year)
	}

	year, month = PreviousMonth(2025, time.July)
	if year != 2025 || month != time.June {
		t.Errorf("Expected June 2025, got %v %d", month, year)
	}
}

func TestNextMonth_YearRollover(t *testing.T) {
	year, month := NextMonth(2025, time.December)
	if year != 2026 || month != time.January {
		t.Errorf("Expected January 2026, got %v %d", month, year)
	}

	year, month = NextMonth(2025, time.July)
	if year != 2025 || month != time.August {
		t.Errorf("Expected August 2025, got %v %d", month, year)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(2025, time.March); got != "March 2025" {
		t.Errorf("FormatMonth = %q, want %q", got, "March 2025")
	}
}
