package stats

import (
	"time"

	"github.com/julianstephens/habitflow/internal/calendar"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/utils"
)

// Engine computes streaks and aggregate statistics from the day-status
// record. It only reads; every result is derived fresh at query time.
type Engine struct {
	statuses *storage.DayStatusStore
	clock    utils.Clock
}

func New(statuses *storage.DayStatusStore, clock utils.Clock) *Engine {
	return &Engine{statuses: statuses, clock: clock}
}

// Streak returns the habit's current streak, walking backward from today for
// at most StreakHorizonDays days.
//
// The unmarked rule is asymmetric on purpose: an unmarked today means there
// is no active streak and the walk stops at 0, but an unmarked day further
// back is skipped without incrementing or breaking — a gap inside historical
// data does not sever the successes on either side of it. A failure always
// stops the walk.
func (e *Engine) Streak(habitID string) (int, error) {
	day, err := utils.ParseDate(e.clock.Today())
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := 0; i < constants.StreakHorizonDays; i++ {
		status, err := e.statuses.Status(habitID, utils.FormatDate(day))
		if err != nil {
			return 0, err
		}

		switch status {
		case models.StatusSuccess:
			streak++
		case models.StatusFailure:
			return streak, nil
		case models.StatusUnmarked:
			if i == 0 {
				// Today not marked yet: no active streak.
				return 0, nil
			}
			// Mid-history gap: neither counts nor breaks.
		}

		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// MonthStats tallies one habit's month. Success rate is the floored percent
// of marked days that are successes, 0 when nothing is marked.
func (e *Engine) MonthStats(habitID string, year int, month time.Month) (models.MonthStats, error) {
	statuses, err := e.statuses.MonthStatuses(habitID, year, month)
	if err != nil {
		return models.MonthStats{}, err
	}

	stats := models.MonthStats{
		Year:      year,
		Month:     month,
		TotalDays: calendar.DaysInMonth(year, month),
	}
	for _, status := range statuses {
		switch status {
		case models.StatusSuccess:
			stats.SuccessDays++
		case models.StatusFailure:
			stats.FailureDays++
		}
	}

	marked := stats.SuccessDays + stats.FailureDays
	stats.UnmarkedDays = stats.TotalDays - marked
	stats.SuccessRate = successRate(stats.SuccessDays, marked)
	return stats, nil
}

// HabitStats tallies a habit's full history and its current streak.
func (e *Engine) HabitStats(habitID string) (models.HabitStats, error) {
	statuses, err := e.statuses.AllStatuses(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}

	stats := models.HabitStats{HabitID: habitID}
	for _, success := range statuses {
		if success {
			stats.SuccessDays++
		} else {
			stats.FailureDays++
		}
	}
	stats.TotalMarkedDays = stats.SuccessDays + stats.FailureDays
	stats.SuccessRate = successRate(stats.SuccessDays, stats.TotalMarkedDays)

	streak, err := e.Streak(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	stats.CurrentStreak = streak
	return stats, nil
}

func successRate(successes, marked int) int {
	if marked == 0 {
		return 0
	}
	return successes * 100 / marked
}
