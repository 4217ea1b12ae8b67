package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/kv"
	"github.com/julianstephens/habitflow/internal/storage"
)

type fixedClock string

func (c fixedClock) Today() string { return string(c) }

func newTestEngine(t *testing.T, today string) (*Engine, *storage.DayStatusStore) {
	t.Helper()
	store := kv.NewFileStore(filepath.Join(t.TempDir(), "habitflow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	statuses := storage.NewDayStatusStore(store)
	return New(statuses, fixedClock(today)), statuses
}

func TestStreak_CountsConsecutiveSuccesses(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	for _, date := range []string{"2025-03-13", "2025-03-14", "2025-03-15"} {
		if err := statuses.SetStatus("h1", date, true); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 3 {
		t.Errorf("Expected streak 3, got %d", streak)
	}
}

func TestStreak_UnmarkedTodayMeansNoStreak(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	// Long run of successes, but today itself is not marked yet.
	for _, date := range []string{"2025-03-12", "2025-03-13", "2025-03-14"} {
		if err := statuses.SetStatus("h1", date, true); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 0 {
		t.Errorf("Expected streak 0 with unmarked today, got %d", streak)
	}
}

func TestStreak_MidHistoryGapIsSkipped(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	// Success, success, gap, success walking backward from today.
	for _, date := range []string{"2025-03-12", "2025-03-14", "2025-03-15"} {
		if err := statuses.SetStatus("h1", date, true); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 3 {
		t.Errorf("Expected gap to be skipped without breaking, got %d", streak)
	}
}

func TestStreak_FailureStopsTheWalk(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	if err := statuses.SetStatus("h1", "2025-03-12", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-13", false); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-14", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-15", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 2 {
		t.Errorf("Expected failure to stop the streak at 2, got %d", streak)
	}
}

func TestStreak_FailureTodayIsZero(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	if err := statuses.SetStatus("h1", "2025-03-14", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-15", false); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 0 {
		t.Errorf("Expected streak 0 after failing today, got %d", streak)
	}
}

func TestStreak_NoDataIsZero(t *testing.T) {
	engine, _ := newTestEngine(t, "2025-03-15")

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 0 {
		t.Errorf("Expected streak 0 with no data, got %d", streak)
	}
}

func TestStreak_IsBoundedByHorizon(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	// Mark 400 consecutive successes ending today; only the horizon counts.
	day, err := time.Parse("2006-01-02", "2025-03-15")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for i := 0; i < 400; i++ {
		date := day.AddDate(0, 0, -i).Format("2006-01-02")
		if err := statuses.SetStatus("h1", date, true); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
	}

	streak, err := engine.Streak("h1")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 365 {
		t.Errorf("Expected streak capped at 365, got %d", streak)
	}
}

func TestMonthStats_Tallies(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	if err := statuses.SetStatus("h1", "2025-03-01", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-02", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-03", false); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	stats, err := engine.MonthStats("h1", 2025, time.March)
	if err != nil {
		t.Fatalf("MonthStats failed: %v", err)
	}

	if stats.TotalDays != 31 {
		t.Errorf("Expected 31 total days, got %d", stats.TotalDays)
	}
	if stats.SuccessDays != 2 {
		t.Errorf("Expected 2 successes, got %d", stats.SuccessDays)
	}
	if stats.FailureDays != 1 {
		t.Errorf("Expected 1 failure, got %d", stats.FailureDays)
	}
	if stats.UnmarkedDays != 28 {
		t.Errorf("Expected 28 unmarked days, got %d", stats.UnmarkedDays)
	}
	// 2 of 3 marked days succeeded: floor(200/3) = 66.
	if stats.SuccessRate != 66 {
		t.Errorf("Expected success rate 66, got %d", stats.SuccessRate)
	}
}

func TestMonthStats_EmptyMonthHasZeroRate(t *testing.T) {
	engine, _ := newTestEngine(t, "2025-03-15")

	stats, err := engine.MonthStats("h1", 2025, time.February)
	if err != nil {
		t.Fatalf("MonthStats failed: %v", err)
	}
	if stats.SuccessRate != 0 {
		t.Errorf("Expected rate 0 with no marked days, got %d", stats.SuccessRate)
	}
	if stats.UnmarkedDays != 28 {
		t.Errorf("Expected every day unmarked, got %d", stats.UnmarkedDays)
	}
}

func TestHabitStats_LifetimeTotals(t *testing.T) {
	engine, statuses := newTestEngine(t, "2025-03-15")
	// Spread across months; lifetime stats ignore month boundaries.
	if err := statuses.SetStatus("h1", "2025-01-10", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-02-10", false); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if err := statuses.SetStatus("h1", "2025-03-15", true); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	stats, err := engine.HabitStats("h1")
	if err != nil {
		t.Fatalf("HabitStats failed: %v", err)
	}

	if stats.TotalMarkedDays != 3 {
		t.Errorf("Expected 3 marked days, got %d", stats.TotalMarkedDays)
	}
	if stats.SuccessDays != 2 || stats.FailureDays != 1 {
		t.Errorf("Expected 2 successes and 1 failure, got %d/%d", stats.SuccessDays, stats.FailureDays)
	}
	if stats.SuccessRate != 66 {
		t.Errorf("Expected success rate 66, got %d", stats.SuccessRate)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", stats.CurrentStreak)
	}
}
