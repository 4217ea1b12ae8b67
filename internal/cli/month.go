package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitflow/internal/calendar"
)

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to report (YYYY-MM, default current)."`
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	year, month, err := resolveMonth(c.Month)
	if err != nil {
		return err
	}

	stats, err := ctx.Engine.MonthStats(habit.ID, year, month)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", habit.DisplayName(), calendar.FormatMonth(year, month))
	fmt.Printf("  Days in month: %d\n", stats.TotalDays)
	fmt.Printf("  Successes:     %d\n", stats.SuccessDays)
	fmt.Printf("  Failures:      %d\n", stats.FailureDays)
	fmt.Printf("  Unmarked:      %d\n", stats.UnmarkedDays)
	fmt.Printf("  Success rate:  %d%%\n", stats.SuccessRate)
	return nil
}

func resolveMonth(arg string) (int, time.Month, error) {
	if arg == "" {
		year, month := calendar.CurrentMonth()
		return year, month, nil
	}
	t, err := time.Parse("2006-01", arg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", arg, err)
	}
	return t.Year(), t.Month(), nil
}
