package cli

import (
	"fmt"

	"github.com/julianstephens/habitflow/internal/utils"
)

type MarkCmd struct {
	Date  string `arg:"" optional:"" help:"Date to mark (YYYY-MM-DD, default today)."`
	Habit string `help:"Habit name (default: active habit)."`
	Fail  bool   `help:"Record the day as a failure instead of a success."`
}

func (c *MarkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = utils.Today()
	}

	if err := ctx.Service.Mark(habit.ID, date, !c.Fail); err != nil {
		return err
	}

	outcome := "success"
	if c.Fail {
		outcome = "failure"
	}
	fmt.Printf("Marked %s as a %s for habit: %s\n", date, outcome, habit.Name)

	streak, err := ctx.Engine.Streak(habit.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Current streak: %d day(s)\n", streak)
	return nil
}

type UnmarkCmd struct {
	Date  string `arg:"" optional:"" help:"Date to unmark (YYYY-MM-DD, default today)."`
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *UnmarkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = utils.Today()
	}

	if err := ctx.Service.Unmark(habit.ID, date); err != nil {
		return err
	}

	fmt.Printf("Cleared %s for habit: %s\n", date, habit.Name)
	return nil
}

type StreakCmd struct {
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	streak, err := ctx.Engine.Streak(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d day(s)\n", habit.DisplayName(), streak)
	return nil
}
