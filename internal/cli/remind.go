package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
)

type RemindCmd struct {
	Set   RemindSetCmd   `cmd:"" help:"Set a daily reminder time for a habit."`
	Clear RemindClearCmd `cmd:"" help:"Clear a habit's reminder."`
	Run   RemindRunCmd   `cmd:"" help:"Run the reminder scheduler in the foreground."`
}

type RemindSetCmd struct {
	Time  string `arg:"" help:"Reminder time (HH:MM, 24-hour)."`
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *RemindSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	t, err := time.Parse(constants.TimeFormat, c.Time)
	if err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM: %w", c.Time, err)
	}

	if err := ctx.Service.SetReminder(habit.ID, t.Hour(), t.Minute()); err != nil {
		return err
	}

	fmt.Printf("Reminder for %s set to %s daily\n", habit.Name, c.Time)
	fmt.Println("(Reminders fire while 'habitflow remind run' is running)")
	return nil
}

type RemindClearCmd struct {
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *RemindClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Service.ClearReminder(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Cleared reminder for %s\n", habit.Name)
	return nil
}

type RemindRunCmd struct{}

func (c *RemindRunCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Service.ScheduleAllReminders(); err != nil {
		return err
	}

	ctx.Reminders.Start()
	defer ctx.Reminders.Stop()

	logger.Info("reminder scheduler running, press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("reminder scheduler stopping")
	return nil
}
