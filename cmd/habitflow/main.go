package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/kv"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/notifier"
	"github.com/julianstephens/habitflow/internal/reminder"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitflow storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive calendar TUI." default:"1"`
	Mark     cli.MarkCmd     `cmd:"" help:"Mark a day for a habit."`
	Unmark   cli.UnmarkCmd   `cmd:"" help:"Clear a day for a habit."`
	Streak   cli.StreakCmd   `cmd:"" help:"Show the current streak."`
	Month    cli.MonthCmd    `cmd:"" help:"Show monthly statistics."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month calendar."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Remind   cli.RemindCmd   `cmd:"" help:"Manage daily reminders."`
	Export   cli.ExportCmd   `cmd:"" help:"Export habits as JSON."`
	Import   cli.ImportCmd   `cmd:"" help:"Merge habits from a JSON export."`
	Reset    cli.ResetAllCmd `cmd:"" help:"Delete all habits and day data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Single-habit-at-a-time streak tracker"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Storage type follows the file extension
	var store kv.Store
	if strings.HasSuffix(CLI.Config, ".json") {
		store = kv.NewFileStore(CLI.Config)
	} else {
		store = kv.NewSQLiteStore(CLI.Config)
	}

	clock := utils.SystemClock{}
	registry := storage.NewHabitRegistry(store, clock)
	statuses := storage.NewDayStatusStore(store)
	engine := stats.New(statuses, clock)
	scheduler := reminder.NewScheduler(notifier.New(), time.Local)
	service := habits.NewService(registry, statuses, engine, scheduler, clock)

	appCtx := &cli.Context{
		Store:     store,
		Registry:  registry,
		Statuses:  statuses,
		Engine:    engine,
		Service:   service,
		Reminders: scheduler,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
