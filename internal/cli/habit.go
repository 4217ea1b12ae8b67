package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Edit       HabitEditCmd       `cmd:"" help:"Edit an existing habit."`
	Switch     HabitSwitchCmd     `cmd:"" help:"Switch the active habit."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Deactivate a habit (keeps its data)."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit and all of its data."`
	Reset      HabitResetCmd      `cmd:"" help:"Clear a habit's day data (keeps the habit)."`
	Stats      HabitStatsCmd      `cmd:"" help:"Show lifetime statistics for a habit."`
}

type HabitAddCmd struct {
	Name  string `arg:"" optional:"" help:"Habit name. Omit to fill in a form."`
	Icon  string `help:"Habit icon." default:"🎯"`
	Color string `help:"Habit color (#RRGGBB)." default:"#4CAF50"`
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, icon, color := c.Name, c.Icon, c.Color

	if name == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Name").Value(&name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name must not be blank")
				}
				return nil
			}),
			huh.NewInput().Title("Icon").Value(&icon),
			huh.NewInput().Title("Color").Description("#RRGGBB").Value(&color).Validate(func(s string) error {
				if !hexColorPattern.MatchString(s) {
					return fmt.Errorf("expected a #RRGGBB hex color")
				}
				return nil
			}),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	habit, err := ctx.Service.CreateHabit(name, icon, color)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", habit.DisplayName())
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include deactivated habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Registry.All()
	if err != nil {
		return err
	}

	activeID, err := ctx.Registry.ActiveHabitID()
	if err != nil {
		return err
	}

	shown := 0
	for _, habit := range habits {
		if !habit.IsActive && !c.All {
			continue
		}
		marker := "  "
		if habit.ID == activeID {
			marker = "* "
		}
		suffix := ""
		if !habit.IsActive {
			suffix = " [DEACTIVATED]"
		}
		if habit.Reminder != nil {
			suffix += fmt.Sprintf(" (reminder %s)", habit.Reminder)
		}
		fmt.Printf("%s%s%s\n", marker, habit.DisplayName(), suffix)
		shown++
	}

	if shown == 0 {
		fmt.Println("No habits found.")
	}
	return nil
}

type HabitEditCmd struct {
	Name   string `arg:"" help:"Habit to edit."`
	Rename string `help:"New name."`
	Icon   string `help:"New icon."`
	Color  string `help:"New color (#RRGGBB)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Service.HabitByName(c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		taken, err := ctx.Registry.IsNameTaken(c.Rename, habit.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("habit name %q is already taken", c.Rename)
		}
		habit.Name = strings.TrimSpace(c.Rename)
	}
	if c.Icon != "" {
		habit.Icon = c.Icon
	}
	if c.Color != "" {
		habit.Color = c.Color
	}

	if err := ctx.Service.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.DisplayName())
	return nil
}

type HabitSwitchCmd struct {
	Name string `arg:"" help:"Habit to make active."`
}

func (c *HabitSwitchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Service.HabitByName(c.Name)
	if err != nil {
		return err
	}
	if !habit.IsActive {
		return fmt.Errorf("habit %q is deactivated", habit.Name)
	}
	if err := ctx.Registry.SetActiveHabitID(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Switched to habit: %s\n", habit.DisplayName())
	return nil
}

type HabitDeactivateCmd struct {
	Name string `arg:"" help:"Habit to deactivate."`
}

func (c *HabitDeactivateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Service.HabitByName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Service.Deactivate(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deactivated habit: %s\n", habit.Name)
	fmt.Println("(Its day data is kept. Use 'habitflow habit delete' to remove everything)")
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit to delete."`
	Yes  bool   `help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Service.HabitByName(c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and every day entry recorded for it?", habit.Name)).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Service.DeleteCompletely(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit and its data: %s\n", habit.Name)
	return nil
}

type HabitResetCmd struct {
	Name string `arg:"" help:"Habit whose day data to clear."`
}

func (c *HabitResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Service.HabitByName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Service.ResetHabitData(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Cleared day data for habit: %s\n", habit.Name)
	return nil
}

type HabitStatsCmd struct {
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	stats, err := ctx.Service.Stats(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (since %s)\n", habit.DisplayName(), habit.CreatedDate)
	fmt.Printf("  Current streak: %d day(s)\n", stats.CurrentStreak)
	fmt.Printf("  Marked days:    %d\n", stats.TotalMarkedDays)
	fmt.Printf("  Successes:      %d\n", stats.SuccessDays)
	fmt.Printf("  Failures:       %d\n", stats.FailureDays)
	fmt.Printf("  Success rate:   %d%%\n", stats.SuccessRate)
	return nil
}
