package cli

import (
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/kv"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/reminder"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
)

type Context struct {
	Store     kv.Store
	Registry  *storage.HabitRegistry
	Statuses  *storage.DayStatusStore
	Engine    *stats.Engine
	Service   *habits.Service
	Reminders *reminder.Scheduler
}

// ResolveHabit returns the habit named by the flag, or the active habit when
// the flag is empty.
func (c *Context) ResolveHabit(name string) (models.Habit, error) {
	if name != "" {
		return c.Service.HabitByName(name)
	}

	habit, ok, err := c.Registry.ActiveHabit()
	if err != nil {
		return models.Habit{}, err
	}
	if !ok {
		return models.Habit{}, errNoActiveHabit
	}
	return habit, nil
}
