package habits

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/utils"
)

// ReminderScheduler is the narrow view of the reminder subsystem the
// lifecycle manager needs. The core never waits on or inspects delivery.
type ReminderScheduler interface {
	ScheduleDaily(habitID string, hour, minute int, label string) error
	Cancel(habitID string) error
}

// Service orchestrates habit lifecycle operations across the registry and
// the day-status store, keeping reminder schedules in step.
type Service struct {
	registry  *storage.HabitRegistry
	statuses  *storage.DayStatusStore
	engine    *stats.Engine
	reminders ReminderScheduler
	clock     utils.Clock
}

func NewService(registry *storage.HabitRegistry, statuses *storage.DayStatusStore, engine *stats.Engine, reminders ReminderScheduler, clock utils.Clock) *Service {
	return &Service{
		registry:  registry,
		statuses:  statuses,
		engine:    engine,
		reminders: reminders,
		clock:     clock,
	}
}

// CreateHabit builds a habit from user input, adds it to the registry, and
// makes it the active habit.
func (s *Service) CreateHabit(name, icon, color string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, apperrors.Validationf("habit name must not be blank")
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Icon:        strings.TrimSpace(icon),
		Color:       color,
		CreatedDate: s.clock.Today(),
		IsActive:    true,
	}

	if err := s.registry.Add(habit); err != nil {
		return models.Habit{}, err
	}
	if err := s.registry.SetActiveHabitID(habit.ID); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Created habit", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// Habit looks a habit up by id.
func (s *Service) Habit(habitID string) (models.Habit, error) {
	habits, err := s.registry.All()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == habitID {
			return h, nil
		}
	}
	return models.Habit{}, apperrors.NotFoundf("habit %s", habitID)
}

// HabitByName looks a habit up by its exact display name, ignoring case.
func (s *Service) HabitByName(name string) (models.Habit, error) {
	habits, err := s.registry.All()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return models.Habit{}, apperrors.NotFoundf("habit %q", name)
}

// UpdateHabit replaces the stored record and reconciles the reminder
// schedule with the habit's (possibly changed) reminder time.
func (s *Service) UpdateHabit(habit models.Habit) error {
	if err := s.registry.Update(habit); err != nil {
		return err
	}
	s.reconcileReminder(habit)
	return nil
}

// SetReminder sets the habit's daily reminder time and schedules it.
func (s *Service) SetReminder(habitID string, hour, minute int) error {
	habit, err := s.Habit(habitID)
	if err != nil {
		return err
	}
	habit.Reminder = &models.ReminderTime{Hour: hour, Minute: minute}
	return s.UpdateHabit(habit)
}

// ClearReminder removes the habit's reminder time and cancels its schedule.
func (s *Service) ClearReminder(habitID string) error {
	habit, err := s.Habit(habitID)
	if err != nil {
		return err
	}
	habit.Reminder = nil
	return s.UpdateHabit(habit)
}

func (s *Service) reconcileReminder(habit models.Habit) {
	// Scheduling failures never fail the habit operation itself.
	if habit.Reminder != nil && habit.IsActive {
		if err := s.reminders.ScheduleDaily(habit.ID, habit.Reminder.Hour, habit.Reminder.Minute, habit.Name); err != nil {
			logger.Warn("Failed to schedule reminder", "habit", habit.ID, "error", err)
		}
		return
	}
	if err := s.reminders.Cancel(habit.ID); err != nil {
		logger.Warn("Failed to cancel reminder", "habit", habit.ID, "error", err)
	}
}

// ScheduleAllReminders registers a reminder for every active habit that has
// one. Used at daemon startup.
func (s *Service) ScheduleAllReminders() error {
	habits, err := s.registry.Active()
	if err != nil {
		return err
	}
	for _, h := range habits {
		if h.Reminder == nil {
			continue
		}
		if err := s.reminders.ScheduleDaily(h.ID, h.Reminder.Hour, h.Reminder.Minute, h.Name); err != nil {
			logger.Warn("Failed to schedule reminder", "habit", h.ID, "error", err)
		}
	}
	return nil
}

// Deactivate soft-deletes the habit: the record and its day data stay, the
// active flag is cleared, and any pending reminder is cancelled.
func (s *Service) Deactivate(habitID string) error {
	if err := s.registry.Deactivate(habitID); err != nil {
		return err
	}
	if err := s.reminders.Cancel(habitID); err != nil {
		logger.Warn("Failed to cancel reminder", "habit", habitID, "error", err)
	}
	return nil
}

// DeleteCompletely removes the habit record and every day-status entry for
// it. The existence check runs first so a missing habit is a clean no-op.
func (s *Service) DeleteCompletely(habitID string) error {
	if _, err := s.Habit(habitID); err != nil {
		return err
	}

	if err := s.statuses.ClearHabit(habitID); err != nil {
		return err
	}
	if err := s.registry.Remove(habitID); err != nil {
		return err
	}
	if err := s.reminders.Cancel(habitID); err != nil {
		logger.Warn("Failed to cancel reminder", "habit", habitID, "error", err)
	}

	logger.Info("Deleted habit and its data", "id", habitID)
	return nil
}

// ResetHabitData clears the habit's day-status entries only. The habit
// record and the active pointer are untouched.
func (s *Service) ResetHabitData(habitID string) error {
	if _, err := s.Habit(habitID); err != nil {
		return err
	}
	return s.statuses.ClearHabit(habitID)
}

// ResetAllData is the factory reset: every day-status entry, the habit list,
// and the active pointer are removed. The first-run flag survives so the
// default habit is not reseeded.
func (s *Service) ResetAllData() error {
	if err := s.statuses.ClearAll(); err != nil {
		return err
	}
	return s.registry.ClearAll()
}

// Mark records the day's outcome for the habit.
func (s *Service) Mark(habitID, date string, success bool) error {
	if !utils.ValidateDate(date) {
		return apperrors.Validationf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if _, err := s.Habit(habitID); err != nil {
		return err
	}
	return s.statuses.SetStatus(habitID, date, success)
}

// Unmark removes the day's outcome. Unmarking an unmarked day is a no-op.
func (s *Service) Unmark(habitID, date string) error {
	if !utils.ValidateDate(date) {
		return apperrors.Validationf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return s.statuses.RemoveStatus(habitID, date)
}

// ExportHabits serializes the full habit list to JSON.
func (s *Service) ExportHabits() (string, error) {
	return s.registry.Export()
}

// ImportHabits additively merges habits from exported JSON. Invalid and
// name-colliding entries are skipped; malformed JSON mutates nothing.
func (s *Service) ImportHabits(jsonData string) error {
	return s.registry.Import(jsonData, func() string { return uuid.New().String() })
}

// Stats returns the habit's lifetime statistics.
func (s *Service) Stats(habitID string) (models.HabitStats, error) {
	return s.engine.HabitStats(habitID)
}
