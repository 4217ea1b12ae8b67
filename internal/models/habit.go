package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ReminderTime is a daily reminder time of day. Hour and minute are always
// paired: a habit either has a full reminder time or none at all.
type ReminderTime struct {
	Hour   int
	Minute int
}

func (r ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Habit represents a single tracked habit
type Habit struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Color       string        `json:"color"`
	CreatedDate string        `json:"createdDate"` // YYYY-MM-DD format
	IsActive    bool          `json:"isActive"`
	Reminder    *ReminderTime `json:"-"`
}

// habitJSON is the persisted wire shape. The reminder pair is flattened to
// two optional fields for compatibility with existing stored data.
type habitJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Color          string `json:"color"`
	CreatedDate    string `json:"createdDate"`
	IsActive       bool   `json:"isActive"`
	ReminderHour   *int   `json:"reminderHour,omitempty"`
	ReminderMinute *int   `json:"reminderMinute,omitempty"`
}

func (h Habit) MarshalJSON() ([]byte, error) {
	out := habitJSON{
		ID:          h.ID,
		Name:        h.Name,
		Icon:        h.Icon,
		Color:       h.Color,
		CreatedDate: h.CreatedDate,
		IsActive:    h.IsActive,
	}
	if h.Reminder != nil {
		hour, minute := h.Reminder.Hour, h.Reminder.Minute
		out.ReminderHour = &hour
		out.ReminderMinute = &minute
	}
	return json.Marshal(out)
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	var in habitJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	h.ID = in.ID
	h.Name = in.Name
	h.Icon = in.Icon
	h.Color = in.Color
	h.CreatedDate = in.CreatedDate
	h.IsActive = in.IsActive
	// A half-set pair leaves the reminder absent rather than guessing
	if in.ReminderHour != nil && in.ReminderMinute != nil {
		h.Reminder = &ReminderTime{Hour: *in.ReminderHour, Minute: *in.ReminderMinute}
	} else {
		h.Reminder = nil
	}
	return nil
}

// Validate checks the habit's fields against the data model invariants.
func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name must not be blank")
	}
	if strings.TrimSpace(h.Icon) == "" {
		return fmt.Errorf("habit icon must not be blank")
	}
	if !colorPattern.MatchString(h.Color) {
		return fmt.Errorf("habit color %q is not a #RRGGBB hex string", h.Color)
	}
	if h.CreatedDate != "" {
		if _, err := time.Parse(constants.DateFormat, h.CreatedDate); err != nil {
			return fmt.Errorf("habit created date %q is not %s", h.CreatedDate, "YYYY-MM-DD")
		}
	}
	if h.Reminder != nil {
		if h.Reminder.Hour < 0 || h.Reminder.Hour > 23 {
			return fmt.Errorf("reminder hour %d out of range", h.Reminder.Hour)
		}
		if h.Reminder.Minute < 0 || h.Reminder.Minute > 59 {
			return fmt.Errorf("reminder minute %d out of range", h.Reminder.Minute)
		}
	}
	return nil
}

// DisplayName returns the icon-prefixed name used by list output.
func (h Habit) DisplayName() string {
	return h.Icon + " " + h.Name
}

// DefaultHabit returns the habit seeded on first run.
func DefaultHabit(createdDate string) Habit {
	return Habit{
		ID:          constants.DefaultHabitID,
		Name:        constants.DefaultHabitName,
		Icon:        constants.DefaultHabitIcon,
		Color:       constants.DefaultHabitColor,
		CreatedDate: createdDate,
		IsActive:    true,
	}
}
