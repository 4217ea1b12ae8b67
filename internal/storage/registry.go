package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/habitflow/internal/constants"
	apperrors "github.com/julianstephens/habitflow/internal/errors"
	"github.com/julianstephens/habitflow/internal/kv"
	"github.com/julianstephens/habitflow/internal/logger"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

// HabitRegistry persists the ordered habit list under "habits_list" and the
// active-habit pointer under "active_habit_id". The list keeps insertion
// order; soft-deleted (deactivated) habits stay in it.
type HabitRegistry struct {
	store kv.Store
	clock utils.Clock
}

func NewHabitRegistry(store kv.Store, clock utils.Clock) *HabitRegistry {
	return &HabitRegistry{store: store, clock: clock}
}

func (r *HabitRegistry) load() ([]models.Habit, error) {
	raw, ok, err := r.store.Get(constants.KeyHabitsList)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		// A corrupt list must not take the application down. Treat it as
		// empty rather than propagating a parse failure.
		logger.Warn("Persisted habit list failed to parse, treating as empty", "error", err)
		return []models.Habit{}, nil
	}
	return habits, nil
}

func (r *HabitRegistry) save(habits []models.Habit) error {
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habit list: %w", err)
	}
	return r.store.Set(constants.KeyHabitsList, string(data))
}

// All returns every habit in insertion order, including deactivated ones.
func (r *HabitRegistry) All() ([]models.Habit, error) {
	return r.load()
}

// Active returns the habits with the active flag set, in insertion order.
func (r *HabitRegistry) Active() ([]models.Habit, error) {
	habits, err := r.load()
	if err != nil {
		return nil, err
	}
	active := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active, nil
}

// Add appends a new habit. The name must be untaken case-insensitively among
// all habits ever created, deactivated ones included. If no active-habit
// pointer is set yet, the new habit becomes the active one.
func (r *HabitRegistry) Add(habit models.Habit) error {
	if err := habit.Validate(); err != nil {
		return apperrors.Validationf("%v", err)
	}

	taken, err := r.IsNameTaken(habit.Name, "")
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Validationf("habit name %q is already taken", habit.Name)
	}

	habits, err := r.load()
	if err != nil {
		return err
	}
	habits = append(habits, habit)
	if err := r.save(habits); err != nil {
		return err
	}

	activeID, err := r.ActiveHabitID()
	if err != nil {
		return err
	}
	if activeID == "" {
		return r.SetActiveHabitID(habit.ID)
	}
	return nil
}

// Update replaces the stored record with the same id, preserving its position.
func (r *HabitRegistry) Update(habit models.Habit) error {
	if err := habit.Validate(); err != nil {
		return apperrors.Validationf("%v", err)
	}

	habits, err := r.load()
	if err != nil {
		return err
	}
	for i, h := range habits {
		if h.ID == habit.ID {
			habits[i] = habit
			return r.save(habits)
		}
	}
	return apperrors.NotFoundf("habit %s", habit.ID)
}

// Deactivate clears the active flag on the matching habit. Day-status data is
// untouched. If the habit was the pointed-to one, the pointer moves to the
// first remaining active habit or is cleared.
func (r *HabitRegistry) Deactivate(habitID string) error {
	habits, err := r.load()
	if err != nil {
		return err
	}

	found := false
	for i, h := range habits {
		if h.ID == habitID {
			habits[i].IsActive = false
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFoundf("habit %s", habitID)
	}
	if err := r.save(habits); err != nil {
		return err
	}

	return r.reassignPointerIfNeeded(habitID)
}

// Remove hard-deletes the habit record. Cascading day-status cleanup is the
// lifecycle manager's job.
func (r *HabitRegistry) Remove(habitID string) error {
	habits, err := r.load()
	if err != nil {
		return err
	}

	kept := make([]models.Habit, 0, len(habits))
	found := false
	for _, h := range habits {
		if h.ID == habitID {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return apperrors.NotFoundf("habit %s", habitID)
	}
	if err := r.save(kept); err != nil {
		return err
	}

	return r.reassignPointerIfNeeded(habitID)
}

func (r *HabitRegistry) reassignPointerIfNeeded(removedID string) error {
	activeID, err := r.ActiveHabitID()
	if err != nil {
		return err
	}
	if activeID != removedID {
		return nil
	}

	active, err := r.Active()
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return r.SetActiveHabitID(active[0].ID)
	}
	return r.SetActiveHabitID("")
}

// ActiveHabitID returns the raw active-habit pointer, "" when unset.
func (r *HabitRegistry) ActiveHabitID() (string, error) {
	id, _, err := r.store.Get(constants.KeyActiveHabitID)
	return id, err
}

// SetActiveHabitID sets the raw active-habit pointer.
func (r *HabitRegistry) SetActiveHabitID(habitID string) error {
	return r.store.Set(constants.KeyActiveHabitID, habitID)
}

// ActiveHabit resolves the pointer. A pointer at a missing or deactivated
// habit falls back to the first active habit and the corrected pointer is
// persisted. Returns false when no active habits exist.
func (r *HabitRegistry) ActiveHabit() (models.Habit, bool, error) {
	activeID, err := r.ActiveHabitID()
	if err != nil {
		return models.Habit{}, false, err
	}

	if activeID != "" {
		habits, err := r.load()
		if err != nil {
			return models.Habit{}, false, err
		}
		for _, h := range habits {
			if h.ID == activeID && h.IsActive {
				return h, true, nil
			}
		}
	}

	active, err := r.Active()
	if err != nil {
		return models.Habit{}, false, err
	}
	if len(active) == 0 {
		return models.Habit{}, false, nil
	}
	if err := r.SetActiveHabitID(active[0].ID); err != nil {
		return models.Habit{}, false, err
	}
	return active[0], true, nil
}

// IsNameTaken reports whether any habit other than excludeID already uses the
// name, ignoring case.
func (r *HabitRegistry) IsNameTaken(name, excludeID string) (bool, error) {
	habits, err := r.load()
	if err != nil {
		return false, err
	}
	for _, h := range habits {
		if h.ID != excludeID && strings.EqualFold(h.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// GenerateUniqueName appends " (1)", " (2)", ... to the base name until the
// result is untaken.
func (r *HabitRegistry) GenerateUniqueName(base string) (string, error) {
	name := base
	for counter := 1; ; counter++ {
		taken, err := r.IsNameTaken(name, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s (%d)", base, counter)
	}
}

// EnsureDefaults seeds one default habit on the very first run. It is an
// explicit startup step, not a read side effect: once the first-run flag is
// persisted the registry never reseeds, even after an explicit ClearAll.
func (r *HabitRegistry) EnsureDefaults() error {
	if _, ok, err := r.store.Get(constants.KeyHabitsList); err != nil {
		return err
	} else if ok {
		return nil
	}

	done, _, err := r.store.Get(constants.KeyFirstRun)
	if err != nil {
		return err
	}
	if done == "true" {
		return nil
	}

	habit := models.DefaultHabit(r.clock.Today())
	if err := r.save([]models.Habit{habit}); err != nil {
		return err
	}
	if err := r.SetActiveHabitID(habit.ID); err != nil {
		return err
	}
	logger.Info("Seeded default habit on first run", "id", habit.ID)
	return r.store.Set(constants.KeyFirstRun, "true")
}

// ClearAll removes the habit list and the active pointer. The first-run flag
// survives so the default habit is not recreated.
func (r *HabitRegistry) ClearAll() error {
	if err := r.store.Delete(constants.KeyHabitsList); err != nil {
		return err
	}
	return r.store.Delete(constants.KeyActiveHabitID)
}

// Export serializes the full habit list to JSON.
func (r *HabitRegistry) Export() (string, error) {
	habits, err := r.load()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return "", fmt.Errorf("failed to serialize habit list: %w", err)
	}
	return string(data), nil
}

// Import additively merges valid, non-name-colliding habits into the
// registry. Existing habits are never overwritten; an imported habit whose id
// collides with a stored one gets a fresh id. Malformed JSON fails without
// mutating anything.
func (r *HabitRegistry) Import(jsonData string, newID func() string) error {
	var imported []models.Habit
	if err := json.Unmarshal([]byte(jsonData), &imported); err != nil {
		return apperrors.Validationf("import data is not a valid habit list: %v", err)
	}

	habits, err := r.load()
	if err != nil {
		return err
	}
	ids := make(map[string]bool, len(habits))
	names := make(map[string]bool, len(habits))
	for _, h := range habits {
		ids[h.ID] = true
		names[strings.ToLower(h.Name)] = true
	}

	added := 0
	for _, h := range imported {
		if h.Validate() != nil {
			continue
		}
		if names[strings.ToLower(h.Name)] {
			continue
		}
		if h.ID == "" || ids[h.ID] {
			h.ID = newID()
		}
		ids[h.ID] = true
		names[strings.ToLower(h.Name)] = true
		habits = append(habits, h)
		added++
	}

	if added == 0 {
		return nil
	}
	return r.save(habits)
}
