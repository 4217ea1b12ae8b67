package storage

import (
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitflow/internal/calendar"
	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/kv"
	"github.com/julianstephens/habitflow/internal/models"
)

// DayStatusStore persists per-day habit outcomes under
// "{habitId}_{date}_success" keys. A day with no entry is unmarked; the store
// treats dates as opaque strings supplied well-formed by callers.
type DayStatusStore struct {
	store kv.Store
}

func NewDayStatusStore(store kv.Store) *DayStatusStore {
	return &DayStatusStore{store: store}
}

func statusKey(habitID, date string) string {
	return habitID + "_" + date + constants.StatusKeySuffix
}

// SetStatus upserts the outcome for the given day, overwriting any prior value.
func (s *DayStatusStore) SetStatus(habitID, date string, success bool) error {
	return s.store.Set(statusKey(habitID, date), strconv.FormatBool(success))
}

// Status returns the stored outcome, or StatusUnmarked if no entry exists.
func (s *DayStatusStore) Status(habitID, date string) (models.DayStatus, error) {
	value, ok, err := s.store.Get(statusKey(habitID, date))
	if err != nil {
		return models.StatusUnmarked, err
	}
	if !ok {
		return models.StatusUnmarked, nil
	}
	if value == "true" {
		return models.StatusSuccess, nil
	}
	return models.StatusFailure, nil
}

// RemoveStatus deletes the entry for the given day. Removing an already
// unmarked day is a no-op.
func (s *DayStatusStore) RemoveStatus(habitID, date string) error {
	return s.store.Delete(statusKey(habitID, date))
}

// AllStatuses returns every explicitly marked date for the habit. Unmarked
// dates never appear as keys.
func (s *DayStatusStore) AllStatuses(habitID string) (map[string]bool, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, err
	}

	prefix := habitID + "_"
	statuses := make(map[string]bool)
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, constants.StatusKeySuffix) {
			continue
		}
		date := strings.TrimSuffix(strings.TrimPrefix(key, prefix), constants.StatusKeySuffix)
		value, ok, err := s.store.Get(key)
		if err != nil {
			return nil, err
		}
		if ok {
			statuses[date] = value == "true"
		}
	}
	return statuses, nil
}

// MonthStatuses returns the status of every calendar day in the given month,
// materializing StatusUnmarked for days with no entry.
func (s *DayStatusStore) MonthStatuses(habitID string, year int, month time.Month) (map[string]models.DayStatus, error) {
	statuses := make(map[string]models.DayStatus)
	for _, date := range calendar.DatesInMonth(year, month) {
		status, err := s.Status(habitID, date)
		if err != nil {
			return nil, err
		}
		statuses[date] = status
	}
	return statuses, nil
}

// ClearHabit removes every day-status entry for the habit.
func (s *DayStatusStore) ClearHabit(habitID string) error {
	keys, err := s.store.Keys()
	if err != nil {
		return err
	}

	prefix := habitID + "_"
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, constants.StatusKeySuffix) {
			if err := s.store.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClearAll removes every day-status entry for every habit. Registry keys are
// untouched.
func (s *DayStatusStore) ClearAll() error {
	keys, err := s.store.Keys()
	if err != nil {
		return err
	}

	for _, key := range keys {
		if strings.HasSuffix(key, constants.StatusKeySuffix) {
			if err := s.store.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
