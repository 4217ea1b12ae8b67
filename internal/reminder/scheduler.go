package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitflow/internal/logger"
)

// Notifier delivers a reminder to the user. Delivery is fire-and-forget: the
// scheduler logs failures and moves on.
type Notifier interface {
	Notify(text string) error
}

// Scheduler fires one daily cron job per habit with a reminder time.
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(notifier Notifier, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		notifier: notifier,
		entries:  make(map[string]cron.EntryID),
	}
}

// ScheduleDaily registers (or replaces) the habit's daily reminder at the
// given time of day.
func (s *Scheduler) ScheduleDaily(habitID string, hour, minute int, label string) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("reminder minute %d out of range", minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[habitID]; ok {
		s.cron.Remove(id)
	}

	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	id, err := s.cron.AddFunc(spec, func() {
		text := fmt.Sprintf("Time for your habit: %s", label)
		if err := s.notifier.Notify(text); err != nil {
			logger.Warn("Reminder delivery failed", "habit", habitID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	s.entries[habitID] = id
	return nil
}

// Cancel removes the habit's reminder. Cancelling a habit with no reminder is
// a no-op.
func (s *Scheduler) Cancel(habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[habitID]; ok {
		s.cron.Remove(id)
		delete(s.entries, habitID)
	}
	return nil
}

// Scheduled reports whether the habit currently has a reminder entry.
func (s *Scheduler) Scheduled(habitID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[habitID]
	return ok
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
