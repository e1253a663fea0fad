// Package scheduler provides cron-based reminder firing for the daemon.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/karimwahba/groclist/internal/config"
	"github.com/karimwahba/groclist/internal/logging"
	"github.com/karimwahba/groclist/internal/storage"
)

// Scheduler manages scheduled tasks using cron. Fire times are not exact:
// due reminders are picked up by the next minute tick.
type Scheduler struct {
	cron            *cron.Cron
	db              *storage.DB
	debug           bool
	lastCheck       time.Time
	mu              sync.Mutex
	reminderChecker *ReminderChecker
}

// NewScheduler creates a new scheduler.
func NewScheduler(db *storage.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		db:   db,
	}
}

// SetDebug enables debug output.
func (s *Scheduler) SetDebug(debug bool) {
	s.debug = debug
	if s.reminderChecker != nil {
		s.reminderChecker.SetDebug(debug)
	}
}

// SetReminderChecker sets the reminder checker.
func (s *Scheduler) SetReminderChecker(checker *ReminderChecker) {
	s.reminderChecker = checker
	if s.debug {
		checker.SetDebug(s.debug)
	}
}

// Start starts the scheduler with all configured jobs.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	// Check for due reminders every minute
	_, err := s.cron.AddFunc("0 * * * * *", func() {
		s.runMinuteChecks()
	})
	if err != nil {
		return fmt.Errorf("failed to add minute checks: %w", err)
	}

	s.cron.Start()

	logging.DebugLog("scheduler started")
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logging.DebugLog("scheduler stopped")
}

// runMinuteChecks runs checks that need to happen every minute.
func (s *Scheduler) runMinuteChecks() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	// Skip if the system was sleeping
	if elapsed > config.Global.Scheduler.SleepThreshold {
		logging.DebugLog("skipping stale checks after sleep",
			"elapsed", elapsed.Round(time.Second).String())
		return
	}

	s.checkReminders()
}

// checkReminders checks for due reminders.
func (s *Scheduler) checkReminders() {
	if s.reminderChecker == nil {
		return
	}
	s.reminderChecker.Check()
}

// AddJob adds a custom job to the scheduler.
func (s *Scheduler) AddJob(spec string, job func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, job)
}

// RemoveJob removes a job from the scheduler.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns all scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns the next scheduled run time for any job.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
