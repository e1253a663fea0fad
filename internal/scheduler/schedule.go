package scheduler

import (
	"time"

	apperrors "github.com/karimwahba/groclist/internal/errors"
	"github.com/karimwahba/groclist/internal/logging"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/storage"
)

// Planner validates and enqueues reminder tasks. It is the CLI-facing half
// of the scheduler; the ReminderChecker is the daemon-facing half.
type Planner struct {
	itemRepo     *storage.ItemRepo
	reminderRepo *storage.ReminderRepo
	channelRepo  *storage.ChannelRepo
}

// NewPlanner creates a new reminder planner.
func NewPlanner(itemRepo *storage.ItemRepo, reminderRepo *storage.ReminderRepo, channelRepo *storage.ChannelRepo) *Planner {
	return &Planner{
		itemRepo:     itemRepo,
		reminderRepo: reminderRepo,
		channelRepo:  channelRepo,
	}
}

// PlanResult is the outcome of scheduling a reminder.
type PlanResult struct {
	Task *model.ReminderTask

	// NoChannels is set when no alert channel is enabled. The reminder is
	// still scheduled; it will be a logged no-op unless a channel is
	// enabled before it fires.
	NoChannels bool
}

// Schedule enqueues a reminder for an item at the given fire time.
// The fire time must be strictly in the future and the item must exist.
func (p *Planner) Schedule(itemID int64, fireAt time.Time) (*PlanResult, error) {
	return p.ScheduleAt(itemID, fireAt, time.Now())
}

// ScheduleAt is Schedule with an explicit reference time.
func (p *Planner) ScheduleAt(itemID int64, fireAt time.Time, now time.Time) (*PlanResult, error) {
	if !fireAt.After(now) {
		return nil, apperrors.ErrInvalidScheduleTime
	}

	item, err := p.itemRepo.Get(itemID)
	if err != nil {
		if storage.IsErrKeyNotFound(err) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "loading item")
	}

	task := model.NewReminderTask(item.ID, item.Name, fireAt)
	if err := p.reminderRepo.Create(task); err != nil {
		return nil, apperrors.Wrap(err, "saving reminder")
	}

	result := &PlanResult{Task: task}

	enabled, err := p.channelRepo.ListEnabled()
	if err != nil || len(enabled) == 0 {
		result.NoChannels = true
		logging.Warn("reminder scheduled with no enabled channels",
			logging.KeyReminderID, task.ShortID(),
			logging.KeyItemID, item.ID,
			logging.KeyFireAt, fireAt.Format(time.RFC3339))
	} else {
		logging.Info("reminder scheduled",
			logging.KeyReminderID, task.ShortID(),
			logging.KeyItemID, item.ID,
			logging.KeyFireAt, fireAt.Format(time.RFC3339),
			logging.KeyCount, len(enabled))
	}

	return result, nil
}

// CancelForItem removes all pending reminder tasks for an item and returns
// how many were removed.
func (p *Planner) CancelForItem(itemID int64) (int, error) {
	tasks, err := p.reminderRepo.ListByTag(model.ReminderTag(itemID))
	if err != nil {
		return 0, apperrors.Wrap(err, "listing reminders")
	}

	removed := 0
	for _, task := range tasks {
		if !task.IsPending() {
			continue
		}
		if err := p.reminderRepo.Delete(task.Key); err != nil {
			return removed, apperrors.Wrap(err, "deleting reminder")
		}
		removed++
	}
	return removed, nil
}
