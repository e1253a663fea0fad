package scheduler

import (
	"context"
	"fmt"

	"github.com/karimwahba/groclist/internal/logging"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/notify"
	"github.com/karimwahba/groclist/internal/parser"
	"github.com/karimwahba/groclist/internal/storage"
)

// CheckObserver receives reminder check and delivery outcomes. The daemon
// uses it to track operational metrics.
type CheckObserver interface {
	RecordReminderCheck()
	RecordNotificationSent(latencyMs int64)
	RecordNotificationFailed(err error)
}

// ReminderChecker fires due reminder tasks. Each task fires at most once:
// it is marked fired before results come back, so a delivery failure is
// logged (and retried by the queue when one is attached) but never causes
// a duplicate alert.
type ReminderChecker struct {
	reminderRepo *storage.ReminderRepo
	dispatcher   *notify.Dispatcher
	observer     CheckObserver
	debug        bool
}

// NewReminderChecker creates a new reminder checker.
func NewReminderChecker(reminderRepo *storage.ReminderRepo, channelRepo *storage.ChannelRepo) *ReminderChecker {
	return &ReminderChecker{
		reminderRepo: reminderRepo,
		dispatcher:   notify.NewDispatcher(channelRepo),
	}
}

// Dispatcher returns the underlying dispatcher, for retry queue wiring.
func (c *ReminderChecker) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

// SetDebug enables debug output.
func (c *ReminderChecker) SetDebug(debug bool) {
	c.debug = debug
	c.dispatcher.SetDebug(debug)
}

// SetObserver attaches a check observer.
func (c *ReminderChecker) SetObserver(obs CheckObserver) {
	c.observer = obs
}

// Check fires all due reminder tasks.
func (c *ReminderChecker) Check() {
	if c.observer != nil {
		c.observer.RecordReminderCheck()
	}

	due, err := c.reminderRepo.ListDue()
	if err != nil {
		logging.Error("failed to list due reminders", logging.KeyError, err)
		return
	}

	for _, task := range due {
		c.fire(task)
	}
}

// fire sends the alert for a single task and transitions it to fired.
func (c *ReminderChecker) fire(task *model.ReminderTask) {
	if err := c.reminderRepo.MarkFired(task.Key); err != nil {
		logging.Error("failed to mark reminder fired",
			logging.KeyReminderID, task.ShortID(),
			logging.KeyError, err)
		return
	}

	notification := buildReminderNotification(task)
	results := c.dispatcher.SendNotification(context.Background(), notification)

	if results == nil {
		logging.Warn("reminder fired with no enabled channels",
			logging.KeyReminderID, task.ShortID(),
			logging.KeyItemID, task.ItemID)
		return
	}

	for _, result := range results {
		if result.Success {
			if c.observer != nil {
				c.observer.RecordNotificationSent(result.Duration.Milliseconds())
			}
			logging.Info("reminder delivered",
				logging.KeyReminderID, task.ShortID(),
				logging.KeyItemID, task.ItemID,
				logging.KeyChannel, result.ChannelName,
				logging.KeyDuration, result.Duration.Milliseconds())
		} else {
			if c.observer != nil {
				c.observer.RecordNotificationFailed(result.Error)
			}
			logging.Error("reminder delivery failed",
				logging.KeyReminderID, task.ShortID(),
				logging.KeyChannel, result.ChannelName,
				logging.KeyError, result.Error)
		}
	}
}

// buildReminderNotification creates the alert payload for a reminder task.
func buildReminderNotification(task *model.ReminderTask) *model.Notification {
	title := "Grocery Reminder"
	body := fmt.Sprintf("Time to buy: %s", task.ItemName)

	return model.NewNotification(model.NotifyReminder, title, body).
		WithItem(task.ItemID).
		WithColor(model.ColorWarning).
		WithField("Item", task.ItemName).
		WithField("Scheduled for", parser.FormatFireAt(task.FireAt))
}
