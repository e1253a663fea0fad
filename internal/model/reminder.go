package model

import (
	"fmt"
	"time"
)

// Reminder task states. A task moves PENDING -> FIRED and is then terminal.
const (
	ReminderPending = "pending"
	ReminderFired   = "fired"
)

// ReminderTask is a durable, one-shot request to alert the user about a
// grocery item at a future time. The item name is captured at schedule time
// and never re-read, so the alert still makes sense if the item was deleted
// in the meantime.
type ReminderTask struct {
	Key       string    `json:"key"`
	ItemID    int64     `json:"item_id"`
	ItemName  string    `json:"item_name"`
	FireAt    time.Time `json:"fire_at"`
	Tag       string    `json:"tag"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	FiredAt   time.Time `json:"fired_at,omitempty"`
}

// SetKey sets the database key for this reminder task.
func (r *ReminderTask) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this reminder task.
func (r *ReminderTask) GetKey() string {
	return r.Key
}

// IsPending returns true if the task has not fired yet.
func (r *ReminderTask) IsPending() bool {
	return r.Status == ReminderPending
}

// IsDue returns true if the fire time has passed.
func (r *ReminderTask) IsDue() bool {
	return !time.Now().Before(r.FireAt)
}

// TimeUntil returns the duration until the fire time.
func (r *ReminderTask) TimeUntil() time.Duration {
	return time.Until(r.FireAt)
}

// ShortID returns the first 6 characters of the UUID for display.
func (r *ReminderTask) ShortID() string {
	// Key format: "reminder:uuid"
	if len(r.Key) > len(PrefixReminder)+7 {
		return r.Key[len(PrefixReminder)+1 : len(PrefixReminder)+7]
	}
	return r.Key
}

// GenerateReminderKey generates a database key for a reminder task using UUID.
func GenerateReminderKey(uuid string) string {
	return fmt.Sprintf("%s:%s", PrefixReminder, uuid)
}

// ReminderTag returns the correlation tag linking reminder tasks back to
// their originating item. A future cancel operation can remove all pending
// tasks carrying the same tag.
func ReminderTag(itemID int64) string {
	return fmt.Sprintf("reminder_%d", itemID)
}

// NewReminderTask creates a pending reminder task for the given item.
func NewReminderTask(itemID int64, itemName string, fireAt time.Time) *ReminderTask {
	return &ReminderTask{
		ItemID:    itemID,
		ItemName:  itemName,
		FireAt:    fireAt,
		Tag:       ReminderTag(itemID),
		Status:    ReminderPending,
		CreatedAt: time.Now(),
	}
}
