package model

import (
	"time"
)

// NotificationType defines the origin of a notification.
type NotificationType string

// Notification types.
const (
	NotifyReminder NotificationType = "reminder"
	NotifyPush     NotificationType = "push"
	NotifyTest     NotificationType = "test"
)

// Notification represents a user-visible alert to be dispatched. ItemID is
// optional; when set, channels render a deep link back to the item view.
type Notification struct {
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	ItemID    int64             `json:"item_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Color     int               `json:"color,omitempty"` // Hex color for embeds
}

// NewNotification creates a new notification.
func NewNotification(t NotificationType, title, body string) *Notification {
	return &Notification{
		Type:      t,
		Title:     title,
		Body:      body,
		Fields:    make(map[string]string),
		Timestamp: time.Now(),
	}
}

// WithItem attaches the deep-link item id.
func (n *Notification) WithItem(itemID int64) *Notification {
	n.ItemID = itemID
	return n
}

// WithField adds a field to the notification.
func (n *Notification) WithField(key, value string) *Notification {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

// WithColor sets the embed color.
func (n *Notification) WithColor(color int) *Notification {
	n.Color = color
	return n
}

// Notification colors (Discord-compatible hex values).
const (
	ColorSuccess = 0x57F287 // Green
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x5865F2 // Blurple
	ColorError   = 0xED4245 // Red
)

// DefaultColorForType returns the default color for a notification type.
func DefaultColorForType(t NotificationType) int {
	switch t {
	case NotifyReminder:
		return ColorWarning
	case NotifyPush:
		return ColorInfo
	case NotifyTest:
		return ColorSuccess
	default:
		return ColorInfo
	}
}

// TypeLabel returns a human-readable label for the notification type.
func (n *Notification) TypeLabel() string {
	switch n.Type {
	case NotifyReminder:
		return "Grocery Reminder"
	case NotifyPush:
		return "Push Message"
	case NotifyTest:
		return "Test Notification"
	default:
		return "Notification"
	}
}
