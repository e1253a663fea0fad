package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateItemKeyOrdering(t *testing.T) {
	// Zero padding keeps lexicographic order equal to numeric order
	assert.Equal(t, "item:000000000001", GenerateItemKey(1))
	assert.Equal(t, "item:000000000042", GenerateItemKey(42))
	assert.Less(t, GenerateItemKey(9), GenerateItemKey(10))
	assert.Less(t, GenerateItemKey(99), GenerateItemKey(100))
}

func TestItemLineTotal(t *testing.T) {
	item := NewItem("Eggs", 12, 0.25)
	assert.InDelta(t, 3.0, item.LineTotal(), 0.0001)

	free := NewItem("Coupon item", 3, 0)
	assert.Zero(t, free.LineTotal())
}

func TestNewItemDefaults(t *testing.T) {
	item := NewItem("Milk", 1, 3.49)
	assert.False(t, item.IsBought)
	assert.Zero(t, item.ID)
	assert.Empty(t, item.Key)
	assert.WithinDuration(t, time.Now(), item.CreatedAt, time.Second)
}

func TestReminderTag(t *testing.T) {
	assert.Equal(t, "reminder_7", ReminderTag(7))

	task := NewReminderTask(7, "Milk", time.Now().Add(time.Hour))
	assert.Equal(t, "reminder_7", task.Tag)
	assert.Equal(t, ReminderPending, task.Status)
	assert.True(t, task.IsPending())
	assert.False(t, task.IsDue())
}

func TestReminderIsDue(t *testing.T) {
	past := NewReminderTask(1, "Milk", time.Now().Add(-time.Minute))
	assert.True(t, past.IsDue())

	future := NewReminderTask(1, "Milk", time.Now().Add(time.Minute))
	assert.False(t, future.IsDue())
}

func TestReminderShortID(t *testing.T) {
	task := &ReminderTask{Key: "reminder:a1b2c3d4-e5f6-7890-abcd-ef1234567890"}
	assert.Equal(t, "a1b2c3", task.ShortID())

	// Malformed key falls back to the full key
	short := &ReminderTask{Key: "reminder:ab"}
	assert.Equal(t, "reminder:ab", short.ShortID())
}

func TestDetectChannelType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://discord.com/api/webhooks/123/abc", ChannelTypeDiscord},
		{"https://hooks.slack.com/services/T0/B0/xyz", ChannelTypeSlack},
		{"https://contoso.webhook.office.com/webhookb2/abc", ChannelTypeTeams},
		{"https://example.com/hook", ChannelTypeGeneric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectChannelType(tt.url), tt.url)
	}
}

func TestChannelMaskedURL(t *testing.T) {
	long := NewChannel("phone", ChannelTypeDiscord,
		"https://discord.com/api/webhooks/1234567890/secret-token-value")
	masked := long.MaskedURL()
	assert.NotContains(t, masked, "secret-token-value")
	assert.Contains(t, masked, "***")

	short := NewChannel("home", ChannelTypeGeneric, "https://example.com/h")
	assert.Equal(t, "https://example.com/h", short.MaskedURL())
}

func TestIsValidChannelName(t *testing.T) {
	assert.True(t, IsValidChannelName("phone"))
	assert.True(t, IsValidChannelName("work-laptop_2"))
	assert.False(t, IsValidChannelName(""))
	assert.False(t, IsValidChannelName("-leading-dash"))
	assert.False(t, IsValidChannelName("has spaces"))
}

func TestNotificationBuilders(t *testing.T) {
	n := NewNotification(NotifyReminder, "Grocery Reminder", "Time to buy: Milk").
		WithItem(7).
		WithField("Item", "Milk").
		WithColor(DefaultColorForType(NotifyReminder))

	assert.Equal(t, int64(7), n.ItemID)
	assert.Equal(t, "Milk", n.Fields["Item"])
	assert.Equal(t, ColorWarning, n.Color)
	assert.Equal(t, "Grocery Reminder", n.TypeLabel())
	assert.WithinDuration(t, time.Now(), n.Timestamp, time.Second)
}
