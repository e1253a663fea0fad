package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Channel type constants.
const (
	ChannelTypeDiscord = "discord"
	ChannelTypeSlack   = "slack"
	ChannelTypeTeams   = "teams"
	ChannelTypeGeneric = "generic"
)

// Channel represents an alert delivery endpoint. Having at least one enabled
// channel is what "notification permission granted" means here: without one,
// dispatch degrades to a logged no-op and scheduling is still allowed.
type Channel struct {
	Key       string    `json:"key"`
	Name      string    `json:"name" validate:"required,max=50"`
	Type      string    `json:"type" validate:"required,oneof=discord slack teams generic"`
	URL       string    `json:"url" validate:"required,url"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	LastUsed  time.Time `json:"last_used,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// SetKey sets the database key for this channel.
func (c *Channel) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this channel.
func (c *Channel) GetKey() string {
	return c.Key
}

// MaskedURL returns the URL with sensitive parts masked.
func (c *Channel) MaskedURL() string {
	if len(c.URL) > 40 {
		return c.URL[:30] + "***"
	}
	return c.URL
}

// GenerateChannelKey generates a database key for a channel.
func GenerateChannelKey(name string) string {
	return fmt.Sprintf("%s:%s", PrefixChannel, name)
}

// NewChannel creates a new enabled channel.
func NewChannel(name, channelType, url string) *Channel {
	return &Channel{
		Key:       GenerateChannelKey(name),
		Name:      name,
		Type:      channelType,
		URL:       url,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
}

// ValidChannelTypes returns the list of valid channel types.
func ValidChannelTypes() []string {
	return []string{ChannelTypeDiscord, ChannelTypeSlack, ChannelTypeTeams, ChannelTypeGeneric}
}

// IsValidChannelType checks if a type is valid.
func IsValidChannelType(t string) bool {
	for _, valid := range ValidChannelTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

// channelNameRegex validates channel names (alphanumeric, dash, underscore).
var channelNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// IsValidChannelName checks if a channel name is valid.
func IsValidChannelName(name string) bool {
	if len(name) == 0 || len(name) > 50 {
		return false
	}
	return channelNameRegex.MatchString(name)
}

// DetectChannelType attempts to detect the channel type from the URL.
func DetectChannelType(url string) string {
	urlLower := strings.ToLower(url)

	switch {
	case strings.Contains(urlLower, "discord.com/api/webhooks"):
		return ChannelTypeDiscord
	case strings.Contains(urlLower, "hooks.slack.com"):
		return ChannelTypeSlack
	case strings.Contains(urlLower, "webhook.office.com"):
		return ChannelTypeTeams
	default:
		return ChannelTypeGeneric
	}
}
