// Package notify provides alert dispatch and formatting for channels.
package notify

import (
	"fmt"

	"github.com/karimwahba/groclist/internal/model"
)

// Formatter formats notifications for a specific channel type.
type Formatter interface {
	// Format converts a notification into the channel-specific payload.
	Format(n *model.Notification) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the payload.
	ContentType() string
}

// GetFormatter returns the appropriate formatter for a channel type.
func GetFormatter(channelType string) Formatter {
	switch channelType {
	case model.ChannelTypeDiscord:
		return &DiscordFormatter{}
	case model.ChannelTypeSlack:
		return &SlackFormatter{}
	case model.ChannelTypeTeams:
		return &TeamsFormatter{}
	case model.ChannelTypeGeneric:
		return &GenericFormatter{}
	default:
		return &GenericFormatter{}
	}
}

// deepLink renders the command that opens the referenced item. Empty when the
// notification carries no item.
func deepLink(n *model.Notification) string {
	if n.ItemID == 0 {
		return ""
	}
	return fmt.Sprintf("groclist show %d", n.ItemID)
}
