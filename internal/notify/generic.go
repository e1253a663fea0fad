package notify

import (
	"encoding/json"

	"github.com/karimwahba/groclist/internal/model"
)

// GenericFormatter formats notifications for generic webhooks. The payload
// mirrors the push message shape: title, body, and the optional item id.
type GenericFormatter struct{}

// genericPayload is the payload for generic webhooks.
type genericPayload struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	ItemID    int64             `json:"itemId,omitempty"`
	Link      string            `json:"link,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp string            `json:"timestamp"`
	Color     int               `json:"color,omitempty"`
}

// Format converts a notification to a generic webhook format.
func (f *GenericFormatter) Format(n *model.Notification) ([]byte, error) {
	color := n.Color
	if color == 0 {
		color = model.DefaultColorForType(n.Type)
	}

	payload := genericPayload{
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		ItemID:    n.ItemID,
		Link:      deepLink(n),
		Fields:    n.Fields,
		Timestamp: n.Timestamp.Format("2006-01-02T15:04:05Z"),
		Color:     color,
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}
