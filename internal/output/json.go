package output

import (
	"time"

	"github.com/karimwahba/groclist/internal/calc"
	"github.com/karimwahba/groclist/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ItemOutput represents an item in JSON output.
type ItemOutput struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
	IsBought  bool    `json:"is_bought"`
	CreatedAt string  `json:"created_at"`
}

// NewItemOutput creates an ItemOutput from an Item.
func NewItemOutput(item *model.Item) *ItemOutput {
	return &ItemOutput{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Price:     item.Price,
		LineTotal: item.LineTotal(),
		IsBought:  item.IsBought,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
}

// ItemResponse represents a single-item command output in JSON.
type ItemResponse struct {
	Status string      `json:"status"`
	Item   *ItemOutput `json:"item"`
}

// ItemsResponse represents the list output in JSON.
type ItemsResponse struct {
	Items         []*ItemOutput `json:"items"`
	TotalCount    int           `json:"total_count"`
	BoughtCount   int           `json:"bought_count"`
	TotalCost     float64       `json:"total_cost"`
	RemainingCost float64       `json:"remaining_cost"`
}

// NewItemsResponse creates an ItemsResponse from items.
func NewItemsResponse(items []*model.Item) *ItemsResponse {
	outputs := make([]*ItemOutput, len(items))
	for i, item := range items {
		outputs[i] = NewItemOutput(item)
	}
	return &ItemsResponse{
		Items:         outputs,
		TotalCount:    len(items),
		BoughtCount:   calc.BoughtCount(items),
		TotalCost:     calc.TotalCost(items),
		RemainingCost: calc.RemainingCost(items),
	}
}

// ReminderOutput represents a reminder task in JSON output.
type ReminderOutput struct {
	ID       string `json:"id"`
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Tag      string `json:"tag"`
	FireAt   string `json:"fire_at"`
	Status   string `json:"status"`
	FiredAt  string `json:"fired_at,omitempty"`
}

// NewReminderOutput creates a ReminderOutput from a ReminderTask.
func NewReminderOutput(task *model.ReminderTask) *ReminderOutput {
	out := &ReminderOutput{
		ID:       task.ShortID(),
		ItemID:   task.ItemID,
		ItemName: task.ItemName,
		Tag:      task.Tag,
		FireAt:   task.FireAt.Format(time.RFC3339),
		Status:   task.Status,
	}
	if !task.FiredAt.IsZero() {
		out.FiredAt = task.FiredAt.Format(time.RFC3339)
	}
	return out
}

// ReminderResponse represents a reminder command output in JSON.
type ReminderResponse struct {
	Status   string          `json:"status"`
	Reminder *ReminderOutput `json:"reminder"`
}

// RemindersResponse represents the reminder list output in JSON.
type RemindersResponse struct {
	Reminders []*ReminderOutput `json:"reminders"`
	Count     int               `json:"count"`
}

// NewRemindersResponse creates a RemindersResponse from tasks.
func NewRemindersResponse(tasks []*model.ReminderTask) *RemindersResponse {
	outputs := make([]*ReminderOutput, len(tasks))
	for i, task := range tasks {
		outputs[i] = NewReminderOutput(task)
	}
	return &RemindersResponse{Reminders: outputs, Count: len(tasks)}
}

// ChannelOutput represents an alert channel in JSON output.
type ChannelOutput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Enabled   bool   `json:"enabled"`
	LastUsed  string `json:"last_used,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// NewChannelOutput creates a ChannelOutput from a Channel.
func NewChannelOutput(ch *model.Channel) *ChannelOutput {
	out := &ChannelOutput{
		Name:      ch.Name,
		Type:      ch.Type,
		URL:       ch.MaskedURL(),
		Enabled:   ch.Enabled,
		LastError: ch.LastError,
	}
	if !ch.LastUsed.IsZero() {
		out.LastUsed = ch.LastUsed.Format(time.RFC3339)
	}
	return out
}

// ChannelsResponse represents the channel list output in JSON.
type ChannelsResponse struct {
	Channels []*ChannelOutput `json:"channels"`
	Count    int              `json:"count"`
}

// NewChannelsResponse creates a ChannelsResponse from channels.
func NewChannelsResponse(channels []*model.Channel) *ChannelsResponse {
	outputs := make([]*ChannelOutput, len(channels))
	for i, ch := range channels {
		outputs[i] = NewChannelOutput(ch)
	}
	return &ChannelsResponse{Channels: outputs, Count: len(channels)}
}

// StatusResponse represents a generic status output in JSON.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PrintItem outputs a single item in JSON format.
func (j *JSONFormatter) PrintItem(status string, item *model.Item) error {
	return j.JSON(ItemResponse{Status: status, Item: NewItemOutput(item)})
}

// PrintItems outputs the item list in JSON format.
func (j *JSONFormatter) PrintItems(items []*model.Item) error {
	return j.JSON(NewItemsResponse(items))
}

// PrintReminder outputs a reminder in JSON format.
func (j *JSONFormatter) PrintReminder(status string, task *model.ReminderTask) error {
	return j.JSON(ReminderResponse{Status: status, Reminder: NewReminderOutput(task)})
}

// PrintReminders outputs the reminder list in JSON format.
func (j *JSONFormatter) PrintReminders(tasks []*model.ReminderTask) error {
	return j.JSON(NewRemindersResponse(tasks))
}

// PrintChannels outputs the channel list in JSON format.
func (j *JSONFormatter) PrintChannels(channels []*model.Channel) error {
	return j.JSON(NewChannelsResponse(channels))
}

// PrintStatus outputs a generic status in JSON format.
func (j *JSONFormatter) PrintStatus(status, message string) error {
	return j.JSON(StatusResponse{Status: status, Message: message})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{Status: status, Error: errMsg, Message: message})
}
