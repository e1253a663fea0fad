package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karimwahba/groclist/internal/config"
	"github.com/karimwahba/groclist/internal/logging"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/storage"
)

// Dispatcher sends notifications to all enabled alert channels. With no
// enabled channels it degrades to a logged no-op rather than an error, so
// reminders can be scheduled before any channel exists.
type Dispatcher struct {
	channelRepo *storage.ChannelRepo
	httpClient  *HTTPClient
	retryQueue  *RetryQueue
	debug       bool
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(channelRepo *storage.ChannelRepo) *Dispatcher {
	return &Dispatcher{
		channelRepo: channelRepo,
		httpClient:  NewHTTPClient(),
	}
}

// SetDebug enables or disables debug output.
func (d *Dispatcher) SetDebug(debug bool) {
	d.debug = debug
}

// SetRetryQueue attaches a retry queue. When set, failed deliveries are
// queued for background retry instead of being lost.
func (d *Dispatcher) SetRetryQueue(q *RetryQueue) {
	d.retryQueue = q
}

// DispatchResult contains the result of dispatching to a single channel.
type DispatchResult struct {
	ChannelName string
	Success     bool
	StatusCode  int
	Duration    time.Duration
	Error       error
}

// SendNotification sends a notification to all enabled channels.
// A nil result means no channels were enabled and nothing was attempted.
func (d *Dispatcher) SendNotification(ctx context.Context, n *model.Notification) []DispatchResult {
	channels, err := d.channelRepo.ListEnabled()
	if err != nil {
		return []DispatchResult{{
			ChannelName: "all",
			Success:     false,
			Error:       fmt.Errorf("failed to list channels: %w", err),
		}}
	}

	if len(channels) == 0 {
		logging.DebugLog("no enabled channels, notification dropped",
			"title", n.Title)
		return nil
	}

	// Send to all channels concurrently
	var wg sync.WaitGroup
	results := make([]DispatchResult, len(channels))

	for i, channel := range channels {
		wg.Add(1)
		go func(idx int, ch *model.Channel) {
			defer wg.Done()
			results[idx] = d.sendToChannel(ctx, n, ch)
		}(i, channel)
	}

	wg.Wait()
	return results
}

// sendToChannel sends a notification to a single channel.
func (d *Dispatcher) sendToChannel(ctx context.Context, n *model.Notification, channel *model.Channel) DispatchResult {
	result := DispatchResult{
		ChannelName: channel.Name,
	}

	formatter := GetFormatter(channel.Type)

	payload, err := formatter.Format(n)
	if err != nil {
		result.Error = fmt.Errorf("failed to format notification: %w", err)
		d.updateChannelStatus(channel.Name, result.Error)
		return result
	}

	sendResult := d.httpClient.Send(ctx, channel.URL, formatter.ContentType(), payload)

	result.StatusCode = sendResult.StatusCode
	result.Duration = sendResult.Duration
	result.Error = sendResult.Error
	result.Success = sendResult.Error == nil

	d.updateChannelStatus(channel.Name, sendResult.Error)

	if sendResult.Error != nil && d.retryQueue != nil {
		d.retryQueue.EnqueueWithError(uuid.New().String(), channel.Name,
			channel.URL, formatter.ContentType(), payload,
			config.Global.RetryQueue.MaxRetries, sendResult.Error)
	}

	return result
}

// updateChannelStatus updates the last used timestamp and error for a channel.
func (d *Dispatcher) updateChannelStatus(name string, err error) {
	// Ignore errors from updating status - it's not critical
	_ = d.channelRepo.UpdateLastUsed(name, err)
}

// SendToSingle sends a notification to a single channel by name.
func (d *Dispatcher) SendToSingle(ctx context.Context, n *model.Notification, channelName string) DispatchResult {
	channel, err := d.channelRepo.Get(channelName)
	if err != nil {
		return DispatchResult{
			ChannelName: channelName,
			Success:     false,
			Error:       fmt.Errorf("channel not found: %w", err),
		}
	}

	return d.sendToChannel(ctx, n, channel)
}

// TestChannel sends a test notification to a specific channel.
func (d *Dispatcher) TestChannel(ctx context.Context, channelName string) DispatchResult {
	testNotification := model.NewNotification(
		model.NotifyTest,
		"Groclist Test",
		"This is a test notification from Groclist. If you see this, your channel is configured correctly!",
	).WithField("Channel", channelName).WithField("Time", time.Now().Format("3:04 PM"))

	return d.SendToSingle(ctx, testNotification, channelName)
}

// HasEnabledChannels returns true if there are any enabled channels.
func (d *Dispatcher) HasEnabledChannels() bool {
	channels, err := d.channelRepo.ListEnabled()
	if err != nil {
		return false
	}
	return len(channels) > 0
}

// CountEnabledChannels returns the number of enabled channels.
func (d *Dispatcher) CountEnabledChannels() int {
	channels, err := d.channelRepo.ListEnabled()
	if err != nil {
		return 0
	}
	return len(channels)
}
