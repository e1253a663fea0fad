package scheduler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/karimwahba/groclist/internal/errors"
	"github.com/karimwahba/groclist/internal/model"
	"github.com/karimwahba/groclist/internal/storage"
)

type testRepos struct {
	db        *storage.DB
	items     *storage.ItemRepo
	reminders *storage.ReminderRepo
	channels  *storage.ChannelRepo
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &testRepos{
		db:        db,
		items:     storage.NewItemRepo(db),
		reminders: storage.NewReminderRepo(db),
		channels:  storage.NewChannelRepo(db),
	}
}

func (r *testRepos) addItem(t *testing.T, name string) *model.Item {
	t.Helper()
	item := model.NewItem(name, 1, 2.5)
	require.NoError(t, r.items.Insert(item))
	return item
}

func TestSchedulePastTimeRejected(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")
	planner := NewPlanner(repos.items, repos.reminders, repos.channels)

	now := time.Now()
	_, err := planner.ScheduleAt(item.ID, now.Add(-time.Minute), now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidScheduleTime)

	_, err = planner.ScheduleAt(item.ID, now, now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidScheduleTime)

	// Nothing was persisted
	pending, err := repos.reminders.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestScheduleUnknownItem(t *testing.T) {
	repos := setupRepos(t)
	planner := NewPlanner(repos.items, repos.reminders, repos.channels)

	_, err := planner.Schedule(999, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
}

func TestScheduleCreatesPendingTask(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")
	planner := NewPlanner(repos.items, repos.reminders, repos.channels)

	fireAt := time.Now().Add(time.Hour)
	result, err := planner.Schedule(item.ID, fireAt)
	require.NoError(t, err)

	assert.True(t, result.NoChannels)
	require.NotNil(t, result.Task)
	assert.Equal(t, item.ID, result.Task.ItemID)
	assert.Equal(t, "Milk", result.Task.ItemName)
	assert.Equal(t, model.ReminderTag(item.ID), result.Task.Tag)
	assert.True(t, result.Task.IsPending())

	pending, err := repos.reminders.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.WithinDuration(t, fireAt, pending[0].FireAt, time.Second)
}

func TestScheduleWithEnabledChannel(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Eggs")
	require.NoError(t, repos.channels.Create(
		model.NewChannel("phone", model.ChannelTypeGeneric, "https://example.com/hook")))

	planner := NewPlanner(repos.items, repos.reminders, repos.channels)
	result, err := planner.Schedule(item.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, result.NoChannels)
}

func TestScheduleMultiplePerItem(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")
	planner := NewPlanner(repos.items, repos.reminders, repos.channels)

	_, err := planner.Schedule(item.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = planner.Schedule(item.ID, time.Now().Add(2*time.Hour))
	require.NoError(t, err)

	tasks, err := repos.reminders.ListByTag(model.ReminderTag(item.ID))
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestCancelForItem(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")
	planner := NewPlanner(repos.items, repos.reminders, repos.channels)

	first, err := planner.Schedule(item.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = planner.Schedule(item.ID, time.Now().Add(2*time.Hour))
	require.NoError(t, err)

	// A fired task is history and survives cancellation
	require.NoError(t, repos.reminders.MarkFired(first.Task.Key))

	removed, err := planner.CancelForItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	tasks, err := repos.reminders.ListByTag(model.ReminderTag(item.ID))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.ReminderFired, tasks[0].Status)
}

func TestCheckerFiresDueTask(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")
	require.NoError(t, repos.channels.Create(
		model.NewChannel("phone", model.ChannelTypeGeneric, server.URL)))

	task := model.NewReminderTask(item.ID, item.Name, time.Now().Add(-time.Minute))
	require.NoError(t, repos.reminders.Create(task))

	checker := NewReminderChecker(repos.reminders, repos.channels)
	checker.Check()

	assert.Equal(t, int32(1), received.Load())

	fired, err := repos.reminders.Get(task.Key)
	require.NoError(t, err)
	assert.Equal(t, model.ReminderFired, fired.Status)
	assert.False(t, fired.FiredAt.IsZero())

	// Second check must not fire again
	checker.Check()
	assert.Equal(t, int32(1), received.Load())
}

func TestCheckerIgnoresFutureTasks(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")

	task := model.NewReminderTask(item.ID, item.Name, time.Now().Add(time.Hour))
	require.NoError(t, repos.reminders.Create(task))

	checker := NewReminderChecker(repos.reminders, repos.channels)
	checker.Check()

	got, err := repos.reminders.Get(task.Key)
	require.NoError(t, err)
	assert.True(t, got.IsPending())
}

func TestCheckerFiresWithoutChannels(t *testing.T) {
	repos := setupRepos(t)
	item := repos.addItem(t, "Milk")

	task := model.NewReminderTask(item.ID, item.Name, time.Now().Add(-time.Minute))
	require.NoError(t, repos.reminders.Create(task))

	checker := NewReminderChecker(repos.reminders, repos.channels)
	checker.Check()

	// Task is consumed even though nothing could be delivered
	got, err := repos.reminders.Get(task.Key)
	require.NoError(t, err)
	assert.Equal(t, model.ReminderFired, got.Status)
}

func TestBuildReminderNotification(t *testing.T) {
	task := model.NewReminderTask(7, "Milk", time.Now().Add(time.Hour))
	n := buildReminderNotification(task)

	assert.Equal(t, model.NotifyReminder, n.Type)
	assert.Equal(t, "Grocery Reminder", n.Title)
	assert.Contains(t, n.Body, "Milk")
	assert.Equal(t, int64(7), n.ItemID)
}

func TestSchedulerStartStop(t *testing.T) {
	repos := setupRepos(t)

	s := NewScheduler(repos.db)
	s.SetReminderChecker(NewReminderChecker(repos.reminders, repos.channels))
	require.NoError(t, s.Start())

	assert.NotEmpty(t, s.Entries())
	assert.False(t, s.NextRun().IsZero())

	s.Stop()
}
