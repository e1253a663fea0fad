package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/karimwahba/groclist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		err = db.Close()
		assert.NoError(t, err)
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.NotNil(t, db)
		db.Close()
	})
}

func TestDBPath(t *testing.T) {
	db := setupTestDB(t)

	// In-memory DB has empty path
	assert.Equal(t, "", db.Path())
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "groclist")
	assert.Contains(t, path, "db")
}

// =============================================================================
// ItemRepo Tests
// =============================================================================

func TestItemRepoInsertAssignsID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Apple", 2, 1.5)
	err := repo.Insert(item)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.NotEmpty(t, item.Key)

	second := model.NewItem("Banana", 3, 0.5)
	err = repo.Insert(second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestItemRepoInsertIgnoresCallerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Apple", 2, 1.5)
	item.ID = 999
	err := repo.Insert(item)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
}

func TestItemRepoRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Milk", 2, 3.25)
	require.NoError(t, repo.Insert(item))

	got, err := repo.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, "Milk", got.Name)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 3.25, got.Price)
	assert.False(t, got.IsBought)
}

func TestItemRepoGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	_, err := repo.Get(42)
	assert.Error(t, err)
	assert.True(t, IsErrKeyNotFound(err))
}

func TestItemRepoUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Eggs", 1, 4.0)
	require.NoError(t, repo.Insert(item))

	item.Quantity = 2
	item.Price = 3.5
	require.NoError(t, repo.Update(item))

	got, err := repo.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 3.5, got.Price)
}

func TestItemRepoUpdateMissingFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Ghost", 1, 1.0)
	item.ID = 7
	err := repo.Update(item)
	assert.Error(t, err)
	assert.True(t, IsErrKeyNotFound(err))
}

func TestItemRepoDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Bread", 1, 2.0)
	require.NoError(t, repo.Insert(item))
	require.NoError(t, repo.Delete(item.ID))

	_, err := repo.Get(item.ID)
	assert.True(t, IsErrKeyNotFound(err))
}

func TestItemRepoDeleteAbsentIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Bread", 1, 2.0)
	require.NoError(t, repo.Insert(item))

	err := repo.Delete(999)
	assert.NoError(t, err)

	items, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItemRepoListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	for i := 1; i <= 3; i++ {
		item := model.NewItem(fmt.Sprintf("item-%d", i), i, float64(i))
		require.NoError(t, repo.Insert(item))
	}

	items, err := repo.List()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(1), items[2].ID)
}

func TestItemRepoListEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	items, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepoSetBought(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Cheese", 1, 5.0)
	require.NoError(t, repo.Insert(item))

	require.NoError(t, repo.SetBought(item.ID, true))

	got, err := repo.Get(item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBought)
	// Other fields untouched
	assert.Equal(t, "Cheese", got.Name)
	assert.Equal(t, 1, got.Quantity)
}

func TestItemRepoSetBoughtIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	item := model.NewItem("Cheese", 1, 5.0)
	require.NoError(t, repo.Insert(item))

	require.NoError(t, repo.SetBought(item.ID, true))
	require.NoError(t, repo.SetBought(item.ID, true))

	items, err := repo.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsBought)
}

func TestItemRepoSetBoughtAbsentIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	err := repo.SetBought(123, true)
	assert.NoError(t, err)
}

func TestItemRepoTotalCost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	t.Run("empty", func(t *testing.T) {
		total, err := repo.TotalCost()
		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("sums_quantity_times_price", func(t *testing.T) {
		require.NoError(t, repo.Insert(model.NewItem("Apple", 2, 1.5)))
		require.NoError(t, repo.Insert(model.NewItem("Banana", 3, 0.5)))

		total, err := repo.TotalCost()
		require.NoError(t, err)
		assert.InDelta(t, 4.5, total, 1e-9)
	})
}

func TestItemIDsNotReusedAfterDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepo(db)

	first := model.NewItem("Apple", 1, 1.0)
	require.NoError(t, repo.Insert(first))
	require.NoError(t, repo.Delete(first.ID))

	second := model.NewItem("Banana", 1, 1.0)
	require.NoError(t, repo.Insert(second))
	assert.Greater(t, second.ID, first.ID)
}

// =============================================================================
// ReminderRepo Tests
// =============================================================================

func TestReminderRepoCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepo(db)

	task := model.NewReminderTask(1, "Apple", time.Now().Add(time.Hour))
	err := repo.Create(task)
	require.NoError(t, err)
	assert.NotEmpty(t, task.Key)
	assert.Equal(t, model.ReminderPending, task.Status)
	assert.Equal(t, "reminder_1", task.Tag)
}

func TestReminderRepoListPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepo(db)

	pending := model.NewReminderTask(1, "Apple", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(pending))

	fired := model.NewReminderTask(2, "Banana", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(fired))
	require.NoError(t, repo.MarkFired(fired.Key))

	got, err := repo.ListPending()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.Key, got[0].Key)
}

func TestReminderRepoListDue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepo(db)

	due := model.NewReminderTask(1, "Apple", time.Now().Add(-time.Minute))
	require.NoError(t, repo.Create(due))

	future := model.NewReminderTask(2, "Banana", time.Now().Add(time.Hour))
	require.NoError(t, repo.Create(future))

	got, err := repo.ListDue()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.Key, got[0].Key)
}

func TestReminderRepoMarkFired(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepo(db)

	task := model.NewReminderTask(1, "Apple", time.Now().Add(-time.Minute))
	require.NoError(t, repo.Create(task))
	require.NoError(t, repo.MarkFired(task.Key))

	got, err := repo.Get(task.Key)
	require.NoError(t, err)
	assert.Equal(t, model.ReminderFired, got.Status)
	assert.False(t, got.FiredAt.IsZero())
	assert.False(t, got.IsPending())
}

func TestReminderRepoMultiplePerItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReminderRepo(db)

	// No dedup: two tasks for the same item coexist.
	require.NoError(t, repo.Create(model.NewReminderTask(1, "Apple", time.Now().Add(time.Hour))))
	require.NoError(t, repo.Create(model.NewReminderTask(1, "Apple", time.Now().Add(2*time.Hour))))

	tasks, err := repo.ListByTag(model.ReminderTag(1))
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

// =============================================================================
// ChannelRepo Tests
// =============================================================================

func TestChannelRepoCreateGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChannelRepo(db)

	channel := model.NewChannel("phone", model.ChannelTypeGeneric, "https://example.com/hook")
	require.NoError(t, repo.Create(channel))

	got, err := repo.Get("phone")
	require.NoError(t, err)
	assert.Equal(t, "phone", got.Name)
	assert.True(t, got.Enabled)
}

func TestChannelRepoListEnabled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChannelRepo(db)

	on := model.NewChannel("on", model.ChannelTypeGeneric, "https://example.com/a")
	require.NoError(t, repo.Create(on))

	off := model.NewChannel("off", model.ChannelTypeGeneric, "https://example.com/b")
	off.Enabled = false
	require.NoError(t, repo.Create(off))

	enabled, err := repo.ListEnabled()
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "on", enabled[0].Name)
}

func TestChannelRepoUpdateLastUsed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChannelRepo(db)

	channel := model.NewChannel("phone", model.ChannelTypeGeneric, "https://example.com/hook")
	require.NoError(t, repo.Create(channel))

	require.NoError(t, repo.UpdateLastUsed("phone", fmt.Errorf("boom")))

	got, err := repo.Get("phone")
	require.NoError(t, err)
	assert.Equal(t, "boom", got.LastError)
	assert.False(t, got.LastUsed.IsZero())
}
