package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/karimwahba/groclist/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
		{"small_width", 50, 5},
		{"large_width", 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.NotEmpty(t, bar)
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar10 := ProgressBar(50, 10)
	bar20 := ProgressBar(50, 20)

	// Longer width should produce longer bar
	assert.Greater(t, len(bar20), len(bar10))
}

func TestNewListComponent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		lc := NewListComponent(nil, 0, 80)
		assert.NotNil(t, lc)
		assert.Nil(t, lc.Items)
		assert.Equal(t, 80, lc.Width)
	})

	t.Run("with_items", func(t *testing.T) {
		items := []*model.Item{
			{ID: 1, Name: "Milk", Quantity: 1, Price: 3.50},
			{ID: 2, Name: "Bread", Quantity: 2, Price: 2.25},
		}
		lc := NewListComponent(items, 1, 80)
		assert.Equal(t, 2, len(lc.Items))
		assert.Equal(t, 1, lc.Cursor)
	})
}

func TestListComponentView(t *testing.T) {
	t.Run("empty_list", func(t *testing.T) {
		lc := NewListComponent(nil, 0, 80)
		view := lc.View()

		assert.Contains(t, view, "Groceries")
		assert.Contains(t, view, "List is empty")
	})

	t.Run("with_items", func(t *testing.T) {
		items := []*model.Item{
			{ID: 1, Name: "Milk", Quantity: 1, Price: 3.50},
			{ID: 2, Name: "Eggs", Quantity: 12, Price: 0.25, IsBought: true},
		}
		lc := NewListComponent(items, 0, 80)
		view := lc.View()

		assert.Contains(t, view, "Milk")
		assert.Contains(t, view, "Eggs")
		assert.Contains(t, view, "$3.50")
		// Line total, not unit price
		assert.Contains(t, view, "$3.00")
	})

	t.Run("cursor_marker", func(t *testing.T) {
		items := []*model.Item{
			{ID: 1, Name: "Milk", Quantity: 1, Price: 3.50},
		}
		lc := NewListComponent(items, 0, 80)
		view := lc.View()

		assert.Contains(t, view, ">")
	})
}

func TestSummaryComponentView(t *testing.T) {
	t.Run("empty_list", func(t *testing.T) {
		sc := NewSummaryComponent(nil, 80)
		view := sc.View()

		assert.Contains(t, view, "Summary")
		assert.Contains(t, view, "0 / 0 bought")
	})

	t.Run("partial_progress", func(t *testing.T) {
		items := []*model.Item{
			{ID: 1, Name: "Milk", Quantity: 1, Price: 4.00, IsBought: true},
			{ID: 2, Name: "Bread", Quantity: 1, Price: 6.00},
		}
		sc := NewSummaryComponent(items, 80)
		view := sc.View()

		assert.Contains(t, view, "1 / 2 bought (50%)")
		assert.Contains(t, view, "$10.00")
		assert.Contains(t, view, "$6.00")
	})

	t.Run("all_bought", func(t *testing.T) {
		items := []*model.Item{
			{ID: 1, Name: "Milk", Quantity: 1, Price: 4.00, IsBought: true},
		}
		sc := NewSummaryComponent(items, 80)
		view := sc.View()

		assert.Contains(t, view, "All bought")
	})

	t.Run("small_width", func(t *testing.T) {
		sc := NewSummaryComponent(nil, 15)
		assert.NotEmpty(t, sc.View())
	})
}

func TestRemindersComponentView(t *testing.T) {
	reminders := []*model.ReminderTask{
		{
			Key:      "reminder:aaaaaa-1111",
			ItemID:   1,
			ItemName: "Milk",
			FireAt:   time.Now().Add(2 * time.Hour),
			Status:   model.ReminderPending,
		},
	}
	rc := NewRemindersComponent(reminders, 80)
	view := rc.View()

	assert.Contains(t, view, "Upcoming Reminders")
	assert.Contains(t, view, "Milk")
}

func TestBoardModelNavigation(t *testing.T) {
	m := NewBoardModel(BoardConfig{})
	m.items = []*model.Item{
		{ID: 1, Name: "Milk"},
		{ID: 2, Name: "Bread"},
		{ID: 3, Name: "Eggs"},
	}

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "Milk", m.selectedItem().Name)

	m.cursor = 2
	assert.Equal(t, "Eggs", m.selectedItem().Name)

	m.cursor = 5
	assert.Nil(t, m.selectedItem())
}

func TestHelpBar(t *testing.T) {
	bar := HelpBar()

	assert.Contains(t, bar, "toggle bought")
	assert.Contains(t, bar, "delete")
	assert.Contains(t, bar, "refresh")
	assert.Contains(t, bar, "quit")
}

func TestColorConstants(t *testing.T) {
	assert.NotEmpty(t, ColorPrimary)
	assert.NotEmpty(t, ColorSecondary)
	assert.NotEmpty(t, ColorMuted)
	assert.NotEmpty(t, ColorWarning)
	assert.NotEmpty(t, ColorError)
	assert.NotEmpty(t, ColorSuccess)
	assert.NotEmpty(t, ColorPrice)
	assert.NotEmpty(t, ColorBorder)
}
