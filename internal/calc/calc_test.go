package calc

import (
	"testing"

	"github.com/karimwahba/groclist/internal/model"
	"github.com/stretchr/testify/assert"
)

func item(name string, qty int, price float64, bought bool) *model.Item {
	i := model.NewItem(name, qty, price)
	i.IsBought = bought
	return i
}

func TestTotalCost(t *testing.T) {
	items := []*model.Item{
		item("Apple", 2, 1.5, false),
		item("Banana", 3, 0.5, true),
	}

	assert.InDelta(t, 4.5, TotalCost(items), 1e-9)
}

func TestRemainingCost(t *testing.T) {
	items := []*model.Item{
		item("Apple", 2, 1.5, false),
		item("Banana", 3, 0.5, true),
	}

	assert.InDelta(t, 3.0, RemainingCost(items), 1e-9)
}

func TestBoughtCount(t *testing.T) {
	items := []*model.Item{
		item("Apple", 2, 1.5, false),
		item("Banana", 3, 0.5, true),
	}

	assert.Equal(t, 1, BoughtCount(items))
}

func TestEmptyCollection(t *testing.T) {
	assert.Equal(t, 0.0, TotalCost(nil))
	assert.Equal(t, 0.0, RemainingCost(nil))
	assert.Equal(t, 0, BoughtCount(nil))
}

func TestRemainingNeverExceedsTotal(t *testing.T) {
	cases := [][]*model.Item{
		nil,
		{item("a", 1, 1, false)},
		{item("a", 1, 1, true)},
		{item("a", 2, 3, false), item("b", 4, 5, true), item("c", 1, 0, false)},
	}

	for _, items := range cases {
		assert.LessOrEqual(t, RemainingCost(items), TotalCost(items))
	}
}

func TestRemainingEqualsTotalWhenNothingBought(t *testing.T) {
	items := []*model.Item{
		item("a", 2, 3, false),
		item("b", 4, 5, false),
	}

	assert.Equal(t, TotalCost(items), RemainingCost(items))
}

func TestGarbageInGarbageOut(t *testing.T) {
	// Negative values are not filtered; validation is the caller's job.
	items := []*model.Item{item("weird", -2, 3, false)}
	assert.InDelta(t, -6.0, TotalCost(items), 1e-9)
}
