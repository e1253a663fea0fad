// Package calc provides pure aggregation functions over item collections.
// No I/O, no validation: negative quantities or prices pass straight
// through, since input checking happens at the CLI boundary.
package calc

import (
	"github.com/karimwahba/groclist/internal/model"
)

// TotalCost returns the sum of quantity*price over all items.
func TotalCost(items []*model.Item) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// RemainingCost returns the sum of quantity*price over items not yet bought.
func RemainingCost(items []*model.Item) float64 {
	var total float64
	for _, item := range items {
		if !item.IsBought {
			total += item.LineTotal()
		}
	}
	return total
}

// BoughtCount returns the number of items marked bought.
func BoughtCount(items []*model.Item) int {
	var count int
	for _, item := range items {
		if item.IsBought {
			count++
		}
	}
	return count
}
