package model

import (
	"fmt"
	"time"
)

// Item represents a single grocery list entry.
type Item struct {
	Key       string    `json:"key"`
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=128"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"gte=0"`
	IsBought  bool      `json:"is_bought"`
	CreatedAt time.Time `json:"created_at"`
}

// SetKey sets the database key for this item.
func (i *Item) SetKey(key string) {
	i.Key = key
}

// GetKey returns the database key for this item.
func (i *Item) GetKey() string {
	return i.Key
}

// LineTotal returns quantity * unit price. Never stored, always computed.
func (i *Item) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}

// GenerateItemKey generates a database key for an item id. Keys are
// zero-padded so that lexicographic key order matches numeric id order,
// which lets the store list items by id with a plain prefix iteration.
func GenerateItemKey(id int64) string {
	return fmt.Sprintf("%s:%012d", PrefixItem, id)
}

// NewItem creates a new, not yet persisted item. The id is assigned by the
// store on insert.
func NewItem(name string, quantity int, price float64) *Item {
	return &Item{
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		IsBought:  false,
		CreatedAt: time.Now(),
	}
}
