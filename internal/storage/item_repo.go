package storage

import (
	"github.com/karimwahba/groclist/internal/model"
)

// ItemRepo provides operations over the grocery item collection. Validation
// of quantity and price is the caller's responsibility; the repo persists
// whatever it is handed.
type ItemRepo struct {
	db *DB
}

// NewItemRepo creates a new item repository.
func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Insert stores a new item, assigning a fresh unique id. Any id already set
// on the item is ignored. The id and key fields are populated on return.
func (r *ItemRepo) Insert(item *model.Item) error {
	return r.db.SetWithSequence(model.KeyItemSeq, item, func(id int64) {
		item.ID = id
		item.Key = model.GenerateItemKey(id)
	})
}

// Get retrieves an item by id. Returns ErrKeyNotFound when absent; callers
// holding a stale id should refresh their view of the list.
func (r *ItemRepo) Get(id int64) (*model.Item, error) {
	item := &model.Item{}
	if err := r.db.Get(model.GenerateItemKey(id), item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update replaces the full record at item.ID. Updating an id that no longer
// exists fails with ErrKeyNotFound rather than silently recreating the
// record, so a stale view cannot resurrect a deleted item.
func (r *ItemRepo) Update(item *model.Item) error {
	key := model.GenerateItemKey(item.ID)
	exists, err := r.db.Exists(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrKeyNotFound
	}
	item.Key = key
	return r.db.Set(item)
}

// Delete removes the item with the given id. No-op if absent.
func (r *ItemRepo) Delete(id int64) error {
	return r.db.Delete(model.GenerateItemKey(id))
}

// List retrieves all items ordered by id descending, so the most recently
// created item comes first.
func (r *ItemRepo) List() ([]*model.Item, error) {
	return GetAllByPrefixDesc(r.db, model.PrefixItem+":", func() *model.Item {
		return &model.Item{}
	})
}

// SetBought sets only the bought flag, leaving other fields untouched.
// No-op if the id is absent.
func (r *ItemRepo) SetBought(id int64, state bool) error {
	item, err := r.Get(id)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil
		}
		return err
	}

	item.IsBought = state
	return r.db.Set(item)
}

// TotalCost returns the sum of quantity*price over all items, 0 when the
// collection is empty.
func (r *ItemRepo) TotalCost() (float64, error) {
	items, err := r.List()
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total, nil
}

// Exists checks if an item exists.
func (r *ItemRepo) Exists(id int64) (bool, error) {
	return r.db.Exists(model.GenerateItemKey(id))
}
