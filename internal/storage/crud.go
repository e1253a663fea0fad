package storage

import (
	"encoding/json"
	"errors"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/karimwahba/groclist/internal/model"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("key not found")
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Get retrieves a value by key and unmarshals it into v.
func (d *DB) Get(key string, v model.Model) error {
	return d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, v); err != nil {
				return err
			}
			v.SetKey(key)
			return nil
		})
	})
}

// Set stores a model in the database.
func (d *DB) Set(v model.Model) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(v.GetKey()), data)
	})
}

// SetWithSequence bumps the counter stored at seqKey and stores v in the
// same write transaction. bind receives the freshly assigned id and must set
// the model's key before it is marshaled. Ids are monotonically increasing
// and never reused.
func (d *DB) SetWithSequence(seqKey string, v model.Model, bind func(id int64)) error {
	return d.db.Update(func(txn *badger.Txn) error {
		var next int64 = 1

		item, err := txn.Get([]byte(seqKey))
		if err == nil {
			err = item.Value(func(val []byte) error {
				n, perr := strconv.ParseInt(string(val), 10, 64)
				if perr != nil {
					return perr
				}
				next = n + 1
				return nil
			})
			if err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set([]byte(seqKey), []byte(strconv.FormatInt(next, 10))); err != nil {
			return err
		}

		bind(next)

		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return txn.Set([]byte(v.GetKey()), data)
	})
}

// Delete removes a key from the database. Deleting an absent key is a no-op.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Exists checks if a key exists in the database.
func (d *DB) Exists(key string) (bool, error) {
	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// GetAllByPrefix retrieves all values with the given prefix in key order.
func GetAllByPrefix[T model.Model](d *DB, prefix string, newFunc func() T) ([]T, error) {
	return scanPrefix(d, prefix, newFunc, false)
}

// GetAllByPrefixDesc retrieves all values with the given prefix in reverse
// key order. Item keys are zero-padded, so this yields ids descending.
func GetAllByPrefixDesc[T model.Model](d *DB, prefix string, newFunc func() T) ([]T, error) {
	return scanPrefix(d, prefix, newFunc, true)
}

func scanPrefix[T model.Model](d *DB, prefix string, newFunc func() T, reverse bool) ([]T, error) {
	var results []T
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		opts.Reverse = reverse
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		seek := prefixBytes
		if reverse {
			// Seek just past the prefix range so reverse iteration starts
			// at the highest key.
			seek = append(append([]byte{}, prefixBytes...), 0xFF)
		}

		for it.Seek(seek); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				v := newFunc()
				if err := json.Unmarshal(val, v); err != nil {
					return err
				}
				v.SetKey(string(item.Key()))
				results = append(results, v)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return results, err
}
