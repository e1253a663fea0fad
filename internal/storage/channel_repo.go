package storage

import (
	"time"

	"github.com/karimwahba/groclist/internal/model"
)

// ChannelRepo provides operations for alert delivery channels.
type ChannelRepo struct {
	db *DB
}

// NewChannelRepo creates a new channel repository.
func NewChannelRepo(db *DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// Create persists a new channel.
func (r *ChannelRepo) Create(channel *model.Channel) error {
	if channel.Key == "" {
		channel.Key = model.GenerateChannelKey(channel.Name)
	}
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = time.Now()
	}
	return r.db.Set(channel)
}

// Get retrieves a channel by name.
func (r *ChannelRepo) Get(name string) (*model.Channel, error) {
	channel := &model.Channel{}
	if err := r.db.Get(model.GenerateChannelKey(name), channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// List retrieves all channels.
func (r *ChannelRepo) List() ([]*model.Channel, error) {
	return GetAllByPrefix(r.db, model.PrefixChannel+":", func() *model.Channel {
		return &model.Channel{}
	})
}

// ListEnabled retrieves all enabled channels.
func (r *ChannelRepo) ListEnabled() ([]*model.Channel, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var enabled []*model.Channel
	for _, channel := range all {
		if channel.Enabled {
			enabled = append(enabled, channel)
		}
	}
	return enabled, nil
}

// Update updates an existing channel.
func (r *ChannelRepo) Update(channel *model.Channel) error {
	return r.db.Set(channel)
}

// Delete removes a channel by name.
func (r *ChannelRepo) Delete(name string) error {
	return r.db.Delete(model.GenerateChannelKey(name))
}

// UpdateLastUsed records the last delivery attempt for a channel.
func (r *ChannelRepo) UpdateLastUsed(name string, sendErr error) error {
	channel, err := r.Get(name)
	if err != nil {
		return err
	}

	channel.LastUsed = time.Now()
	if sendErr != nil {
		channel.LastError = sendErr.Error()
	} else {
		channel.LastError = ""
	}

	return r.db.Set(channel)
}

// Exists checks if a channel exists.
func (r *ChannelRepo) Exists(name string) (bool, error) {
	return r.db.Exists(model.GenerateChannelKey(name))
}
