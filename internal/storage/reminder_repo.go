package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/karimwahba/groclist/internal/model"
)

// ReminderRepo provides operations for the durable reminder task queue.
type ReminderRepo struct {
	db *DB
}

// NewReminderRepo creates a new reminder task repository.
func NewReminderRepo(db *DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

// Create persists a new reminder task with a generated key. Multiple tasks
// for the same item may coexist; there is no dedup.
func (r *ReminderRepo) Create(task *model.ReminderTask) error {
	if task.Key == "" {
		task.Key = model.GenerateReminderKey(uuid.New().String())
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	if task.Status == "" {
		task.Status = model.ReminderPending
	}
	return r.db.Set(task)
}

// Get retrieves a reminder task by key.
func (r *ReminderRepo) Get(key string) (*model.ReminderTask, error) {
	task := &model.ReminderTask{}
	if err := r.db.Get(key, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List retrieves all reminder tasks.
func (r *ReminderRepo) List() ([]*model.ReminderTask, error) {
	return GetAllByPrefix(r.db, model.PrefixReminder+":", func() *model.ReminderTask {
		return &model.ReminderTask{}
	})
}

// ListPending retrieves all tasks that have not fired yet.
func (r *ReminderRepo) ListPending() ([]*model.ReminderTask, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var pending []*model.ReminderTask
	for _, task := range all {
		if task.IsPending() {
			pending = append(pending, task)
		}
	}
	return pending, nil
}

// ListDue retrieves pending tasks whose fire time has passed.
func (r *ReminderRepo) ListDue() ([]*model.ReminderTask, error) {
	pending, err := r.ListPending()
	if err != nil {
		return nil, err
	}

	var due []*model.ReminderTask
	for _, task := range pending {
		if task.IsDue() {
			due = append(due, task)
		}
	}
	return due, nil
}

// ListByTag retrieves all tasks carrying the given correlation tag. This is
// the hook a future cancel operation would use to drop every pending task
// for one item.
func (r *ReminderRepo) ListByTag(tag string) ([]*model.ReminderTask, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var result []*model.ReminderTask
	for _, task := range all {
		if task.Tag == tag {
			result = append(result, task)
		}
	}
	return result, nil
}

// MarkFired transitions a task to the terminal fired state.
func (r *ReminderRepo) MarkFired(key string) error {
	task, err := r.Get(key)
	if err != nil {
		return err
	}

	task.Status = model.ReminderFired
	task.FiredAt = time.Now()

	return r.db.Set(task)
}

// Delete removes a reminder task by key.
func (r *ReminderRepo) Delete(key string) error {
	return r.db.Delete(key)
}

// Exists checks if a reminder task exists.
func (r *ReminderRepo) Exists(key string) (bool, error) {
	return r.db.Exists(key)
}
