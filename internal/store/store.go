// Package store defines the task store contract and its implementations.
// A store owns the task set: the UI never edits tasks in place, it issues
// writes and waits for the next snapshot.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hy4ri/daycal/internal/task"
)

var (
	// ErrNotFound is returned when a task id is unknown to the store.
	ErrNotFound = errors.New("task not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// Snapshot is the full task set at a point in time. Snapshots are immutable:
// receivers must not modify the slice.
type Snapshot struct {
	Tasks   []task.Task
	Version uint64
	At      time.Time
}

// Store is the task data access interface.
type Store interface {
	// Create stores a new task built from fields and returns it with its id.
	Create(ctx context.Context, fields task.Fields) (task.Task, error)

	// Update overwrites the editable fields of a task.
	Update(ctx context.Context, id string, fields task.Fields) (task.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id string) error

	// Subscribe calls fn with the current snapshot and again after every
	// change, until ctx is done or the subscription is released.
	Subscribe(ctx context.Context, fn func(Snapshot)) (*Subscription, error)

	// Close releases the store and all subscriptions.
	Close() error
}

// prepare normalizes and validates fields before a write.
func prepare(fields task.Fields) (task.Fields, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return task.Fields{}, err
	}
	return fields, nil
}

// cloneTasks deep-copies tasks so snapshots never share reminder slices.
func cloneTasks(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		t.ReminderTimes = append([]string(nil), t.ReminderTimes...)
		out[i] = t
	}
	return out
}
