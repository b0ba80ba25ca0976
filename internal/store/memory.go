package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/task"
)

// Memory is an in-process store. Tasks are kept in creation order.
type Memory struct {
	mu     sync.Mutex
	owner  string
	tasks  []task.Task
	hub    *Hub
	log    *zap.SugaredLogger
	now    func() time.Time
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory(owner string, log *zap.SugaredLogger) *Memory {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	m := &Memory{
		owner: owner,
		hub:   NewHub(),
		log:   log,
		now:   time.Now,
	}
	m.hub.Publish(nil)
	return m
}

// Create implements Store.
func (m *Memory) Create(ctx context.Context, fields task.Fields) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return task.Task{}, ErrClosed
	}

	now := m.now()
	t := task.Task{
		ID:        uuid.New().String(),
		Owner:     m.owner,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    fields,
	}
	m.tasks = append(m.tasks, t)
	m.hub.Publish(m.tasks)

	m.log.Debugw("task created", "id", t.ID, "date", t.Date)
	return t, nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, id string, fields task.Fields) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return task.Task{}, ErrClosed
	}

	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		m.tasks[i].Fields = fields
		m.tasks[i].UpdatedAt = m.now()
		m.hub.Publish(m.tasks)

		m.log.Debugw("task updated", "id", id)
		return m.tasks[i], nil
	}
	return task.Task{}, fmt.Errorf("failed to update task %s: %w", id, ErrNotFound)
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		m.tasks = append(m.tasks[:i:i], m.tasks[i+1:]...)
		m.hub.Publish(m.tasks)

		m.log.Debugw("task deleted", "id", id)
		return nil
	}
	return fmt.Errorf("failed to delete task %s: %w", id, ErrNotFound)
}

// Subscribe implements Store.
func (m *Memory) Subscribe(ctx context.Context, fn func(Snapshot)) (*Subscription, error) {
	return m.hub.Subscribe(ctx, fn)
}

// Close implements Store.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.hub.Close()
	return nil
}
