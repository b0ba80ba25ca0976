package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/api"
	"github.com/hy4ri/daycal/internal/task"
)

// Remote is a store backed by the remote task service. The service has no
// push channel, so the task set is polled and a snapshot is published only
// when it changed. Every successful write triggers an immediate refresh.
type Remote struct {
	client   *api.Client
	interval time.Duration
	hub      *Hub
	log      *zap.SugaredLogger

	mu      sync.Mutex
	started bool
	last    []task.Task
	refresh chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRemote creates a store that polls client every interval.
func NewRemote(client *api.Client, interval time.Duration, log *zap.SugaredLogger) *Remote {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Remote{
		client:   client,
		interval: interval,
		hub:      NewHub(),
		log:      log,
		refresh:  make(chan struct{}, 1),
	}
}

// Create implements Store.
func (r *Remote) Create(ctx context.Context, fields task.Fields) (task.Task, error) {
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	created, err := r.client.CreateTask(ctx, api.NewTaskInput(fields))
	if err != nil {
		return task.Task{}, mapAPIError(err)
	}

	r.requestRefresh()
	return created.ToTask(), nil
}

// Update implements Store.
func (r *Remote) Update(ctx context.Context, id string, fields task.Fields) (task.Task, error) {
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	updated, err := r.client.UpdateTask(ctx, id, api.NewTaskInput(fields))
	if err != nil {
		return task.Task{}, mapAPIError(err)
	}

	r.requestRefresh()
	return updated.ToTask(), nil
}

// Delete implements Store.
func (r *Remote) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteTask(ctx, id); err != nil {
		return mapAPIError(err)
	}

	r.requestRefresh()
	return nil
}

// Subscribe implements Store. The first subscriber starts the poll loop
// after fetching the initial snapshot.
func (r *Remote) Subscribe(ctx context.Context, fn func(Snapshot)) (*Subscription, error) {
	if err := r.start(ctx); err != nil {
		return nil, err
	}
	return r.hub.Subscribe(ctx, fn)
}

// Close implements Store.
func (r *Remote) Close() error {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
	r.hub.Close()
	return nil
}

// Refresh fetches the task set now and publishes it if it changed.
func (r *Remote) Refresh(ctx context.Context) error {
	tasks, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last != nil && reflect.DeepEqual(r.last, tasks) {
		return nil
	}
	r.last = tasks
	r.hub.Publish(tasks)
	return nil
}

func (r *Remote) start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	if err := r.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	r.started = true

	loopCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.poll(loopCtx)
	return nil
}

func (r *Remote) poll(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.refresh:
		}

		if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
			r.log.Warnw("failed to refresh tasks", "error", err)
		}
	}
}

func (r *Remote) requestRefresh() {
	select {
	case r.refresh <- struct{}{}:
	default:
	}
}

func (r *Remote) fetch(ctx context.Context) ([]task.Task, error) {
	records, err := r.client.GetTasks(ctx)
	if err != nil {
		return nil, mapAPIError(err)
	}

	tasks := make([]task.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, rec.ToTask())
	}
	return tasks, nil
}

// mapAPIError turns service 404s into ErrNotFound.
func mapAPIError(err error) error {
	if apiErr, ok := api.IsAPIError(err); ok && apiErr.IsNotFound() {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
