package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/store"
	"github.com/hy4ri/daycal/internal/task"
)

// EveryMinute fires at second zero of every minute.
const EveryMinute = "0 * * * * *"

// Scheduler keeps the latest task snapshot and checks it for due
// reminders on a cron schedule.
type Scheduler struct {
	store      store.Store
	dispatcher *Dispatcher
	cron       *cron.Cron
	log        *zap.SugaredLogger
	now        func() time.Time

	mu    sync.Mutex
	tasks []task.Task
}

// NewScheduler wires a dispatcher to st.
func NewScheduler(st store.Store, d *Dispatcher, loc *time.Location, log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		store:      st,
		dispatcher: d,
		cron:       cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		log:        log,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	sub, err := s.store.Subscribe(ctx, s.update)
	if err != nil {
		return fmt.Errorf("failed to subscribe to tasks: %w", err)
	}
	defer sub.Unsubscribe()

	if _, err := s.cron.AddFunc(EveryMinute, s.Tick); err != nil {
		return fmt.Errorf("failed to schedule reminder check: %w", err)
	}
	s.cron.Start()
	s.log.Infow("reminder scheduler started", "schedule", EveryMinute)

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
	s.log.Infow("reminder scheduler stopped")
	return nil
}

// Tick checks the current snapshot once.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	tasks := s.tasks
	s.mu.Unlock()

	s.dispatcher.Dispatch(tasks, s.now())
}

func (s *Scheduler) update(snap store.Snapshot) {
	s.mu.Lock()
	s.tasks = snap.Tasks
	s.mu.Unlock()
	s.log.Debugw("tasks updated", "count", len(snap.Tasks), "version", snap.Version)
}
