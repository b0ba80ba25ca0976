package store

import (
	"context"
	"sync"
	"time"

	"github.com/hy4ri/daycal/internal/task"
)

// Hub fans snapshots out to subscribers. Each subscriber is served by its
// own goroutine and only ever sees the newest pending snapshot, so a slow
// subscriber cannot block writers.
type Hub struct {
	mu      sync.Mutex
	subs    map[uint64]*subscriber
	nextID  uint64
	version uint64
	last    *Snapshot
	closed  bool
	now     func() time.Time
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]*subscriber),
		now:  time.Now,
	}
}

// Publish records tasks as the current snapshot and offers it to every subscriber.
func (h *Hub) Publish(tasks []task.Task) Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.version++
	snap := Snapshot{Tasks: cloneTasks(tasks), Version: h.version, At: h.now()}
	h.last = &snap

	if h.closed {
		return snap
	}
	for _, s := range h.subs {
		s.offer(snap)
	}
	return snap
}

// Subscribe registers fn. The latest snapshot, if any, is delivered first.
func (h *Hub) Subscribe(ctx context.Context, fn func(Snapshot)) (*Subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}

	h.nextID++
	id := h.nextID
	s := &subscriber{
		fn:   fn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	h.subs[id] = s
	if h.last != nil {
		s.offer(*h.last)
	}
	h.mu.Unlock()

	go s.run()

	sub := &Subscription{release: func() { h.remove(id) }}
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Unsubscribe()
			case <-s.done:
			}
		}()
	}
	return sub, nil
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close stops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, s := range h.subs {
		s.stop()
		delete(h.subs, id)
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.subs[id]; ok {
		s.stop()
		delete(h.subs, id)
	}
}

// Subscription is a handle to a live subscription.
type Subscription struct {
	once    sync.Once
	release func()
}

// Unsubscribe stops delivery. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.release)
}

type subscriber struct {
	fn       func(Snapshot)
	mu       sync.Mutex
	pending  *Snapshot
	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func (s *subscriber) offer(snap Snapshot) {
	s.mu.Lock()
	s.pending = &snap
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
			s.mu.Lock()
			snap := s.pending
			s.pending = nil
			s.mu.Unlock()

			if snap != nil {
				s.fn(*snap)
			}
		}
	}
}

func (s *subscriber) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
