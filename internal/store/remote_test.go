package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hy4ri/daycal/internal/api"
	"github.com/hy4ri/daycal/internal/task"
)

// fakeService is a minimal in-memory rendition of the task service.
type fakeService struct {
	mu     sync.Mutex
	tasks  map[string]api.Task
	nextID int
	gets   int
}

func newFakeService() *fakeService {
	return &fakeService{tasks: make(map[string]api.Task)}
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/tasks/")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/tasks":
		f.gets++
		results := make([]api.Task, 0, len(f.tasks))
		for _, t := range f.tasks {
			results = append(results, t)
		}
		sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
		json.NewEncoder(w).Encode(api.PaginatedResponse[api.Task]{Results: results})

	case r.Method == http.MethodPost && r.URL.Path == "/tasks":
		var in api.TaskInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.nextID++
		t := fromInput(strconv.Itoa(f.nextID), in)
		f.tasks[t.ID] = t
		json.NewEncoder(w).Encode(t)

	case r.Method == http.MethodPost:
		if _, ok := f.tasks[id]; !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		var in api.TaskInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t := fromInput(id, in)
		f.tasks[id] = t
		json.NewEncoder(w).Encode(t)

	case r.Method == http.MethodDelete:
		if _, ok := f.tasks[id]; !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		delete(f.tasks, id)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "unexpected request", http.StatusMethodNotAllowed)
	}
}

func (f *fakeService) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func fromInput(id string, in api.TaskInput) api.Task {
	return api.Task{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Date:          in.Date,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		AllDay:        in.AllDay,
		ReminderTimes: in.ReminderTimes,
		Unplanned:     in.Unplanned,
		Completed:     in.Completed,
		Priority:      in.Priority,
	}
}

func newTestRemote(t *testing.T, interval time.Duration) (*Remote, *fakeService) {
	t.Helper()
	svc := newFakeService()
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)

	r := NewRemote(api.NewClient(server.URL, "test-token"), interval, nil)
	t.Cleanup(func() { r.Close() })
	return r, svc
}

func TestRemoteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRemote(t, time.Hour)

	ch, _ := subscribe(t, r)
	waitFor(t, ch, count(0))

	created, err := r.Create(ctx, task.Fields{Title: "Standup", Date: "2025-03-20", StartTime: "09:30"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Writes trigger a refresh without waiting for the poll interval.
	snap := waitFor(t, ch, count(1))
	if snap.Tasks[0].Title != "Standup" || snap.Tasks[0].StartTime != "09:30" {
		t.Errorf("unexpected task %+v", snap.Tasks[0])
	}

	if _, err := r.Update(ctx, created.ID, task.Fields{Title: "Standup", Completed: true}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	snap = waitFor(t, ch, func(s Snapshot) bool { return len(s.Tasks) == 1 && s.Tasks[0].Completed })
	if !snap.Tasks[0].Unplanned {
		t.Errorf("expected task without date to be unplanned, got %+v", snap.Tasks[0])
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	waitFor(t, ch, count(0))
}

func TestRemoteStoreNotFound(t *testing.T) {
	r, _ := newTestRemote(t, time.Hour)

	err := r.Delete(context.Background(), "42")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoteStoreSkipsUnchangedPolls(t *testing.T) {
	r, svc := newTestRemote(t, 20*time.Millisecond)

	ch, _ := subscribe(t, r)
	first := waitFor(t, ch, count(0))

	deadline := time.Now().Add(2 * time.Second)
	for svc.getCount() < 4 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if svc.getCount() < 4 {
		t.Fatalf("expected the store to keep polling, saw %d fetches", svc.getCount())
	}

	select {
	case snap := <-ch:
		t.Errorf("expected no snapshot for unchanged data, got version %d after %d", snap.Version, first.Version)
	default:
	}
}

func TestRemoteStoreRejectsBlankTitle(t *testing.T) {
	r, svc := newTestRemote(t, time.Hour)

	if _, err := r.Create(context.Background(), task.Fields{Title: " "}); !errors.Is(err, task.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if len(svc.tasks) != 0 {
		t.Error("expected no request to reach the service")
	}
}
