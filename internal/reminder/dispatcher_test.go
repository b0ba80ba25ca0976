package reminder

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hy4ri/daycal/internal/store"
	"github.com/hy4ri/daycal/internal/task"
)

type recorder struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (r *recorder) notify(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, title+": "+message)
	return r.err
}

func at(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func meeting() task.Task {
	return task.Task{
		ID: "t1",
		Fields: task.Fields{
			Title:         "Meeting",
			Date:          "2025-03-20",
			StartTime:     "10:00",
			ReminderTimes: []string{"-30", "-5"},
		},
	}
}

func TestDispatchFiresOnce(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec.notify, nil)
	tasks := []task.Task{meeting()}

	if got := d.Dispatch(tasks, at("2025-03-20 09:29:00")); len(got) != 0 {
		t.Fatalf("expected nothing before the window, got %d alerts", len(got))
	}

	got := d.Dispatch(tasks, at("2025-03-20 09:30:10"))
	if len(got) != 1 || got[0].Offset != "-30" {
		t.Fatalf("expected the 30 minute reminder, got %+v", got)
	}
	if len(rec.messages) != 1 || !strings.Contains(rec.messages[0], "Meeting at 10:00 (30 min before)") {
		t.Errorf("unexpected notification %v", rec.messages)
	}

	if got := d.Dispatch(tasks, at("2025-03-20 09:30:50")); len(got) != 0 {
		t.Errorf("expected reminder not to fire twice, got %+v", got)
	}

	got = d.Dispatch(tasks, at("2025-03-20 09:55:00"))
	if len(got) != 1 || got[0].Offset != "-5" {
		t.Errorf("expected the 5 minute reminder, got %+v", got)
	}
}

func TestDispatchConcurrentFiresOnce(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec.notify, nil)
	tasks := []task.Task{meeting()}
	now := at("2025-03-20 09:30:10")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(tasks, now)
		}()
	}
	wg.Wait()

	if len(rec.messages) != 1 {
		t.Errorf("expected exactly one notification, got %d: %v", len(rec.messages), rec.messages)
	}
}

func TestDispatchSkipsCompletedAndUnplanned(t *testing.T) {
	done := meeting()
	done.Completed = true

	unplanned := meeting()
	unplanned.ID = "t2"
	unplanned.Date = ""

	d := NewDispatcher(nil, nil)
	if got := d.Dispatch([]task.Task{done, unplanned}, at("2025-03-20 09:30:00")); len(got) != 0 {
		t.Errorf("expected no alerts, got %+v", got)
	}
}

func TestDispatchRearmsMovedTask(t *testing.T) {
	d := NewDispatcher(nil, nil)
	tk := meeting()

	if got := d.Dispatch([]task.Task{tk}, at("2025-03-20 09:30:00")); len(got) != 1 {
		t.Fatalf("expected one alert, got %d", len(got))
	}

	tk.StartTime = "11:00"
	if got := d.Dispatch([]task.Task{tk}, at("2025-03-20 10:30:00")); len(got) != 1 {
		t.Errorf("expected moved task to remind again, got %d", len(got))
	}
}

func TestDispatchKeepsGoingWhenNotifyFails(t *testing.T) {
	rec := &recorder{err: errors.New("no daemon")}
	d := NewDispatcher(rec.notify, nil)

	got := d.Dispatch([]task.Task{meeting()}, at("2025-03-20 09:30:00"))
	if len(got) != 1 {
		t.Fatalf("expected alert despite notify error, got %d", len(got))
	}
	if got := d.Dispatch([]task.Task{meeting()}, at("2025-03-20 09:30:30")); len(got) != 0 {
		t.Errorf("expected failed notification to count as fired, got %d", len(got))
	}
}

func TestAllDayMessage(t *testing.T) {
	a := Alert{
		Task:   task.Task{Fields: task.Fields{Title: "Holiday", Date: "2025-03-21", AllDay: true}},
		Offset: task.DayBefore,
	}
	if got, want := a.Message(), "Holiday (2025-03-21, 1 day before)"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestSchedulerTickUsesLatestSnapshot(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(store.NewMemory("alice", nil), NewDispatcher(rec.notify, nil), time.UTC, nil)
	s.now = func() time.Time { return at("2025-03-20 09:30:00") }

	s.Tick()
	if len(rec.messages) != 0 {
		t.Fatalf("expected no notification without tasks, got %v", rec.messages)
	}

	s.update(store.Snapshot{Tasks: []task.Task{meeting()}, Version: 2})
	s.Tick()
	if len(rec.messages) != 1 {
		t.Errorf("expected one notification, got %v", rec.messages)
	}
}
