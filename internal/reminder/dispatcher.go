// Package reminder turns task reminder offsets into desktop notifications.
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/task"
)

// Notifier delivers a single notification.
type Notifier func(title, message string) error

// Desktop sends notifications through the OS notification daemon.
func Desktop(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Alert is one reminder that came due.
type Alert struct {
	Task   task.Task
	Offset string
	Start  time.Time
}

// Message renders the notification body.
func (a Alert) Message() string {
	if a.Task.AllDay || a.Task.StartTime == "" {
		return fmt.Sprintf("%s (%s, %s)", a.Task.Title, a.Task.Date, task.OffsetLabel(a.Offset))
	}
	return fmt.Sprintf("%s at %s (%s)", a.Task.Title, a.Task.StartTime, task.OffsetLabel(a.Offset))
}

// Dispatcher fires each (task, date, offset) reminder at most once.
type Dispatcher struct {
	notify Notifier
	log    *zap.SugaredLogger

	mu    sync.Mutex
	fired map[string]time.Time
}

// NewDispatcher creates a dispatcher. A nil notifier only records alerts.
func NewDispatcher(notify Notifier, log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		notify: notify,
		log:    log,
		fired:  make(map[string]time.Time),
	}
}

// Dispatch notifies every due reminder and marks it as fired. Concurrent
// calls never deliver the same reminder twice.
func (d *Dispatcher) Dispatch(tasks []task.Task, now time.Time) []Alert {
	d.mu.Lock()
	alerts := d.due(tasks, now)
	for _, a := range alerts {
		d.fired[key(a.Task, a.Offset)] = a.Start
	}
	d.prune(now)
	d.mu.Unlock()

	for _, a := range alerts {
		d.log.Infow("reminder due", "task", a.Task.ID, "offset", a.Offset, "start", a.Start)
		if d.notify == nil {
			continue
		}
		if err := d.notify("daycal", a.Message()); err != nil {
			d.log.Warnw("failed to send notification", "task", a.Task.ID, "error", err)
		}
	}
	return alerts
}

// due returns the reminders of tasks whose window contains now and that have
// not fired yet. Completed tasks never remind. Callers hold d.mu.
func (d *Dispatcher) due(tasks []task.Task, now time.Time) []Alert {
	var alerts []Alert
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		for _, offset := range task.UpcomingOffsets(t, now) {
			if _, ok := d.fired[key(t, offset)]; ok {
				continue
			}
			start, err := task.Start(t, now.Location())
			if err != nil {
				continue
			}
			alerts = append(alerts, Alert{Task: t, Offset: offset, Start: start})
		}
	}
	return alerts
}

// prune forgets reminders whose task started more than a day ago.
func (d *Dispatcher) prune(now time.Time) {
	for k, start := range d.fired {
		if now.Sub(start) > 24*time.Hour {
			delete(d.fired, k)
		}
	}
}

// key includes date and start so that moving a task re-arms its reminders.
func key(t task.Task, offset string) string {
	return t.ID + "|" + t.Date + "|" + t.StartTime + "|" + offset
}
