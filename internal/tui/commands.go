package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/reminder"
	"github.com/hy4ri/daycal/internal/task"
	"github.com/hy4ri/daycal/internal/tui/state"
)

type taskSavedMsg struct {
	mode state.FormMode
	task task.Task
}
type taskSaveFailedMsg struct{ err error }
type taskDeletedMsg struct{ title string }
type taskToggledMsg struct{ task task.Task }
type remindersMsg struct{ alerts []reminder.Alert }

// opContext bounds a single store call.
func (a *App) opContext() (context.Context, context.CancelFunc) {
	timeout := a.config.Store.OperationTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(a.ctx, timeout)
}

// submitForm validates the popup and issues exactly one create or update.
// Validation errors stay in the popup and no store call is made.
func (a *App) submitForm() tea.Cmd {
	sub, err := a.state.Form.Submit()
	if err != nil {
		a.log.Debugw("task form rejected", "error", err)
		return nil
	}

	a.pending++
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()

		var (
			saved task.Task
			err   error
		)
		if sub.Mode == state.FormEdit {
			saved, err = a.store.Update(ctx, sub.ID, sub.Fields)
		} else {
			saved, err = a.store.Create(ctx, sub.Fields)
		}
		if err != nil {
			return taskSaveFailedMsg{err: fmt.Errorf("failed to save task: %w", err)}
		}
		return taskSavedMsg{mode: sub.Mode, task: saved}
	}
}

func (a *App) deleteTask(t task.Task) tea.Cmd {
	a.pending++
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()

		if err := a.store.Delete(ctx, t.ID); err != nil {
			return errMsg{fmt.Errorf("failed to delete task: %w", err)}
		}
		return taskDeletedMsg{title: t.Title}
	}
}

func (a *App) toggleCompleted(t task.Task) tea.Cmd {
	fields := task.FieldsOf(t)
	fields.Completed = !fields.Completed

	a.pending++
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()

		updated, err := a.store.Update(ctx, t.ID, fields)
		if err != nil {
			return errMsg{fmt.Errorf("failed to update task: %w", err)}
		}
		return taskToggledMsg{task: updated}
	}
}

func (a *App) copyTask(t task.Task) tea.Cmd {
	text := t.Title
	if t.Description != "" {
		text += "\n" + t.Description
	}
	return func() tea.Msg {
		if err := a.copyText(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy task: %w", err)}
		}
		return statusMsg{msg: "Copied to clipboard"}
	}
}

func (a *App) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.signOut(); err != nil {
			return errMsg{fmt.Errorf("failed to sign out: %w", err)}
		}
		return signedOutMsg{}
	}
}

// dispatchReminders sends notifications for reminders due at now.
func (a *App) dispatchReminders(now time.Time) tea.Cmd {
	if a.dispatcher == nil {
		return nil
	}
	tasks := a.state.Tasks
	d := a.dispatcher
	return func() tea.Msg {
		alerts := d.Dispatch(tasks, now)
		if len(alerts) == 0 {
			return nil
		}
		return remindersMsg{alerts: alerts}
	}
}

func reminderStatus(alerts []reminder.Alert) string {
	msgs := make([]string, 0, len(alerts))
	for _, al := range alerts {
		msgs = append(msgs, al.Message())
	}
	return "Reminder: " + strings.Join(msgs, "; ")
}
