package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/store"
)

type snapshotMsg struct{ snap store.Snapshot }
type subscribedMsg struct{ sub *store.Subscription }

// subscribe registers with the store. Snapshots are handed to the program
// through a one-slot channel that always holds the newest snapshot.
func (a *App) subscribe() tea.Cmd {
	ch := a.snapshots
	return func() tea.Msg {
		sub, err := a.store.Subscribe(a.ctx, func(snap store.Snapshot) {
			select {
			case ch <- snap:
				return
			default:
			}
			// Drop the stale snapshot the program has not read yet.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		})
		if err != nil {
			return errMsg{fmt.Errorf("failed to subscribe to tasks: %w", err)}
		}
		return subscribedMsg{sub: sub}
	}
}

// waitForSnapshot blocks until the next snapshot arrives. It is re-armed
// after every snapshotMsg.
func waitForSnapshot(ctx context.Context, ch <-chan store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-ch:
			return snapshotMsg{snap: snap}
		case <-ctx.Done():
			return nil
		}
	}
}

// reminderTick fires on every wall-clock minute so that the reminder
// windows are evaluated once per minute.
func reminderTick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}
