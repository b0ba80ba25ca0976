package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/calendar"
	"github.com/hy4ri/daycal/internal/task"
	"github.com/hy4ri/daycal/internal/tui/components"
	"github.com/hy4ri/daycal/internal/tui/state"
)

var errNoTaskSelected = errors.New("no task selected")

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.resize()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case subscribedMsg:
		a.sub = msg.sub
		return a, nil

	case snapshotMsg:
		a.applySnapshot(msg)
		return a, tea.Batch(
			waitForSnapshot(a.ctx, a.snapshots),
			a.dispatchReminders(a.now()),
		)

	case reminderTickMsg:
		a.refreshComponents()
		return a, tea.Batch(reminderTick(), a.dispatchReminders(a.now()))

	case remindersMsg:
		a.state.SetStatus(reminderStatus(msg.alerts))
		return a, nil

	case taskSavedMsg:
		a.done()
		a.state.Form.Close()
		verb := "Created"
		if msg.mode == state.FormEdit {
			verb = "Updated"
		}
		a.state.SetStatus(fmt.Sprintf("%s %q", verb, msg.task.Title))
		a.log.Infow("task saved", "id", msg.task.ID, "date", msg.task.Date)
		return a, nil

	case taskSaveFailedMsg:
		a.done()
		a.state.Form.Fail(msg.err)
		a.setError(msg.err)
		return a, nil

	case taskDeletedMsg:
		a.done()
		a.state.SetStatus(fmt.Sprintf("Deleted %q", msg.title))
		return a, nil

	case taskToggledMsg:
		a.done()
		if msg.task.Completed {
			a.state.SetStatus(fmt.Sprintf("Completed %q", msg.task.Title))
		} else {
			a.state.SetStatus(fmt.Sprintf("Reopened %q", msg.task.Title))
		}
		return a, nil

	case signedOutMsg:
		a.log.Info("signed out")
		a.cancel()
		return a, tea.Quit

	case errMsg:
		a.done()
		a.setError(msg.err)
		return a, nil

	case statusMsg:
		a.state.SetStatus(msg.msg)
		return a, nil

	case components.DaySelectedMsg:
		a.state.Selected = msg.Date
		a.state.Month = a.calendarComp.Month()
		a.refreshComponents()
		return a, nil

	case components.MonthChangedMsg:
		a.state.Month = msg.Month
		a.state.Selected = msg.Selected
		a.refreshComponents()
		return a, nil

	case components.SelectionErrorMsg:
		a.setError(msg.Err)
		return a, nil

	case components.HelpClosedMsg:
		a.state.ShowHelp = false
		return a, nil
	}

	if a.state.Form.IsOpen() {
		_, cmd := a.state.Form.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKeyMsg routes a key press. The popup and the help overlay capture
// every key while shown.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.cancel()
		return a, tea.Quit
	}

	if a.state.Form.IsOpen() {
		return a.handleFormKey(msg)
	}

	if a.state.ShowHelp {
		_, cmd := a.helpComp.Update(msg)
		return a, cmd
	}

	// Month navigation works from every pane.
	switch msg.String() {
	case a.keymap.PrevMonth.Key, a.keymap.NextMonth.Key,
		a.keymap.PrevYear.Key, a.keymap.NextYear.Key, a.keymap.Today.Key:
		_, cmd := a.calendarComp.Update(msg)
		return a, cmd
	}

	switch a.keymap.Action(msg) {
	case "quit":
		a.cancel()
		return a, tea.Quit
	case "help":
		a.state.ShowHelp = true
		return a, nil
	case "switch_pane":
		a.state.NextPane()
		a.focusPane()
		return a, nil
	case "switch_pane_rev":
		a.state.PrevPane()
		a.focusPane()
		return a, nil
	case "add":
		return a, a.openAdd()
	case "add_unplanned":
		a.state.Form.OpenCreate("")
		return a, nil
	case "edit":
		t, ok := a.selectedTask()
		if !ok {
			a.setError(errNoTaskSelected)
			return a, nil
		}
		a.state.Form.OpenEdit(t)
		return a, nil
	case "delete":
		t, ok := a.selectedTask()
		if !ok {
			return a, nil
		}
		return a, a.deleteTask(t)
	case "complete":
		t, ok := a.selectedTask()
		if !ok {
			return a, nil
		}
		return a, a.toggleCompleted(t)
	case "copy":
		t, ok := a.selectedTask()
		if !ok {
			return a, nil
		}
		return a, a.copyTask(t)
	case "sign_out":
		return a, a.signOutCmd()
	}

	var cmd tea.Cmd
	switch a.state.Pane {
	case state.PaneCalendar:
		_, cmd = a.calendarComp.Update(msg)
	case state.PaneDay:
		_, cmd = a.dayComp.Update(msg)
	case state.PaneUnplanned:
		_, cmd = a.sidebarComp.Update(msg)
	}
	return a, cmd
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" && !a.state.Form.Saving {
		a.state.Form.Cancel()
		return a, nil
	}

	submit, cmd := a.state.Form.Update(msg)
	if !submit {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.submitForm())
}

// openAdd opens the popup for the selected day unless adding is blocked.
func (a *App) openAdd() tea.Cmd {
	if !a.calendarComp.CanAdd() {
		a.setError(fmt.Errorf("cannot add tasks to %s: %w", a.state.Selected, calendar.ErrPastDate))
		return nil
	}
	a.state.Form.OpenCreate(a.state.Selected)
	return nil
}

// selectedTask returns the task under the cursor of the focused list. The
// calendar pane acts on the day list.
func (a *App) selectedTask() (task.Task, bool) {
	if a.state.Pane == state.PaneUnplanned {
		return a.sidebarComp.SelectedTask()
	}
	return a.dayComp.SelectedTask()
}

func (a *App) applySnapshot(msg snapshotMsg) {
	if msg.snap.Version < a.state.Version {
		return
	}
	if !a.state.Loaded {
		a.done()
	}
	a.state.Tasks = msg.snap.Tasks
	a.state.Version = msg.snap.Version
	a.state.Loaded = true
	a.refreshComponents()

	a.log.Debugw("snapshot applied", "version", msg.snap.Version, "tasks", len(msg.snap.Tasks))
}

func (a *App) setError(err error) {
	a.state.SetError(err)
	a.log.Errorw("operation failed", "error", err)
}

func (a *App) done() {
	if a.pending > 0 {
		a.pending--
	}
}

// resize distributes the window between the three panes.
func (a *App) resize() {
	width, height := a.state.Width, a.state.Height
	contentHeight := height - statusBarHeight
	if contentHeight < 5 {
		contentHeight = 5
	}

	sideWidth := width / 4
	if sideWidth < 20 {
		sideWidth = 20
	}
	dayWidth := width / 3
	if dayWidth < 24 {
		dayWidth = 24
	}
	calWidth := width - sideWidth - dayWidth
	if calWidth < 28 {
		calWidth = 28
	}

	a.calendarComp.SetSize(calWidth-panelFrame, contentHeight-panelFrame)
	a.dayComp.SetSize(dayWidth-panelFrame, contentHeight-panelFrame)
	a.sidebarComp.SetSize(sideWidth-panelFrame, contentHeight-panelFrame)
	a.helpComp.SetSize(width, height)

	formWidth := width/2 - 8
	if formWidth < 20 {
		formWidth = 20
	}
	if formWidth > 60 {
		formWidth = 60
	}
	a.state.Form.SetWidth(formWidth)
}
