// Package state holds the view state shared by the TUI and its components.
package state

import (
	"time"

	"github.com/hy4ri/daycal/internal/calendar"
	"github.com/hy4ri/daycal/internal/task"
)

// Pane represents which pane is currently focused.
type Pane int

const (
	PaneCalendar Pane = iota
	PaneDay
	PaneUnplanned
)

const paneCount = 3

// String returns the pane name.
func (p Pane) String() string {
	switch p {
	case PaneDay:
		return "day"
	case PaneUnplanned:
		return "unplanned"
	}
	return "calendar"
}

// State holds the application state.
type State struct {
	// Data. Tasks is only ever replaced by a store snapshot.
	Tasks   []task.Task
	Version uint64
	Loaded  bool

	// Calendar
	Month    calendar.Month
	Selected string

	// UI state
	Pane      Pane
	Form      *TaskForm
	ShowHelp  bool
	Err       error
	StatusMsg string
	Width     int
	Height    int
}

// New creates the state for the month containing now, with today selected.
func New(now time.Time, form *TaskForm) *State {
	return &State{
		Month:    calendar.MonthOf(now),
		Selected: calendar.Today(now),
		Form:     form,
	}
}

// DayTasks returns the tasks of the selected date.
func (s *State) DayTasks() []task.Task {
	if s.Selected == "" {
		return nil
	}
	return task.DayTasks(s.Tasks, s.Selected)
}

// UnplannedTasks returns the tasks without a date.
func (s *State) UnplannedTasks() []task.Task {
	return task.UnplannedTasks(s.Tasks)
}

// NextPane cycles focus forward.
func (s *State) NextPane() {
	s.Pane = (s.Pane + 1) % paneCount
}

// PrevPane cycles focus backward.
func (s *State) PrevPane() {
	s.Pane = (s.Pane - 1 + paneCount) % paneCount
}

// SetError records err for the status line.
func (s *State) SetError(err error) {
	s.Err = err
	s.StatusMsg = ""
}

// SetStatus records an informational message and clears any error.
func (s *State) SetStatus(msg string) {
	s.StatusMsg = msg
	s.Err = nil
}
