package components

import "github.com/hy4ri/daycal/internal/calendar"

// DaySelectedMsg is emitted when a day is selected in the calendar.
type DaySelectedMsg struct {
	Date string
}

// MonthChangedMsg is emitted when the calendar shows another month.
// Selected is the date chosen by the navigation clamp.
type MonthChangedMsg struct {
	Month    calendar.Month
	Selected string
}

// SelectionErrorMsg is emitted when a day cannot be selected.
type SelectionErrorMsg struct {
	Err error
}

// HelpClosedMsg is emitted when the help overlay is dismissed.
type HelpClosedMsg struct{}
