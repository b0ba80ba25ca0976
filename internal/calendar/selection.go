package calendar

import (
	"errors"
	"strings"
)

var (
	// ErrNoDay is returned when an empty grid cell is selected.
	ErrNoDay = errors.New("no day in this cell")

	// ErrPastDate is returned when a past date is selected while past days are blocked.
	ErrPastDate = errors.New("cannot select a day in the past")
)

// Selector applies the day selection rules.
type Selector struct {
	// BlockPast forbids selecting past days or adding tasks to them.
	BlockPast bool
}

// Select returns the date string for a day of m.
func (s Selector) Select(m Month, day int, today string) (string, error) {
	if day < 1 || day > m.Days() {
		return "", ErrNoDay
	}
	date := m.Date(day)
	if s.BlockPast && IsPast(date, today) {
		return "", ErrPastDate
	}
	return date, nil
}

// CanAdd reports whether tasks may be added to the selected date.
func (s Selector) CanAdd(selected, today string) bool {
	if selected == "" {
		return false
	}
	return !s.BlockPast || !IsPast(selected, today)
}

// Clamp picks the selected date after navigating to m. The current selection
// is kept when it still lies in m; otherwise the first of the month is used,
// moved forward to today when past days are blocked.
func (s Selector) Clamp(selected string, m Month, today string) string {
	if strings.HasPrefix(selected, m.Prefix()+"-") {
		day := DayOf(selected)
		if day >= 1 && day <= m.Days() && (!s.BlockPast || !IsPast(selected, today)) {
			return selected
		}
	}

	first := m.Date(1)
	if s.BlockPast && IsPast(first, today) {
		return today
	}
	return first
}
