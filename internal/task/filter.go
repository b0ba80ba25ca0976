package task

import (
	"strings"

	"github.com/hy4ri/daycal/internal/calendar"
)

// DayTasks returns the tasks scheduled on date, in input order.
func DayTasks(all []Task, date string) []Task {
	var out []Task
	if date == "" {
		return out
	}
	for _, t := range all {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// UnplannedTasks returns the tasks without a date, in input order.
func UnplannedTasks(all []Task) []Task {
	var out []Task
	for _, t := range all {
		if t.IsUnplanned() {
			out = append(out, t)
		}
	}
	return out
}

// CountByDay counts the tasks of each day of m.
func CountByDay(all []Task, m calendar.Month) map[int]int {
	prefix := m.Prefix() + "-"
	counts := make(map[int]int)
	for _, t := range all {
		if !strings.HasPrefix(t.Date, prefix) {
			continue
		}
		if day := calendar.DayOf(t.Date); day > 0 {
			counts[day]++
		}
	}
	return counts
}

// Find returns the task with the given id.
func Find(all []Task, id string) (Task, bool) {
	for _, t := range all {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
