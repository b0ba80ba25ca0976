// Package task defines the task entity and the pure rules applied to it:
// normalization, validation, filtering and reminder evaluation.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Priority values accepted by the store.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Priorities lists the priorities in display order.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// ErrTitleRequired is returned when a task is saved with a blank title.
var ErrTitleRequired = errors.New("title required")

var validate = validator.New()

// Fields holds the user-editable part of a task.
type Fields struct {
	Title         string   `validate:"required,max=500"`
	Description   string   `validate:"max=2000"`
	Date          string   `validate:"omitempty,datetime=2006-01-02"`
	StartTime     string   `validate:"omitempty,datetime=15:04"`
	EndTime       string   `validate:"omitempty,datetime=15:04"`
	AllDay        bool
	ReminderTimes []string `validate:"dive,numeric"`
	Priority      string   `validate:"omitempty,oneof=High Medium Low"`
	Completed     bool

	// Unplanned mirrors Date == "" and is rewritten by Normalize.
	Unplanned bool
}

// Task is a stored task.
type Task struct {
	ID        string
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields
}

// IsUnplanned reports whether the task has no calendar date. The date is the
// source of truth; a stale Unplanned flag is ignored.
func (t Task) IsUnplanned() bool {
	return t.Date == ""
}

// HasTime reports whether the task has a start time to display.
func (t Task) HasTime() bool {
	return !t.AllDay && t.StartTime != ""
}

// TimeRange returns the "HH:MM - HH:MM" label of a timed task.
func (t Task) TimeRange() string {
	switch {
	case t.AllDay:
		return "All day"
	case t.StartTime != "" && t.EndTime != "":
		return t.StartTime + " - " + t.EndTime
	case t.StartTime != "":
		return t.StartTime
	case t.EndTime != "":
		return "until " + t.EndTime
	}
	return ""
}

// Normalize trims text fields and derives the fields that must stay
// consistent: all-day tasks lose their times and Unplanned follows Date.
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Date = strings.TrimSpace(f.Date)
	f.StartTime = normalizeClock(f.StartTime)
	f.EndTime = normalizeClock(f.EndTime)

	if f.AllDay {
		f.StartTime = ""
		f.EndTime = ""
	}

	reminders := make([]string, 0, len(f.ReminderTimes))
	for _, r := range f.ReminderTimes {
		if r = strings.TrimSpace(r); r != "" {
			reminders = append(reminders, r)
		}
	}
	f.ReminderTimes = reminders

	f.Unplanned = f.Date == ""
	return f
}

// Validate checks normalized fields.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fe.Field(), Rule: fe.Tag(), Value: fmt.Sprint(fe.Value())}
		}
		return fmt.Errorf("failed to validate task: %w", err)
	}

	for i, r := range f.ReminderTimes {
		if _, err := ParseOffset(r); err != nil {
			return &ValidationError{Field: fmt.Sprintf("ReminderTimes[%d]", i), Rule: "numeric", Value: r}
		}
	}

	if f.StartTime != "" && f.EndTime != "" {
		start, _ := time.Parse(clockLayout, f.StartTime)
		end, _ := time.Parse(clockLayout, f.EndTime)
		if end.Before(start) {
			return &ValidationError{Field: "EndTime", Rule: "after_start", Value: f.EndTime}
		}
	}

	return nil
}

const clockLayout = "15:04"

// normalizeClock pads a valid time to HH:MM. Invalid values are only
// trimmed and left for Validate to reject.
func normalizeClock(value string) string {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(clockLayout, value); err == nil {
		return t.Format(clockLayout)
	}
	return value
}

// ValidationError describes the first invalid field of a task.
type ValidationError struct {
	Field string
	Rule  string
	Value string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Rule {
	case "datetime":
		return fmt.Sprintf("%s: %q is not a valid value", e.Field, e.Value)
	case "numeric":
		return fmt.Sprintf("%s: reminder offset %q must be a number of minutes", e.Field, e.Value)
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of %s", e.Field, e.Value, strings.Join(Priorities, ", "))
	case "after_start":
		return fmt.Sprintf("%s: end time %s is before the start time", e.Field, e.Value)
	case "max":
		return fmt.Sprintf("%s: too long", e.Field)
	}
	return fmt.Sprintf("%s: failed %q check", e.Field, e.Rule)
}

// FieldsOf returns the editable fields of a stored task.
func FieldsOf(t Task) Fields {
	f := t.Fields
	f.ReminderTimes = append([]string(nil), t.ReminderTimes...)
	return f
}
