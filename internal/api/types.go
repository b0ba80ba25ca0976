package api

import (
	"time"

	"github.com/hy4ri/daycal/internal/task"
)

// Task is the wire representation of a task record.
type Task struct {
	ID            string   `json:"id"`
	Owner         string   `json:"owner,omitempty"`
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	Date          *string  `json:"date"`
	StartTime     *string  `json:"startTime"`
	EndTime       *string  `json:"endTime"`
	AllDay        bool     `json:"allDay"`
	ReminderTimes []string `json:"reminderTimes"`
	Unplanned     bool     `json:"unplanned"`
	Completed     bool     `json:"completed"`
	Priority      *string  `json:"priority"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`

	// Records written by older clients carry fromTime/toTime instead.
	FromTime *string `json:"fromTime,omitempty"`
	ToTime   *string `json:"toTime,omitempty"`
}

// PaginatedResponse is a page of results with an optional cursor to the next page.
type PaginatedResponse[T any] struct {
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
}

// TaskInput is the request body for creating a task or overwriting its
// editable fields. Absent values are sent as null.
type TaskInput struct {
	Title         string   `json:"title"`
	Description   *string  `json:"description"`
	Date          *string  `json:"date"`
	StartTime     *string  `json:"startTime"`
	EndTime       *string  `json:"endTime"`
	AllDay        bool     `json:"allDay"`
	ReminderTimes []string `json:"reminderTimes"`
	Unplanned     bool     `json:"unplanned"`
	Completed     bool     `json:"completed"`
	Priority      *string  `json:"priority"`
}

// NewTaskInput converts normalized fields into a request body.
func NewTaskInput(f task.Fields) TaskInput {
	reminders := f.ReminderTimes
	if reminders == nil {
		reminders = []string{}
	}
	return TaskInput{
		Title:         f.Title,
		Description:   optional(f.Description),
		Date:          optional(f.Date),
		StartTime:     optional(f.StartTime),
		EndTime:       optional(f.EndTime),
		AllDay:        f.AllDay,
		ReminderTimes: reminders,
		Unplanned:     f.Unplanned,
		Completed:     f.Completed,
		Priority:      optional(f.Priority),
	}
}

// ToTask converts a wire record into a task.
func (t Task) ToTask() task.Task {
	start := deref(t.StartTime)
	if start == "" {
		start = deref(t.FromTime)
	}
	end := deref(t.EndTime)
	if end == "" {
		end = deref(t.ToTime)
	}

	return task.Task{
		ID:        t.ID,
		Owner:     t.Owner,
		CreatedAt: parseTimestamp(t.CreatedAt),
		UpdatedAt: parseTimestamp(t.UpdatedAt),
		Fields: task.Fields{
			Title:         t.Title,
			Description:   deref(t.Description),
			Date:          deref(t.Date),
			StartTime:     start,
			EndTime:       end,
			AllDay:        t.AllDay,
			ReminderTimes: append([]string(nil), t.ReminderTimes...),
			Priority:      deref(t.Priority),
			Completed:     t.Completed,
			Unplanned:     deref(t.Date) == "",
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
