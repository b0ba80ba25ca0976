package state

import (
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/task"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func typeText(f *TaskForm, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTaskForm_OpenCreate(t *testing.T) {
	f := NewTaskForm(nil, true)
	if f.IsOpen() {
		t.Fatal("new form should be closed")
	}

	f.OpenCreate("2025-03-20")
	if f.Mode != FormCreate {
		t.Errorf("expected FormCreate, got %v", f.Mode)
	}
	if f.Date.Value() != "2025-03-20" || f.DateEditable {
		t.Errorf("expected fixed date 2025-03-20, got %q editable=%v", f.Date.Value(), f.DateEditable)
	}
	if f.FocusIndex != FormFieldTitle || !f.Title.Focused() {
		t.Error("expected title to be focused")
	}

	f.OpenCreate("")
	if !f.DateEditable {
		t.Error("expected the date to be editable for unplanned tasks")
	}
}

func TestTaskForm_EmptyTitleStaysOpen(t *testing.T) {
	f := NewTaskForm(nil, true)
	f.OpenCreate("2025-03-20")
	typeText(f, "   ")

	_, err := f.Submit()
	if !errors.Is(err, task.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if !f.IsOpen() || f.Saving {
		t.Error("form should stay open and idle after a failed submit")
	}
	if f.Err == nil {
		t.Fatal("expected the error to be shown")
	}

	// The message blocks until the next key, which is swallowed.
	f.Update(keyMsg("x"))
	if f.Err != nil {
		t.Error("expected the next key to dismiss the error")
	}
	if f.Title.Value() != "   " {
		t.Errorf("dismissing key should not be typed, got %q", f.Title.Value())
	}
}

func TestTaskForm_SubmitCreate(t *testing.T) {
	f := NewTaskForm([]string{"-5", "-30"}, true)
	f.OpenCreate("2025-03-20")
	typeText(f, "  Dentist  ")

	f.Focus(FormFieldStart)
	typeText(f, "09:00")
	f.Focus(FormFieldReminders)
	f.Update(keyMsg("right"))
	f.Update(keyMsg("space"))

	sub, err := f.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	want := task.Fields{
		Title:         "Dentist",
		Date:          "2025-03-20",
		StartTime:     "09:00",
		ReminderTimes: []string{"-30"},
	}
	if sub.Mode != FormCreate || sub.ID != "" {
		t.Errorf("unexpected submission header %+v", sub)
	}
	if !reflect.DeepEqual(sub.Fields, want) {
		t.Errorf("fields = %+v, want %+v", sub.Fields, want)
	}
	if !f.Saving {
		t.Error("expected form to be saving")
	}
	if _, err := f.Submit(); err == nil {
		t.Error("expected a second submit to be refused while saving")
	}

	f.Close()
	if f.IsOpen() || f.Title.Value() != "" {
		t.Error("expected form to close and clear")
	}
}

func TestTaskForm_AllDay(t *testing.T) {
	tests := []struct {
		name      string
		dayBefore bool
		want      []string
	}{
		{"forced day before", true, []string{task.DayBefore}},
		{"keeps user choice", false, []string{"-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTaskForm([]string{"-5", "-30"}, tt.dayBefore)
			f.OpenCreate("2025-03-20")
			typeText(f, "Holiday")
			f.Start.SetValue("10:00")
			f.End.SetValue("11:00")
			f.Reminders["-5"] = true

			f.Focus(FormFieldAllDay)
			f.Update(keyMsg("space"))
			if !f.AllDay {
				t.Fatal("expected space to toggle all-day")
			}

			sub, err := f.Submit()
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}
			if sub.Fields.StartTime != "" || sub.Fields.EndTime != "" {
				t.Errorf("expected times to be stripped, got %+v", sub.Fields)
			}
			if !reflect.DeepEqual(sub.Fields.ReminderTimes, tt.want) {
				t.Errorf("reminders = %v, want %v", sub.Fields.ReminderTimes, tt.want)
			}
		})
	}
}

func TestTaskForm_OpenEdit(t *testing.T) {
	original := task.Task{
		ID: "abc",
		Fields: task.Fields{
			Title:         "Review",
			Description:   "PR 12",
			Date:          "2025-03-21",
			StartTime:     "14:00",
			EndTime:       "15:00",
			ReminderTimes: []string{"-45"},
			Priority:      task.PriorityHigh,
			Completed:     true,
		},
	}

	f := NewTaskForm([]string{"-5"}, true)
	f.OpenEdit(original)

	if f.Mode != FormEdit || f.TaskID != "abc" || !f.DateEditable {
		t.Fatalf("unexpected edit state mode=%v id=%q", f.Mode, f.TaskID)
	}

	// Unknown offsets are kept so that saving does not drop them.
	if len(f.Options) != 2 || !f.Reminders["-45"] {
		t.Errorf("expected custom offset to be offered and checked, got %v", f.Options)
	}

	f.Title.SetValue("Review again ")
	sub, err := f.Submit()
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if sub.Mode != FormEdit || sub.ID != "abc" {
		t.Errorf("unexpected submission header %+v", sub)
	}
	if sub.Fields.Title != "Review again" || !sub.Fields.Completed || sub.Fields.Priority != task.PriorityHigh {
		t.Errorf("unexpected fields %+v", sub.Fields)
	}

	f.Cancel()
	if f.IsOpen() || f.TaskID != "" {
		t.Error("expected cancel to close and clear")
	}

	f.OpenCreate("2025-03-22")
	if !reflect.DeepEqual(f.Options, []string{"-5"}) {
		t.Errorf("expected the custom offset to be dropped for new tasks, got %v", f.Options)
	}
}

func TestTaskForm_FocusSkipsUnavailableFields(t *testing.T) {
	f := NewTaskForm(nil, true)
	f.OpenCreate("2025-03-20")

	f.Update(keyMsg("tab"))
	if f.FocusIndex != FormFieldDescription {
		t.Fatalf("expected description, got %d", f.FocusIndex)
	}
	f.Update(keyMsg("tab"))
	if f.FocusIndex != FormFieldAllDay {
		t.Errorf("expected fixed date to be skipped, got %d", f.FocusIndex)
	}

	f.Update(keyMsg("space"))
	f.Update(keyMsg("tab"))
	if f.FocusIndex != FormFieldPriority {
		t.Errorf("expected times to be skipped for all-day tasks, got %d", f.FocusIndex)
	}
	f.Update(keyMsg("tab"))
	if f.FocusIndex != FormFieldSubmit {
		t.Errorf("expected forced reminders to be skipped, got %d", f.FocusIndex)
	}
	f.Update(keyMsg("tab"))
	if f.FocusIndex != FormFieldTitle {
		t.Errorf("expected focus to wrap to the title, got %d", f.FocusIndex)
	}
	f.Update(keyMsg("shift+tab"))
	if f.FocusIndex != FormFieldSubmit {
		t.Errorf("expected shift+tab to wrap to submit, got %d", f.FocusIndex)
	}
}

func TestTaskForm_SubmitKeys(t *testing.T) {
	f := NewTaskForm(nil, true)
	f.OpenCreate("")

	if submit, _ := f.Update(keyMsg("ctrl+s")); !submit {
		t.Error("expected ctrl+s to submit")
	}

	f.Focus(FormFieldTitle)
	if submit, _ := f.Update(keyMsg("enter")); submit {
		t.Error("enter in a text field should not submit")
	}
	if f.FocusIndex != FormFieldDescription {
		t.Errorf("expected enter to advance focus, got %d", f.FocusIndex)
	}

	f.Focus(FormFieldSubmit)
	if submit, _ := f.Update(keyMsg("enter")); !submit {
		t.Error("expected enter on submit to submit")
	}
}

func TestTaskForm_Priority(t *testing.T) {
	f := NewTaskForm(nil, true)
	f.OpenCreate("")
	f.Focus(FormFieldPriority)

	f.Update(keyMsg("2"))
	if f.Priority != task.PriorityMedium {
		t.Errorf("expected Medium, got %q", f.Priority)
	}
	f.Update(keyMsg("l"))
	if f.Priority != task.PriorityLow {
		t.Errorf("expected Low, got %q", f.Priority)
	}
	f.Update(keyMsg("l"))
	if f.Priority != "" {
		t.Errorf("expected priority to wrap to none, got %q", f.Priority)
	}
}

func TestTaskForm_InvalidTime(t *testing.T) {
	f := NewTaskForm(nil, true)
	f.OpenCreate("2025-03-20")
	typeText(f, "Call")
	f.Start.SetValue("25:99")

	_, err := f.Submit()
	var verr *task.ValidationError
	if !errors.As(err, &verr) || verr.Field != "StartTime" {
		t.Fatalf("expected StartTime validation error, got %v", err)
	}
	if !f.IsOpen() {
		t.Error("form should stay open")
	}
}
