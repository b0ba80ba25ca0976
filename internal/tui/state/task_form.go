package state

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/task"
)

// FormMode is the state of the add/edit popup.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

// FormField constants for focus management
const (
	FormFieldTitle = iota
	FormFieldDescription
	FormFieldDate
	FormFieldAllDay
	FormFieldStart
	FormFieldEnd
	FormFieldPriority
	FormFieldReminders
	FormFieldSubmit
)

const formFieldCount = 9

var errSaving = errors.New("save in progress")

// Submission is a validated form ready to be written to the store.
type Submission struct {
	Mode   FormMode
	ID     string
	Fields task.Fields
}

// TaskForm represents the state of the task creation/editing form.
type TaskForm struct {
	Mode   FormMode
	TaskID string

	Title       textinput.Model
	Description textinput.Model
	Date        textinput.Model
	Start       textinput.Model
	End         textinput.Model

	AllDay    bool
	Priority  string
	Completed bool

	// Reminder checklist. Options grows with the offsets of the edited task
	// and is restored from baseOptions on reset.
	Options        []string
	baseOptions    []string
	Reminders      map[string]bool
	ReminderCursor int

	// DateEditable is false when the popup was opened for a fixed day.
	DateEditable bool

	// AllDayDayBefore forces all-day reminders to a single day-before offset.
	AllDayDayBefore bool

	FocusIndex int
	Saving     bool
	Err        error
}

// NewTaskForm creates a closed form offering the given reminder offsets.
func NewTaskForm(options []string, allDayDayBefore bool) *TaskForm {
	if len(options) == 0 {
		options = task.DefaultReminderOptions
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 500
	title.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 2000
	desc.Width = 40

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD (empty = unplanned)"
	date.CharLimit = 10
	date.Width = 30

	start := textinput.New()
	start.Placeholder = "HH:MM"
	start.CharLimit = 5
	start.Width = 6

	end := textinput.New()
	end.Placeholder = "HH:MM"
	end.CharLimit = 5
	end.Width = 6

	return &TaskForm{
		Title:           title,
		Description:     desc,
		Date:            date,
		Start:           start,
		End:             end,
		Options:         append([]string(nil), options...),
		baseOptions:     append([]string(nil), options...),
		Reminders:       make(map[string]bool),
		AllDayDayBefore: allDayDayBefore,
	}
}

// IsOpen reports whether the popup is shown.
func (f *TaskForm) IsOpen() bool {
	return f.Mode != FormClosed
}

// OpenCreate opens a blank form for date. An empty date creates an
// unplanned task and lets the user pick a date.
func (f *TaskForm) OpenCreate(date string) {
	f.reset()
	f.Mode = FormCreate
	f.Date.SetValue(date)
	f.DateEditable = date == ""
	f.Focus(FormFieldTitle)
}

// OpenEdit opens the form populated from t.
func (f *TaskForm) OpenEdit(t task.Task) {
	f.reset()
	f.Mode = FormEdit
	f.TaskID = t.ID
	f.Title.SetValue(t.Title)
	f.Description.SetValue(t.Description)
	f.Date.SetValue(t.Date)
	f.Start.SetValue(t.StartTime)
	f.End.SetValue(t.EndTime)
	f.AllDay = t.AllDay
	f.Priority = t.Priority
	f.Completed = t.Completed
	for _, r := range t.ReminderTimes {
		f.Reminders[r] = true
		if !contains(f.Options, r) {
			f.Options = append(f.Options, r)
		}
	}
	f.DateEditable = true
	f.Focus(FormFieldTitle)
}

// Cancel closes the form without side effects.
func (f *TaskForm) Cancel() {
	f.reset()
}

// Close closes and clears the form after a successful save.
func (f *TaskForm) Close() {
	f.reset()
}

// Fail records a store error and re-enables the form.
func (f *TaskForm) Fail(err error) {
	f.Saving = false
	f.Err = err
}

// Fields returns the normalized fields the form currently describes.
func (f *TaskForm) Fields() task.Fields {
	fields := task.Fields{
		Title:       f.Title.Value(),
		Description: f.Description.Value(),
		Date:        f.Date.Value(),
		StartTime:   f.Start.Value(),
		EndTime:     f.End.Value(),
		AllDay:      f.AllDay,
		Priority:    f.Priority,
		Completed:   f.Completed,
	}

	if f.AllDay && f.AllDayDayBefore {
		fields.ReminderTimes = []string{task.DayBefore}
	} else {
		fields.ReminderTimes = f.SelectedReminders()
	}
	return fields.Normalize()
}

// SelectedReminders returns the checked offsets in option order.
func (f *TaskForm) SelectedReminders() []string {
	out := make([]string, 0, len(f.Reminders))
	for _, o := range f.Options {
		if f.Reminders[o] {
			out = append(out, o)
		}
	}
	return out
}

// Submit validates the form. On error the form stays open with Err set.
func (f *TaskForm) Submit() (Submission, error) {
	if !f.IsOpen() {
		return Submission{}, nil
	}
	if f.Saving {
		return Submission{}, errSaving
	}

	fields := f.Fields()
	if err := fields.Validate(); err != nil {
		f.Err = err
		if errors.Is(err, task.ErrTitleRequired) {
			f.Focus(FormFieldTitle)
		}
		return Submission{}, err
	}

	f.Err = nil
	f.Saving = true
	return Submission{Mode: f.Mode, ID: f.TaskID, Fields: fields}, nil
}

// Update handles a key press while the form is open. It reports whether
// the user asked to submit.
func (f *TaskForm) Update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, f.updateInput(msg)
	}

	// A shown error blocks until the next key.
	if f.Err != nil {
		f.Err = nil
		return false, nil
	}
	if f.Saving {
		return false, nil
	}

	k := key.String()
	if k == "space" {
		k = " "
	}

	switch k {
	case "ctrl+s":
		return true, nil
	case "tab", "down":
		f.NextField()
		return false, nil
	case "shift+tab", "up":
		f.PrevField()
		return false, nil
	}

	switch f.FocusIndex {
	case FormFieldAllDay:
		if k == " " || k == "enter" {
			f.AllDay = !f.AllDay
		}
		return false, nil

	case FormFieldPriority:
		switch k {
		case "1":
			f.Priority = task.PriorityHigh
		case "2":
			f.Priority = task.PriorityMedium
		case "3":
			f.Priority = task.PriorityLow
		case "0", "backspace":
			f.Priority = ""
		case "h", "left":
			f.Priority = cyclePriority(f.Priority, -1)
		case "l", "right", " ":
			f.Priority = cyclePriority(f.Priority, 1)
		}
		return false, nil

	case FormFieldReminders:
		switch k {
		case "h", "left":
			if f.ReminderCursor > 0 {
				f.ReminderCursor--
			}
		case "l", "right":
			if f.ReminderCursor < len(f.Options)-1 {
				f.ReminderCursor++
			}
		case " ", "enter":
			if f.ReminderCursor < len(f.Options) {
				o := f.Options[f.ReminderCursor]
				f.Reminders[o] = !f.Reminders[o]
			}
		}
		return false, nil

	case FormFieldSubmit:
		if k == "enter" || k == " " {
			return true, nil
		}
		return false, nil
	}

	if k == "enter" {
		f.NextField()
		return false, nil
	}
	return false, f.updateInput(msg)
}

func (f *TaskForm) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.FocusIndex {
	case FormFieldTitle:
		f.Title, cmd = f.Title.Update(msg)
	case FormFieldDescription:
		f.Description, cmd = f.Description.Update(msg)
	case FormFieldDate:
		f.Date, cmd = f.Date.Update(msg)
	case FormFieldStart:
		f.Start, cmd = f.Start.Update(msg)
	case FormFieldEnd:
		f.End, cmd = f.End.Update(msg)
	}
	return cmd
}

// Available reports whether a field can take focus in the current state.
func (f *TaskForm) Available(field int) bool {
	switch field {
	case FormFieldDate:
		return f.DateEditable
	case FormFieldStart, FormFieldEnd:
		return !f.AllDay
	case FormFieldReminders:
		return !(f.AllDay && f.AllDayDayBefore)
	}
	return true
}

// NextField moves focus to the next available field.
func (f *TaskForm) NextField() {
	f.step(1)
}

// PrevField moves focus to the previous available field.
func (f *TaskForm) PrevField() {
	f.step(-1)
}

func (f *TaskForm) step(dir int) {
	next := f.FocusIndex
	for i := 0; i < formFieldCount; i++ {
		next = (next + dir + formFieldCount) % formFieldCount
		if f.Available(next) {
			f.Focus(next)
			return
		}
	}
}

// Focus moves focus to index.
func (f *TaskForm) Focus(index int) {
	f.FocusIndex = index
	f.Title.Blur()
	f.Description.Blur()
	f.Date.Blur()
	f.Start.Blur()
	f.End.Blur()

	switch index {
	case FormFieldTitle:
		f.Title.Focus()
	case FormFieldDescription:
		f.Description.Focus()
	case FormFieldDate:
		f.Date.Focus()
	case FormFieldStart:
		f.Start.Focus()
	case FormFieldEnd:
		f.End.Focus()
	}
}

// SetWidth sets width of the text inputs.
func (f *TaskForm) SetWidth(width int) {
	f.Title.Width = width
	f.Description.Width = width
}

func (f *TaskForm) reset() {
	f.Mode = FormClosed
	f.TaskID = ""
	f.Title.SetValue("")
	f.Description.SetValue("")
	f.Date.SetValue("")
	f.Start.SetValue("")
	f.End.SetValue("")
	f.AllDay = false
	f.Priority = ""
	f.Completed = false
	f.Options = append([]string(nil), f.baseOptions...)
	f.Reminders = make(map[string]bool)
	f.ReminderCursor = 0
	f.DateEditable = false
	f.Saving = false
	f.Err = nil
	f.Focus(FormFieldTitle)
}

func cyclePriority(current string, dir int) string {
	// "" sits before High in the cycle.
	order := append([]string{""}, task.Priorities...)
	i := 0
	for j, p := range order {
		if p == current {
			i = j
		}
	}
	return order[(i+dir+len(order))%len(order)]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
