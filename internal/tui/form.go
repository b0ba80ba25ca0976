package tui

import (
	"fmt"
	"strings"

	"github.com/hy4ri/daycal/internal/task"
	"github.com/hy4ri/daycal/internal/tui/state"
	"github.com/hy4ri/daycal/internal/tui/styles"
)

// renderTaskForm renders the add/edit popup.
func (a *App) renderTaskForm() string {
	f := a.state.Form
	var b strings.Builder

	title := "Add Task"
	if f.Mode == state.FormEdit {
		title = "Edit Task"
	} else if !f.DateEditable {
		title = "Add Task for " + f.Date.Value()
	}
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(renderField(f, "Title", f.Title.View(), state.FormFieldTitle))
	b.WriteString("\n")
	b.WriteString(renderField(f, "Description", f.Description.View(), state.FormFieldDescription))
	b.WriteString("\n")

	if f.DateEditable {
		b.WriteString(renderField(f, "Date", f.Date.View(), state.FormFieldDate))
		b.WriteString("\n")
	}

	b.WriteString(renderField(f, "All day", renderCheckbox(f.AllDay), state.FormFieldAllDay))
	b.WriteString("\n")

	if !f.AllDay {
		times := f.Start.View() + "  to  " + f.End.View()
		label := "Start / End"
		if f.FocusIndex == state.FormFieldEnd {
			b.WriteString(renderField(f, label, times, state.FormFieldEnd))
		} else {
			b.WriteString(renderField(f, label, times, state.FormFieldStart))
		}
		b.WriteString("\n")
	}

	b.WriteString(renderField(f, "Priority", renderPriority(f), state.FormFieldPriority))
	b.WriteString("\n")

	b.WriteString(renderField(f, "Reminders", renderReminders(f), state.FormFieldReminders))
	b.WriteString("\n\n")

	button := "[ Save ]"
	if f.Saving {
		button = a.spinner.View() + " Saving..."
	}
	if f.FocusIndex == state.FormFieldSubmit {
		b.WriteString(styles.ButtonFocused.Render(button))
	} else {
		b.WriteString(styles.Button.Render(button))
	}
	b.WriteString("\n\n")

	if f.Err != nil {
		b.WriteString(styles.FormError.Render(f.Err.Error()))
		b.WriteString("\n")
		b.WriteString(styles.HelpDesc.Render("Press any key to continue"))
	} else {
		b.WriteString(styles.HelpDesc.Render(formHelp(f.FocusIndex)))
	}

	return styles.Dialog.Render(b.String())
}

func renderField(f *state.TaskForm, label, input string, field int) string {
	labelStyle := styles.InputLabel
	if f.FocusIndex == field {
		labelStyle = styles.InputLabelFocused
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label), input)
}

func renderCheckbox(checked bool) string {
	if checked {
		return styles.CheckboxChecked
	}
	return styles.CheckboxUnchecked
}

func renderPriority(f *state.TaskForm) string {
	options := append([]string{""}, task.Priorities...)
	parts := make([]string, 0, len(options))
	for _, p := range options {
		label := p
		if label == "" {
			label = "None"
		}
		style := styles.GetPriorityStyle(p)
		if p == f.Priority {
			style = style.Bold(true).Underline(true)
		}
		parts = append(parts, style.Render(label))
	}

	selector := strings.Join(parts, "  ")
	if f.FocusIndex == state.FormFieldPriority {
		selector = "[ " + selector + " ]"
	}
	return selector
}

func renderReminders(f *state.TaskForm) string {
	if f.AllDay && f.AllDayDayBefore {
		return styles.TaskReminder.Render(task.OffsetLabel(task.DayBefore))
	}

	parts := make([]string, 0, len(f.Options))
	for i, o := range f.Options {
		item := renderCheckbox(f.Reminders[o]) + " " + task.OffsetLabel(o)
		if f.FocusIndex == state.FormFieldReminders && i == f.ReminderCursor {
			item = styles.TaskSelected.Render(item)
		}
		parts = append(parts, item)
	}
	return strings.Join(parts, "  ")
}

func formHelp(field int) string {
	switch field {
	case state.FormFieldAllDay:
		return "Space: toggle | Tab: next field | Esc: cancel"
	case state.FormFieldPriority:
		return "1-3: set priority | 0: none | h/l: adjust | Tab: next field"
	case state.FormFieldReminders:
		return "h/l: move | Space: toggle | Tab: next field"
	}
	return "Tab: next field | Shift+Tab: previous | Ctrl+S: save | Esc: cancel"
}
