package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/task"
	"github.com/hy4ri/daycal/internal/tui/styles"
)

// TaskListModel manages a scrollable list of tasks with expandable details.
type TaskListModel struct {
	tasks        []task.Task
	cursor       int
	expanded     map[string]bool
	now          time.Time
	title        string
	emptyMessage string
	showTime     bool
	scrollOffset int

	width, height int
	focused       bool
}

// NewTaskList creates a new TaskListModel.
func NewTaskList(title, emptyMessage string) *TaskListModel {
	return &TaskListModel{
		expanded:     make(map[string]bool),
		now:          time.Now(),
		title:        title,
		emptyMessage: emptyMessage,
		showTime:     true,
	}
}

// Init implements Component.
func (t *TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (t *TaskListModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKeyMsg(msg)
	}
	return t, nil
}

// handleKeyMsg processes keyboard input.
func (t *TaskListModel) handleKeyMsg(msg tea.KeyMsg) (Component, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		t.MoveCursor(1)
	case "k", "up":
		t.MoveCursor(-1)
	case "g", "home":
		t.cursor = 0
	case "G", "end":
		t.moveCursorToEnd()
	case " ", "space":
		t.ToggleExpanded()
	}
	return t, nil
}

// View implements Component.
func (t *TaskListModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(t.title))
	b.WriteString("\n")

	if len(t.tasks) == 0 {
		b.WriteString(styles.HelpDesc.Render(t.emptyMessage))
		return b.String()
	}

	var lines []string
	cursorLine := 0
	for i, tk := range t.tasks {
		if i == t.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, t.renderTask(i, tk))
		if t.expanded[tk.ID] {
			lines = append(lines, t.renderDetails(tk)...)
		}
	}

	b.WriteString(t.renderScrollableLines(lines, cursorLine, t.height-1))
	return b.String()
}

func (t *TaskListModel) renderTask(i int, tk task.Task) string {
	selected := i == t.cursor && t.focused

	cursor := "  "
	if selected {
		cursor = "> "
	}

	checkbox := styles.CheckboxUnchecked
	if tk.Completed {
		checkbox = styles.CheckboxChecked
	}

	upcoming := task.ReminderUpcoming(tk, t.now)

	// Reserve room for cursor, checkbox, time column and bell.
	avail := t.width - 8
	timeCol := ""
	if t.showTime {
		timeCol = padRight(tk.TimeRange(), 13)
		avail -= 14
	}
	if upcoming {
		avail -= 3
	}
	if avail < 8 {
		avail = 8
	}

	title := truncateString(tk.Title, avail)
	switch {
	case tk.Completed:
		title = styles.TaskCompleted.Render(title)
	case upcoming:
		title = styles.TaskReminder.Render(title)
	default:
		title = styles.GetPriorityStyle(tk.Priority).Render(title)
	}

	line := cursor + checkbox + " "
	if t.showTime {
		line += styles.TaskTime.Render(timeCol) + " "
	}
	line += title
	if upcoming {
		line += styles.TaskReminder.Render(" ⏰")
	}

	if selected {
		return styles.TaskSelected.Render(line)
	}
	return styles.TaskItem.Render(line)
}

func (t *TaskListModel) renderDetails(tk task.Task) []string {
	var out []string
	if tk.Description != "" {
		out = append(out, styles.TaskDetail.Render(truncateString(tk.Description, t.width-8)))
	}
	if !t.showTime && tk.Date != "" {
		out = append(out, styles.TaskDetail.Render("Date: "+tk.Date))
	}
	if tk.HasTime() || tk.AllDay {
		out = append(out, styles.TaskDetail.Render("Time: "+tk.TimeRange()))
	}
	if tk.Priority != "" {
		out = append(out, styles.TaskDetail.Render("Priority: "+tk.Priority))
	}
	if len(tk.ReminderTimes) > 0 {
		labels := make([]string, 0, len(tk.ReminderTimes))
		for _, r := range tk.ReminderTimes {
			labels = append(labels, task.OffsetLabel(r))
		}
		out = append(out, styles.TaskDetail.Render("Reminders: "+strings.Join(labels, ", ")))
	}
	if len(out) == 0 {
		out = append(out, styles.TaskDetail.Render("No details"))
	}
	return out
}

// renderScrollableLines shows the window of lines that contains the cursor.
func (t *TaskListModel) renderScrollableLines(lines []string, cursorLine, maxHeight int) string {
	if maxHeight <= 0 || len(lines) <= maxHeight {
		t.scrollOffset = 0
		return strings.Join(lines, "\n")
	}

	// Leave a line for each scroll indicator.
	visible := maxHeight - 2
	if visible < 1 {
		visible = 1
	}
	if cursorLine < t.scrollOffset {
		t.scrollOffset = cursorLine
	}
	if cursorLine >= t.scrollOffset+visible {
		t.scrollOffset = cursorLine - visible + 1
	}
	if t.scrollOffset > len(lines)-visible {
		t.scrollOffset = len(lines) - visible
	}

	end := t.scrollOffset + visible
	var b strings.Builder
	if t.scrollOffset > 0 {
		b.WriteString(styles.ScrollIndicatorUp.Render(fmt.Sprintf("▲ %d more", t.scrollOffset)))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(lines[t.scrollOffset:end], "\n"))
	b.WriteString("\n")
	if end < len(lines) {
		b.WriteString(styles.ScrollIndicatorDown.Render(fmt.Sprintf("▼ %d more", len(lines)-end)))
	}
	return b.String()
}

// SetSize implements Component.
func (t *TaskListModel) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Focus sets focus on the list.
func (t *TaskListModel) Focus() {
	t.focused = true
}

// Blur removes focus.
func (t *TaskListModel) Blur() {
	t.focused = false
}

// Focused returns focus state.
func (t *TaskListModel) Focused() bool {
	return t.focused
}

// SetTasks replaces the listed tasks, keeping the cursor on the same task
// when it is still present.
func (t *TaskListModel) SetTasks(tasks []task.Task) {
	var currentID string
	if cur, ok := t.SelectedTask(); ok {
		currentID = cur.ID
	}

	t.tasks = tasks
	t.cursor = 0
	for i, tk := range tasks {
		if tk.ID == currentID {
			t.cursor = i
			break
		}
	}
}

// SetNow sets the time reminders are evaluated against.
func (t *TaskListModel) SetNow(now time.Time) {
	t.now = now
}

// SetTitle sets the list title.
func (t *TaskListModel) SetTitle(title string) {
	t.title = title
}

// Tasks returns the listed tasks.
func (t *TaskListModel) Tasks() []task.Task {
	return t.tasks
}

// Cursor returns the cursor position.
func (t *TaskListModel) Cursor() int {
	return t.cursor
}

// SelectedTask returns the task under the cursor.
func (t *TaskListModel) SelectedTask() (task.Task, bool) {
	if t.cursor >= 0 && t.cursor < len(t.tasks) {
		return t.tasks[t.cursor], true
	}
	return task.Task{}, false
}

// ToggleExpanded shows or hides the details of the task under the cursor.
func (t *TaskListModel) ToggleExpanded() {
	if tk, ok := t.SelectedTask(); ok {
		t.expanded[tk.ID] = !t.expanded[tk.ID]
	}
}

// Expanded reports whether the details of id are shown.
func (t *TaskListModel) Expanded(id string) bool {
	return t.expanded[id]
}

// MoveCursor moves the cursor by delta.
func (t *TaskListModel) MoveCursor(delta int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if len(t.tasks) > 0 && t.cursor >= len(t.tasks) {
		t.cursor = len(t.tasks) - 1
	}
}

// moveCursorToEnd moves cursor to the last item.
func (t *TaskListModel) moveCursorToEnd() {
	if len(t.tasks) > 0 {
		t.cursor = len(t.tasks) - 1
	}
}
