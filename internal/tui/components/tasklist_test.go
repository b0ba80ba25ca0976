package components

import (
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/daycal/internal/task"
)

func dayTasks() []task.Task {
	return []task.Task{
		{ID: "a", Fields: task.Fields{Title: "Standup", Date: "2025-03-20", StartTime: "14:30", ReminderTimes: []string{"-30"}}},
		{ID: "b", Fields: task.Fields{Title: "Lunch", Date: "2025-03-20", Description: "with Sam"}},
		{ID: "c", Fields: task.Fields{Title: "Report", Date: "2025-03-20", Completed: true}},
	}
}

func TestTaskList_KeepsCursorOnTask(t *testing.T) {
	l := NewTaskList("Tasks", "No tasks")
	l.SetTasks(dayTasks())
	press(l, "j")

	if tk, _ := l.SelectedTask(); tk.ID != "b" {
		t.Fatalf("expected b under the cursor, got %q", tk.ID)
	}

	// A new snapshot with the list reordered keeps the same task selected.
	tasks := dayTasks()
	l.SetTasks([]task.Task{tasks[2], tasks[1], tasks[0]})
	if tk, _ := l.SelectedTask(); tk.ID != "b" {
		t.Errorf("expected cursor to follow b, got %q", tk.ID)
	}

	l.SetTasks(tasks[:1])
	if l.Cursor() != 0 {
		t.Errorf("expected cursor reset when the task is gone, got %d", l.Cursor())
	}
}

func TestTaskList_CursorBounds(t *testing.T) {
	l := NewTaskList("Tasks", "No tasks")
	l.SetTasks(dayTasks())

	press(l, "k")
	if l.Cursor() != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", l.Cursor())
	}
	press(l, "G")
	press(l, "j")
	if l.Cursor() != 2 {
		t.Errorf("expected cursor to stay at the end, got %d", l.Cursor())
	}
}

func TestTaskList_ReminderHighlight(t *testing.T) {
	l := NewTaskList("Tasks", "No tasks")
	l.SetSize(80, 20)
	l.SetTasks(dayTasks())

	l.SetNow(time.Date(2025, time.March, 20, 14, 0, 0, 0, time.Local))
	if !strings.Contains(l.View(), "⏰") {
		t.Error("expected the upcoming reminder to be marked")
	}

	l.SetNow(time.Date(2025, time.March, 20, 13, 0, 0, 0, time.Local))
	if strings.Contains(l.View(), "⏰") {
		t.Error("expected no mark outside the reminder window")
	}
}

func TestTaskList_Expand(t *testing.T) {
	l := NewTaskList("Tasks", "No tasks")
	l.SetSize(80, 20)
	l.SetTasks(dayTasks())
	press(l, "j")

	if strings.Contains(l.View(), "with Sam") {
		t.Fatal("description should be hidden until expanded")
	}
	press(l, "space")
	if !l.Expanded("b") || !strings.Contains(l.View(), "with Sam") {
		t.Error("expected description after expanding")
	}
	press(l, "space")
	if l.Expanded("b") {
		t.Error("expected second space to collapse")
	}
}

func TestTaskList_Empty(t *testing.T) {
	l := NewTaskList("Tasks", "Nothing planned")
	if !strings.Contains(l.View(), "Nothing planned") {
		t.Error("expected empty message")
	}
	if _, ok := l.SelectedTask(); ok {
		t.Error("expected no selection in an empty list")
	}
}

func TestSidebar_Count(t *testing.T) {
	s := NewSidebar()
	s.SetSize(30, 10)
	s.SetTasks([]task.Task{{ID: "x", Fields: task.Fields{Title: "Someday"}}})

	view := s.View()
	if !strings.Contains(view, "Unplanned (1)") || !strings.Contains(view, "Someday") {
		t.Errorf("unexpected sidebar view:\n%s", view)
	}
}
