package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// SidebarModel lists the unplanned tasks. It is a narrow task list
// without the time column whose title carries the task count.
type SidebarModel struct {
	*TaskListModel
}

// NewSidebar creates the unplanned sidebar.
func NewSidebar() *SidebarModel {
	list := NewTaskList("Unplanned", "No unplanned tasks")
	list.showTime = false
	return &SidebarModel{TaskListModel: list}
}

// Update implements Component.
func (s *SidebarModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	_, cmd := s.TaskListModel.Update(msg)
	return s, cmd
}

// View implements Component.
func (s *SidebarModel) View() string {
	if n := len(s.tasks); n > 0 {
		s.title = fmt.Sprintf("Unplanned (%d)", n)
	} else {
		s.title = "Unplanned"
	}
	return s.TaskListModel.View()
}
