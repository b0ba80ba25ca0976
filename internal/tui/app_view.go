package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/daycal/internal/tui/state"
	"github.com/hy4ri/daycal/internal/tui/styles"
)

const (
	statusBarHeight = 1
	// Border plus horizontal padding of a panel.
	panelFrame = 4
)

// View implements tea.Model.
func (a *App) View() string {
	if a.state.Width == 0 {
		return "Loading..."
	}

	content := a.renderMainView()

	switch {
	case a.state.Form.IsOpen():
		content = a.overlay(content, a.renderTaskForm())
	case a.state.ShowHelp:
		content = a.overlay(content, a.helpComp.View())
	}
	return content
}

// renderMainView renders calendar, day list and unplanned sidebar side by
// side with the status bar below.
func (a *App) renderMainView() string {
	contentHeight := a.state.Height - statusBarHeight
	if contentHeight < 5 {
		contentHeight = 5
	}

	calPane := a.renderPanel(a.calendarComp.View(), a.state.Pane == state.PaneCalendar)
	dayPane := a.renderPanel(a.dayComp.View(), a.state.Pane == state.PaneDay)
	sidePane := a.renderPanel(a.sidebarComp.View(), a.state.Pane == state.PaneUnplanned)

	main := lipgloss.JoinHorizontal(lipgloss.Top, calPane, dayPane, sidePane)
	main = lipgloss.Place(a.state.Width, contentHeight, lipgloss.Left, lipgloss.Top, main)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderStatusBar())
}

func (a *App) renderPanel(content string, focused bool) string {
	return styles.PanelStyle(focused).Render(content)
}

// renderStatusBar shows the last error or status message on the left and
// key hints on the right.
func (a *App) renderStatusBar() string {
	left := ""
	switch {
	case !a.state.Loaded:
		left = a.spinner.View() + styles.StatusBarText.Render(" Loading tasks...")
	case a.state.Err != nil:
		errStr := strings.ReplaceAll(a.state.Err.Error(), "\n", " ")
		left = styles.StatusBarError.Render("Error: " + errStr)
	case a.state.StatusMsg != "":
		left = styles.StatusBarSuccess.Render(strings.ReplaceAll(a.state.StatusMsg, "\n", " "))
	}
	if a.pending > 0 && a.state.Loaded {
		left = a.spinner.View() + " " + left
	}

	hints := []string{
		styles.StatusBarKey.Render("a") + styles.StatusBarText.Render(":add"),
		styles.StatusBarKey.Render("tab") + styles.StatusBarText.Render(":pane"),
		styles.StatusBarKey.Render("?") + styles.StatusBarText.Render(":help"),
		styles.StatusBarKey.Render("q") + styles.StatusBarText.Render(":quit"),
	}
	right := strings.Join(hints, " ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := styles.StatusBar.GetHorizontalFrameSize()

	maxLeftWidth := a.state.Width - rightWidth - padding - 2
	if leftWidth > maxLeftWidth && maxLeftWidth > 10 {
		left = lipgloss.NewStyle().MaxWidth(maxLeftWidth).Render(left)
		leftWidth = lipgloss.Width(left)
	}

	gap := a.state.Width - leftWidth - rightWidth - padding
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}

// overlay centers dialog over content, replacing the lines it covers.
func (a *App) overlay(content, dialog string) string {
	dialogLines := strings.Split(dialog, "\n")
	dialogWidth := lipgloss.Width(dialog)

	leftPad := (a.state.Width - dialogWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}

	contentLines := strings.Split(content, "\n")
	startLine := (len(contentLines) - len(dialogLines)) / 2
	if startLine < 0 {
		startLine = 0
	}

	for i := 0; i < len(dialogLines); i++ {
		line := strings.Repeat(" ", leftPad) + dialogLines[i]
		if startLine+i < len(contentLines) {
			contentLines[startLine+i] = line
		} else {
			contentLines = append(contentLines, line)
		}
	}
	return strings.Join(contentLines, "\n")
}
