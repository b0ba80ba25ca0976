// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/daycal/internal/task"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor    = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor  = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor  = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
	ReminderColor = lipgloss.AdaptiveColor{Light: "#D0473D", Dark: "#FF8C69"}
)

// Priority colors
var (
	PriorityHighColor   = lipgloss.Color("#D0473D")
	PriorityMediumColor = lipgloss.Color("#EA8811")
	PriorityLowColor    = lipgloss.Color("#296FDF")
)

// Base styles
var (
	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)
)

// Task styles
var (
	TaskItem = lipgloss.NewStyle().
			PaddingLeft(2)

	TaskSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	TaskCompleted = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// TaskTime is for the "HH:MM - HH:MM" column
	TaskTime = lipgloss.NewStyle().
			Foreground(Subtle)

	// TaskReminder marks tasks whose reminder is coming up
	TaskReminder = lipgloss.NewStyle().
			Foreground(ReminderColor).
			Bold(true)

	// TaskDetail is for the expanded description and reminder lines
	TaskDetail = lipgloss.NewStyle().
			Foreground(Subtle).
			Italic(true).
			PaddingLeft(6)
)

// Priority styles
var (
	TaskPriorityHigh   = lipgloss.NewStyle().Foreground(PriorityHighColor)
	TaskPriorityMedium = lipgloss.NewStyle().Foreground(PriorityMediumColor)
	TaskPriorityLow    = lipgloss.NewStyle().Foreground(PriorityLowColor)
	TaskPriorityNone   = lipgloss.NewStyle()
)

// GetPriorityStyle returns the appropriate style for a task priority.
func GetPriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case task.PriorityHigh:
		return TaskPriorityHigh
	case task.PriorityMedium:
		return TaskPriorityMedium
	case task.PriorityLow:
		return TaskPriorityLow
	default:
		return TaskPriorityNone
	}
}

// Panel styles
var (
	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	PanelFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)

// PanelStyle returns the panel style for the focus state.
func PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return PanelFocused
	}
	return Panel
}

// StatusBar styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
			Padding(0, 1)

	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"})

	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"})

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
			Bold(true)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
				Bold(true)
)

// Help styles
var (
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// NOTE: No margins - they add extra lines to the help columns.
	SectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle).
			Underline(true)
)

// Input styles
var (
	InputLabel = lipgloss.NewStyle().
			Bold(true).
			Width(12)

	InputLabelFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(Highlight).
				Width(12)

	// FormError is the blocking message shown inside the popup
	FormError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	Button = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(Subtle).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle)

	ButtonFocused = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Highlight)
)

// Dialog styles
var (
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			MarginBottom(1)
)

var Spinner = lipgloss.NewStyle().Foreground(Highlight)

// Calendar styles
// NOTE: Width is NOT set here - cells are padded by the calendar component.
var (
	CalendarHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	CalendarDay = lipgloss.NewStyle()

	// CalendarDayCursor is the day under the cursor while the grid is focused
	CalendarDayCursor = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDaySelected is the day whose tasks are listed
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(Highlight)

	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	CalendarDayWithTasks = lipgloss.NewStyle().
				Foreground(WarningColor)

	// CalendarDayPast is for days that can no longer be selected
	CalendarDayPast = lipgloss.NewStyle().
			Faint(true)

	CalendarDayWeekend = lipgloss.NewStyle().
				Foreground(Subtle)

	CalendarTaskPreview = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#444444", Dark: "#BBBBBB"})

	CalendarMoreTasks = lipgloss.NewStyle().
				Foreground(Subtle).
				Italic(true)
)

// Checkbox styles
const (
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)

// Scroll indicator styles
var (
	ScrollIndicatorUp = lipgloss.NewStyle().
				Foreground(Subtle).
				Italic(true).
				PaddingLeft(2)

	ScrollIndicatorDown = lipgloss.NewStyle().
				Foreground(Subtle).
				Italic(true).
				PaddingLeft(2)
)
