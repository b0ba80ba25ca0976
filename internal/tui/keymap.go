// Package tui provides the terminal user interface for daycal.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains the application-level key bindings. Cursor movement is
// handled by the focused component.
type Keymap struct {
	// Calendar
	PrevMonth Key
	NextMonth Key
	PrevYear  Key
	NextYear  Key
	Today     Key
	Select    Key

	// Task actions
	AddTask       Key
	AddUnplanned  Key
	EditTask      Key
	DeleteTask    Key
	CompleteTask  Key
	ExpandTask    Key
	CopyTask      Key
	SwitchPane    Key
	SwitchPaneRev Key

	// General
	SignOut Key
	Help    Key
	Back    Key
	Quit    Key
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		PrevMonth: Key{Key: "[", Help: "previous month"},
		NextMonth: Key{Key: "]", Help: "next month"},
		PrevYear:  Key{Key: "{", Help: "previous year"},
		NextYear:  Key{Key: "}", Help: "next year"},
		Today:     Key{Key: "t", Help: "go to today"},
		Select:    Key{Key: "enter", Help: "select day"},

		AddTask:       Key{Key: "a", Help: "add task to selected day"},
		AddUnplanned:  Key{Key: "A", Help: "add unplanned task"},
		EditTask:      Key{Key: "e", Help: "edit task"},
		DeleteTask:    Key{Key: "d", Help: "delete task"},
		CompleteTask:  Key{Key: "x", Help: "complete/uncomplete"},
		ExpandTask:    Key{Key: "space", Help: "show/hide details"},
		CopyTask:      Key{Key: "y", Help: "copy task to clipboard"},
		SwitchPane:    Key{Key: "tab", Help: "switch pane"},
		SwitchPaneRev: Key{Key: "shift+tab", Help: "previous pane"},

		SignOut: Key{Key: "S", Help: "sign out"},
		Help:    Key{Key: "?", Help: "help"},
		Back:    Key{Key: "esc", Help: "cancel"},
		Quit:    Key{Key: "q", Help: "quit"},
	}
}

// Action resolves an application-level key press. An empty action means
// the key belongs to the focused component.
func (k Keymap) Action(msg tea.KeyMsg) string {
	switch msg.String() {
	case "ctrl+c", k.Quit.Key:
		return "quit"
	case k.Help.Key:
		return "help"
	case k.SwitchPane.Key:
		return "switch_pane"
	case k.SwitchPaneRev.Key:
		return "switch_pane_rev"
	case k.AddTask.Key:
		return "add"
	case k.AddUnplanned.Key:
		return "add_unplanned"
	case k.EditTask.Key:
		return "edit"
	case k.DeleteTask.Key:
		return "delete"
	case k.CompleteTask.Key:
		return "complete"
	case k.CopyTask.Key:
		return "copy"
	case k.SignOut.Key:
		return "sign_out"
	}
	return ""
}

// HelpItems returns key-description pairs for the help view. Pairs with
// an empty description are section headers.
func (k Keymap) HelpItems(vim bool) [][]string {
	move := "←↓↑→"
	if vim {
		move = "h/j/k/l"
	}
	return [][]string{
		{"Calendar", ""},
		{move, "Move day cursor"},
		{k.PrevMonth.Key + "/" + k.NextMonth.Key, "Previous/next month"},
		{k.PrevYear.Key + "/" + k.NextYear.Key, "Previous/next year"},
		{k.Today.Key, "Go to today"},
		{k.Select.Key, "Select day"},
		{"General", ""},
		{k.SwitchPane.Key, "Switch pane"},
		{k.SignOut.Key, "Sign out"},
		{k.Help.Key, "Toggle help"},
		{k.Quit.Key, "Quit"},
		{"Tasks", ""},
		{"j/k", "Move in list"},
		{k.AddTask.Key, "Add task to selected day"},
		{k.AddUnplanned.Key, "Add unplanned task"},
		{k.EditTask.Key, "Edit task"},
		{k.DeleteTask.Key, "Delete task"},
		{k.CompleteTask.Key, "Complete/uncomplete"},
		{k.ExpandTask.Key, "Show/hide details"},
		{k.CopyTask.Key, "Copy to clipboard"},
		{"Task Form", ""},
		{"tab/shift+tab", "Next/previous field"},
		{"space", "Toggle all-day or reminder"},
		{"1-3", "Priority high/medium/low"},
		{"ctrl+s", "Save"},
		{k.Back.Key, "Cancel"},
	}
}
