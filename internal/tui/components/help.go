package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/daycal/internal/tui/styles"
)

// HelpModel renders the help overlay with keyboard shortcuts.
type HelpModel struct {
	width, height int
	keymap        [][]string
}

// NewHelp creates a new HelpModel.
func NewHelp() *HelpModel {
	return &HelpModel{}
}

// Init implements Component.
func (h *HelpModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (h *HelpModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg {
				return HelpClosedMsg{}
			}
		}
	}
	return h, nil
}

// View implements Component. Items with an empty description are section
// headers; the calendar and general sections go in the first column.
func (h *HelpModel) View() string {
	if len(h.keymap) == 0 {
		return styles.Dialog.Render("No keybindings registered")
	}

	col1Sections := map[string]bool{
		"Calendar": true,
		"General":  true,
	}

	var col1, col2 strings.Builder
	current := &col1

	for _, item := range h.keymap {
		if len(item) < 2 {
			continue
		}
		key, desc := item[0], item[1]

		if desc == "" {
			if col1Sections[key] {
				current = &col1
			} else {
				current = &col2
			}
			current.WriteString("\n" + styles.SectionHeader.Render(" "+key+" ") + "\n")
			continue
		}

		keyStyle := styles.HelpKey.Width(12).Align(lipgloss.Right).PaddingRight(2)
		current.WriteString(keyStyle.Render(key) + styles.HelpDesc.Render(desc) + "\n")
	}

	colWidth := h.width / 2
	if colWidth > 50 {
		colWidth = 50
	}
	columnStyle := lipgloss.NewStyle().Width(colWidth).PaddingLeft(2).PaddingRight(2)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(col1.String()),
		columnStyle.Render(col2.String()),
	))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Press ESC or ? to close"))

	return styles.Dialog.Render(b.String())
}

// SetSize implements Component.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// SetKeymap sets the help items.
func (h *HelpModel) SetKeymap(items [][]string) {
	h.keymap = items
}
