package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/daycal/internal/calendar"
	"github.com/hy4ri/daycal/internal/task"
	"github.com/hy4ri/daycal/internal/tui/styles"
)

// CalendarModel manages the month grid.
type CalendarModel struct {
	month    calendar.Month
	cursor   int
	selected string
	today    string
	selector calendar.Selector
	vim      bool

	tasks []task.Task
	byDay map[int][]task.Task

	width, height int
	focused       bool
}

// NewCalendar creates a calendar showing the month of now with today selected.
func NewCalendar(now time.Time, selector calendar.Selector, vim bool) *CalendarModel {
	return &CalendarModel{
		month:    calendar.MonthOf(now),
		cursor:   now.Day(),
		selected: calendar.Today(now),
		today:    calendar.Today(now),
		selector: selector,
		vim:      vim,
		byDay:    make(map[int][]task.Task),
	}
}

// Init implements Component.
func (c *CalendarModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (c *CalendarModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.handleKeyMsg(msg)
	}
	return c, nil
}

// handleKeyMsg processes keyboard input for calendar navigation.
func (c *CalendarModel) handleKeyMsg(msg tea.KeyMsg) (Component, tea.Cmd) {
	key := msg.String()
	if !c.vim {
		switch key {
		case "h", "j", "k", "l":
			return c, nil
		}
	}

	switch key {
	case "h", "left":
		return c, c.moveDay(-1)
	case "l", "right":
		return c, c.moveDay(1)
	case "k", "up":
		return c, c.moveDay(-7)
	case "j", "down":
		return c, c.moveDay(7)
	case "[":
		return c, c.setMonth(c.month.Prev(), 0)
	case "]":
		return c, c.setMonth(c.month.Next(), 0)
	case "{":
		return c, c.setMonth(c.month.PrevYear(), 0)
	case "}":
		return c, c.setMonth(c.month.NextYear(), 0)
	case "t":
		return c, c.GoToday()
	case "enter":
		date, err := c.selector.Select(c.month, c.cursor, c.today)
		if err != nil {
			return c, func() tea.Msg { return SelectionErrorMsg{Err: err} }
		}
		c.selected = date
		return c, func() tea.Msg { return DaySelectedMsg{Date: date} }
	}
	return c, nil
}

// moveDay moves the cursor, rolling into the neighbouring month.
func (c *CalendarModel) moveDay(delta int) tea.Cmd {
	target := c.cursor + delta
	switch {
	case target < 1:
		prev := c.month.Prev()
		day := target + prev.Days()
		if day < 1 {
			day = 1
		}
		return c.setMonth(prev, day)
	case target > c.month.Days():
		next := c.month.Next()
		day := target - c.month.Days()
		if day > next.Days() {
			day = next.Days()
		}
		return c.setMonth(next, day)
	}
	c.cursor = target
	return nil
}

// setMonth switches to m and re-applies the selection clamp. A zero cursor
// follows the clamped selection.
func (c *CalendarModel) setMonth(m calendar.Month, cursor int) tea.Cmd {
	c.month = m.Normalize()
	c.selected = c.selector.Clamp(c.selected, c.month, c.today)
	c.index()

	switch {
	case cursor > 0:
		c.cursor = cursor
	case strings.HasPrefix(c.selected, c.month.Prefix()+"-"):
		c.cursor = calendar.DayOf(c.selected)
	default:
		c.cursor = 1
	}

	month, selected := c.month, c.selected
	return func() tea.Msg {
		return MonthChangedMsg{Month: month, Selected: selected}
	}
}

// GoToday shows the current month and selects today.
func (c *CalendarModel) GoToday() tea.Cmd {
	t, err := calendar.ParseDate(c.today, time.Local)
	if err != nil {
		return nil
	}
	c.month = calendar.MonthOf(t)
	c.cursor = t.Day()
	c.selected = c.today
	c.index()

	date := c.today
	return func() tea.Msg { return DaySelectedMsg{Date: date} }
}

// View implements Component.
func (c *CalendarModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %d", time.Month(c.month.Month), c.month.Year)
	b.WriteString(styles.CalendarHeader.Render(header))
	b.WriteString("\n")

	cellWidth := c.cellWidth()
	previews := c.previewLines()
	grid := calendar.Grid(c.month.Year, c.month.Month)
	counts := task.CountByDay(c.tasks, c.month)

	for _, wd := range calendar.Weekdays {
		b.WriteString(styles.CalendarWeekday.Render(padRight(" "+wd, cellWidth)))
	}
	b.WriteString("\n")

	for week := 0; week < calendar.Weeks; week++ {
		// Empty trailing weeks are still drawn so the grid keeps its height.
		row := grid[week*7 : (week+1)*7]
		for weekday, day := range row {
			if day == 0 {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(c.renderDay(day, weekday, counts[day], cellWidth))
		}
		b.WriteString("\n")

		for line := 0; line < previews; line++ {
			for _, day := range row {
				b.WriteString(c.renderPreview(day, line, previews, cellWidth))
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (c *CalendarModel) renderDay(day, weekday, count, width int) string {
	date := c.month.Date(day)

	label := fmt.Sprintf(" %2d", day)
	if count > 0 {
		label += "*"
	}

	style := styles.CalendarDay
	switch {
	case day == c.cursor && c.focused:
		style = styles.CalendarDayCursor
	case date == c.selected:
		style = styles.CalendarDaySelected
	case date == c.today:
		style = styles.CalendarDayToday
	case c.selector.BlockPast && calendar.IsPast(date, c.today):
		style = styles.CalendarDayPast
	case count > 0:
		style = styles.CalendarDayWithTasks
	case weekday == 0 || weekday == 6:
		style = styles.CalendarDayWeekend
	}
	return style.Render(padRight(label, width))
}

func (c *CalendarModel) renderPreview(day, line, lines, width int) string {
	if day == 0 {
		return strings.Repeat(" ", width)
	}
	tasks := c.byDay[day]

	switch {
	case line == lines-1 && len(tasks) > lines:
		more := fmt.Sprintf(" +%d more", len(tasks)-lines+1)
		return styles.CalendarMoreTasks.Render(padRight(more, width))
	case line < len(tasks):
		t := tasks[line]
		text := padRight(" "+t.Title, width)
		switch {
		case t.Completed:
			return styles.TaskCompleted.Render(text)
		case t.Priority == "":
			return styles.CalendarTaskPreview.Render(text)
		}
		return styles.GetPriorityStyle(t.Priority).Render(text)
	}
	return strings.Repeat(" ", width)
}

func (c *CalendarModel) cellWidth() int {
	w := c.width / 7
	if w < 5 {
		w = 5
	}
	if w > 20 {
		w = 20
	}
	return w
}

// previewLines is the number of task titles shown under each day.
func (c *CalendarModel) previewLines() int {
	if c.cellWidth() < 8 {
		return 0
	}
	// Header and weekday rows, then one day row per week.
	n := (c.height-2)/calendar.Weeks - 1
	if n < 0 {
		return 0
	}
	if n > 3 {
		return 3
	}
	return n
}

// SetSize implements Component.
func (c *CalendarModel) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Focus sets focus on the calendar.
func (c *CalendarModel) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *CalendarModel) Blur() {
	c.focused = false
}

// Focused returns focus state.
func (c *CalendarModel) Focused() bool {
	return c.focused
}

// SetTasks replaces the task snapshot shown in the grid.
func (c *CalendarModel) SetTasks(tasks []task.Task) {
	c.tasks = tasks
	c.index()
}

// index groups the dated tasks of the shown month by day.
func (c *CalendarModel) index() {
	c.byDay = make(map[int][]task.Task)
	prefix := c.month.Prefix() + "-"
	for _, t := range c.tasks {
		if strings.HasPrefix(t.Date, prefix) {
			day := calendar.DayOf(t.Date)
			c.byDay[day] = append(c.byDay[day], t)
		}
	}
}

// SetToday updates the current date, e.g. after midnight.
func (c *CalendarModel) SetToday(today string) {
	c.today = today
}

// Month returns the shown month.
func (c *CalendarModel) Month() calendar.Month {
	return c.month
}

// Cursor returns the day under the cursor.
func (c *CalendarModel) Cursor() int {
	return c.cursor
}

// Selected returns the selected date.
func (c *CalendarModel) Selected() string {
	return c.selected
}

// CanAdd reports whether tasks may be added to the selected date.
func (c *CalendarModel) CanAdd() bool {
	return c.selector.CanAdd(c.selected, c.today)
}
