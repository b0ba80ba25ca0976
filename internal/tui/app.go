package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/calendar"
	"github.com/hy4ri/daycal/internal/config"
	"github.com/hy4ri/daycal/internal/reminder"
	"github.com/hy4ri/daycal/internal/store"
	"github.com/hy4ri/daycal/internal/tui/components"
	"github.com/hy4ri/daycal/internal/tui/state"
	"github.com/hy4ri/daycal/internal/tui/styles"
)

// Options carries the collaborators of the App. Zero values select the
// production behaviour.
type Options struct {
	Config *config.Config
	Log    *zap.SugaredLogger

	// Dispatcher sends desktop notifications for due reminders; nil
	// disables them.
	Dispatcher *reminder.Dispatcher

	Now       func() time.Time
	Clipboard func(string) error
	SignOut   func() error
}

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	store      store.Store
	config     *config.Config
	log        *zap.SugaredLogger
	dispatcher *reminder.Dispatcher
	now        func() time.Time
	copyText   func(string) error
	signOut    func() error

	state   *state.State
	keymap  Keymap
	spinner spinner.Model
	pending int

	// UI Components
	calendarComp *components.CalendarModel
	dayComp      *components.TaskListModel
	sidebarComp  *components.SidebarModel
	helpComp     *components.HelpModel

	// Subscription bridge
	ctx       context.Context
	cancel    context.CancelFunc
	snapshots chan store.Snapshot
	sub       *store.Subscription
}

// NewApp creates a new App reading and writing tasks through st.
func NewApp(st store.Store, opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	signOut := opts.SignOut
	if signOut == nil {
		signOut = config.ClearToken
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	ctx, cancel := context.WithCancel(context.Background())
	selector := calendar.Selector{BlockPast: cfg.Calendar.BlockPastDays}
	current := now()

	form := state.NewTaskForm(cfg.Reminders.Options, cfg.Reminders.AllDayDayBefore)

	app := &App{
		store:      st,
		config:     cfg,
		log:        log,
		dispatcher: opts.Dispatcher,
		now:        now,
		copyText:   copyText,
		signOut:    signOut,

		state:   state.New(current, form),
		keymap:  DefaultKeymap(),
		spinner: s,
		pending: 1,

		calendarComp: components.NewCalendar(current, selector, cfg.UI.VimMode),
		dayComp:      components.NewTaskList("Tasks", "No tasks for this day"),
		sidebarComp:  components.NewSidebar(),
		helpComp:     components.NewHelp(),

		ctx:       ctx,
		cancel:    cancel,
		snapshots: make(chan store.Snapshot, 1),
	}

	app.helpComp.SetKeymap(app.keymap.HelpItems(cfg.UI.VimMode))
	app.calendarComp.Focus()
	app.refreshComponents()

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.subscribe(),
		waitForSnapshot(a.ctx, a.snapshots),
		reminderTick(),
	)
}

// Close releases the store subscription.
func (a *App) Close() {
	a.cancel()
	a.sub.Unsubscribe()
}

// refreshComponents pushes the current snapshot and selection into the
// components.
func (a *App) refreshComponents() {
	now := a.now()

	a.calendarComp.SetToday(calendar.Today(now))
	a.calendarComp.SetTasks(a.state.Tasks)

	a.dayComp.SetNow(now)
	a.dayComp.SetTitle(dayTitle(a.state.Selected))
	a.dayComp.SetTasks(a.state.DayTasks())

	a.sidebarComp.SetNow(now)
	a.sidebarComp.SetTasks(a.state.UnplannedTasks())
}

// focusPane moves keyboard focus to the pane recorded in the state.
func (a *App) focusPane() {
	a.calendarComp.Blur()
	a.dayComp.Blur()
	a.sidebarComp.Blur()

	switch a.state.Pane {
	case state.PaneCalendar:
		a.calendarComp.Focus()
	case state.PaneDay:
		a.dayComp.Focus()
	case state.PaneUnplanned:
		a.sidebarComp.Focus()
	}
}

func dayTitle(date string) string {
	t, err := calendar.ParseDate(date, time.Local)
	if err != nil {
		return "Tasks"
	}
	return t.Format("Monday, January 2")
}

// Message types
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type signedOutMsg struct{}
type reminderTickMsg time.Time
