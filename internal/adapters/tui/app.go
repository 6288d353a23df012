package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/tui/views"
	"journey/internal/application"
	"journey/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewCompose ViewState = iota
	ViewCalendar
	ViewFiles
	ViewPeriods
	ViewHelp
)

// Options configures the TUI
type Options struct {
	// Editor opens documents externally; nil disables it
	Editor ports.Editor
	// Extensions prefill the directory form
	Extensions []string
	Debounce   time.Duration
	// Reloads delivers the number of documents re-read after changes on disk
	Reloads <-chan int
	Now     views.Clock
}

type reloadedMsg struct {
	n int
}

// App is the main TUI application model
type App struct {
	journal *application.Journal
	reloads <-chan int

	state    ViewState
	compose  *views.ComposeModel
	calendar *views.CalendarModel
	files    *views.FilesModel
	periods  *views.PeriodsModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(journal *application.Journal, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &App{
		journal:  journal,
		reloads:  opts.Reloads,
		state:    ViewCompose,
		compose:  views.NewComposeModel(journal, opts.Editor, opts.Now, opts.Debounce),
		calendar: views.NewCalendarModel(journal, opts.Now),
		files:    views.NewFilesModel(journal, opts.Extensions),
		periods:  views.NewPeriodsModel(journal),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.compose.Init(), a.waitForReload())
}

// Close stops background work of the views
func (a *App) Close() {
	a.compose.Stop()
}

func (a *App) waitForReload() tea.Cmd {
	if a.reloads == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-a.reloads
		if !ok {
			return nil
		}
		return reloadedMsg{n: n}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.compose.SetSize(msg.Width, msg.Height)
		a.calendar.SetSize(msg.Width, msg.Height)
		a.files.SetSize(msg.Width, msg.Height)
		a.periods.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToComposeMsg:
		a.state = ViewCompose
		a.compose.Refresh()
		if msg.Date != "" {
			return a, a.compose.SetDate(msg.Date)
		}
		return a, nil

	case views.SwitchToCalendarMsg:
		a.state = ViewCalendar
		a.calendar.Focus(a.compose.Date())
		return a, nil

	case views.SwitchToFilesMsg:
		a.state = ViewFiles
		return a, a.files.Load()

	case views.SwitchToPeriodsMsg:
		a.state = ViewPeriods
		a.periods.Load()
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SourcesChangedMsg:
		a.compose.Refresh()
		return a, nil

	case reloadedMsg:
		if msg.n > 0 {
			a.compose.Refresh()
			a.compose.SetMessage(fmt.Sprintf("Reloaded %d document(s) changed on disk", msg.n), false)
		}
		return a, a.waitForReload()

	case tea.KeyMsg:
		return a, a.updateCurrent(msg)
	}

	// Compose owns background loops (similar entries, saves) that must keep
	// running while another view is shown
	_, cmd := a.compose.Update(msg)
	if a.state == ViewCompose {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.updateCurrent(msg))
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewCompose:
		_, cmd = a.compose.Update(msg)
	case ViewCalendar:
		_, cmd = a.calendar.Update(msg)
	case ViewFiles:
		_, cmd = a.files.Update(msg)
	case ViewPeriods:
		_, cmd = a.periods.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCalendar:
		return a.calendar.View()
	case ViewFiles:
		return a.files.View()
	case ViewPeriods:
		return a.periods.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.compose.View()
	}
}
