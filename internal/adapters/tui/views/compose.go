package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"journey/internal/adapters/tui/styles"
	"journey/internal/application"
	"journey/internal/application/commands"
	"journey/internal/debounce"
	"journey/internal/domain"
	"journey/internal/ports"
)

// ComposeKeyMap defines key bindings for the compose view
type ComposeKeyMap struct {
	Save        key.Binding
	PrevDay     key.Binding
	NextDay     key.Binding
	Today       key.Binding
	NextSource  key.Binding
	PrevSource  key.Binding
	CloseSource key.Binding
	NextPeriod  key.Binding
	Export      key.Binding
	Edit        key.Binding
	Calendar    key.Binding
	Files       key.Binding
	Periods     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var ComposeKeys = ComposeKeyMap{
	Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	PrevDay:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev day")),
	NextDay:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next day")),
	Today:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "today")),
	NextSource:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevSource:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	CloseSource: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close tab")),
	NextPeriod:  key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "next period")),
	Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "copy export")),
	Edit:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "open in editor")),
	Calendar:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "calendar")),
	Files:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "files")),
	Periods:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "periods")),
	Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

type similarQuery struct {
	date string
	text string
}

type similarQueryMsg similarQuery

type savedMsg struct {
	source string
	date   string
	text   string
	result *commands.SaveEntryResult
	err    error
}

type exportedMsg struct {
	result *commands.ExportResult
	err    error
}

type editorFinishedMsg struct {
	path string
	err  error
}

// ComposeModel edits the entry of one day and shows related entries
type ComposeModel struct {
	ViewState
	journal  *application.Journal
	external ports.Editor
	now      Clock
	keys     ComposeKeyMap

	editor  textarea.Model
	source  string
	date    string
	saved   string
	similar []domain.Candidate
	period  domain.Period
	past    []domain.Entry

	debouncer *debounce.Debouncer
	queries   chan similarQuery
	confirm   Confirmation
}

// NewComposeModel creates the compose view. Similar entries are recomputed
// once typing pauses for delay. external may be nil.
func NewComposeModel(journal *application.Journal, external ports.Editor, now Clock, delay time.Duration) *ComposeModel {
	editor := textarea.New()
	editor.Placeholder = "How was your day?"
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Focus()

	m := &ComposeModel{
		journal:   journal,
		external:  external,
		now:       now,
		keys:      ComposeKeys,
		editor:    editor,
		debouncer: debounce.New(delay),
		queries:   make(chan similarQuery, 1),
	}
	m.load(domain.Today(now()))
	return m
}

// Init starts the cursor blink and the similar-entries listener
func (m *ComposeModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForQuery())
}

func (m *ComposeModel) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		return similarQueryMsg(<-m.queries)
	}
}

// Date returns the day being edited
func (m *ComposeModel) Date() string {
	return m.date
}

// Dirty reports whether the draft differs from the stored entry
func (m *ComposeModel) Dirty() bool {
	return strings.TrimSpace(m.editor.Value()) != strings.TrimSpace(m.saved)
}

// Stop cancels a pending similar-entries computation
func (m *ComposeModel) Stop() {
	m.debouncer.Stop()
}

// SetSize updates the view dimensions
func (m *ComposeModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.editor.SetWidth(max(width*3/5-4, 20))
	m.editor.SetHeight(max(height-10, 5))
}

// SetDate switches the edited day, saving a dirty draft first
func (m *ComposeModel) SetDate(date string) tea.Cmd {
	if date == m.date {
		return nil
	}
	cmd := m.saveIfDirty()
	m.load(date)
	return cmd
}

// Refresh reloads the stored entry after sources changed elsewhere. An
// unsaved draft is kept.
func (m *ComposeModel) Refresh() {
	if !m.Dirty() {
		m.load(m.date)
		return
	}
	m.refreshPast()
}

func (m *ComposeModel) load(date string) {
	m.source = m.journal.Active().Key
	m.date = date
	m.saved, _ = m.journal.Entry(date)
	m.editor.SetValue(m.saved)
	m.similar = nil
	m.refreshPast()
	m.scheduleSimilar()
}

func (m *ComposeModel) refreshPast() {
	ref, err := domain.FromKey(m.date)
	if err != nil {
		return
	}
	m.period, m.past = m.journal.PastEntries(ref)
}

func (m *ComposeModel) scheduleSimilar() {
	q := similarQuery{date: m.date, text: m.editor.Value()}
	m.debouncer.Trigger(func() {
		select {
		case <-m.queries:
		default:
		}
		select {
		case m.queries <- q:
		default:
		}
	})
}

func (m *ComposeModel) saveIfDirty() tea.Cmd {
	if !m.Dirty() {
		return nil
	}
	return m.saveCmd()
}

func (m *ComposeModel) saveCmd() tea.Cmd {
	source, date, text := m.source, m.date, m.editor.Value()
	return func() tea.Msg {
		cmd := commands.NewSaveEntryCommand(m.journal, date, text)
		cmd.Source = source
		result, err := cmd.Execute(context.Background())
		return savedMsg{source: source, date: date, text: text, result: result, err: err}
	}
}

func (m *ComposeModel) exportCmd() tea.Cmd {
	now := m.now()
	return func() tea.Msg {
		result, err := commands.NewExportCommand(m.journal, now).Execute(context.Background())
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := clipboard.WriteAll(result.Text); err != nil {
			return exportedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return exportedMsg{result: result}
	}
}

func (m *ComposeModel) editCmd() tea.Cmd {
	active := m.journal.Active()
	if !active.File || m.external == nil {
		m.SetMessage("Only document tabs open in an editor", true)
		return nil
	}
	cmd, err := m.external.Command(active.Path)
	if err != nil {
		m.SetError(err)
		return nil
	}

	path := active.Path
	edit := tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
	if save := m.saveIfDirty(); save != nil {
		return tea.Sequence(save, edit)
	}
	return edit
}

func (m *ComposeModel) shiftDay(days int) tea.Cmd {
	t, err := domain.FromKey(m.date)
	if err != nil {
		return nil
	}
	return m.SetDate(domain.ToKey(domain.Shift(t, domain.UnitDays, days)))
}

func (m *ComposeModel) switchSource(delta int) tea.Cmd {
	sources := m.journal.Sources()
	if len(sources) < 2 {
		return nil
	}
	cmd := m.saveIfDirty()
	next := (m.journal.Active().Index + delta + len(sources)) % len(sources)
	m.SetError(m.journal.SwitchSource(next))
	m.load(m.date)
	return cmd
}

func (m *ComposeModel) cyclePeriod() {
	periods := m.journal.Periods()
	active := m.journal.ActivePeriod().ID
	for i, p := range periods {
		if p.ID == active {
			next := periods[(i+1)%len(periods)]
			m.SetError(m.journal.SetActivePeriod(context.Background(), next.ID))
			break
		}
	}
	m.refreshPast()
}

// Update handles messages for the compose view
func (m *ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case similarQueryMsg:
		if msg.date == m.date {
			m.similar = m.journal.Similar(msg.text, msg.date)
		}
		return m, m.waitForQuery()

	case savedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		} else {
			m.SetMessage(msg.result.Message, false)
		}
		if msg.source == m.source && msg.date == m.date && msg.result != nil {
			m.saved = msg.text
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		} else {
			m.SetMessage(fmt.Sprintf("Copied %s to clipboard (%d entries)", msg.result.Filename, msg.result.Entries), false)
		}
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
			return m, nil
		}
		n, err := m.journal.Reload(context.Background(), []string{msg.path})
		if err != nil {
			m.SetError(err)
		} else if n > 0 {
			m.SetMessage("Reloaded after editing", false)
		}
		m.load(m.date)
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *ComposeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() {
			m.confirm.Ask("Discard unsaved changes and quit?", func() tea.Cmd { return tea.Quit })
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.shiftDay(-1)

	case key.Matches(msg, m.keys.NextDay):
		return m, m.shiftDay(1)

	case key.Matches(msg, m.keys.Today):
		return m, m.SetDate(domain.Today(m.now()))

	case key.Matches(msg, m.keys.NextSource):
		return m, m.switchSource(1)

	case key.Matches(msg, m.keys.PrevSource):
		return m, m.switchSource(-1)

	case key.Matches(msg, m.keys.CloseSource):
		active := m.journal.Active()
		if !active.File {
			m.SetMessage("The local journal cannot be closed", true)
			return m, nil
		}
		m.confirm.Ask(fmt.Sprintf("Close %s?", active.Name), func() tea.Cmd {
			m.SetError(m.journal.CloseSource(active.Index))
			m.load(m.date)
			return nil
		})
		return m, nil

	case key.Matches(msg, m.keys.NextPeriod):
		m.cyclePeriod()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Edit):
		return m, m.editCmd()

	case key.Matches(msg, m.keys.Calendar):
		return m, tea.Batch(m.saveIfDirty(), func() tea.Msg { return SwitchToCalendarMsg{} })

	case key.Matches(msg, m.keys.Files):
		return m, tea.Batch(m.saveIfDirty(), func() tea.Msg { return SwitchToFilesMsg{} })

	case key.Matches(msg, m.keys.Periods):
		return m, func() tea.Msg { return SwitchToPeriodsMsg{} }

	case key.Matches(msg, m.keys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.ClearMessage()
		m.scheduleSimilar()
	}
	return m, cmd
}

// View renders the compose view
func (m *ComposeModel) View() string {
	v := NewViewBuilder()
	v.Title("journey")
	v.Tabs(m.journal.Sources())
	v.Line(RenderDayHeader(m.date, domain.Today(m.now()), m.Dirty()))

	panelWidth := max(m.Width-m.editor.Width()-10, 24)
	side := lipgloss.JoinVertical(lipgloss.Left,
		styles.Panel.Width(panelWidth).Render(RenderSimilar(m.similar, panelWidth)),
		styles.Panel.Width(panelWidth).Render(RenderPast(m.period, m.date, m.past, panelWidth)),
	)
	v.Line(lipgloss.JoinHorizontal(lipgloss.Top, m.editor.View(), "  ", side))
	v.BlankLine()

	if m.confirm.Active {
		v.Line(m.confirm.View())
	} else {
		v.Message(m.Message, m.MessageErr)
	}
	v.Help(m.keys.Save, m.keys.PrevDay, m.keys.NextDay, m.keys.NextSource, m.keys.Calendar, m.keys.Files, m.keys.Help, m.keys.Quit)
	return v.String()
}
