package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"

	"journey/internal/adapters/tui/styles"
	"journey/internal/application"
	"journey/internal/application/commands"
	"journey/internal/ports"
)

// FilesKeyMap defines key bindings for the files view
type FilesKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Filter    key.Binding
	Apply     key.Binding
	Directory key.Binding
	Clear     key.Binding
	Back      key.Binding
}

var FilesKeys = FilesKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextPage:  key.NewBinding(key.WithKeys("pgdown", "right"), key.WithHelp("pgdn", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("pgup", "left"), key.WithHelp("pgup", "prev page")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "update list")),
	Directory: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "directory")),
	Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "forget directory")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

type filesMode int

const (
	filesBrowse filesMode = iota
	filesFilter
	filesDirectory
)

type filesSyncedMsg struct {
	result *commands.SyncResult
	err    error
}

// FilesModel picks which documents of the selected directory are open as
// tabs
type FilesModel struct {
	ViewState
	journal    *application.Journal
	extensions []string
	keys       FilesKeyMap

	mode     filesMode
	filter   textinput.Model
	form     *InputForm
	files    []ports.DiscoveredFile
	visible  []commands.ScoredFile
	selected map[string]bool
	pager    *Paginator
	confirm  Confirmation
}

// NewFilesModel creates the files view. extensions prefill the directory
// form.
func NewFilesModel(journal *application.Journal, extensions []string) *FilesModel {
	filter := textinput.New()
	filter.Placeholder = "filter files"
	filter.Prompt = "/ "

	return &FilesModel{
		journal:    journal,
		extensions: extensions,
		keys:       FilesKeys,
		filter:     filter,
		form: NewInputForm(
			NewInputField("Directory", "~/Documents/journal", 0),
			NewInputField("Extensions", "md, txt", 0),
		),
		selected: make(map[string]bool),
		pager:    NewPaginator(10),
	}
}

// Init initializes the files view
func (m *FilesModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (m *FilesModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(max(height-14, 5))
}

// Load rescans the remembered directory and restores its selection. Without
// a directory the directory form is shown.
func (m *FilesModel) Load() tea.Cmd {
	m.confirm.Active = false
	settings := m.journal.Directory()
	if settings.Directory == "" {
		return m.openDirectoryForm()
	}

	ctx := context.Background()
	files, err := m.journal.Scan(ctx)
	if err != nil {
		m.SetError(err)
		files = nil
	}
	m.files = files
	m.mode = filesBrowse

	selection, err := m.journal.Selection(ctx)
	if err != nil {
		m.SetError(err)
	}
	if len(selection) == 0 {
		for _, s := range m.journal.Sources() {
			if s.File {
				selection = append(selection, s.Key)
			}
		}
	}
	m.selected = make(map[string]bool, len(selection))
	for _, path := range selection {
		m.selected[path] = true
	}

	m.applyFilter()
	return nil
}

func (m *FilesModel) openDirectoryForm() tea.Cmd {
	settings := m.journal.Directory()
	exts := settings.Extensions
	if len(exts) == 0 {
		exts = m.extensions
	}

	m.mode = filesDirectory
	m.form.Reset()
	m.form.SetValue(0, settings.Directory)
	m.form.SetValue(1, strings.Join(exts, ", "))
	return m.form.Init()
}

func (m *FilesModel) applyFilter() {
	m.visible = commands.FilterFiles(m.files, m.filter.Value())
	m.pager.SetTotal(len(m.visible))
}

// SelectedPaths returns the checked files in directory order
func (m *FilesModel) SelectedPaths() []string {
	var out []string
	for _, f := range m.files {
		if m.selected[f.RelPath] {
			out = append(out, f.RelPath)
		}
	}
	return out
}

func (m *FilesModel) toggleAll() {
	all := true
	for _, f := range m.visible {
		if !m.selected[f.RelPath] {
			all = false
			break
		}
	}
	for _, f := range m.visible {
		m.selected[f.RelPath] = !all
	}
}

func (m *FilesModel) syncCmd() tea.Cmd {
	selected := m.SelectedPaths()
	return func() tea.Msg {
		result, err := commands.NewSyncCommand(m.journal, selected, false).Execute(context.Background())
		return filesSyncedMsg{result: result, err: err}
	}
}

func (m *FilesModel) submitDirectory() tea.Cmd {
	root, err := homedir.Expand(m.form.Value(0))
	if err != nil {
		m.SetError(err)
		return nil
	}
	exts := splitExtensions(m.form.Value(1))

	_, err = commands.NewSelectDirectoryCommand(m.journal, root, exts).Execute(context.Background())
	if errors.Is(err, application.ErrAborted) {
		return m.cancelDirectory()
	}
	if err != nil {
		m.SetError(err)
		return nil
	}
	m.SetMessage(fmt.Sprintf("Directory set to %s", m.journal.Directory().Directory), false)
	m.filter.SetValue("")
	return tea.Batch(m.Load(), sourcesChanged)
}

func (m *FilesModel) cancelDirectory() tea.Cmd {
	if m.journal.Directory().Directory == "" {
		return func() tea.Msg { return SwitchToComposeMsg{} }
	}
	m.mode = filesBrowse
	m.ClearMessage()
	return nil
}

func sourcesChanged() tea.Msg {
	return SourcesChangedMsg{}
}

func splitExtensions(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// Update handles messages for the files view
func (m *FilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filesSyncedMsg:
		if msg.result == nil {
			m.SetError(msg.err)
			return m, nil
		}
		text := msg.result.Message
		if msg.err != nil {
			text += ": " + msg.err.Error()
		}
		m.SetMessage(text, msg.err != nil)
		stats := msg.result.Stats
		return m, func() tea.Msg { return SourcesChangedMsg{Stats: stats} }

	case tea.KeyMsg:
		if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		switch m.mode {
		case filesDirectory:
			return m.updateDirectory(msg)
		case filesFilter:
			return m.updateFilter(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == filesDirectory {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *FilesModel) updateDirectory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Keys.Cancel):
		return m, m.cancelDirectory()
	case key.Matches(msg, m.form.Keys.Submit):
		return m, m.submitDirectory()
	}
	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FilesModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.mode = filesBrowse
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *FilesModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m, func() tea.Msg { return SwitchToComposeMsg{} }

	case key.Matches(msg, m.keys.Up):
		m.pager.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.pager.Move(1)
	case key.Matches(msg, m.keys.NextPage):
		m.pager.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, m.keys.Toggle):
		if c := m.pager.Cursor(); c < len(m.visible) {
			path := m.visible[c].RelPath
			m.selected[path] = !m.selected[path]
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.toggleAll()

	case key.Matches(msg, m.keys.Filter):
		m.mode = filesFilter
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Apply):
		return m, m.syncCmd()

	case key.Matches(msg, m.keys.Directory):
		return m, m.openDirectoryForm()

	case key.Matches(msg, m.keys.Clear):
		dir := m.journal.Directory().Directory
		m.confirm.Ask(fmt.Sprintf("Forget %s?", dir), func() tea.Cmd {
			if err := m.journal.ClearDirectory(context.Background()); err != nil {
				m.SetError(err)
				return nil
			}
			m.files = nil
			m.selected = make(map[string]bool)
			m.applyFilter()
			m.SetMessage("Directory forgotten and its documents closed", false)
			return tea.Batch(m.openDirectoryForm(), sourcesChanged)
		})
	}
	return m, nil
}

// View renders the files view
func (m *FilesModel) View() string {
	v := NewViewBuilder()
	v.Title("Documents")

	if m.mode == filesDirectory {
		v.Subtitle("Choose a directory with journal documents")
		v.Line(m.form.View("scan"))
		v.BlankLine()
		v.Message(m.Message, m.MessageErr)
		return v.String()
	}

	settings := m.journal.Directory()
	v.Subtitle(fmt.Sprintf("%s  (%s)", settings.Directory, strings.Join(settings.Extensions, ", ")))

	if m.mode == filesFilter || m.filter.Value() != "" {
		v.Line(m.filter.View())
		v.BlankLine()
	}

	if len(m.visible) == 0 {
		v.Muted("No matching documents")
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.visible[i].DiscoveredFile, i == m.pager.Cursor()))
	}
	v.BlankLine()

	selected := m.SelectedPaths()
	status := fmt.Sprintf("%d of %d selected  page %d/%d", len(selected), len(m.files), m.pager.CurrentPage(), m.pager.TotalPages())
	if m.journal.PendingChanges(selected) {
		status += "  " + styles.ReadOnly.Render("changes not applied")
	}
	v.Muted(status)
	v.BlankLine()

	if m.confirm.Active {
		v.Line(m.confirm.View())
	} else {
		v.Message(m.Message, m.MessageErr)
	}
	v.Help(m.keys.Toggle, m.keys.ToggleAll, m.keys.Filter, m.keys.Apply, m.keys.Directory, m.keys.Clear, m.keys.Back)
	return v.String()
}

func (m *FilesModel) renderRow(f ports.DiscoveredFile, current bool) string {
	box := "[ ]"
	if m.selected[f.RelPath] {
		box = styles.Checked.Render("[x]")
	}
	label := f.RelPath
	if !f.Writable {
		label += " " + styles.ReadOnly.Render("(read-only)")
	}
	size := styles.MutedText.Render(fmt.Sprintf("%.1f KB", float64(f.Size)/1024))

	row := fmt.Sprintf("%s %s  %s", box, label, size)
	if current {
		return styles.RowSelected.Render("> " + row)
	}
	return "  " + row
}
