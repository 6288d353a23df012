package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "f1"),
		key.WithHelp("esc/q/f1", "close"),
	),
}

// HelpModel lists the key bindings of every view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, HelpKeys.Close) {
		return m, func() tea.Msg { return SwitchToComposeMsg{} }
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("journey help"))
	b.WriteString("\n\n")

	c := ComposeKeys
	helpSection(&b, "Writing",
		c.Save, c.PrevDay, c.NextDay, c.Today, c.Export, c.Edit)
	helpSection(&b, "Tabs and periods",
		c.NextSource, c.PrevSource, c.CloseSource, c.NextPeriod)
	helpSection(&b, "Views",
		c.Calendar, c.Files, c.Periods, c.Help, c.Quit)

	cal := CalendarKeys
	helpSection(&b, "Calendar",
		cal.Left, cal.Right, cal.Up, cal.Down, cal.PrevYear, cal.NextYear, cal.Open)

	f := FilesKeys
	helpSection(&b, "Documents",
		f.Toggle, f.ToggleAll, f.Filter, f.Apply, f.Directory, f.Clear)

	p := PeriodsKeys
	helpSection(&b, "Periods",
		p.Use, p.Add, p.Edit, p.Remove, p.MoveUp, p.MoveDown)

	b.WriteString(styles.MutedText.Render("Similar entries update as you type. Documents edited elsewhere reload automatically."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpSection(b *strings.Builder, title string, bindings ...key.Binding) {
	b.WriteString(styles.InputLabel.Render(title))
	b.WriteString("\n")
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString(helpLine(h.Key, h.Desc))
	}
	b.WriteString("\n")
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
