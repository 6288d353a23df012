package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/tui/styles"
	"journey/internal/application"
	"journey/internal/application/commands"
	"journey/internal/domain"
)

// PeriodsKeyMap defines key bindings for the periods view
type PeriodsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Use      key.Binding
	Add      key.Binding
	Edit     key.Binding
	Remove   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Back     key.Binding
}

var PeriodsKeys = PeriodsKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Use:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
	Back:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

const (
	fieldLabel = iota
	fieldValue
	fieldUnit
)

// PeriodsModel manages the "on this day" periods
type PeriodsModel struct {
	ViewState
	journal *application.Journal
	keys    PeriodsKeyMap

	pager   *Paginator
	form    *InputForm
	editing bool
	// editID is the period being edited, empty when adding
	editID  string
	confirm Confirmation
}

// NewPeriodsModel creates the periods view
func NewPeriodsModel(journal *application.Journal) *PeriodsModel {
	m := &PeriodsModel{
		journal: journal,
		keys:    PeriodsKeys,
		pager:   NewPaginator(20),
		form: NewInputForm(
			NewInputField("Label", "3 Weeks Ago", 40),
			NewInputField("Value", "3", 4),
			NewInputField("Unit", "days, weeks, months or years", 6),
		),
	}
	m.pager.SetTotal(len(journal.Periods()))
	return m
}

// Init initializes the periods view
func (m *PeriodsModel) Init() tea.Cmd {
	return nil
}

// Load refreshes the list and puts the cursor on the active period
func (m *PeriodsModel) Load() {
	m.editing = false
	m.confirm.Active = false
	periods := m.journal.Periods()
	m.pager.SetTotal(len(periods))
	active := m.journal.ActivePeriod().ID
	for i, p := range periods {
		if p.ID == active {
			m.pager.SetCursor(i)
		}
	}
}

func (m *PeriodsModel) current() (domain.Period, bool) {
	periods := m.journal.Periods()
	c := m.pager.Cursor()
	if c >= len(periods) {
		return domain.Period{}, false
	}
	return periods[c], true
}

func (m *PeriodsModel) openForm(p domain.Period, id string) tea.Cmd {
	m.editing = true
	m.editID = id
	m.form.Reset()
	if id != "" {
		m.form.SetValue(fieldLabel, p.Label)
		m.form.SetValue(fieldValue, strconv.Itoa(p.Value))
		m.form.SetValue(fieldUnit, string(p.Unit))
	}
	return m.form.Init()
}

func (m *PeriodsModel) submit() {
	value, err := strconv.Atoi(m.form.Value(fieldValue))
	if err != nil {
		m.SetMessage(fmt.Sprintf("Value must be a number, got %q", m.form.Value(fieldValue)), true)
		return
	}
	label, unit := m.form.Value(fieldLabel), m.form.Value(fieldUnit)

	ctx := context.Background()
	var result *commands.PeriodResult
	if m.editID == "" {
		result, err = commands.NewAddPeriodCommand(m.journal, label, unit, value).Execute(ctx)
	} else {
		result, err = commands.NewEditPeriodCommand(m.journal, m.editID, label, unit, value).Execute(ctx)
	}
	if err != nil {
		m.SetError(err)
		return
	}

	m.editing = false
	m.SetMessage(result.Message, false)
	m.pager.SetTotal(len(m.journal.Periods()))
	if m.editID == "" {
		m.pager.SetCursor(len(m.journal.Periods()) - 1)
	}
}

func (m *PeriodsModel) move(delta int) {
	periods := m.journal.Periods()
	from := m.pager.Cursor()
	to := from + delta
	if from >= len(periods) || to < 0 || to >= len(periods) {
		return
	}

	ids := make([]string, len(periods))
	for i, p := range periods {
		ids[i] = p.ID
	}
	ids[from], ids[to] = ids[to], ids[from]

	if err := commands.NewReorderPeriodsCommand(m.journal, ids).Execute(context.Background()); err != nil {
		m.SetError(err)
		return
	}
	m.pager.SetCursor(to)
}

// Update handles messages for the periods view
func (m *PeriodsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			_, cmd := m.form.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if handled, cmd := m.confirm.HandleKeyMsg(keyMsg); handled {
		return m, cmd
	}

	if m.editing {
		switch {
		case key.Matches(keyMsg, m.form.Keys.Cancel):
			m.editing = false
			m.ClearMessage()
			return m, nil
		case key.Matches(keyMsg, m.form.Keys.Submit):
			m.submit()
			return m, nil
		}
		_, cmd := m.form.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return SwitchToComposeMsg{} }

	case key.Matches(keyMsg, m.keys.Up):
		m.pager.Move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.pager.Move(1)

	case key.Matches(keyMsg, m.keys.Use):
		if p, ok := m.current(); ok {
			if err := m.journal.SetActivePeriod(context.Background(), p.ID); err != nil {
				m.SetError(err)
			} else {
				m.SetMessage(fmt.Sprintf("Showing %s", p.Label), false)
			}
		}

	case key.Matches(keyMsg, m.keys.Add):
		return m, m.openForm(domain.Period{}, "")

	case key.Matches(keyMsg, m.keys.Edit):
		if p, ok := m.current(); ok {
			return m, m.openForm(p, p.ID)
		}

	case key.Matches(keyMsg, m.keys.Remove):
		if p, ok := m.current(); ok {
			m.confirm.Ask(fmt.Sprintf("Remove %s?", p.Label), func() tea.Cmd {
				result, err := commands.NewRemovePeriodCommand(m.journal, p.ID).Execute(context.Background())
				if err != nil {
					m.SetError(err)
					return nil
				}
				m.SetMessage(result.Message, false)
				m.pager.SetTotal(len(m.journal.Periods()))
				return nil
			})
		}

	case key.Matches(keyMsg, m.keys.MoveUp):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.MoveDown):
		m.move(1)
	}
	return m, nil
}

// View renders the periods view
func (m *PeriodsModel) View() string {
	v := NewViewBuilder()
	v.Title("Periods")

	if m.editing {
		title := "New period"
		if m.editID != "" {
			title = "Edit period"
		}
		v.Subtitle(title)
		v.Line(m.form.View("save"))
		v.BlankLine()
		v.Message(m.Message, m.MessageErr)
		return v.String()
	}

	v.Subtitle("Which past day to show next to today's entry")
	active := m.journal.ActivePeriod().ID
	periods := m.journal.Periods()
	start, end := m.pager.VisibleRange()
	for i := start; i < end && i < len(periods); i++ {
		p := periods[i]
		mark := "  "
		if p.ID == active {
			mark = styles.Checked.Render("● ")
		}
		row := fmt.Sprintf("%s%-16s %s", mark, p.Label, styles.MutedText.Render(p.String()))
		if i == m.pager.Cursor() {
			row = styles.RowSelected.Render(row)
		}
		v.Line(row)
	}
	v.BlankLine()

	if m.confirm.Active {
		v.Line(m.confirm.View())
	} else {
		v.Message(m.Message, m.MessageErr)
	}
	v.Help(m.keys.Use, m.keys.Add, m.keys.Edit, m.keys.Remove, m.keys.MoveUp, m.keys.MoveDown, m.keys.Back)
	return v.String()
}
