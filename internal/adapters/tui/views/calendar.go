package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/tui/styles"
	"journey/internal/application"
	"journey/internal/domain"
)

// Cell glyphs for days without and with an entry
const (
	EmptyCell  = "·"
	FilledCell = "■"
)

// CalendarKeyMap defines key bindings for the calendar view
type CalendarKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Open     key.Binding
	Back     key.Binding
}

var CalendarKeys = CalendarKeyMap{
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev day")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next day")),
	PrevYear: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev year")),
	NextYear: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next year")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "write")),
	Back:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

// CalendarModel shows a year of activity and picks a day to write
type CalendarModel struct {
	ViewState
	journal *application.Journal
	now     Clock
	keys    CalendarKeyMap
	cursor  time.Time
}

// NewCalendarModel creates the calendar view
func NewCalendarModel(journal *application.Journal, now Clock) *CalendarModel {
	t := now()
	return &CalendarModel{
		journal: journal,
		now:     now,
		keys:    CalendarKeys,
		cursor:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local),
	}
}

// Init initializes the calendar view
func (m *CalendarModel) Init() tea.Cmd {
	return nil
}

// Focus moves the cursor to date
func (m *CalendarModel) Focus(date string) {
	if t, err := domain.FromKey(date); err == nil {
		m.cursor = t
	}
}

// Cursor returns the highlighted day
func (m *CalendarModel) Cursor() string {
	return domain.ToKey(m.cursor)
}

func (m *CalendarModel) move(unit domain.Unit, amount int) {
	m.cursor = domain.Shift(m.cursor, unit, amount)
}

// Update handles messages for the calendar view
func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.move(domain.UnitWeeks, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.move(domain.UnitWeeks, 1)
	case key.Matches(keyMsg, m.keys.Up):
		m.move(domain.UnitDays, -1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(domain.UnitDays, 1)
	case key.Matches(keyMsg, m.keys.PrevYear):
		m.move(domain.UnitYears, -1)
	case key.Matches(keyMsg, m.keys.NextYear):
		m.move(domain.UnitYears, 1)
	case key.Matches(keyMsg, m.keys.Open):
		date := m.Cursor()
		return m, func() tea.Msg { return SwitchToComposeMsg{Date: date} }
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return SwitchToComposeMsg{} }
	}
	return m, nil
}

// View renders the calendar view
func (m *CalendarModel) View() string {
	v := NewViewBuilder()
	v.Title("Calendar")
	v.Tabs(m.journal.Sources())

	year := m.cursor.Year()
	v.Line(m.renderYears(year))
	v.BlankLine()

	activity := m.journal.Activity(year)
	v.Line(RenderHeatMap(year, activity, m.Cursor(), domain.Today(m.now())))
	v.Line(renderLegend())
	v.BlankLine()

	date := m.Cursor()
	v.Line(styles.InputLabel.Render(fmt.Sprintf("%s  %s", date, m.cursor.Weekday())))
	if body, ok := m.journal.Entry(date); ok {
		v.Line(domain.Truncate(oneLine(body), max(m.Width-8, 40)))
		v.Muted(fmt.Sprintf("%d words", domain.WordCount(body)))
	} else {
		v.Muted("No entry")
	}
	v.BlankLine()

	v.Help(m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.PrevYear, m.keys.NextYear, m.keys.Open, m.keys.Back)
	return v.String()
}

func (m *CalendarModel) renderYears(current int) string {
	var tabs []string
	for _, y := range m.journal.Years(m.now()) {
		label := strconv.Itoa(y)
		if y == current {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func renderLegend() string {
	parts := []string{styles.MutedText.Render("less")}
	for level := 0; level <= 4; level++ {
		glyph := FilledCell
		if level == 0 {
			glyph = EmptyCell
		}
		parts = append(parts, styles.HeatCell(level).Render(glyph))
	}
	parts = append(parts, styles.MutedText.Render("more"))
	return strings.Join(parts, " ")
}

var weekdayLabels = [7]string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}

// RenderHeatMap draws year as a grid of weeks (columns) by weekdays (rows,
// Monday first). activity maps dates to levels 0..4.
func RenderHeatMap(year int, activity map[string]int, selected, today string) string {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	offset := (int(jan1.Weekday()) + 6) % 7
	start := jan1.AddDate(0, 0, -offset)
	dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	weeks := (offset + dec31.YearDay() + 6) / 7

	header := []rune(strings.Repeat(" ", weeks*2))
	for month := time.January; month <= time.December; month++ {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		col := (offset + first.YearDay() - 1) / 7
		label := first.Format("Jan")
		if col*2+len(label) <= len(header) {
			copy(header[col*2:], []rune(label))
		}
	}

	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(strings.TrimRight(string(header), " "))
	b.WriteString("\n")

	for row := 0; row < 7; row++ {
		b.WriteString(styles.MutedText.Render(weekdayLabels[row]))
		b.WriteString(" ")
		for week := 0; week < weeks; week++ {
			day := start.AddDate(0, 0, week*7+row)
			if day.Year() != year {
				b.WriteString("  ")
				continue
			}
			date := domain.ToKey(day)
			level := activity[date]
			glyph := FilledCell
			if level == 0 {
				glyph = EmptyCell
			}

			style := styles.HeatCell(level)
			switch date {
			case selected:
				style = styles.CellSelected
			case today:
				style = styles.CellToday
			}
			b.WriteString(style.Render(glyph))
			b.WriteString(" ")
		}
		if row < 6 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
