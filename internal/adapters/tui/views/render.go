package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"journey/internal/adapters/tui/styles"
	"journey/internal/application"
	"journey/internal/domain"
)

func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderTabs renders the open sources as a tab bar
func RenderTabs(sources []application.SourceInfo) string {
	tabs := make([]string, 0, len(sources))
	for _, s := range sources {
		label := s.Name
		if s.File && !s.Writable {
			label += " " + styles.ReadOnly.Render("(read-only)")
		}
		if s.Active {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// RenderDayHeader renders the date being written with its weekday and state
func RenderDayHeader(date, today string, dirty bool) string {
	header := date
	if t, err := domain.FromKey(date); err == nil {
		header += "  " + t.Weekday().String()
	}
	if date == today {
		header += "  " + styles.CellToday.Render("today")
	}
	if dirty {
		header += "  " + styles.ReadOnly.Render("unsaved")
	}
	return styles.InputLabel.Render(header)
}

// RenderSimilar lists ranked candidates with their score and a one-line preview
func RenderSimilar(candidates []domain.Candidate, width int) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Similar entries"))
	b.WriteString("\n")
	if len(candidates) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing similar yet"))
		return b.String()
	}
	for _, c := range candidates {
		fmt.Fprintf(&b, "%s %s\n", c.Date, styles.Score.Render(fmt.Sprintf("%3.0f%%", c.Score*100)))
		b.WriteString(styles.MutedText.Render(domain.Truncate(oneLine(c.Body), max(width-4, 10))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPast shows the entry the period points at from the given day
func RenderPast(period domain.Period, date string, entries []domain.Entry, width int) string {
	var b strings.Builder
	target := ""
	if t, err := domain.FromKey(date); err == nil {
		target = domain.ResolveTargetDate(t, period)
	}
	b.WriteString(styles.PanelTitle.Render(fmt.Sprintf("%s (%s)", period.Label, target)))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(styles.MutedText.Render("No entry"))
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(domain.Truncate(e.Body, max(width*4, 40)))
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ViewBuilder assembles a screen line by line inside the app frame
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.Line(styles.Title.Render(title))
}

func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.Line(styles.Subtitle.Render(subtitle)).BlankLine()
}

// Tabs adds the source tab bar followed by a blank line
func (v *ViewBuilder) Tabs(sources []application.SourceInfo) *ViewBuilder {
	return v.Line(RenderTabs(sources)).BlankLine()
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds the status line, styled as an error when isError is set
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	if isError {
		v.Line(styles.ErrorMsg.Render(message))
	} else {
		v.Line(styles.Success.Render(message))
	}
	return v.BlankLine()
}

// Help adds the key hint footer
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(renderHelp(bindings...))
	return v
}

// String returns the built view wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
