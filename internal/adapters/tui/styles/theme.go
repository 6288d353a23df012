package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	Ink    = lipgloss.Color("#7C3AED")
	Leaf   = lipgloss.Color("#10B981")
	Faded  = lipgloss.Color("#6B7280")
	Amber  = lipgloss.Color("#F59E0B")
	Alert  = lipgloss.Color("#EF4444")
	Paper  = lipgloss.Color("#FFFFFF")
	Ground = lipgloss.Color("#2D333B")

	// heat holds one calendar cell style per activity level, none to most written
	heat = [...]lipgloss.Style{
		lipgloss.NewStyle().Foreground(Ground),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#0E4429")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#006D32")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#26A641")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#39D353")),
	}

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Faded).
			Italic(true)

	// Source and year tabs
	TabActive = lipgloss.NewStyle().
			Background(Ink).
			Foreground(Paper).
			Bold(true).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(Faded).
			Padding(0, 1)

	ReadOnly = lipgloss.NewStyle().
			Foreground(Amber).
			Italic(true)

	// Similar and past panels next to the editor
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Faded).
		Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Foreground(Leaf).
			Bold(true)

	Score = lipgloss.NewStyle().
		Foreground(Amber)

	RowSelected = lipgloss.NewStyle().
			Background(Ink).
			Foreground(Paper).
			Bold(true)

	Checked = lipgloss.NewStyle().
		Foreground(Leaf)

	CellSelected = lipgloss.NewStyle().
			Foreground(Paper).
			Background(Ink)

	CellToday = lipgloss.NewStyle().
			Foreground(Amber)

	InputLabel = lipgloss.NewStyle().
			Foreground(Leaf).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Ink).
			Padding(0, 1)

	InputFocused = InputField.
			BorderForeground(Leaf)

	HelpKey = lipgloss.NewStyle().
		Foreground(Ink).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Faded)

	HelpSeparator = HelpDesc.
			SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Leaf).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Alert).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Faded)
)

// HeatCell returns the calendar cell style for an activity level, clamped to 0..4
func HeatCell(level int) lipgloss.Style {
	return heat[min(max(level, 0), len(heat)-1)]
}
