package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is an inline yes/no prompt. While Active it captures keys.
type Confirmation struct {
	Question  string
	Active    bool
	Keys      ConfirmKeyMap
	onConfirm func() tea.Cmd
}

// Ask shows question and runs onConfirm if the answer is yes
func (c *Confirmation) Ask(question string, onConfirm func() tea.Cmd) {
	c.Question = question
	c.Active = true
	c.onConfirm = onConfirm
	if c.Keys.Confirm.Keys() == nil {
		c.Keys = DefaultConfirmKeys
	}
}

// HandleKeyMsg processes a key while the prompt is active.
// Returns (handled, cmd) where handled is true if the key was processed.
func (c *Confirmation) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !c.Active {
		return false, nil
	}
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		c.Active = false
		if c.onConfirm != nil {
			return true, c.onConfirm()
		}
		return true, nil
	case key.Matches(msg, c.Keys.Cancel):
		c.Active = false
		return true, nil
	}
	// Swallow anything else while asking
	return true, nil
}

// View renders the prompt, or nothing when inactive
func (c *Confirmation) View() string {
	if !c.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.ErrorMsg.Render(c.Question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
