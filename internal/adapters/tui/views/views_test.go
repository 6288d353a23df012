package views

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"journey/internal/adapters/filesystem"
	"journey/internal/adapters/memory"
	"journey/internal/application"
)

func fixedClock() time.Time {
	return time.Date(2024, time.June, 15, 9, 30, 0, 0, time.Local)
}

func newTestJournal(t *testing.T, entries map[string]string) *application.Journal {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	j := application.NewJournal(memory.NewStore(), filesystem.NewDocuments(log), log)

	ctx := context.Background()
	if _, err := j.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for date, body := range entries {
		if _, err := j.SaveEntry(ctx, date, body); err != nil {
			t.Fatalf("SaveEntry failed: %v", err)
		}
	}
	return j
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends s one rune at a time, the way a terminal does
func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}
