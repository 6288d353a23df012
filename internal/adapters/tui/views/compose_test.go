package views

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/domain"
)

func newTestCompose(t *testing.T, entries map[string]string) *ComposeModel {
	t.Helper()
	m := NewComposeModel(newTestJournal(t, entries), nil, fixedClock, time.Hour)
	t.Cleanup(m.Stop)
	return m
}

func TestComposeModel_Save(t *testing.T) {
	m := newTestCompose(t, nil)
	if m.Date() != "2024-06-15" {
		t.Fatalf("Date() = %s, want today", m.Date())
	}

	typeText(m, "Quiet day")
	if !m.Dirty() {
		t.Fatal("expected a dirty draft after typing")
	}

	_, cmd := m.Update(keyPress(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m.Update(cmd())

	if m.Dirty() {
		t.Error("expected a clean draft after saving")
	}
	if body, ok := m.journal.Entry("2024-06-15"); !ok || body != "Quiet day" {
		t.Errorf("Entry() = %q, %v", body, ok)
	}
	if m.Message != "Saved entry for 2024-06-15" || m.MessageErr {
		t.Errorf("Message = %q (err %v)", m.Message, m.MessageErr)
	}
}

func TestComposeModel_ChangeDay(t *testing.T) {
	m := newTestCompose(t, map[string]string{"2024-06-14": "Rainy."})

	_, cmd := m.Update(keyPress(tea.KeyPgUp))
	if cmd != nil {
		t.Error("expected no save for a clean draft")
	}
	if m.Date() != "2024-06-14" {
		t.Fatalf("Date() = %s", m.Date())
	}
	if m.editor.Value() != "Rainy." || m.Dirty() {
		t.Errorf("expected the stored entry loaded, got %q", m.editor.Value())
	}

	typeText(m, " Then sun.")
	_, cmd = m.Update(keyPress(tea.KeyPgDown))
	if cmd == nil {
		t.Fatal("expected the dirty draft to be saved when leaving the day")
	}
	m.Update(cmd())

	if m.Date() != "2024-06-15" {
		t.Errorf("Date() = %s", m.Date())
	}
	if body, _ := m.journal.Entry("2024-06-14"); body != "Rainy. Then sun." {
		t.Errorf("Entry() = %q", body)
	}
}

func TestComposeModel_QuitConfirmsDirtyDraft(t *testing.T) {
	m := newTestCompose(t, nil)

	typeText(m, "unsaved thoughts")
	_, cmd := m.Update(keyPress(tea.KeyEsc))
	if cmd != nil {
		t.Fatal("expected a confirmation instead of quitting")
	}
	if !m.confirm.Active {
		t.Fatal("expected the confirmation prompt")
	}
	if !strings.Contains(m.View(), "Discard unsaved changes") {
		t.Error("expected the prompt in the view")
	}

	_, cmd = m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("expected quit after confirming")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestComposeModel_QuitClean(t *testing.T) {
	m := newTestCompose(t, nil)

	_, cmd := m.Update(keyPress(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestComposeModel_SimilarEntries(t *testing.T) {
	m := newTestCompose(t, map[string]string{
		"2024-05-01": "A long walk in the park with friends",
		"2024-05-02": "Tax paperwork",
	})

	m.Update(similarQueryMsg{date: "2024-05-30", text: "walk in the park with friends"})
	if len(m.similar) != 0 {
		t.Error("expected results for another day to be dropped")
	}

	m.Update(similarQueryMsg{date: m.Date(), text: "walk in the park with friends"})
	if len(m.similar) == 0 || m.similar[0].Date != "2024-05-01" {
		t.Fatalf("similar = %+v", m.similar)
	}
	if !strings.Contains(m.View(), "2024-05-01") {
		t.Error("expected the similar entry in the view")
	}
}

func TestComposeModel_EditLocalSource(t *testing.T) {
	m := newTestCompose(t, nil)

	_, cmd := m.Update(keyPress(tea.KeyCtrlG))
	if cmd != nil {
		t.Error("expected no editor for the local journal")
	}
	if !m.MessageErr {
		t.Error("expected an error message")
	}
}

func TestComposeModel_SwitchTabSavesDraftToItsSource(t *testing.T) {
	m := newTestCompose(t, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	original := "# 2024-01-01\n\nOld\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := m.journal.SelectDirectory(ctx, dir, []string{"md"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.journal.Scan(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := m.journal.UpdateSelection(ctx, []string{"notes.md"}); err != nil {
		t.Fatal(err)
	}

	typeText(m, "Local draft")
	_, cmd := m.Update(keyPress(tea.KeyTab))
	if cmd == nil {
		t.Fatal("expected the dirty draft to be saved when switching tabs")
	}
	if m.journal.Active().Key != "notes.md" {
		t.Fatalf("active source = %s", m.journal.Active().Key)
	}

	typeText(m, "File draft")
	m.Update(cmd())

	if body, ok, _ := m.journal.EntryIn(domain.LocalKey, "2024-06-15"); !ok || body != "Local draft" {
		t.Errorf("local entry = %q, %v", body, ok)
	}
	if _, ok, _ := m.journal.EntryIn("notes.md", "2024-06-15"); ok {
		t.Error("draft leaked into notes.md")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("notes.md on disk = %q", data)
	}
	if !m.Dirty() {
		t.Error("expected the notes.md draft to stay unsaved")
	}
}
