package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"journey/internal/adapters/memory"
	"journey/internal/domain"
)

func setupJournal(t *testing.T) (*Journal, *memory.Store) {
	t.Helper()
	kv := memory.NewStore()
	j := NewJournal(kv, newFakeFS(nil), quietLogger())
	if _, err := j.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return j, kv
}

func storedEntries(t *testing.T, kv *memory.Store) domain.EntryMap {
	t.Helper()
	data, ok, err := kv.Get(context.Background(), KeyEntries)
	if err != nil || !ok {
		t.Fatalf("expected stored entries, ok=%v err=%v", ok, err)
	}
	var m domain.EntryMap
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("bad entries JSON: %v", err)
	}
	return m
}

func TestJournal_SaveEntry(t *testing.T) {
	j, kv := setupJournal(t)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want SaveOutcome
	}{
		{"new entry", "  Went hiking.  ", SaveSaved},
		{"same text", "Went hiking.", SaveUnchanged},
		{"edited", "Went hiking twice.", SaveSaved},
		{"cleared", "   ", SaveCleared},
		{"clear again", "", SaveUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := j.SaveEntry(ctx, "2024-05-01", tt.text)
			if err != nil {
				t.Fatalf("SaveEntry failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("outcome = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := j.Entry("2024-05-01"); ok {
		t.Error("expected entry to be deleted")
	}
	if len(storedEntries(t, kv)) != 0 {
		t.Error("expected the deletion to be persisted")
	}
}

func TestJournal_SaveEntryPersistsTrimmed(t *testing.T) {
	j, kv := setupJournal(t)

	if _, err := j.SaveEntry(context.Background(), "2024-05-01", "\n hello \n"); err != nil {
		t.Fatal(err)
	}
	if got := storedEntries(t, kv)["2024-05-01"]; got != "hello" {
		t.Errorf("stored body = %q, want %q", got, "hello")
	}
}

func TestJournal_SaveEntryInvalidDate(t *testing.T) {
	j, _ := setupJournal(t)

	_, err := j.SaveEntry(context.Background(), "2024-02-30", "text")
	var invalid *domain.InvalidDateError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidDateError, got %v", err)
	}
}

func TestJournal_OpenReadsStoredState(t *testing.T) {
	kv := memory.NewStore()
	ctx := context.Background()
	_ = kv.Set(ctx, KeyEntries, []byte(`{"2024-01-01":"stored"}`))

	j := NewJournal(kv, newFakeFS(nil), quietLogger())
	if _, err := j.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if body, ok := j.Entry("2024-01-01"); !ok || body != "stored" {
		t.Errorf("Entry() = %q, %v", body, ok)
	}
	if j.ActivePeriod().ID != domain.DefaultPeriodID {
		t.Errorf("expected default filter, got %s", j.ActivePeriod().ID)
	}
}

func TestJournal_OpenSurvivesDeniedDirectory(t *testing.T) {
	kv := memory.NewStore()
	ctx := context.Background()
	_ = kv.Set(ctx, KeyDirectory, []byte(`{"directory":"/gone","directoryName":"gone"}`))

	fs := newFakeFS(nil)
	fs.denied = true
	j := NewJournal(kv, fs, quietLogger())
	if _, err := j.Open(ctx); err != nil {
		t.Fatalf("expected Open to succeed, got %v", err)
	}
	if len(j.Sources()) != 1 {
		t.Errorf("expected only the local source, got %+v", j.Sources())
	}
}

func TestJournal_Import(t *testing.T) {
	j, kv := setupJournal(t)
	ctx := context.Background()
	if _, err := j.SaveEntry(ctx, "2024-01-01", "original"); err != nil {
		t.Fatal(err)
	}
	if _, err := j.SaveEntry(ctx, "2024-01-03", "untouched"); err != nil {
		t.Fatal(err)
	}

	n, err := j.Import(ctx, "# 2024-01-01\nimported\n\n# 2024-01-02\nnew")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	want := domain.EntryMap{
		"2024-01-01": "imported",
		"2024-01-02": "new",
		"2024-01-03": "untouched",
	}
	if got := j.Entries(); !got.Equal(want) {
		t.Errorf("entries = %#v, want %#v", got, want)
	}
	if got := storedEntries(t, kv); !got.Equal(want) {
		t.Errorf("stored = %#v, want %#v", got, want)
	}
}

func TestJournal_ImportNothing(t *testing.T) {
	j, _ := setupJournal(t)

	n, err := j.Import(context.Background(), "no dates in here")
	if n != 0 || !errors.Is(err, ErrNoEntries) {
		t.Errorf("Import() = %d, %v", n, err)
	}
}

func TestJournal_Export(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()
	_, _ = j.SaveEntry(ctx, "2024-01-02", "b")
	_, _ = j.SaveEntry(ctx, "2024-01-01", "a")

	name, text := j.Export(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local))
	if name != "journal-my_journal-2024-03-15.md" {
		t.Errorf("unexpected filename %q", name)
	}
	if text != "# 2024-01-01\n\na\n\n# 2024-01-02\n\nb" {
		t.Errorf("unexpected export %q", text)
	}
}

func TestJournal_SimilarExcludesSelectedDate(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()
	_, _ = j.SaveEntry(ctx, "2024-01-01", "long run by the lake")
	_, _ = j.SaveEntry(ctx, "2024-01-02", "lake swim after the run")

	got := j.Similar("run lake", "2024-01-02")
	if len(got) != 1 || got[0].Date != "2024-01-01" {
		t.Errorf("unexpected candidates %+v", got)
	}
}

func TestJournal_PastEntries(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()
	_, _ = j.SaveEntry(ctx, "2024-03-14", "yesterday's entry")
	_, _ = j.SaveEntry(ctx, "2024-02-15", "a month ago")
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)

	p, entries := j.PastEntries(ref)
	if p.ID != "yesterday" || len(entries) != 1 || entries[0].Date != "2024-03-14" {
		t.Errorf("unexpected past entries %s %+v", p.ID, entries)
	}

	if err := j.SetActivePeriod(ctx, "lastMonth"); err != nil {
		t.Fatal(err)
	}
	_, entries = j.PastEntries(ref)
	if len(entries) != 1 || entries[0].Body != "a month ago" {
		t.Errorf("unexpected past entries %+v", entries)
	}

	has, err := j.HasEntryForPeriod(ref, "lastYear")
	if err != nil || has {
		t.Errorf("HasEntryForPeriod() = %v, %v", has, err)
	}
	if _, err := j.HasEntryForPeriod(ref, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJournal_YearsAndActivity(t *testing.T) {
	j, _ := setupJournal(t)
	ctx := context.Background()
	_, _ = j.SaveEntry(ctx, "2021-06-01", "one")
	_, _ = j.SaveEntry(ctx, "2023-06-01", "two words")
	_, _ = j.SaveEntry(ctx, "2023-06-02", "three")

	years := j.Years(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
	want := []int{2024, 2023, 2021}
	if len(years) != len(want) {
		t.Fatalf("Years() = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("Years() = %v, want %v", years, want)
		}
	}

	activity := j.Activity(2023)
	if len(activity) != 2 || activity["2023-06-01"] != 1 {
		t.Errorf("unexpected activity %v", activity)
	}
	if j.ActivityLevel("2020-01-01") != 0 {
		t.Error("expected level 0 for a missing entry")
	}
}

func TestJournal_FileSourceSaveWritesBack(t *testing.T) {
	kv := memory.NewStore()
	fs := newFakeFS(map[string]string{root + "/log.md": "# 2024-01-01\nfrom file"})
	j := NewJournal(kv, fs, quietLogger())
	ctx := context.Background()
	if _, err := j.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if err := j.SelectDirectory(ctx, root, []string{"md"}); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Scan(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := j.UpdateSelection(ctx, []string{"log.md"}); err != nil {
		t.Fatal(err)
	}
	if err := j.SwitchSourceByKey("log.md"); err != nil {
		t.Fatal(err)
	}

	if _, err := j.SaveEntry(ctx, "2024-01-02", "typed in app"); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	want := "# 2024-01-01\n\nfrom file\n\n# 2024-01-02\n\ntyped in app"
	if fs.files[root+"/log.md"] != want {
		t.Errorf("file = %q, want %q", fs.files[root+"/log.md"], want)
	}
	if _, ok := j.Entry("2024-01-01"); !ok {
		t.Error("expected the file's own entry in the active source")
	}
	if _, ok, _ := kv.Get(ctx, KeyEntries); ok {
		t.Error("expected the local journal to stay unwritten")
	}
}

func TestJournal_KeyedOperationsLeaveActiveSource(t *testing.T) {
	kv := memory.NewStore()
	fs := newFakeFS(map[string]string{root + "/log.md": "# 2024-01-01\nfrom file"})
	j := NewJournal(kv, fs, quietLogger())
	ctx := context.Background()
	if _, err := j.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if err := j.SelectDirectory(ctx, root, []string{"md"}); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Scan(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := j.UpdateSelection(ctx, []string{"log.md"}); err != nil {
		t.Fatal(err)
	}

	if _, err := j.SaveEntryTo(ctx, "log.md", "2024-01-02", "filed"); err != nil {
		t.Fatalf("SaveEntryTo failed: %v", err)
	}
	stats, err := j.ImportInto(ctx, "log.md", "# 2024-01-03\nimported")
	if err != nil {
		t.Fatalf("ImportInto failed: %v", err)
	}
	if stats.Imported != 1 || stats.Source != j.Sources()[1].Name {
		t.Errorf("stats = %+v", stats)
	}

	doc, err := j.ExportFrom("log.md", time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Entries != 3 {
		t.Errorf("exported %d entries, want 3", doc.Entries)
	}

	if j.Active().Key != domain.LocalKey {
		t.Errorf("active source = %s", j.Active().Key)
	}
	if len(j.Entries()) != 0 {
		t.Errorf("local entries = %v", j.Entries())
	}
	if _, ok, _ := kv.Get(ctx, KeyEntries); ok {
		t.Error("expected the local journal to stay unwritten")
	}

	if _, _, err := j.EntryIn("gone.md", "2024-01-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EntryIn unknown source: %v", err)
	}
	if _, err := j.SimilarIn("gone.md", "from file", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("SimilarIn unknown source: %v", err)
	}
}
