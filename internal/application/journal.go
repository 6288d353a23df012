package application

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"journey/internal/domain"
	"journey/internal/ports"
)

// SaveOutcome describes what a save did to the active source
type SaveOutcome int

const (
	SaveUnchanged SaveOutcome = iota
	SaveSaved
	SaveCleared
)

func (o SaveOutcome) String() string {
	switch o {
	case SaveSaved:
		return "saved"
	case SaveCleared:
		return "cleared"
	default:
		return "unchanged"
	}
}

// SourceInfo is a read-only view of an open source
type SourceInfo struct {
	Index    int    `json:"index"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	File     bool   `json:"file"`
	Writable bool   `json:"writable"`
	Active   bool   `json:"active"`
	// Path is the absolute document path of a file source
	Path     string `json:"path,omitempty"`
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Journal is the application state: open sources, the active tab, the
// period book and the remembered directory. All methods are safe for
// concurrent use.
type Journal struct {
	mu       sync.Mutex
	registry *Registry
	periods  *PeriodBook
	ranker   *domain.Ranker
	log      logrus.FieldLogger
}

// NewJournal wires a journal over a key-value store and a document filesystem
func NewJournal(kv ports.KeyValueStore, fs ports.DocumentFS, log logrus.FieldLogger) *Journal {
	return &Journal{
		registry: NewRegistry(fs, kv, log),
		periods:  NewPeriodBook(kv),
		ranker:   domain.NewRanker(),
		log:      log,
	}
}

// Open loads the local journal and the periods, then restores the remembered
// directory selection. A failed restore is logged, not returned.
func (j *Journal) Open(ctx context.Context) (RestoreStats, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.registry.LoadLocal(ctx); err != nil {
		return RestoreStats{}, fmt.Errorf("failed to load local journal: %w", err)
	}
	if err := j.periods.Load(ctx); err != nil {
		return RestoreStats{}, fmt.Errorf("failed to load periods: %w", err)
	}

	stats, err := j.registry.Restore(ctx)
	if err != nil {
		j.log.WithError(err).Warn("failed to restore directory selection")
	}
	if stats.Missing > 0 {
		j.log.WithField("missing", stats.Missing).Info("previously selected files no longer found")
	}
	return stats, nil
}

// Sources lists the open sources in tab order
func (j *Journal) Sources() []SourceInfo {
	j.mu.Lock()
	defer j.mu.Unlock()

	sources := j.registry.Sources()
	out := make([]SourceInfo, 0, len(sources))
	for i, s := range sources {
		out = append(out, j.info(i, s))
	}
	return out
}

// Active describes the selected source
func (j *Journal) Active() SourceInfo {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.info(j.registry.ActiveIndex(), j.registry.Active())
}

func (j *Journal) info(i int, s domain.Source) SourceInfo {
	info := SourceInfo{
		Index:   i,
		Key:     s.Key(),
		Name:    s.Name(),
		Entries: len(s.Entries()),
		Active:  i == j.registry.ActiveIndex(),
	}
	if f, ok := s.(*domain.FileSource); ok {
		info.File = true
		info.Writable = f.Writable()
		info.Path = f.AbsPath
	}
	return info
}

// SwitchSource selects the source at index i
func (j *Journal) SwitchSource(i int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Switch(i)
}

// SwitchSourceByKey selects the source with key
func (j *Journal) SwitchSourceByKey(key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.SwitchByKey(key)
}

// CloseSource closes the file source at index i
func (j *Journal) CloseSource(i int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Close(i)
}

// Entries returns a copy of the active source's entries
func (j *Journal) Entries() domain.EntryMap {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Active().Entries().Clone()
}

// Entry returns the active source's entry for date
func (j *Journal) Entry(date string) (string, bool) {
	body, ok, _ := j.EntryIn("", date)
	return body, ok
}

// EntryIn returns the entry for date in the source with key. An empty key
// means the active source.
func (j *Journal) EntryIn(key, date string) (string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return "", false, err
	}
	body, ok := src.Entries()[date]
	return body, ok, nil
}

// SaveEntry stores text as the entry for date in the active source
func (j *Journal) SaveEntry(ctx context.Context, date, text string) (SaveOutcome, error) {
	return j.SaveEntryTo(ctx, "", date, text)
}

// SaveEntryTo stores text as the entry for date in the source with key, or
// the active source when key is empty. Blank text deletes the entry. When
// persisting fails the in-memory change is kept.
func (j *Journal) SaveEntryTo(ctx context.Context, key, date, text string) (SaveOutcome, error) {
	if !domain.IsValidKey(date) {
		return SaveUnchanged, &domain.InvalidDateError{Value: date}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return SaveUnchanged, err
	}
	if !src.Entries().Put(date, text) {
		return SaveUnchanged, nil
	}

	outcome := SaveSaved
	if strings.TrimSpace(text) == "" {
		outcome = SaveCleared
	}
	if err := j.registry.Persist(ctx, src); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// ImportStats describes an import into one source
type ImportStats struct {
	Imported int
	Source   string
}

// Import merges the entries parsed from text into the active source
func (j *Journal) Import(ctx context.Context, text string) (int, error) {
	stats, err := j.ImportInto(ctx, "", text)
	return stats.Imported, err
}

// ImportInto merges the entries parsed from text into the source with key,
// or the active source when key is empty, overwriting same-date entries
func (j *Journal) ImportInto(ctx context.Context, key, text string) (ImportStats, error) {
	parsed := domain.Parse(text)
	if len(parsed) == 0 {
		return ImportStats{}, fmt.Errorf("import: %w, check the file format", ErrNoEntries)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return ImportStats{}, err
	}
	src.Entries().Merge(parsed)
	stats := ImportStats{Imported: len(parsed), Source: src.Name()}
	if err := j.registry.Persist(ctx, src); err != nil {
		return stats, err
	}
	return stats, nil
}

// Document is a source rendered as markdown with a suggested file name
type Document struct {
	Filename string
	Text     string
	Entries  int
}

// Export renders the active source as markdown and suggests a file name
func (j *Journal) Export(now time.Time) (string, string) {
	doc, _ := j.ExportFrom("", now)
	return doc.Filename, doc.Text
}

// ExportFrom renders the source with key, or the active source when key is
// empty
func (j *Journal) ExportFrom(key string, now time.Time) (Document, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return Document{}, err
	}
	tab := strings.ToLower(unsafeNameChars.ReplaceAllString(src.Name(), "_"))
	return Document{
		Filename: fmt.Sprintf("journal-%s-%s.md", tab, domain.Today(now)),
		Text:     domain.Serialize(src.Entries()),
		Entries:  len(src.Entries()),
	}, nil
}

// Similar ranks the active source's entries against query, skipping the
// entry being edited
func (j *Journal) Similar(query, selectedDate string) []domain.Candidate {
	candidates, _ := j.SimilarIn("", query, selectedDate)
	return candidates
}

// SimilarIn ranks the entries of the source with key against query
func (j *Journal) SimilarIn(key, query, selectedDate string) ([]domain.Candidate, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return nil, err
	}
	return j.ranker.Rank(query, src.Entries(), selectedDate), nil
}

// PastEntries returns the active filter period and its entries relative to ref
func (j *Journal) PastEntries(ref time.Time) (domain.Period, []domain.Entry) {
	p, entries, _ := j.PastEntriesIn("", ref, "")
	return p, entries
}

// PastEntriesIn looks up the entry one period before ref in the source with
// key. Empty key and periodID mean the active source and the active filter.
func (j *Journal) PastEntriesIn(key string, ref time.Time, periodID string) (domain.Period, []domain.Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	src, err := j.registry.Lookup(key)
	if err != nil {
		return domain.Period{}, nil, err
	}
	p := j.periods.Active()
	if periodID != "" {
		if p, err = j.periods.Get(periodID); err != nil {
			return domain.Period{}, nil, err
		}
	}
	return p, domain.EntriesForPeriod(src.Entries(), ref, p), nil
}

// HasEntryForPeriod reports whether the period with id has an entry relative to ref
func (j *Journal) HasEntryForPeriod(ref time.Time, id string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	p, err := j.periods.Get(id)
	if err != nil {
		return false, err
	}
	return domain.HasEntryForPeriod(j.registry.Active().Entries(), ref, p), nil
}

// ActivityLevel buckets the active source's entry for date into 0-4
func (j *Journal) ActivityLevel(date string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return domain.ActivityLevel(j.registry.Active().Entries()[date])
}

// Activity returns the non-zero activity levels of year keyed by date
func (j *Journal) Activity(year int) map[string]int {
	j.mu.Lock()
	defer j.mu.Unlock()

	prefix := strconv.Itoa(year) + "-"
	out := make(map[string]int)
	for date, body := range j.registry.Active().Entries() {
		if strings.HasPrefix(date, prefix) {
			out[date] = domain.ActivityLevel(body)
		}
	}
	return out
}

// Years returns the years holding entries plus the current one, newest first
func (j *Journal) Years(now time.Time) []int {
	j.mu.Lock()
	defer j.mu.Unlock()

	seen := map[int]bool{now.Year(): true}
	for date := range j.registry.Active().Entries() {
		if y, err := strconv.Atoi(date[:4]); err == nil {
			seen[y] = true
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Periods returns the period list in display order
func (j *Journal) Periods() []domain.Period {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.List()
}

// ActivePeriod returns the active filter period
func (j *Journal) ActivePeriod() domain.Period {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.Active()
}

// AddPeriod appends a new period
func (j *Journal) AddPeriod(ctx context.Context, label string, unit domain.Unit, value int) (domain.Period, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.Add(ctx, label, unit, value)
}

// EditPeriod updates an existing period
func (j *Journal) EditPeriod(ctx context.Context, id, label string, unit domain.Unit, value int) (domain.Period, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.Edit(ctx, id, label, unit, value)
}

// RemovePeriod deletes a period and reports whether the filter changed
func (j *Journal) RemovePeriod(ctx context.Context, id string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.Remove(ctx, id)
}

// ReorderPeriods applies a new period order
func (j *Journal) ReorderPeriods(ctx context.Context, ids []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.Reorder(ctx, ids)
}

// SetActivePeriod selects the filter period
func (j *Journal) SetActivePeriod(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.periods.SetActive(ctx, id)
}

// Directory returns the remembered directory settings
func (j *Journal) Directory() DirectorySettings {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Settings()
}

// SelectDirectory remembers root as the document directory
func (j *Journal) SelectDirectory(ctx context.Context, root string, extensions []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.SelectDirectory(ctx, root, extensions)
}

// Scan lists the documents under the remembered directory
func (j *Journal) Scan(ctx context.Context) ([]ports.DiscoveredFile, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Scan(ctx)
}

// Selection returns the remembered selection for the current directory
func (j *Journal) Selection(ctx context.Context) ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Selection(ctx)
}

// UpdateSelection opens the selected documents and closes the rest
func (j *Journal) UpdateSelection(ctx context.Context, selected []string) (SyncStats, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.UpdateSelection(ctx, selected)
}

// PendingChanges reports whether selected differs from the open documents
func (j *Journal) PendingChanges(selected []string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.PendingChanges(selected)
}

// ClearDirectory forgets the remembered directory and closes its documents
func (j *Journal) ClearDirectory(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.ClearDirectory(ctx)
}

// Reload re-reads open documents changed on disk
func (j *Journal) Reload(ctx context.Context, absPaths []string) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registry.Reload(ctx, absPaths)
}
