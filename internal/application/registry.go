package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"journey/internal/domain"
	"journey/internal/ports"
)

// DefaultExtensions are scanned when no extension filter is configured
var DefaultExtensions = []string{"md", "txt"}

// DirectorySettings is the remembered directory selection
type DirectorySettings struct {
	Directory  string   `json:"directory"`
	Name       string   `json:"directoryName"`
	Extensions []string `json:"extensions"`
}

// SyncStats summarizes a selection update
type SyncStats struct {
	Loaded  int `json:"loaded"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// RestoreStats summarizes the auto-load of a remembered selection
type RestoreStats struct {
	Loaded  int `json:"loaded"`
	Missing int `json:"missing"`
}

// Registry holds the ordered list of open sources. Index 0 is always the
// local journal. It is not safe for concurrent use; Journal serializes access.
type Registry struct {
	fs  ports.DocumentFS
	kv  ports.KeyValueStore
	log logrus.FieldLogger

	sources    []domain.Source
	active     int
	settings   DirectorySettings
	discovered []ports.DiscoveredFile
}

// NewRegistry creates a registry holding only an empty local source
func NewRegistry(fs ports.DocumentFS, kv ports.KeyValueStore, log logrus.FieldLogger) *Registry {
	return &Registry{
		fs:      fs,
		kv:      kv,
		log:     log,
		sources: []domain.Source{domain.NewLocalSource(nil)},
	}
}

// LoadLocal reads the local journal from the store, dropping malformed keys
func (r *Registry) LoadLocal(ctx context.Context) error {
	var raw map[string]string
	if _, err := loadJSON(ctx, r.kv, KeyEntries, &raw); err != nil {
		return err
	}

	entries := make(domain.EntryMap, len(raw))
	for date, body := range raw {
		if !domain.IsValidKey(date) {
			r.log.WithField("date", date).Warn("dropping stored entry with invalid date")
			continue
		}
		entries.Put(date, body)
	}
	r.sources[0].SetEntries(entries)
	return nil
}

// Sources returns the open sources in tab order
func (r *Registry) Sources() []domain.Source {
	return slices.Clone(r.sources)
}

// Active returns the selected source
func (r *Registry) Active() domain.Source {
	return r.sources[r.active]
}

// ActiveIndex returns the position of the selected source
func (r *Registry) ActiveIndex() int {
	return r.active
}

// Find returns the index of the source with key
func (r *Registry) Find(key string) (int, bool) {
	for i, s := range r.sources {
		if s.Key() == key {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the source with key. An empty key means the active source.
func (r *Registry) Lookup(key string) (domain.Source, error) {
	if key == "" {
		return r.Active(), nil
	}
	i, ok := r.Find(key)
	if !ok {
		return nil, fmt.Errorf("source %q: %w", key, ErrNotFound)
	}
	return r.sources[i], nil
}

// Switch selects the source at index i
func (r *Registry) Switch(i int) error {
	if i < 0 || i >= len(r.sources) {
		return fmt.Errorf("source %d: %w", i, ErrNotFound)
	}
	r.active = i
	return nil
}

// SwitchByKey selects the source with key
func (r *Registry) SwitchByKey(key string) error {
	i, ok := r.Find(key)
	if !ok {
		return fmt.Errorf("source %q: %w", key, ErrNotFound)
	}
	r.active = i
	return nil
}

// Close removes the source at index i. The local source cannot be closed.
func (r *Registry) Close(i int) error {
	if i == 0 {
		return &ValidationError{Field: "source", Message: "the local journal cannot be closed"}
	}
	if i < 0 || i >= len(r.sources) {
		return fmt.Errorf("source %d: %w", i, ErrNotFound)
	}
	r.removeAt(i)
	return nil
}

// closeFiles removes every file source, leaving the local one active
func (r *Registry) closeFiles() {
	for i := len(r.sources) - 1; i > 0; i-- {
		if _, ok := r.sources[i].(*domain.FileSource); ok {
			r.removeAt(i)
		}
	}
}

func (r *Registry) removeAt(i int) {
	r.sources = slices.Delete(r.sources, i, i+1)
	switch {
	case r.active == i:
		r.active = max(0, i-1)
	case r.active > i:
		r.active--
	}
}

// Settings returns the remembered directory settings
func (r *Registry) Settings() DirectorySettings {
	return r.settings
}

// Discovered returns the files found by the last scan
func (r *Registry) Discovered() []ports.DiscoveredFile {
	return slices.Clone(r.discovered)
}

// LoadSettings reads the remembered directory settings from the store
func (r *Registry) LoadSettings(ctx context.Context) error {
	var settings DirectorySettings
	if _, err := loadJSON(ctx, r.kv, KeyDirectory, &settings); err != nil {
		return err
	}
	settings.Extensions = normalizeExtensions(settings.Extensions)
	r.settings = settings
	return nil
}

// SelectDirectory checks that root is readable and remembers it. Open
// sources are left untouched when access is denied. Choosing a different
// directory closes the documents opened from the previous one.
func (r *Registry) SelectDirectory(ctx context.Context, root string, extensions []string) error {
	abs, err := r.fs.Access(root)
	if err != nil {
		return &PermissionError{Path: root, Err: err}
	}

	settings := DirectorySettings{
		Directory:  abs,
		Name:       filepath.Base(abs),
		Extensions: normalizeExtensions(extensions),
	}
	if err := saveJSON(ctx, r.kv, KeyDirectory, settings); err != nil {
		return err
	}

	if r.settings.Directory != "" && r.settings.Directory != abs {
		r.closeFiles()
	}
	r.settings = settings
	r.discovered = nil
	return nil
}

// Scan lists candidate documents under the selected directory
func (r *Registry) Scan(ctx context.Context) ([]ports.DiscoveredFile, error) {
	if r.settings.Directory == "" {
		return nil, fmt.Errorf("no directory selected: %w", ErrNotFound)
	}

	files, err := r.fs.Scan(ctx, r.settings.Directory, r.settings.Extensions)
	if err != nil {
		return nil, &PermissionError{Path: r.settings.Directory, Err: err}
	}

	r.discovered = files
	return slices.Clone(files), nil
}

// LoadSelected reads and parses files, registering each as a source keyed
// by its relative path. An already open source is replaced, not merged.
// A failing file does not stop the others.
func (r *Registry) LoadSelected(ctx context.Context, files []ports.DiscoveredFile) (int, error) {
	var errs []error
	loaded := 0

	for _, f := range files {
		text, err := r.fs.ReadText(ctx, f.AbsPath)
		if err != nil {
			r.log.WithField("path", f.RelPath).WithError(err).Warn("failed to load file")
			errs = append(errs, &IOError{Op: "read", Path: f.RelPath, Err: err})
			continue
		}

		src := domain.NewFileSource(f.RelPath, f.AbsPath, text, f.Writable)
		if i, ok := r.Find(f.RelPath); ok {
			r.sources[i] = src
		} else {
			r.sources = append(r.sources, src)
		}
		loaded++
	}

	return loaded, errors.Join(errs...)
}

// UnloadDeselected closes every open file source whose path is listed
func (r *Registry) UnloadDeselected(paths []string) int {
	removed := 0
	for i := len(r.sources) - 1; i > 0; i-- {
		if slices.Contains(paths, r.sources[i].Key()) {
			r.removeAt(i)
			removed++
		}
	}
	return removed
}

// UpdateSelection makes the open file sources match selected, a list of
// relative paths from the last scan. Deselected files are closed before
// any selected file is loaded.
func (r *Registry) UpdateSelection(ctx context.Context, selected []string) (SyncStats, error) {
	var deselected []string
	var toLoad []ports.DiscoveredFile
	for _, f := range r.discovered {
		if slices.Contains(selected, f.RelPath) {
			toLoad = append(toLoad, f)
		} else {
			deselected = append(deselected, f.RelPath)
		}
	}

	var stats SyncStats
	stats.Removed = r.UnloadDeselected(deselected)

	loaded, loadErr := r.LoadSelected(ctx, toLoad)
	stats.Loaded = loaded
	stats.Failed = len(toLoad) - loaded

	paths := make([]string, 0, len(toLoad))
	for _, f := range toLoad {
		paths = append(paths, f.RelPath)
	}
	saveErr := r.saveSelection(ctx, paths)

	return stats, errors.Join(loadErr, saveErr)
}

// PendingChanges reports whether selected differs from the open file sources
func (r *Registry) PendingChanges(selected []string) bool {
	open := 0
	for _, s := range r.sources[1:] {
		if _, ok := s.(*domain.FileSource); !ok {
			continue
		}
		open++
		if !slices.Contains(selected, s.Key()) {
			return true
		}
	}
	for _, p := range selected {
		if _, ok := r.Find(p); !ok {
			return true
		}
	}
	return open != len(selected)
}

// Restore re-opens the remembered directory and auto-loads the remembered
// selection. Missing files are counted, not treated as errors.
func (r *Registry) Restore(ctx context.Context) (RestoreStats, error) {
	var stats RestoreStats
	if err := r.LoadSettings(ctx); err != nil {
		return stats, err
	}
	if r.settings.Directory == "" {
		return stats, nil
	}

	if _, err := r.fs.Access(r.settings.Directory); err != nil {
		return stats, &PermissionError{Path: r.settings.Directory, Err: err}
	}
	if _, err := r.Scan(ctx); err != nil {
		return stats, err
	}

	saved, err := r.Selection(ctx)
	if err != nil || len(saved) == 0 {
		return stats, err
	}

	var existing []ports.DiscoveredFile
	for _, f := range r.discovered {
		if slices.Contains(saved, f.RelPath) {
			existing = append(existing, f)
		}
	}
	stats.Missing = len(saved) - len(existing)

	loaded, err := r.LoadSelected(ctx, existing)
	stats.Loaded = loaded
	return stats, err
}

// Selection returns the remembered selection for the current directory
func (r *Registry) Selection(ctx context.Context) ([]string, error) {
	if r.settings.Directory == "" {
		return nil, nil
	}
	var paths []string
	if _, err := loadJSON(ctx, r.kv, r.selectionKey(), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *Registry) saveSelection(ctx context.Context, paths []string) error {
	if r.settings.Directory == "" {
		return nil
	}
	return saveJSON(ctx, r.kv, r.selectionKey(), paths)
}

func (r *Registry) selectionKey() string {
	return KeySelectionPrefix + r.settings.Name
}

// ClearDirectory forgets the directory, its settings and its selection,
// and closes every open document
func (r *Registry) ClearDirectory(ctx context.Context) error {
	var errs []error
	if r.settings.Directory != "" {
		errs = append(errs, r.kv.Delete(ctx, r.selectionKey()))
	}
	errs = append(errs, r.kv.Delete(ctx, KeyDirectory))

	r.closeFiles()
	r.settings = DirectorySettings{Extensions: normalizeExtensions(nil)}
	r.discovered = nil
	return errors.Join(errs...)
}

// Persist writes a source back to its backing store. In-memory entries stay
// authoritative when the write fails.
func (r *Registry) Persist(ctx context.Context, src domain.Source) error {
	switch s := src.(type) {
	case *domain.LocalSource:
		if err := saveJSON(ctx, r.kv, KeyEntries, s.Entries()); err != nil {
			return &IOError{Op: "save", Path: KeyEntries, Err: err}
		}
	case *domain.FileSource:
		s.Text = domain.Serialize(s.Entries())
		if !s.Writable() {
			return nil
		}
		if err := r.fs.WriteText(ctx, s.Handle, s.Text); err != nil {
			r.log.WithField("path", s.Path).WithError(err).Warn("failed to write file")
			return &IOError{Op: "write", Path: s.Path, Err: err}
		}
	}
	return nil
}

// Reload re-reads open file sources whose absolute path is listed. Sources
// whose text is unchanged, such as after our own write, are skipped.
func (r *Registry) Reload(ctx context.Context, absPaths []string) (int, error) {
	var errs []error
	reloaded := 0

	for i, src := range r.sources {
		file, ok := src.(*domain.FileSource)
		if !ok || !slices.Contains(absPaths, file.AbsPath) {
			continue
		}
		text, err := r.fs.ReadText(ctx, file.AbsPath)
		if err != nil {
			r.log.WithField("path", file.Path).WithError(err).Warn("failed to reload file")
			errs = append(errs, &IOError{Op: "read", Path: file.Path, Err: err})
			continue
		}
		if text == file.Text {
			continue
		}
		r.sources[i] = domain.NewFileSource(file.Path, file.AbsPath, text, file.Writable())
		reloaded++
	}

	return reloaded, errors.Join(errs...)
}

func normalizeExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultExtensions)
	}
	return out
}
