package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"journey/internal/debounce"
	"journey/internal/ports"
)

// DefaultSettle is how long the watcher waits for a burst of writes to end
const DefaultSettle = 150 * time.Millisecond

// Documents implements ports.DocumentFS on the local filesystem
type Documents struct {
	log    logrus.FieldLogger
	settle time.Duration
}

var _ ports.DocumentFS = (*Documents)(nil)

// NewDocuments creates a filesystem document store
func NewDocuments(log logrus.FieldLogger) *Documents {
	return &Documents{log: log, settle: DefaultSettle}
}

// WithSettle overrides the watcher quiet period
func (d *Documents) WithSettle(settle time.Duration) *Documents {
	d.settle = settle
	return d
}

// Access expands ~ and checks that root is a readable directory
func (d *Documents) Access(root string) (string, error) {
	expanded, err := homedir.Expand(root)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", root, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Scan walks root for files with one of exts (compared lowercase, without
// the dot). Hidden directories are skipped; unreadable subdirectories are
// ignored.
func (d *Documents) Scan(ctx context.Context, root string, exts []string) ([]ports.DiscoveredFile, error) {
	wanted := make(map[string]bool, len(exts))
	for _, e := range exts {
		wanted[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	var files []ports.DiscoveredFile
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			d.log.WithField("path", path).WithError(err).Debug("skipping unreadable path")
			return nil
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if !wanted[ext] {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		files = append(files, ports.DiscoveredFile{
			RelPath:  filepath.ToSlash(rel),
			AbsPath:  path,
			Name:     entry.Name(),
			Size:     info.Size(),
			Writable: info.Mode().Perm()&0o200 != 0,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b ports.DiscoveredFile) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return files, nil
}

// ReadText reads a whole document
func (d *Documents) ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText replaces a document atomically via a temp file in the same
// directory, keeping the original file mode
func (d *Documents) WriteText(ctx context.Context, path, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Watch streams absolute paths of changed files under root until ctx is
// done. Bursts are coalesced; each path is reported once per burst.
func (d *Documents) Watch(ctx context.Context, root string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs, err := collectDirs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	out := make(chan string, 64)
	var mu sync.Mutex
	pending := make(map[string]struct{})
	closed := false

	flush := func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		for path := range pending {
			select {
			case out <- path:
			default:
				// Consumer is behind; the next burst will report it again
			}
		}
		pending = make(map[string]struct{})
	}

	go func() {
		settle := debounce.New(d.settle)
		defer func() {
			settle.Stop()
			mu.Lock()
			closed = true
			close(out)
			mu.Unlock()
			watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.log.WithError(err).Warn("watcher error")
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						if err := watcher.Add(evt.Name); err != nil {
							d.log.WithField("path", evt.Name).WithError(err).Warn("failed to watch new directory")
						}
						continue
					}
				}
				if isTempName(filepath.Base(evt.Name)) {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				mu.Lock()
				pending[filepath.Clean(evt.Name)] = struct{}{}
				mu.Unlock()
				settle.Trigger(flush)
			}
		}
	}()

	return out, nil
}

func isTempName(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".tmp")
}

// collectDirs walks root and returns the non-hidden directories to watch
func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || path != root {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}
