package application

import (
	"context"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"journey/internal/ports"
)

// fakeFS is an in-memory DocumentFS keyed by absolute slash paths
type fakeFS struct {
	mu       sync.Mutex
	files    map[string]string
	readOnly map[string]bool
	readErr  map[string]error
	writeErr error
	denied   bool
	onRead   func(path string)
	writes   []string
}

var _ ports.DocumentFS = (*fakeFS)(nil)

func newFakeFS(files map[string]string) *fakeFS {
	if files == nil {
		files = make(map[string]string)
	}
	return &fakeFS{
		files:    files,
		readOnly: make(map[string]bool),
		readErr:  make(map[string]error),
	}
}

func (f *fakeFS) Access(root string) (string, error) {
	if f.denied {
		return "", fs.ErrPermission
	}
	return root, nil
}

func (f *fakeFS) Scan(ctx context.Context, root string, exts []string) ([]ports.DiscoveredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return nil, fs.ErrPermission
	}

	var out []ports.DiscoveredFile
	prefix := strings.TrimSuffix(root, "/") + "/"
	for p, text := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
		if !slices.Contains(exts, ext) {
			continue
		}
		out = append(out, ports.DiscoveredFile{
			RelPath:  strings.TrimPrefix(p, prefix),
			AbsPath:  p,
			Name:     path.Base(p),
			Size:     int64(len(text)),
			Writable: !f.readOnly[p],
		})
	}
	slices.SortFunc(out, func(a, b ports.DiscoveredFile) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return out, nil
}

func (f *fakeFS) ReadText(ctx context.Context, p string) (string, error) {
	if f.onRead != nil {
		f.onRead(p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readErr[p]; err != nil {
		return "", err
	}
	text, ok := f.files[p]
	if !ok {
		return "", fs.ErrNotExist
	}
	return text, nil
}

func (f *fakeFS) WriteText(ctx context.Context, p, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[p] = text
	f.writes = append(f.writes, p)
	return nil
}

func (f *fakeFS) Watch(ctx context.Context, root string) (<-chan string, error) {
	ch := make(chan string)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
