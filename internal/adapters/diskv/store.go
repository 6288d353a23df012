// Package diskv stores journal state as one file per key on disk.
package diskv

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"journey/internal/ports"
)

// Store implements ports.KeyValueStore on top of diskv
type Store struct {
	d        *diskv.Diskv
	basePath string
}

var _ ports.KeyValueStore = (*Store)(nil)

// Open creates a Store rooted at basePath
func Open(basePath string) *Store {
	clean := filepath.Clean(basePath)
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          clean,
			TempDir:           clean + "-tmp",
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: clean,
	}
}

// BasePath returns the directory holding the key files
func (s *Store) BasePath() string {
	return s.basePath
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in order
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	cancel := make(chan struct{})
	defer close(cancel)

	var keys []string
	for key := range s.d.Keys(cancel) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	return nil
}

// Keys such as journey.selectedFiles_<dir> may hold any rune, so file
// names are their base64 form.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: base64.RawURLEncoding.EncodeToString([]byte(key)),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	raw, err := base64.RawURLEncoding.DecodeString(pathKey.FileName)
	if err != nil {
		return ""
	}
	return string(raw)
}
