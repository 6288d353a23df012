// Package bootstrap builds a Journal from configuration for the front ends.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"journey/internal/adapters/diskv"
	"journey/internal/adapters/filesystem"
	"journey/internal/adapters/sqlite"
	"journey/internal/application"
	"journey/internal/config"
	"journey/internal/logging"
	"journey/internal/ports"
)

// Options override configuration from command-line flags
type Options struct {
	ConfigFile string
	LogLevel   string
}

// Env is an opened journal together with the resources it holds
type Env struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	Store     ports.KeyValueStore
	Documents *filesystem.Documents
	Journal   *application.Journal
}

// Open loads configuration, opens the configured store and the journal
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, err
	}
	log := logging.Log.WithField("backend", cfg.Backend)

	kv, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	docs := filesystem.NewDocuments(logging.Log)
	journal := application.NewJournal(kv, docs, logging.Log)
	stats, err := journal.Open(ctx)
	if err != nil {
		kv.Close()
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"loaded":  stats.Loaded,
		"missing": stats.Missing,
	}).Debug("journal opened")

	return &Env{
		Config:    cfg,
		Log:       log,
		Store:     kv,
		Documents: docs,
		Journal:   journal,
	}, nil
}

// OpenStore opens the key-value store selected by cfg.Backend
func OpenStore(cfg *config.Config) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		path := cfg.StorePath
		if path == "" {
			path = sqlite.DatabasePath(cfg.Profile)
		}
		return sqlite.Open(path)
	case config.BackendDiskv:
		return diskv.Open(cfg.DiskvPath()), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Close releases the store
func (e *Env) Close() error {
	if e == nil || e.Store == nil {
		return nil
	}
	return e.Store.Close()
}

// Watch reloads open documents whenever the remembered directory changes,
// until ctx is done. onReload is called after each reload that changed
// something; it may be nil.
func (e *Env) Watch(ctx context.Context, onReload func(n int)) error {
	root := e.Journal.Directory().Directory
	if root == "" {
		return errors.New("no directory selected")
	}

	changes, err := e.Documents.Watch(ctx, root)
	if err != nil {
		return err
	}

	go func() {
		for path := range changes {
			n, err := e.Journal.Reload(ctx, []string{path})
			if err != nil {
				e.Log.WithField("path", path).WithError(err).Warn("reload failed")
			}
			if n > 0 && onReload != nil {
				onReload(n)
			}
		}
	}()
	return nil
}
