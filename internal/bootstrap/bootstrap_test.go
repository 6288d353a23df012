package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"

	"journey/internal/adapters/diskv"
	"journey/internal/adapters/sqlite"
	"journey/internal/config"
)

func TestMain(m *testing.M) {
	homedir.DisableCache = true
	os.Exit(m.Run())
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     *config.Config
		check   func(t *testing.T, kv any)
		wantErr bool
	}{
		{
			name: "sqlite",
			cfg:  &config.Config{Backend: config.BackendSQLite, StorePath: filepath.Join(dir, "j.db")},
			check: func(t *testing.T, kv any) {
				if _, ok := kv.(*sqlite.Store); !ok {
					t.Errorf("expected *sqlite.Store, got %T", kv)
				}
			},
		},
		{
			name: "diskv",
			cfg:  &config.Config{Backend: config.BackendDiskv, StorePath: filepath.Join(dir, "kv")},
			check: func(t *testing.T, kv any) {
				s, ok := kv.(*diskv.Store)
				if !ok {
					t.Fatalf("expected *diskv.Store, got %T", kv)
				}
				if s.BasePath() != filepath.Join(dir, "kv") {
					t.Errorf("BasePath() = %s", s.BasePath())
				}
			},
		},
		{
			name:    "unknown",
			cfg:     &config.Config{Backend: "bolt"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := OpenStore(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenStore failed: %v", err)
			}
			defer kv.Close()
			tt.check(t, kv)
		})
	}
}

func TestOpen(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("JOURNEY_STORE_BACKEND", "diskv")

	ctx := context.Background()
	env, err := Open(ctx, Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := env.Journal.SaveEntry(ctx, "2024-05-01", "First entry"); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	env.Close()

	reopened, err := Open(ctx, Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if body, ok := reopened.Journal.Entry("2024-05-01"); !ok || body != "First entry" {
		t.Errorf("Entry() = %q, %v", body, ok)
	}
}

func TestOpen_BadLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Open(context.Background(), Options{LogLevel: "loud"}); err == nil {
		t.Error("expected error for bad log level")
	}
}

func TestWatch(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("JOURNEY_STORE_BACKEND", "diskv")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := Open(ctx, Options{LogLevel: "error"})
	if err != nil {
		t.Fatal(err)
	}
	defer env.Close()

	if err := env.Watch(ctx, nil); err == nil {
		t.Error("expected error without a selected directory")
	}

	root := filepath.Join(home, "journals")
	path := filepath.Join(root, "a.md")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# 2024-01-01\n\nold"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := env.Journal.SelectDirectory(ctx, root, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Journal.Scan(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Journal.UpdateSelection(ctx, []string{"a.md"}); err != nil {
		t.Fatal(err)
	}
	if err := env.Journal.SwitchSourceByKey("a.md"); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan int, 1)
	if err := env.Watch(ctx, func(n int) {
		select {
		case reloaded <- n:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("# 2024-01-01\n\nnew"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if body, _ := env.Journal.Entry("2024-01-01"); body != "new" {
		t.Errorf("Entry() = %q, want new", body)
	}
}
