package domain

import "testing"

func TestFileSource(t *testing.T) {
	src := NewFileSource("notes/2024.md", "/data/notes/2024.md", "# 2024-01-01\nhello", false)

	if src.Key() != "notes/2024.md" {
		t.Errorf("unexpected key %q", src.Key())
	}
	if src.Name() != "2024.md" {
		t.Errorf("unexpected name %q", src.Name())
	}
	if src.Writable() {
		t.Error("expected read-only source without a handle")
	}
	if src.Entries()["2024-01-01"] != "hello" {
		t.Errorf("expected parsed entries, got %#v", src.Entries())
	}

	if rw := NewFileSource("a.md", "/data/a.md", "", true); !rw.Writable() || rw.Handle != "/data/a.md" {
		t.Errorf("expected writable source with handle, got %+v", rw)
	}

	src.SetEntries(nil)
	if src.Entries() == nil {
		t.Error("expected SetEntries(nil) to leave an empty map")
	}
}

func TestLocalSource(t *testing.T) {
	var src Source = NewLocalSource(nil)

	if src.Key() != LocalKey || src.Name() != LocalName {
		t.Errorf("unexpected local source identity %q %q", src.Key(), src.Name())
	}
	if src.Entries() == nil {
		t.Fatal("expected an empty entry map")
	}

	src.Entries().Put("2024-01-01", "x")
	if len(src.Entries()) != 1 {
		t.Error("expected entries to be mutable in place")
	}
}
