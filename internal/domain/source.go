package domain

import "path"

// LocalKey identifies the default local source
const LocalKey = "local"

// LocalName is the display name of the default local source
const LocalName = "My Journal"

// Source is one named origin of entries: the local store or an external file.
// The set of implementations is closed; callers switch on the concrete type.
type Source interface {
	Key() string
	Name() string
	Entries() EntryMap
	SetEntries(EntryMap)
	isSource()
}

// LocalSource is the always-present default journal
type LocalSource struct {
	entries EntryMap
}

// NewLocalSource creates the local source over entries
func NewLocalSource(entries EntryMap) *LocalSource {
	if entries == nil {
		entries = make(EntryMap)
	}
	return &LocalSource{entries: entries}
}

func (s *LocalSource) Key() string           { return LocalKey }
func (s *LocalSource) Name() string          { return LocalName }
func (s *LocalSource) Entries() EntryMap     { return s.entries }
func (s *LocalSource) SetEntries(m EntryMap) { s.entries = ensure(m) }
func (s *LocalSource) isSource()             {}

// FileSource is an external document opened from the selected directory
type FileSource struct {
	// Path is the slash-separated path relative to the directory root
	Path string
	// AbsPath locates the document on disk for re-reads
	AbsPath string
	// Text mirrors the document content last read or written
	Text string
	// Handle is the absolute path used to write back; empty when read-only
	Handle string

	entries EntryMap
}

// NewFileSource creates a file source, deriving entries from text
func NewFileSource(relPath, absPath, text string, writable bool) *FileSource {
	s := &FileSource{
		Path:    relPath,
		AbsPath: absPath,
		Text:    text,
		entries: Parse(text),
	}
	if writable {
		s.Handle = absPath
	}
	return s
}

func (s *FileSource) Key() string           { return s.Path }
func (s *FileSource) Name() string          { return path.Base(s.Path) }
func (s *FileSource) Entries() EntryMap     { return s.entries }
func (s *FileSource) SetEntries(m EntryMap) { s.entries = ensure(m) }
func (s *FileSource) isSource()             {}

// Writable reports whether the source has a handle to write back to
func (s *FileSource) Writable() bool {
	return s.Handle != ""
}

func ensure(m EntryMap) EntryMap {
	if m == nil {
		return make(EntryMap)
	}
	return m
}
