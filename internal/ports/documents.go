package ports

import "context"

// DiscoveredFile is a candidate document found under the selected directory
type DiscoveredFile struct {
	RelPath  string `json:"relPath"`
	AbsPath  string `json:"absPath"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Writable bool   `json:"writable"`
}

// DocumentFS gives access to text documents under a user-selected directory
type DocumentFS interface {
	// Access returns the absolute form of root, or an error if it cannot be read
	Access(root string) (string, error)

	// Scan walks root and returns files whose lowercase extension is in exts,
	// sorted by relative path
	Scan(ctx context.Context, root string, exts []string) ([]DiscoveredFile, error)

	ReadText(ctx context.Context, path string) (string, error)
	WriteText(ctx context.Context, path, text string) error

	// Watch reports changed document paths (absolute) until ctx is done
	Watch(ctx context.Context, root string) (<-chan string, error)
}
