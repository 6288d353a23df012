package commands

import (
	"context"
	"fmt"
	"strings"

	"journey/internal/application"
	"journey/internal/ports"
)

// SelectDirectoryCommand remembers a document directory and scans it
type SelectDirectoryCommand struct {
	journal    *application.Journal
	Root       string
	Extensions []string
}

// NewSelectDirectoryCommand creates a new SelectDirectoryCommand
func NewSelectDirectoryCommand(journal *application.Journal, root string, extensions []string) *SelectDirectoryCommand {
	return &SelectDirectoryCommand{journal: journal, Root: root, Extensions: extensions}
}

// Validate checks if the directory selection is valid
func (c *SelectDirectoryCommand) Validate() error {
	return application.ValidateRequired("directory", c.Root)
}

// Execute runs the directory selection and returns the discovered files.
// A blank root means the picker was dismissed and yields ErrAborted.
func (c *SelectDirectoryCommand) Execute(ctx context.Context) ([]ports.DiscoveredFile, error) {
	if strings.TrimSpace(c.Root) == "" {
		return nil, application.ErrAborted
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.journal.SelectDirectory(ctx, c.Root, c.Extensions); err != nil {
		return nil, err
	}
	return c.journal.Scan(ctx)
}

// SyncResult contains the result of updating the file selection
type SyncResult struct {
	Stats   application.SyncStats
	Message string
}

// SyncCommand opens the selected documents of the remembered directory
// and closes the deselected ones
type SyncCommand struct {
	journal  *application.Journal
	Selected []string
	// All selects every discovered file, ignoring Selected
	All bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(journal *application.Journal, selected []string, all bool) *SyncCommand {
	return &SyncCommand{journal: journal, Selected: selected, All: all}
}

// Execute runs the sync. A scan always precedes the update so the
// selection is matched against the current directory contents.
func (c *SyncCommand) Execute(ctx context.Context) (*SyncResult, error) {
	files, err := c.journal.Scan(ctx)
	if err != nil {
		return nil, err
	}

	selected := c.Selected
	if c.All {
		selected = make([]string, 0, len(files))
		for _, f := range files {
			selected = append(selected, f.RelPath)
		}
	}

	stats, err := c.journal.UpdateSelection(ctx, selected)
	result := &SyncResult{
		Stats:   stats,
		Message: fmt.Sprintf("List updated: %d loaded, %d removed", stats.Loaded, stats.Removed),
	}
	if stats.Failed > 0 {
		result.Message += fmt.Sprintf(", %d failed", stats.Failed)
	}
	return result, err
}
