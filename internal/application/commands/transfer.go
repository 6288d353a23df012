package commands

import (
	"context"
	"fmt"
	"time"

	"journey/internal/application"
)

// ImportResult contains the result of importing a document
type ImportResult struct {
	Imported int
	Message  string
}

// ImportCommand merges a document's entries into a source
type ImportCommand struct {
	journal *application.Journal
	// Source is the key of the target source, empty for the active one
	Source  string
	Text    string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(journal *application.Journal, text string) *ImportCommand {
	return &ImportCommand{journal: journal, Text: text}
}

// Validate checks if the import operation is valid
func (c *ImportCommand) Validate() error {
	return application.ValidateRequired("document", c.Text)
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	stats, err := c.journal.ImportInto(ctx, c.Source, c.Text)
	if stats.Imported == 0 {
		return nil, err
	}

	result := &ImportResult{
		Imported: stats.Imported,
		Message:  fmt.Sprintf("Imported %d entries into %s", stats.Imported, stats.Source),
	}
	if err != nil {
		return result, fmt.Errorf("entries imported but not persisted: %w", err)
	}
	return result, nil
}

// ExportResult contains a rendered document and its suggested file name
type ExportResult struct {
	Filename string
	Text     string
	Entries  int
}

// ExportCommand renders a source as markdown
type ExportCommand struct {
	journal *application.Journal
	// Source is the key of the exported source, empty for the active one
	Source  string
	Now     time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(journal *application.Journal, now time.Time) *ExportCommand {
	return &ExportCommand{journal: journal, Now: now}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	doc, err := c.journal.ExportFrom(c.Source, c.Now)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename: doc.Filename,
		Text:     doc.Text,
		Entries:  doc.Entries,
	}, nil
}
