package commands

import (
	"context"
	"fmt"

	"journey/internal/application"
)

// SaveEntryResult contains the result of saving an entry
type SaveEntryResult struct {
	Outcome application.SaveOutcome
	Message string
}

// SaveEntryCommand writes the entry for a date into a source
type SaveEntryCommand struct {
	journal *application.Journal
	// Source is the key of the target source, empty for the active one
	Source  string
	Date    string
	Text    string
}

// NewSaveEntryCommand creates a new SaveEntryCommand
func NewSaveEntryCommand(journal *application.Journal, date, text string) *SaveEntryCommand {
	return &SaveEntryCommand{
		journal: journal,
		Date:    date,
		Text:    text,
	}
}

// Validate checks if the save operation is valid
func (c *SaveEntryCommand) Validate() error {
	return application.ValidateDate("date", c.Date)
}

// Execute runs the save command
func (c *SaveEntryCommand) Execute(ctx context.Context) (*SaveEntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	outcome, err := c.journal.SaveEntryTo(ctx, c.Source, c.Date, c.Text)
	result := &SaveEntryResult{Outcome: outcome}
	switch outcome {
	case application.SaveSaved:
		result.Message = fmt.Sprintf("Saved entry for %s", c.Date)
	case application.SaveCleared:
		result.Message = fmt.Sprintf("Cleared entry for %s", c.Date)
	default:
		result.Message = fmt.Sprintf("No changes for %s", c.Date)
	}
	if err != nil {
		return result, fmt.Errorf("entry kept in memory but not persisted: %w", err)
	}
	return result, nil
}
