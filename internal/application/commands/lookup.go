package commands

import (
	"context"
	"time"

	"journey/internal/application"
	"journey/internal/domain"
)

// SimilarCommand ranks past entries against text being composed
type SimilarCommand struct {
	journal *application.Journal
	// Source is the key of the searched source, empty for the active one
	Source  string
	Query   string
	Date    string
}

// NewSimilarCommand creates a new SimilarCommand
func NewSimilarCommand(journal *application.Journal, query, date string) *SimilarCommand {
	return &SimilarCommand{journal: journal, Query: query, Date: date}
}

// Execute runs the similarity search. Queries shorter than the minimum
// return no candidates rather than an error.
func (c *SimilarCommand) Execute(ctx context.Context) ([]domain.Candidate, error) {
	return c.journal.SimilarIn(c.Source, c.Query, c.Date)
}

// PastResult holds the entries found for a period
type PastResult struct {
	Period  domain.Period
	Target  string
	Entries []domain.Entry
}

// PastCommand looks up the entry one period before a reference date
type PastCommand struct {
	journal  *application.Journal
	// Source is the key of the searched source, empty for the active one
	Source   string
	Ref      time.Time
	PeriodID string
}

// NewPastCommand creates a new PastCommand. An empty periodID uses the
// active filter.
func NewPastCommand(journal *application.Journal, ref time.Time, periodID string) *PastCommand {
	return &PastCommand{journal: journal, Ref: ref, PeriodID: periodID}
}

// Execute runs the past lookup, switching the active filter when a period is named
func (c *PastCommand) Execute(ctx context.Context) (*PastResult, error) {
	if c.PeriodID != "" {
		if err := c.journal.SetActivePeriod(ctx, c.PeriodID); err != nil {
			return nil, err
		}
	}

	p, entries, err := c.journal.PastEntriesIn(c.Source, c.Ref, c.PeriodID)
	if err != nil {
		return nil, err
	}
	return &PastResult{
		Period:  p,
		Target:  domain.ResolveTargetDate(c.Ref, p),
		Entries: entries,
	}, nil
}
