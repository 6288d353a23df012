package commands

import (
	"context"
	"fmt"

	"journey/internal/application"
	"journey/internal/domain"
)

// PeriodResult contains the result of a period change
type PeriodResult struct {
	Period   domain.Period
	Refilter bool
	Message  string
}

// AddPeriodCommand appends a new period
type AddPeriodCommand struct {
	journal *application.Journal
	Label   string
	Unit    string
	Value   int
}

// NewAddPeriodCommand creates a new AddPeriodCommand
func NewAddPeriodCommand(journal *application.Journal, label, unit string, value int) *AddPeriodCommand {
	return &AddPeriodCommand{journal: journal, Label: label, Unit: unit, Value: value}
}

// Validate checks if the period is valid
func (c *AddPeriodCommand) Validate() error {
	return validatePeriodInput(c.Label, c.Unit, c.Value)
}

// Execute runs the add command
func (c *AddPeriodCommand) Execute(ctx context.Context) (*PeriodResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	unit, _ := application.ParseUnit(c.Unit)

	p, err := c.journal.AddPeriod(ctx, c.Label, unit, c.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to add period: %w", err)
	}
	return &PeriodResult{
		Period:  p,
		Message: fmt.Sprintf("Added period: %s (%s)", p.Label, p),
	}, nil
}

// EditPeriodCommand replaces an existing period's label and rule
type EditPeriodCommand struct {
	journal  *application.Journal
	PeriodID string
	Label    string
	Unit     string
	Value    int
}

// NewEditPeriodCommand creates a new EditPeriodCommand
func NewEditPeriodCommand(journal *application.Journal, id, label, unit string, value int) *EditPeriodCommand {
	return &EditPeriodCommand{journal: journal, PeriodID: id, Label: label, Unit: unit, Value: value}
}

// Validate checks if the edit is valid
func (c *EditPeriodCommand) Validate() error {
	if err := application.ValidateRequired("periodID", c.PeriodID); err != nil {
		return err
	}
	return validatePeriodInput(c.Label, c.Unit, c.Value)
}

// Execute runs the edit command
func (c *EditPeriodCommand) Execute(ctx context.Context) (*PeriodResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	unit, _ := application.ParseUnit(c.Unit)

	p, err := c.journal.EditPeriod(ctx, c.PeriodID, c.Label, unit, c.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to edit period: %w", err)
	}
	return &PeriodResult{
		Period:   p,
		Refilter: c.journal.ActivePeriod().ID == p.ID,
		Message:  fmt.Sprintf("Updated period: %s (%s)", p.Label, p),
	}, nil
}

// RemovePeriodCommand deletes a period
type RemovePeriodCommand struct {
	journal  *application.Journal
	PeriodID string
}

// NewRemovePeriodCommand creates a new RemovePeriodCommand
func NewRemovePeriodCommand(journal *application.Journal, id string) *RemovePeriodCommand {
	return &RemovePeriodCommand{journal: journal, PeriodID: id}
}

// Execute runs the remove command
func (c *RemovePeriodCommand) Execute(ctx context.Context) (*PeriodResult, error) {
	if err := application.ValidateRequired("periodID", c.PeriodID); err != nil {
		return nil, err
	}

	refilter, err := c.journal.RemovePeriod(ctx, c.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove period: %w", err)
	}
	result := &PeriodResult{
		Period:   c.journal.ActivePeriod(),
		Refilter: refilter,
		Message:  fmt.Sprintf("Removed period: %s", c.PeriodID),
	}
	if refilter {
		result.Message += fmt.Sprintf(", filter reset to %s", result.Period.Label)
	}
	return result, nil
}

// ReorderPeriodsCommand applies a new period order
type ReorderPeriodsCommand struct {
	journal *application.Journal
	IDs     []string
}

// NewReorderPeriodsCommand creates a new ReorderPeriodsCommand
func NewReorderPeriodsCommand(journal *application.Journal, ids []string) *ReorderPeriodsCommand {
	return &ReorderPeriodsCommand{journal: journal, IDs: ids}
}

// Execute runs the reorder command
func (c *ReorderPeriodsCommand) Execute(ctx context.Context) error {
	if err := c.journal.ReorderPeriods(ctx, c.IDs); err != nil {
		return fmt.Errorf("failed to reorder periods: %w", err)
	}
	return nil
}

func validatePeriodInput(label, unit string, value int) error {
	if err := application.ValidateRequired("label", label); err != nil {
		return err
	}
	if _, err := application.ParseUnit(unit); err != nil {
		return err
	}
	if value < 1 {
		return &application.ValidationError{
			Field:   "value",
			Message: fmt.Sprintf("value must be at least 1, got: %d", value),
		}
	}
	return nil
}
