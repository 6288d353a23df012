package application

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"journey/internal/domain"
	"journey/internal/ports"
)

// PeriodBook owns the ordered period list and the active filter.
// Every change is persisted before it returns.
type PeriodBook struct {
	kv      ports.KeyValueStore
	periods []domain.Period
	active  string
}

// NewPeriodBook creates a book holding the default periods
func NewPeriodBook(kv ports.KeyValueStore) *PeriodBook {
	return &PeriodBook{
		kv:      kv,
		periods: domain.DefaultPeriods(),
		active:  domain.DefaultPeriodID,
	}
}

// Load reads the stored periods and active filter, keeping the defaults
// when nothing valid is stored
func (b *PeriodBook) Load(ctx context.Context) error {
	var stored []domain.Period
	if _, err := loadJSON(ctx, b.kv, KeyPeriods, &stored); err != nil {
		return err
	}

	valid := stored[:0]
	for _, p := range stored {
		if validatePeriod(p.Label, p.Unit, p.Value) == nil && p.ID != "" {
			valid = append(valid, p)
		}
	}
	if len(valid) > 0 {
		b.periods = valid
	}

	var active string
	if _, err := loadJSON(ctx, b.kv, KeyActiveFilter, &active); err != nil {
		return err
	}
	if _, ok := b.index(active); ok {
		b.active = active
	} else {
		b.active = b.periods[0].ID
	}
	return nil
}

// List returns the periods in display order
func (b *PeriodBook) List() []domain.Period {
	return slices.Clone(b.periods)
}

// Active returns the active filter period
func (b *PeriodBook) Active() domain.Period {
	i, ok := b.index(b.active)
	if !ok {
		return b.periods[0]
	}
	return b.periods[i]
}

// Get returns the period with id
func (b *PeriodBook) Get(id string) (domain.Period, error) {
	i, ok := b.index(id)
	if !ok {
		return domain.Period{}, fmt.Errorf("period %q: %w", id, ErrNotFound)
	}
	return b.periods[i], nil
}

// Add appends a new period with a fresh id
func (b *PeriodBook) Add(ctx context.Context, label string, unit domain.Unit, value int) (domain.Period, error) {
	label = strings.TrimSpace(label)
	if err := validatePeriod(label, unit, value); err != nil {
		return domain.Period{}, err
	}

	p := domain.Period{
		ID:    "p_" + uuid.NewString(),
		Label: label,
		Unit:  unit,
		Value: value,
	}
	next := append(slices.Clone(b.periods), p)
	if err := b.commit(ctx, next, b.active); err != nil {
		return domain.Period{}, err
	}
	return p, nil
}

// Edit replaces the label and rule of an existing period, active or not
func (b *PeriodBook) Edit(ctx context.Context, id, label string, unit domain.Unit, value int) (domain.Period, error) {
	i, ok := b.index(id)
	if !ok {
		return domain.Period{}, fmt.Errorf("period %q: %w", id, ErrNotFound)
	}
	label = strings.TrimSpace(label)
	if err := validatePeriod(label, unit, value); err != nil {
		return domain.Period{}, err
	}

	next := slices.Clone(b.periods)
	next[i] = domain.Period{ID: id, Label: label, Unit: unit, Value: value}
	if err := b.commit(ctx, next, b.active); err != nil {
		return domain.Period{}, err
	}
	return next[i], nil
}

// Remove deletes a period. The last period cannot be removed. It reports
// whether the active filter fell back to the first period.
func (b *PeriodBook) Remove(ctx context.Context, id string) (bool, error) {
	i, ok := b.index(id)
	if !ok {
		return false, fmt.Errorf("period %q: %w", id, ErrNotFound)
	}
	if len(b.periods) == 1 {
		return false, &ConfigError{Field: "periods", Reason: "at least one period must remain"}
	}

	next := slices.Delete(slices.Clone(b.periods), i, i+1)
	active := b.active
	refilter := active == id
	if refilter {
		active = next[0].ID
	}
	if err := b.commit(ctx, next, active); err != nil {
		return false, err
	}
	return refilter, nil
}

// Reorder arranges the periods in the order of ids, which must name every
// period exactly once
func (b *PeriodBook) Reorder(ctx context.Context, ids []string) error {
	if len(ids) != len(b.periods) {
		return &ConfigError{Field: "order", Reason: fmt.Sprintf("expected %d ids, got %d", len(b.periods), len(ids))}
	}

	next := make([]domain.Period, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		i, ok := b.index(id)
		if !ok {
			return &ConfigError{Field: "order", Reason: fmt.Sprintf("unknown period %q", id)}
		}
		if seen[id] {
			return &ConfigError{Field: "order", Reason: fmt.Sprintf("duplicate period %q", id)}
		}
		seen[id] = true
		next = append(next, b.periods[i])
	}
	return b.commit(ctx, next, b.active)
}

// SetActive selects the filter period
func (b *PeriodBook) SetActive(ctx context.Context, id string) error {
	if _, ok := b.index(id); !ok {
		return fmt.Errorf("period %q: %w", id, ErrNotFound)
	}
	if id == b.active {
		return nil
	}
	return b.commit(ctx, b.periods, id)
}

func (b *PeriodBook) commit(ctx context.Context, periods []domain.Period, active string) error {
	if err := saveJSON(ctx, b.kv, KeyPeriods, periods); err != nil {
		return err
	}
	if active != b.active {
		if err := saveJSON(ctx, b.kv, KeyActiveFilter, active); err != nil {
			return err
		}
	}
	b.periods = periods
	b.active = active
	return nil
}

func (b *PeriodBook) index(id string) (int, bool) {
	i := slices.IndexFunc(b.periods, func(p domain.Period) bool { return p.ID == id })
	return i, i >= 0
}

func validatePeriod(label string, unit domain.Unit, value int) error {
	if strings.TrimSpace(label) == "" {
		return &ConfigError{Field: "label", Reason: "label is required"}
	}
	if !unit.Valid() {
		return &ConfigError{Field: "unit", Reason: fmt.Sprintf("unknown unit %q", unit)}
	}
	if value < 1 {
		return &ConfigError{Field: "value", Reason: "value must be at least 1"}
	}
	return nil
}
