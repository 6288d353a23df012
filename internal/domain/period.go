package domain

import (
	"fmt"
	"time"
)

// Period is a named relative-time rule such as "2 weeks ago"
type Period struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Unit  Unit   `json:"unit"`
	Value int    `json:"value"`
}

// String renders the rule in a compact form, e.g. "2 weeks"
func (p Period) String() string {
	return fmt.Sprintf("%d %s", p.Value, p.Unit)
}

// DefaultPeriodID is the filter selected on first launch
const DefaultPeriodID = "yesterday"

// DefaultPeriods returns the built-in period list
func DefaultPeriods() []Period {
	return []Period{
		{ID: "yesterday", Label: "Yesterday", Unit: UnitDays, Value: 1},
		{ID: "2days", Label: "2 Days Ago", Unit: UnitDays, Value: 2},
		{ID: "5days", Label: "5 Days Ago", Unit: UnitDays, Value: 5},
		{ID: "lastWeek", Label: "Last Week", Unit: UnitWeeks, Value: 1},
		{ID: "2weeks", Label: "2 Weeks Ago", Unit: UnitWeeks, Value: 2},
		{ID: "10weeks", Label: "10 Weeks Ago", Unit: UnitWeeks, Value: 10},
		{ID: "lastMonth", Label: "Last Month", Unit: UnitMonths, Value: 1},
		{ID: "3months", Label: "3 Months Ago", Unit: UnitMonths, Value: 3},
		{ID: "6months", Label: "6 Months Ago", Unit: UnitMonths, Value: 6},
		{ID: "9months", Label: "9 Months Ago", Unit: UnitMonths, Value: 9},
		{ID: "12months", Label: "12 Months Ago", Unit: UnitMonths, Value: 12},
		{ID: "lastYear", Label: "Last Year", Unit: UnitYears, Value: 1},
		{ID: "3years", Label: "3 Years Ago", Unit: UnitYears, Value: 3},
		{ID: "5years", Label: "5 Years Ago", Unit: UnitYears, Value: 5},
	}
}

// ResolveTargetDate returns the key of the day period before ref
func ResolveTargetDate(ref time.Time, p Period) string {
	return ToKey(Shift(ref, p.Unit, -p.Value))
}

// EntriesForPeriod returns the single entry (if any) exactly on the period's
// target date. The reference day itself is never returned.
func EntriesForPeriod(corpus EntryMap, ref time.Time, p Period) []Entry {
	target := ResolveTargetDate(ref, p)
	if target == ToKey(ref) {
		return nil
	}
	body, ok := corpus[target]
	if !ok {
		return nil
	}
	return []Entry{{Date: target, Body: body}}
}

// HasEntryForPeriod reports whether an entry exists on the period's target date
func HasEntryForPeriod(corpus EntryMap, ref time.Time, p Period) bool {
	_, ok := corpus[ResolveTargetDate(ref, p)]
	return ok
}
