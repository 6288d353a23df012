package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// KeyLayout is the canonical layout for entry date keys
const KeyLayout = "2006-01-02"

// Unit is the calendar unit used by period arithmetic
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// Valid reports whether u is one of the supported units
func (u Unit) Valid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return true
	default:
		return false
	}
}

var (
	keyRegex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	compactRegex   = regexp.MustCompile(`^\d{8}$`)
	slashedRegex   = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	dateTokenRegex = regexp.MustCompile(`^(\d{8}|\d{4}-\d{2}-\d{2}|\d{4}/\d{2}/\d{2})$`)
)

// InvalidDateError reports a malformed or impossible date string
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

// ToKey formats t as YYYY-MM-DD using t's own calendar fields
func ToKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// FromKey parses a YYYY-MM-DD key into local midnight of that day
func FromKey(key string) (time.Time, error) {
	if !keyRegex.MatchString(key) {
		return time.Time{}, &InvalidDateError{Value: key}
	}
	// time.ParseInLocation rejects day-of-month overflow such as Feb 30
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: key}
	}
	return t, nil
}

// IsValidKey reports whether key is a canonical key for a real calendar day
func IsValidKey(key string) bool {
	_, err := FromKey(key)
	return err == nil
}

// Today returns the key of now in the local calendar
func Today(now time.Time) string {
	return ToKey(now.Local())
}

// Shift moves t by amount units. Month and year shifts clamp to the last
// day of the target month instead of rolling over into the next one.
func Shift(t time.Time, unit Unit, amount int) time.Time {
	switch unit {
	case UnitDays:
		return t.AddDate(0, 0, amount)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*amount)
	case UnitMonths:
		return addMonthsClamped(t, amount)
	case UnitYears:
		return addMonthsClamped(t, 12*amount)
	default:
		return t
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	// Normalize via the first of the month so AddDate never overflows
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// IsDateToken reports whether a whole trimmed line is a raw date marker
// (YYYYMMDD, YYYY-MM-DD or YYYY/MM/DD)
func IsDateToken(s string) bool {
	return dateTokenRegex.MatchString(s)
}

// NormalizeDateToken converts the alternate raw date forms to YYYY-MM-DD.
// Unrecognized input is returned unchanged.
func NormalizeDateToken(s string) string {
	switch {
	case compactRegex.MatchString(s):
		return s[0:4] + "-" + s[4:6] + "-" + s[6:8]
	case slashedRegex.MatchString(s):
		return strings.ReplaceAll(s, "/", "-")
	default:
		return s
	}
}
