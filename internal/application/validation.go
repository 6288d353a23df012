package application

import (
	"fmt"
	"strings"

	"journey/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "periodID" -> "period ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"periodID": "period ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateDate checks that value is a canonical key of a real calendar day
func ValidateDate(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if !domain.IsValidKey(value) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected YYYY-MM-DD, got: %s", value),
		}
	}
	return nil
}

// ParseUnit accepts a unit name or its singular or short form
func ParseUnit(s string) (domain.Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "day", "days":
		return domain.UnitDays, nil
	case "w", "week", "weeks":
		return domain.UnitWeeks, nil
	case "m", "mo", "month", "months":
		return domain.UnitMonths, nil
	case "y", "year", "years":
		return domain.UnitYears, nil
	default:
		return "", &ConfigError{Field: "unit", Reason: fmt.Sprintf("unknown unit %q", s)}
	}
}
