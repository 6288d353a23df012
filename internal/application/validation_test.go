package application

import (
	"errors"
	"testing"

	"journey/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "label",
			value:     "Last Week",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "label",
			value:     "",
			wantErr:   true,
			wantMsg:   "label is required",
		},
		{
			name:      "whitespace only",
			fieldName: "periodID",
			value:     "   ",
			wantErr:   true,
			wantMsg:   "period ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, valErr.Message)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Error("expected error to match ErrInvalidInput")
				}
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "2024-02-29", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "compact", value: "20240229", wantErr: true},
		{name: "no such day", value: "2023-02-29", wantErr: true},
		{name: "month out of range", value: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate("date", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Unit
		wantErr bool
	}{
		{input: "days", want: domain.UnitDays},
		{input: "Day", want: domain.UnitDays},
		{input: " w ", want: domain.UnitWeeks},
		{input: "mo", want: domain.UnitMonths},
		{input: "months", want: domain.UnitMonths},
		{input: "y", want: domain.UnitYears},
		{input: "fortnight", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
