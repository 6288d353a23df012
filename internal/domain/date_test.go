package domain

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestToKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero padded", day(2024, time.January, 5), "2024-01-05"},
		{"end of year", day(2023, time.December, 31), "2023-12-31"},
		{"leap day", day(2024, time.February, 29), "2024-02-29"},
		{"small year", day(999, time.March, 1), "0999-03-01"},
		{"ignores time of day", time.Date(2024, time.June, 1, 23, 59, 0, 0, time.Local), "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToKey(tt.in); got != tt.want {
				t.Errorf("ToKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "2024-01-31", false},
		{"leap day", "2024-02-29", false},
		{"non leap year feb 29", "2023-02-29", true},
		{"feb 30", "2024-02-30", true},
		{"month 13", "2024-13-01", true},
		{"month 0", "2024-00-10", true},
		{"missing padding", "2024-1-5", true},
		{"compact form", "20240105", true},
		{"garbage", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromKey(tt.key)
			if tt.wantErr {
				var invalid *InvalidDateError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidDateError, got %v", err)
				}
				if invalid.Value != tt.key {
					t.Errorf("error value = %q, want %q", invalid.Value, tt.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ToKey(got) != tt.key {
				t.Errorf("round trip = %q, want %q", ToKey(got), tt.key)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("expected local midnight, got %v", got)
			}
		})
	}
}

func TestKeyRoundTrip(t *testing.T) {
	start := day(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		key := ToKey(d)
		back, err := FromKey(key)
		if err != nil {
			t.Fatalf("FromKey(%q): %v", key, err)
		}
		if ToKey(back) != key {
			t.Fatalf("round trip of %q gave %q", key, ToKey(back))
		}
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		unit   Unit
		amount int
		want   string
	}{
		{"one day back across leap day", day(2024, time.March, 1), UnitDays, -1, "2024-02-29"},
		{"days forward", day(2024, time.December, 30), UnitDays, 5, "2025-01-04"},
		{"two weeks back", day(2024, time.March, 10), UnitWeeks, -2, "2024-02-25"},
		{"month back from jan 31", day(2024, time.January, 31), UnitMonths, -1, "2023-12-31"},
		{"month back clamps in leap year", day(2024, time.March, 31), UnitMonths, -1, "2024-02-29"},
		{"month back clamps in common year", day(2023, time.March, 31), UnitMonths, -1, "2023-02-28"},
		{"month forward clamps", day(2024, time.January, 31), UnitMonths, 1, "2024-02-29"},
		{"twelve months back", day(2024, time.May, 15), UnitMonths, -12, "2023-05-15"},
		{"year back from leap day", day(2024, time.February, 29), UnitYears, -1, "2023-02-28"},
		{"five years back", day(2024, time.July, 4), UnitYears, -5, "2019-07-04"},
		{"unknown unit is identity", day(2024, time.July, 4), Unit("fortnights"), -1, "2024-07-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToKey(Shift(tt.from, tt.unit, tt.amount)); got != tt.want {
				t.Errorf("Shift() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeDateToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240105", "2024-01-05"},
		{"2024/01/05", "2024-01-05"},
		{"2024-01-05", "2024-01-05"},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeDateToken(tt.in); got != tt.want {
				t.Errorf("NormalizeDateToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDateToken(t *testing.T) {
	valid := []string{"20240105", "2024-01-05", "2024/01/05"}
	for _, s := range valid {
		if !IsDateToken(s) {
			t.Errorf("expected %q to be a date token", s)
		}
	}

	invalid := []string{"2024-01-05 notes", "2024.01.05", "202401051", "# 2024-01-05", ""}
	for _, s := range invalid {
		if IsDateToken(s) {
			t.Errorf("expected %q not to be a date token", s)
		}
	}
}

func TestUnitValid(t *testing.T) {
	for _, u := range []Unit{UnitDays, UnitWeeks, UnitMonths, UnitYears} {
		if !u.Valid() {
			t.Errorf("expected %q to be valid", u)
		}
	}
	if Unit("hours").Valid() {
		t.Error("expected hours to be invalid")
	}
}
