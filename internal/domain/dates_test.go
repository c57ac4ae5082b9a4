package domain

import (
	"testing"
	"time"
)

func TestNormalizeDate_AcceptedForms(t *testing.T) {
	ref := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		known bool
		want  string
	}{
		{"time_value", time.Date(2026, 3, 15, 18, 45, 12, 0, time.UTC), true, "2026-03-15"},
		{"time_pointer", &ref, true, "2026-03-15"},
		{"iso_date", "2026-03-15", true, "2026-03-15"},
		{"rfc3339", "2026-03-15T18:45:12Z", true, "2026-03-15"},
		{"datetime_no_zone", "2026-03-15 18:45:12", true, "2026-03-15"},
		{"slash_date", "15/03/2026", true, "2026-03-15"},
		{"epoch_seconds", int64(1773532800), true, "2026-03-15"},
		{"epoch_millis", int64(1773532800000), true, "2026-03-15"},
		{"numeric_string", "1773532800", true, "2026-03-15"},
		{"nil", nil, false, "unknown"},
		{"nil_pointer", (*time.Time)(nil), false, "unknown"},
		{"empty_string", "", false, "unknown"},
		{"whitespace", "   ", false, "unknown"},
		{"garbage", "not-a-date", false, "unknown"},
		{"zero_epoch", int64(0), false, "unknown"},
		{"negative_epoch", int64(-42), false, "unknown"},
		{"zero_time", time.Time{}, false, "unknown"},
		{"unsupported_type", []int{1, 2}, false, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := NormalizeDate(tt.input)

			if day.Known() != tt.known {
				t.Fatalf("expected known=%v, got %v", tt.known, day.Known())
			}
			if day.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, day.String())
			}
		})
	}
}

func TestDay_DaysUntil(t *testing.T) {
	// reference clock is mid-afternoon: day arithmetic must ignore
	// the time-of-day component entirely
	now := time.Date(2026, 3, 15, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  Day
		want int
	}{
		{"today_morning", DayOf(time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)), 0},
		{"today_evening", DayOf(time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)), 0},
		{"tomorrow", DayOf(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)), 1},
		{"yesterday", DayOf(time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)), -1},
		{"next_month", DayOf(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)), 31},
		{"last_year", DayOf(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)), -365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.day.DaysUntil(now); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			if got := tt.day.DaysSince(now); got != -tt.want {
				t.Errorf("expected DaysSince %d, got %d", -tt.want, got)
			}
		})
	}
}

func TestNormalizeTime_KeepsSubDayPrecision(t *testing.T) {
	at := time.Date(2026, 3, 15, 18, 45, 12, 0, time.UTC)

	got, ok := NormalizeTime(at)
	if !ok {
		t.Fatal("expected timestamp to normalize")
	}
	if !got.Equal(at) {
		t.Errorf("expected %v, got %v", at, got)
	}
}
