package domain

import (
	"testing"
	"time"
)

func TestTrackAbsence(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastCheckIn time.Time
		hasChecked  bool
		wantDays    int
		wantKnown   bool
	}{
		{"checked_in_just_now", now, true, 0, true},
		{"ten_days_ago", now.AddDate(0, 0, -10), true, 10, true},
		{"partial_day_floors", now.Add(-36 * time.Hour), true, 1, true},
		{"under_a_day", now.Add(-23 * time.Hour), true, 0, true},
		{"future_clamps_to_zero", now.Add(time.Millisecond), true, 0, true},
		{"far_future_clamps_to_zero", now.AddDate(0, 0, 3), true, 0, true},
		{"never_checked_in", time.Time{}, false, AbsenceUnknownDays, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absence := TrackAbsence(tt.lastCheckIn, tt.hasChecked, now)

			if absence.Days() != tt.wantDays {
				t.Errorf("expected %d days, got %d", tt.wantDays, absence.Days())
			}
			if absence.Known() != tt.wantKnown {
				t.Errorf("expected known=%v, got %v", tt.wantKnown, absence.Known())
			}
			if absence.Days() < 0 {
				t.Error("absence must never be negative")
			}
		})
	}
}

func TestUnknownAbsence_SentinelIsDistinguishable(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	// a member genuinely absent 999 days must not look like the sentinel
	genuine := TrackAbsence(now.AddDate(0, 0, -AbsenceUnknownDays), true, now)
	sentinel := UnknownAbsence()

	if genuine.Days() != sentinel.Days() {
		t.Fatalf("expected equal day counts, got %d vs %d", genuine.Days(), sentinel.Days())
	}
	if !genuine.Known() || sentinel.Known() {
		t.Error("Known flag must separate real absence from the sentinel")
	}
}
