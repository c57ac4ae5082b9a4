package domain

import "testing"

func TestNormalizeFee(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantKnown bool
		wantValue float64
	}{
		{"float", float64(750.5), true, 750.5},
		{"int", 900, true, 900},
		{"int64", int64(1200), true, 1200},
		{"zero_is_known", float64(0), true, 0},
		{"negative_is_known", float64(-5), true, -5},
		{"nil", nil, false, 0},
		{"nil_pointer", (*float64)(nil), false, 0},
		{"string_is_unknown", "800", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := NormalizeFee(tt.input)

			if fee.Known() != tt.wantKnown {
				t.Errorf("expected known=%v, got %v", tt.wantKnown, fee.Known())
			}
			if fee.Value() != tt.wantValue {
				t.Errorf("expected %f, got %f", tt.wantValue, fee.Value())
			}
		})
	}
}

func TestParseMemberID(t *testing.T) {
	id := NewMemberID()

	parsed, err := ParseMemberID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != id {
		t.Errorf("expected %s, got %s", id, parsed)
	}

	if _, err := ParseMemberID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestParseCheckInSource(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"face", "face", true},
		{"kiosk", "kiosk", true},
		{"manual", "manual", true},
		{"app", "app", true},
		{"unknown", "carrier-pigeon", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := ParseCheckInSource(tt.input)

			if tt.valid {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if !source.IsValid() {
					t.Error("expected source to be valid")
				}
			} else if err == nil {
				t.Error("expected error for invalid source")
			}
		})
	}
}

func TestRiskAlertThresholds_IsAlertable(t *testing.T) {
	th := DefaultRiskAlertThresholds()

	tests := []struct {
		name    string
		count   int
		revenue float64
		want    bool
	}{
		{"both_above", 8, 15000, true},
		{"exactly_at_thresholds", 5, 10000, true},
		{"revenue_too_low", 8, 9999, false},
		{"too_few_members", 4, 50000, false},
		{"empty_bucket", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := th.IsAlertable(tt.count, tt.revenue); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
