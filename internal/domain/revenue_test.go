package domain

import "testing"

func revenueMember(fee any) ClassifiedMember {
	record := NewMemberRecord(
		NewMemberID(), "m", "555-0100",
		testNow.AddDate(0, 0, -100),
		testNow.AddDate(0, 0, -2),
		testNow.AddDate(0, 0, -5),
		fee,
		"standard",
	)
	return ClassifyMember(record, testNow, DefaultRetentionThresholds())
}

func TestRevenueAtRisk_WithFallback(t *testing.T) {
	members := []ClassifiedMember{
		revenueMember(float64(800)),
		revenueMember(float64(0)),
		revenueMember(nil),
	}

	got := RevenueAtRisk(members, 1000)

	// 800 + fallback for zero + fallback for unknown
	if got != 2800 {
		t.Errorf("expected 2800, got %f", got)
	}
}

func TestRevenueAtRisk_NegativeFeeUsesFallback(t *testing.T) {
	members := []ClassifiedMember{revenueMember(float64(-50))}

	if got := RevenueAtRisk(members, 1000); got != 1000 {
		t.Errorf("expected 1000, got %f", got)
	}
}

func TestRevenueAtRisk_EmptyBucket(t *testing.T) {
	if got := RevenueAtRisk(nil, 1000); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestFee_ChargeableOr(t *testing.T) {
	tests := []struct {
		name     string
		fee      Fee
		fallback float64
		want     float64
	}{
		{"known_positive", NewFee(750), 1000, 750},
		{"known_zero", NewFee(0), 1000, 1000},
		{"known_negative", NewFee(-10), 1000, 1000},
		{"unknown", UnknownFee(), 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fee.ChargeableOr(tt.fallback); got != tt.want {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}
