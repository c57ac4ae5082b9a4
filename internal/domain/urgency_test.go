package domain

import (
	"testing"
)

func testEnquiry(expectedJoin, lastFollowUp any, followUpRequired bool, status string) EnquiryRecord {
	return NewEnquiryRecord(
		NewEnquiryID(),
		"prospect",
		"555-0200",
		expectedJoin,
		lastFollowUp,
		followUpRequired,
		status,
	)
}

func TestClassifyUrgency_ExpectedJoinDateRules(t *testing.T) {
	th := DefaultRetentionThresholds()

	tests := []struct {
		name          string
		expectedJoin  any
		status        string
		wantHighlight UrgencyHighlight
		wantBadge     string
	}{
		{"three_days_over", testNow.AddDate(0, 0, -3), "follow_up", UrgencyOverdue, "Overdue"},
		{"exactly_at_threshold", testNow.AddDate(0, 0, -2), "follow_up", UrgencyOverdue, "Overdue"},
		{"one_day_over", testNow.AddDate(0, 0, -1), "follow_up", UrgencyToday, "Follow-up Today"},
		{"expected_today", testNow, "new", UrgencyToday, "Follow-up Today"},
		{"expected_next_week", testNow.AddDate(0, 0, 7), "new", UrgencyNormal, ""},
		{"no_expected_date", nil, "new", UrgencyNormal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnquiry(tt.expectedJoin, nil, false, tt.status)
			got := ClassifyUrgency(e, testNow, th)

			if got.Highlight != tt.wantHighlight {
				t.Errorf("expected highlight %s, got %s", tt.wantHighlight, got.Highlight)
			}
			if got.Badge != tt.wantBadge {
				t.Errorf("expected badge %q, got %q", tt.wantBadge, got.Badge)
			}
		})
	}
}

func TestClassifyUrgency_ConvertedSuppressesEverything(t *testing.T) {
	th := DefaultRetentionThresholds()

	// three days past the expected join date is plainly overdue
	e := testEnquiry(testNow.AddDate(0, 0, -3), nil, true, "follow_up")
	got := ClassifyUrgency(e, testNow, th)
	if got.Highlight != UrgencyOverdue || got.Badge != "Overdue" {
		t.Fatalf("expected overdue/Overdue, got %s/%q", got.Highlight, got.Badge)
	}

	// same record, converted: no urgency, no badge
	converted := testEnquiry(testNow.AddDate(0, 0, -3), nil, true, "converted")
	got = ClassifyUrgency(converted, testNow, th)
	if got.Highlight != UrgencyConverted {
		t.Errorf("expected converted, got %s", got.Highlight)
	}
	if got.Badge != "" {
		t.Errorf("expected no badge, got %q", got.Badge)
	}
}

func TestClassifyUrgency_FollowUpRules(t *testing.T) {
	th := DefaultRetentionThresholds()

	tests := []struct {
		name             string
		lastFollowUp     any
		followUpRequired bool
		wantHighlight    UrgencyHighlight
	}{
		{"stale_follow_up", testNow.AddDate(0, 0, -4), true, UrgencyOverdue},
		{"at_threshold", testNow.AddDate(0, 0, -2), true, UrgencyOverdue},
		{"followed_up_today", testNow, true, UrgencyToday},
		{"followed_up_yesterday", testNow.AddDate(0, 0, -1), true, UrgencyNormal},
		{"not_flagged", testNow.AddDate(0, 0, -10), false, UrgencyNormal},
		{"flagged_but_no_date", nil, true, UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnquiry(nil, tt.lastFollowUp, tt.followUpRequired, "follow_up")
			got := ClassifyUrgency(e, testNow, th)

			if got.Highlight != tt.wantHighlight {
				t.Errorf("expected %s, got %s", tt.wantHighlight, got.Highlight)
			}
		})
	}
}

func TestClassifyUrgency_FutureExpectedJoinFallsThroughToFollowUp(t *testing.T) {
	th := DefaultRetentionThresholds()

	// prospect says they'll join next week, but the last follow-up has
	// gone stale: the follow-up rule still fires
	e := testEnquiry(testNow.AddDate(0, 0, 7), testNow.AddDate(0, 0, -5), true, "follow_up")
	got := ClassifyUrgency(e, testNow, th)

	if got.Highlight != UrgencyOverdue {
		t.Errorf("expected overdue via follow-up rule, got %s", got.Highlight)
	}
}

func TestClassifyUrgency_LostStillComputesHighlight(t *testing.T) {
	th := DefaultRetentionThresholds()

	// lost enquiries keep their computed highlight; they are dropped
	// from outreach lists by the actionability filter, not here
	e := testEnquiry(testNow.AddDate(0, 0, -5), nil, true, "lost")
	got := ClassifyUrgency(e, testNow, th)

	if got.Highlight != UrgencyOverdue {
		t.Errorf("expected overdue for lost enquiry, got %s", got.Highlight)
	}
	if e.Status().IsActionable() {
		t.Error("lost enquiry must not be actionable")
	}
}

func TestEnquiryStatus_Parsing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"new", "new", true},
		{"follow_up", "follow_up", true},
		{"converted", "converted", true},
		{"lost", "lost", true},
		{"unknown", "ghosted", false},
		{"empty", "", false},
		{"uppercase", "NEW", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseEnquiryStatus(tt.input)

			if tt.valid {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if !status.IsValid() {
					t.Error("expected status to be valid")
				}
			} else if err == nil {
				t.Error("expected error for invalid status")
			}
		})
	}
}

func TestNewEnquiryRecord_UnknownStatusDefaultsToNew(t *testing.T) {
	e := testEnquiry(nil, nil, false, "something-else")
	if e.Status() != EnquiryStatusNew {
		t.Errorf("expected new, got %s", e.Status())
	}
}
