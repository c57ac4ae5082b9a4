package domain

import (
	"testing"
)

// testMember builds a classified member with controlled absence, join
// recency, and plan type.
func testMember(name string, absentDays int, isNew bool, planType string) ClassifiedMember {
	joinDate := testNow.AddDate(0, 0, -200)
	if isNew {
		joinDate = testNow.AddDate(0, 0, -10)
	}

	record := NewMemberRecord(
		NewMemberID(),
		name,
		"555-0100",
		joinDate,
		testNow.AddDate(0, 0, -3), // lapsed, same bucket for everyone
		testNow.AddDate(0, 0, -absentDays),
		float64(1200),
		planType,
	)
	return ClassifyMember(record, testNow, DefaultRetentionThresholds())
}

func names(members []ClassifiedMember) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Record.Name()
	}
	return out
}

func TestSortByOutreachPriority_CompositeKey(t *testing.T) {
	th := DefaultRetentionThresholds()

	// A and B tie on absence; B wins via the new-member bonus.
	// C loses to both on absence despite the PT bonus.
	members := []ClassifiedMember{
		testMember("A", 10, false, "standard"),
		testMember("B", 10, true, "standard"),
		testMember("C", 5, true, "Personal Training"),
	}

	SortByOutreachPriority(members, testNow, th)

	want := []string{"B", "A", "C"}
	got := names(members)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSortByOutreachPriority_PTBreaksFullTies(t *testing.T) {
	th := DefaultRetentionThresholds()

	members := []ClassifiedMember{
		testMember("plain", 7, false, "monthly gym"),
		testMember("pt_caps", 7, false, "PT premium"),
	}

	SortByOutreachPriority(members, testNow, th)

	if got := names(members); got[0] != "pt_caps" {
		t.Errorf("expected PT member first, got %v", got)
	}
}

func TestSortByOutreachPriority_StableOnFullTie(t *testing.T) {
	th := DefaultRetentionThresholds()

	members := []ClassifiedMember{
		testMember("first", 4, false, "standard"),
		testMember("second", 4, false, "standard"),
		testMember("third", 4, false, "standard"),
	}

	SortByOutreachPriority(members, testNow, th)

	want := []string{"first", "second", "third"}
	got := names(members)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order not preserved: expected %v, got %v", want, got)
		}
	}
}

func TestSortByOutreachPriority_NeverCheckedInSortsFirst(t *testing.T) {
	th := DefaultRetentionThresholds()

	ghost := ClassifyMember(NewMemberRecord(
		NewMemberID(), "ghost", "555-0101",
		testNow.AddDate(0, 0, -200), testNow.AddDate(0, 0, -3),
		nil, // never checked in: sentinel absence
		float64(1200), "standard",
	), testNow, th)

	members := []ClassifiedMember{
		testMember("regular", 30, false, "standard"),
		ghost,
	}

	SortByOutreachPriority(members, testNow, th)

	if got := names(members); got[0] != "ghost" {
		t.Errorf("expected sentinel-absence member first, got %v", got)
	}
}

func TestIsPersonalTraining_Matching(t *testing.T) {
	tests := []struct {
		plan string
		want bool
	}{
		{"Personal Training", true},
		{"PT - quarterly", true},
		{"pt", true},
		{"PERSONAL coaching", true},
		{"standard monthly", false},
		{"", false},
	}

	for _, tt := range tests {
		record := NewMemberRecord(NewMemberID(), "m", "", nil, nil, nil, nil, tt.plan)
		if got := record.IsPersonalTraining(); got != tt.want {
			t.Errorf("plan %q: expected %v, got %v", tt.plan, tt.want, got)
		}
	}
}
