package domain

import (
	"reflect"
	"testing"
)

func snapshotForClassification() []MemberRecord {
	return []MemberRecord{
		NewMemberRecord(NewMemberID(), "expired_regular", "555-0001",
			testNow.AddDate(0, 0, -400), testNow.AddDate(0, 0, -12),
			testNow.AddDate(0, 0, -20), float64(900), "standard"),
		NewMemberRecord(NewMemberID(), "due_today_pt", "555-0002",
			testNow.AddDate(0, 0, -15), testNow,
			testNow.AddDate(0, 0, -2), float64(2500), "PT monthly"),
		NewMemberRecord(NewMemberID(), "dirty_dates", "555-0003",
			"not a date", "also not a date",
			"garbage", nil, ""),
	}
}

func TestClassifyMember_DerivedFields(t *testing.T) {
	th := DefaultRetentionThresholds()
	snapshot := snapshotForClassification()

	expired := ClassifyMember(snapshot[0], testNow, th)
	if expired.LifecycleStatus != LifecycleExpired {
		t.Errorf("expected expired, got %s", expired.LifecycleStatus)
	}
	if expired.RenewalBucket != BucketLapsedMonth {
		t.Errorf("expected lapsed-8-30, got %s", expired.RenewalBucket)
	}
	if expired.DaysAbsent.Days() != 20 {
		t.Errorf("expected 20 days absent, got %d", expired.DaysAbsent.Days())
	}

	dueToday := ClassifyMember(snapshot[1], testNow, th)
	if dueToday.LifecycleStatus != LifecycleSoon {
		t.Errorf("expected soon, got %s", dueToday.LifecycleStatus)
	}
	if dueToday.RenewalBucket != BucketDueToday {
		t.Errorf("expected due-today, got %s", dueToday.RenewalBucket)
	}
}

func TestClassifySnapshot_MalformedRecordDegradesToSentinels(t *testing.T) {
	th := DefaultRetentionThresholds()
	classified := ClassifySnapshot(snapshotForClassification(), testNow, th)

	if len(classified) != 3 {
		t.Fatalf("expected all 3 records classified, got %d", len(classified))
	}

	dirty := classified[2]
	if dirty.LifecycleStatus != LifecycleNew {
		t.Errorf("unknown due date: expected new, got %s", dirty.LifecycleStatus)
	}
	if dirty.RenewalBucket != BucketNone {
		t.Errorf("unknown due date: expected none, got %s", dirty.RenewalBucket)
	}
	if dirty.DaysAbsent.Known() || dirty.DaysAbsent.Days() != AbsenceUnknownDays {
		t.Errorf("unknown check-in: expected sentinel, got %d", dirty.DaysAbsent.Days())
	}
}

func TestClassifySnapshot_IdempotentForFrozenNow(t *testing.T) {
	th := DefaultRetentionThresholds()
	snapshot := snapshotForClassification()

	first := ClassifySnapshot(snapshot, testNow, th)
	second := ClassifySnapshot(snapshot, testNow, th)

	if !reflect.DeepEqual(first, second) {
		t.Error("classifying the same snapshot twice with frozen now must match exactly")
	}
}

func TestBuildPriorityBucket_MembersAndRevenue(t *testing.T) {
	th := DefaultRetentionThresholds()

	records := []MemberRecord{
		NewMemberRecord(NewMemberID(), "lapsed_a", "555-0010",
			testNow.AddDate(0, 0, -100), testNow.AddDate(0, 0, -3),
			testNow.AddDate(0, 0, -9), float64(800), "standard"),
		NewMemberRecord(NewMemberID(), "lapsed_b", "555-0011",
			testNow.AddDate(0, 0, -100), testNow.AddDate(0, 0, -5),
			testNow.AddDate(0, 0, -2), nil, "standard"),
		NewMemberRecord(NewMemberID(), "healthy", "555-0012",
			testNow.AddDate(0, 0, -100), testNow.AddDate(0, 0, 40),
			testNow.AddDate(0, 0, -1), float64(700), "standard"),
	}
	classified := ClassifySnapshot(records, testNow, th)

	bucket := BuildPriorityBucket(classified, BucketLapsedWeek, testNow, th)

	if len(bucket.Members) != 2 {
		t.Fatalf("expected 2 members in lapsed-1-7, got %d", len(bucket.Members))
	}
	// lapsed_a is the more absent of the two
	if bucket.Members[0].Record.Name() != "lapsed_a" {
		t.Errorf("expected lapsed_a first, got %s", bucket.Members[0].Record.Name())
	}
	// 800 known + fallback for the unknown fee
	if bucket.RevenueAtRisk != 1800 {
		t.Errorf("expected revenue 1800, got %f", bucket.RevenueAtRisk)
	}
}

func TestBuildPriorityBucket_DueTodayMemberAlsoInDueSoon(t *testing.T) {
	th := DefaultRetentionThresholds()

	records := []MemberRecord{
		NewMemberRecord(NewMemberID(), "due_now", "555-0020",
			testNow.AddDate(0, 0, -100), testNow,
			testNow.AddDate(0, 0, -1), float64(900), "standard"),
	}
	classified := ClassifySnapshot(records, testNow, th)

	today := BuildPriorityBucket(classified, BucketDueToday, testNow, th)
	soon := BuildPriorityBucket(classified, BucketDueSoon, testNow, th)

	if len(today.Members) != 1 || len(soon.Members) != 1 {
		t.Errorf("expected member in both views, got today=%d soon=%d",
			len(today.Members), len(soon.Members))
	}
}
