package domain

import (
	"testing"
)

func TestInRenewalBucket_Windows(t *testing.T) {
	th := DefaultRetentionThresholds()

	tests := []struct {
		name    string
		dueDate Day
		bucket  RenewalBucket
		want    bool
	}{
		{"due_today_in_due_today", dayFromNow(0), BucketDueToday, true},
		{"due_tomorrow_not_due_today", dayFromNow(1), BucketDueToday, false},
		{"due_today_in_due_soon", dayFromNow(0), BucketDueSoon, true},
		{"due_in_three_in_due_soon", dayFromNow(3), BucketDueSoon, true},
		{"due_in_four_not_due_soon", dayFromNow(4), BucketDueSoon, false},
		{"overdue_not_due_soon", dayFromNow(-1), BucketDueSoon, false},
		{"lapsed_one_day", dayFromNow(-1), BucketLapsedWeek, true},
		{"lapsed_seven_days", dayFromNow(-7), BucketLapsedWeek, true},
		{"lapsed_eight_days", dayFromNow(-8), BucketLapsedWeek, false},
		{"lapsed_eight_in_month", dayFromNow(-8), BucketLapsedMonth, true},
		{"lapsed_thirty_in_month", dayFromNow(-30), BucketLapsedMonth, true},
		{"lapsed_thirty_one_in_quarter", dayFromNow(-31), BucketLapsedQuarter, true},
		{"lapsed_ninety_in_quarter", dayFromNow(-90), BucketLapsedQuarter, true},
		{"lapsed_ninety_one_nowhere", dayFromNow(-91), BucketLapsedQuarter, false},
		{"unknown_due_date_nowhere", UnknownDay(), BucketDueSoon, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InRenewalBucket(tt.dueDate, testNow, th, tt.bucket)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRenewalBuckets_LapsedExclusivity(t *testing.T) {
	th := DefaultRetentionThresholds()
	lapsed := []RenewalBucket{BucketLapsedWeek, BucketLapsedMonth, BucketLapsedQuarter}

	// sweep every offset the lapsed ranges cover plus the edges around them
	for offset := -100; offset <= 5; offset++ {
		due := dayFromNow(offset)

		matches := 0
		for _, bucket := range lapsed {
			if InRenewalBucket(due, testNow, th, bucket) {
				matches++
			}
		}
		if matches > 1 {
			t.Errorf("offset %d: member in %d lapsed buckets, want at most 1", offset, matches)
		}
	}
}

func TestRenewalBuckets_DueTodayImpliesDueSoon(t *testing.T) {
	th := DefaultRetentionThresholds()

	for offset := -5; offset <= 5; offset++ {
		due := dayFromNow(offset)
		if InRenewalBucket(due, testNow, th, BucketDueToday) &&
			!InRenewalBucket(due, testNow, th, BucketDueSoon) {
			t.Errorf("offset %d: due-today member missing from due-soon", offset)
		}
	}
}

func TestRenewalBucketFor_MostSpecificWins(t *testing.T) {
	th := DefaultRetentionThresholds()

	tests := []struct {
		name    string
		dueDate Day
		want    RenewalBucket
	}{
		{"due_today", dayFromNow(0), BucketDueToday},
		{"due_in_two", dayFromNow(2), BucketDueSoon},
		{"lapsed_five", dayFromNow(-5), BucketLapsedWeek},
		{"lapsed_twenty", dayFromNow(-20), BucketLapsedMonth},
		{"lapsed_sixty", dayFromNow(-60), BucketLapsedQuarter},
		{"lapsed_beyond_quarter", dayFromNow(-120), BucketNone},
		{"healthy_future", dayFromNow(45), BucketNone},
		{"unknown", UnknownDay(), BucketNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenewalBucketFor(tt.dueDate, testNow, th)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseRenewalBucket(t *testing.T) {
	if _, err := ParseRenewalBucket("due-today"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseRenewalBucket("lapsed-forever"); err != ErrInvalidBucket {
		t.Errorf("expected ErrInvalidBucket, got %v", err)
	}
}
