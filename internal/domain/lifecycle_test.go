package domain

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func dayFromNow(days int) Day {
	return DayOf(testNow.AddDate(0, 0, days))
}

func TestClassifyLifecycle_Boundaries(t *testing.T) {
	th := DefaultRetentionThresholds()

	tests := []struct {
		name     string
		dueDate  Day
		joinDate Day
		want     LifecycleStatus
	}{
		{"due_yesterday", dayFromNow(-1), dayFromNow(-100), LifecycleExpired},
		{"due_long_ago", dayFromNow(-60), dayFromNow(-100), LifecycleExpired},
		{"due_today_is_soon_not_expired", dayFromNow(0), dayFromNow(-100), LifecycleSoon},
		{"due_at_window_edge", dayFromNow(5), dayFromNow(-100), LifecycleSoon},
		{"due_past_window_tenured", dayFromNow(6), dayFromNow(-100), LifecycleValid},
		{"due_past_window_recent_join", dayFromNow(6), dayFromNow(-10), LifecycleNew},
		{"join_window_edge", dayFromNow(20), dayFromNow(-30), LifecycleNew},
		{"just_past_join_window", dayFromNow(20), dayFromNow(-31), LifecycleValid},
		{"unknown_due_date", UnknownDay(), dayFromNow(-100), LifecycleNew},
		{"unknown_join_date_healthy_due", dayFromNow(60), UnknownDay(), LifecycleValid},
		{"both_unknown", UnknownDay(), UnknownDay(), LifecycleNew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLifecycle(tt.dueDate, tt.joinDate, testNow, th)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyLifecycle_ExpiredWinsOverJoinRecency(t *testing.T) {
	th := DefaultRetentionThresholds()

	// an expired membership is expired no matter how recently the
	// member joined
	joinDates := []Day{dayFromNow(-1), dayFromNow(-15), dayFromNow(-200), UnknownDay()}
	for _, join := range joinDates {
		got := ClassifyLifecycle(dayFromNow(-3), join, testNow, th)
		if got != LifecycleExpired {
			t.Errorf("join=%s: expected expired, got %s", join, got)
		}
	}
}

func TestClassifyLifecycle_CustomSoonWindow(t *testing.T) {
	th := DefaultRetentionThresholds()
	th.SoonWindowDays = 10

	if got := ClassifyLifecycle(dayFromNow(8), dayFromNow(-100), testNow, th); got != LifecycleSoon {
		t.Errorf("expected soon with widened window, got %s", got)
	}
}
