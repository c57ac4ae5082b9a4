package domain

import "time"

// LifecycleStatus is a member's membership-health classification.
type LifecycleStatus string

const (
	// LifecycleExpired means the due date has passed.
	LifecycleExpired LifecycleStatus = "expired"

	// LifecycleSoon means the due date falls within the soon window,
	// today included.
	LifecycleSoon LifecycleStatus = "soon"

	// LifecycleValid means the membership is healthy and the member is
	// past the new-member window.
	LifecycleValid LifecycleStatus = "valid"

	// LifecycleNew means there is no expiry pressure yet: either no due
	// date is recorded, or the member joined recently.
	LifecycleNew LifecycleStatus = "new"
)

// String returns the string representation of the LifecycleStatus.
func (s LifecycleStatus) String() string {
	return string(s)
}

// ClassifyLifecycle maps a member's due and join dates onto a lifecycle
// status. pure and total: every input combination yields exactly one
// status, and precedence is fixed as expired > soon > (new vs valid by
// join recency). day differences are whole days at midnight boundaries,
// so a membership due today is soon, never expired.
func ClassifyLifecycle(dueDate, joinDate Day, now time.Time, th RetentionThresholds) LifecycleStatus {
	// no due date on file means no expiry pressure
	if !dueDate.Known() {
		return LifecycleNew
	}

	daysUntilDue := dueDate.DaysUntil(now)
	if daysUntilDue < 0 {
		return LifecycleExpired
	}
	if daysUntilDue <= th.SoonWindowDays {
		return LifecycleSoon
	}

	if joinDate.Known() && joinDate.DaysSince(now) <= th.NewMemberWindowDays {
		return LifecycleNew
	}
	return LifecycleValid
}
