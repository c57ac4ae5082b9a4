package domain

import "time"

// RenewalBucket is a time-window classification of a membership's due
// date, used to drive outreach campaigns.
type RenewalBucket string

const (
	// BucketDueToday holds memberships due exactly today.
	BucketDueToday RenewalBucket = "due-today"

	// BucketDueSoon holds memberships due within the due-soon window,
	// today included. a superset of BucketDueToday.
	BucketDueSoon RenewalBucket = "due-in-3-days"

	// lapsed buckets are mutually exclusive ranges of days past due.
	BucketLapsedWeek    RenewalBucket = "lapsed-1-7"
	BucketLapsedMonth   RenewalBucket = "lapsed-8-30"
	BucketLapsedQuarter RenewalBucket = "lapsed-31-90"

	// BucketNone means the due date is unknown or outside every window.
	BucketNone RenewalBucket = "none"
)

// OutreachBuckets lists the buckets that drive outreach views, most
// urgent first. BucketNone is deliberately absent.
var OutreachBuckets = []RenewalBucket{
	BucketDueToday,
	BucketDueSoon,
	BucketLapsedWeek,
	BucketLapsedMonth,
	BucketLapsedQuarter,
}

// validRenewalBuckets for quick lookup.
var validRenewalBuckets = map[RenewalBucket]bool{
	BucketDueToday:      true,
	BucketDueSoon:       true,
	BucketLapsedWeek:    true,
	BucketLapsedMonth:   true,
	BucketLapsedQuarter: true,
	BucketNone:          true,
}

// ParseRenewalBucket validates and returns a RenewalBucket from a string.
func ParseRenewalBucket(s string) (RenewalBucket, error) {
	b := RenewalBucket(s)
	if !validRenewalBuckets[b] {
		return "", ErrInvalidBucket
	}
	return b, nil
}

// String returns the string representation of the RenewalBucket.
func (b RenewalBucket) String() string {
	return string(b)
}

// InRenewalBucket reports whether a due date falls into the given bucket.
// buckets are evaluated independently: a membership due today is in both
// BucketDueToday and BucketDueSoon. unknown due dates are in no bucket.
func InRenewalBucket(dueDate Day, now time.Time, th RetentionThresholds, bucket RenewalBucket) bool {
	if !dueDate.Known() {
		return false
	}

	daysUntilDue := dueDate.DaysUntil(now)
	daysSinceDue := -daysUntilDue

	switch bucket {
	case BucketDueToday:
		return daysUntilDue == 0
	case BucketDueSoon:
		return daysUntilDue >= 0 && daysUntilDue <= th.DueSoonWindowDays
	case BucketLapsedWeek:
		return daysSinceDue >= 1 && daysSinceDue <= 7
	case BucketLapsedMonth:
		return daysSinceDue >= 8 && daysSinceDue <= 30
	case BucketLapsedQuarter:
		return daysSinceDue >= 31 && daysSinceDue <= 90
	default:
		return false
	}
}

// RenewalBucketFor returns the most specific bucket for display on a
// classified member: due-today beats due-soon, then the exclusive lapsed
// ranges, then none.
func RenewalBucketFor(dueDate Day, now time.Time, th RetentionThresholds) RenewalBucket {
	for _, bucket := range OutreachBuckets {
		if InRenewalBucket(dueDate, now, th, bucket) {
			return bucket
		}
	}
	return BucketNone
}
