package domain

// RetentionThresholds holds the policy constants for lifecycle, bucket,
// and urgency classification. every gym tenant can carry its own set,
// so nothing here is baked into the classifiers.
type RetentionThresholds struct {
	// FallbackFee substitutes a member's fee when it is unknown or
	// non-positive in revenue-at-risk sums.
	FallbackFee float64

	// SoonWindowDays is the number of days before the due date during
	// which a membership counts as expiring soon.
	SoonWindowDays int

	// NewMemberWindowDays is how long after joining a member counts as new.
	NewMemberWindowDays int

	// DueSoonWindowDays is the lookahead of the due-in-3-days bucket.
	DueSoonWindowDays int

	// OverdueThresholdDays is how many days past the expected join or last
	// follow-up an enquiry counts as overdue.
	OverdueThresholdDays int
}

// DefaultRetentionThresholds returns the stock policy.
func DefaultRetentionThresholds() RetentionThresholds {
	return RetentionThresholds{
		FallbackFee:          1000,
		SoonWindowDays:       5,
		NewMemberWindowDays:  30,
		DueSoonWindowDays:    3,
		OverdueThresholdDays: 2,
	}
}
