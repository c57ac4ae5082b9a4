package domain

import "time"

// ClassifiedMember is a member record annotated with its derived
// lifecycle signals. created fresh on every classification pass and
// discarded once rendered; recomputation is the only way values change.
type ClassifiedMember struct {
	Record          MemberRecord
	LifecycleStatus LifecycleStatus
	DaysAbsent      DaysAbsent
	RenewalBucket   RenewalBucket
}

// PriorityBucket is an ordered outreach list for one renewal bucket,
// plus the revenue at stake. rebuilt whenever the snapshot or "now"
// changes.
type PriorityBucket struct {
	Bucket        RenewalBucket
	Members       []ClassifiedMember
	RevenueAtRisk float64
}

// ClassifyMember derives the lifecycle signals for a single member.
// pure function of the record, the reference clock, and the thresholds.
func ClassifyMember(record MemberRecord, now time.Time, th RetentionThresholds) ClassifiedMember {
	lastCheckIn, hasCheckedIn := record.LastCheckInAt()

	return ClassifiedMember{
		Record:          record,
		LifecycleStatus: ClassifyLifecycle(record.DueDate(), record.JoinDate(), now, th),
		DaysAbsent:      TrackAbsence(lastCheckIn, hasCheckedIn, now),
		RenewalBucket:   RenewalBucketFor(record.DueDate(), now, th),
	}
}

// ClassifySnapshot annotates every member in a snapshot. order is
// preserved, which matters for the stable outreach sort downstream.
func ClassifySnapshot(records []MemberRecord, now time.Time, th RetentionThresholds) []ClassifiedMember {
	classified := make([]ClassifiedMember, len(records))
	for i, record := range records {
		classified[i] = ClassifyMember(record, now, th)
	}
	return classified
}

// BuildPriorityBucket selects the members belonging to one renewal
// bucket, orders them for outreach, and sums the revenue at risk.
// bucket membership uses the independent window predicates, so a member
// due today appears in both the due-today and due-soon buckets.
func BuildPriorityBucket(classified []ClassifiedMember, bucket RenewalBucket, now time.Time, th RetentionThresholds) PriorityBucket {
	var members []ClassifiedMember
	for _, m := range classified {
		if InRenewalBucket(m.Record.DueDate(), now, th, bucket) {
			members = append(members, m)
		}
	}

	SortByOutreachPriority(members, now, th)

	return PriorityBucket{
		Bucket:        bucket,
		Members:       members,
		RevenueAtRisk: RevenueAtRisk(members, th.FallbackFee),
	}
}
