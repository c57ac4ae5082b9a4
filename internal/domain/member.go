package domain

import (
	"context"
	"errors"
	"time"
)

// MemberRecord is a read-only snapshot of a gym member as loaded from
// storage. the engine never writes back to it; classification derives
// ephemeral views instead.
type MemberRecord struct {
	id            MemberID
	name          string
	phone         string
	joinDate      Day
	dueDate       Day
	lastCheckInAt time.Time
	hasCheckedIn  bool
	fee           Fee
	planType      string
}

var ErrMemberNameEmpty = errors.New("member name cannot be empty")

// NewMemberRecord builds a MemberRecord from raw, possibly dirty input.
// temporal and fee fields accept any date-like or numeric-like value and
// degrade to unknown sentinels instead of failing; a malformed field must
// never block classification of the rest of the snapshot.
func NewMemberRecord(
	id MemberID,
	name string,
	phone string,
	joinDate any,
	dueDate any,
	lastCheckInAt any,
	fee any,
	planType string,
) MemberRecord {
	checkIn, hasCheckedIn := NormalizeTime(lastCheckInAt)

	return MemberRecord{
		id:            id,
		name:          name,
		phone:         phone,
		joinDate:      NormalizeDate(joinDate),
		dueDate:       NormalizeDate(dueDate),
		lastCheckInAt: checkIn,
		hasCheckedIn:  hasCheckedIn,
		fee:           NormalizeFee(fee),
		planType:      planType,
	}
}

// ReconstructMemberRecord recreates a MemberRecord from typed storage data.
// use this when loading from database, not for ingesting raw input.
func ReconstructMemberRecord(
	id MemberID,
	name string,
	phone string,
	joinDate Day,
	dueDate Day,
	lastCheckInAt *time.Time,
	fee Fee,
	planType string,
) MemberRecord {
	m := MemberRecord{
		id:       id,
		name:     name,
		phone:    phone,
		joinDate: joinDate,
		dueDate:  dueDate,
		fee:      fee,
		planType: planType,
	}
	if lastCheckInAt != nil && !lastCheckInAt.IsZero() {
		m.lastCheckInAt = *lastCheckInAt
		m.hasCheckedIn = true
	}
	return m
}

// ID returns the member's unique identifier.
func (m MemberRecord) ID() MemberID {
	return m.id
}

// Name returns the member's name.
func (m MemberRecord) Name() string {
	return m.name
}

// Phone returns the member's phone number.
func (m MemberRecord) Phone() string {
	return m.phone
}

// JoinDate returns the day the member joined, or unknown.
func (m MemberRecord) JoinDate() Day {
	return m.joinDate
}

// DueDate returns the day the membership falls due, or unknown.
func (m MemberRecord) DueDate() Day {
	return m.dueDate
}

// LastCheckInAt returns the member's last recorded check-in.
// the second return is false when the member has never checked in.
func (m MemberRecord) LastCheckInAt() (time.Time, bool) {
	return m.lastCheckInAt, m.hasCheckedIn
}

// Fee returns the member's monthly fee.
func (m MemberRecord) Fee() Fee {
	return m.fee
}

// PlanType returns the free-text plan description.
func (m MemberRecord) PlanType() string {
	return m.planType
}

// IsNewMember returns true if the member joined within the new-member
// window. an unknown join date never counts as new.
func (m MemberRecord) IsNewMember(now time.Time, windowDays int) bool {
	if !m.joinDate.Known() {
		return false
	}
	sinceJoin := m.joinDate.DaysSince(now)
	return sinceJoin >= 0 && sinceJoin <= windowDays
}

// IsPersonalTraining returns true if the plan type reads as a personal
// training plan. matched case-insensitively on "pt" and "personal".
func (m MemberRecord) IsPersonalTraining() bool {
	return isPersonalTrainingPlan(m.planType)
}

// MemberRepository defines read access to the member snapshot.
type MemberRepository interface {
	// ListSnapshot retrieves the full member roster for classification.
	ListSnapshot(ctx context.Context) ([]MemberRecord, error)

	// FindByID retrieves a single member.
	FindByID(ctx context.Context, id MemberID) (MemberRecord, error)

	// Exists checks if a member with the given ID exists.
	Exists(ctx context.Context, id MemberID) (bool, error)
}
