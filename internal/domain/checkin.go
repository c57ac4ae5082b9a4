package domain

import (
	"context"
	"errors"
	"time"
)

// CheckInSource identifies how an attendance check-in was captured.
type CheckInSource string

const (
	// CheckInSourceFace comes from the face-capture collaborator service.
	CheckInSourceFace CheckInSource = "face"

	// CheckInSourceKiosk is the self-service entry kiosk.
	CheckInSourceKiosk CheckInSource = "kiosk"

	// CheckInSourceManual is front-desk staff entering a visit by hand.
	CheckInSourceManual CheckInSource = "manual"

	// CheckInSourceApp is the member mobile app.
	CheckInSourceApp CheckInSource = "app"
)

var ErrInvalidCheckInSource = errors.New("invalid check-in source")

// validCheckInSources for quick lookup.
var validCheckInSources = map[CheckInSource]bool{
	CheckInSourceFace:   true,
	CheckInSourceKiosk:  true,
	CheckInSourceManual: true,
	CheckInSourceApp:    true,
}

// ParseCheckInSource validates and returns a CheckInSource from a string.
func ParseCheckInSource(s string) (CheckInSource, error) {
	source := CheckInSource(s)
	if !validCheckInSources[source] {
		return "", ErrInvalidCheckInSource
	}
	return source, nil
}

// String returns the string representation of the CheckInSource.
func (s CheckInSource) String() string {
	return string(s)
}

// IsValid returns true if the source is a known value.
func (s CheckInSource) IsValid() bool {
	return validCheckInSources[s]
}

// CheckIn represents a single attendance record. check-ins are
// append-only and immutable once created; they feed the absence tracker
// through the member's last_check_in_at column.
type CheckIn struct {
	id        CheckInID
	memberID  MemberID
	source    CheckInSource
	createdAt time.Time
}

var ErrCheckInMemberEmpty = errors.New("check-in must have a member id")

// NewCheckIn creates a new CheckIn for a member.
func NewCheckIn(memberID MemberID, source CheckInSource, at time.Time) (*CheckIn, error) {
	if memberID.IsZero() {
		return nil, ErrCheckInMemberEmpty
	}
	if !source.IsValid() {
		return nil, ErrInvalidCheckInSource
	}

	return &CheckIn{
		id:        NewCheckInID(),
		memberID:  memberID,
		source:    source,
		createdAt: at.UTC(),
	}, nil
}

// ReconstructCheckIn recreates a CheckIn from stored data.
func ReconstructCheckIn(id CheckInID, memberID MemberID, source CheckInSource, createdAt time.Time) *CheckIn {
	return &CheckIn{
		id:        id,
		memberID:  memberID,
		source:    source,
		createdAt: createdAt,
	}
}

// ID returns the check-in's unique identifier.
func (c *CheckIn) ID() CheckInID {
	return c.id
}

// MemberID returns the member who checked in.
func (c *CheckIn) MemberID() MemberID {
	return c.memberID
}

// Source returns how the check-in was captured.
func (c *CheckIn) Source() CheckInSource {
	return c.source
}

// CreatedAt returns when the check-in happened.
func (c *CheckIn) CreatedAt() time.Time {
	return c.createdAt
}

// CheckInRepository defines persistence for attendance check-ins.
type CheckInRepository interface {
	// Save persists a single check-in and advances the member's
	// last_check_in_at when the new check-in is more recent.
	Save(ctx context.Context, checkIn *CheckIn) error

	// SaveBatch persists check-ins in bulk. same last_check_in_at
	// semantics as Save.
	SaveBatch(ctx context.Context, checkIns []*CheckIn) error

	// CountByMember returns how many check-ins a member has since a
	// given time.
	CountByMember(ctx context.Context, memberID MemberID, since time.Time) (int64, error)
}
