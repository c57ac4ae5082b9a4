package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MemberID represents a unique identifier for a gym member.
// wrapping uuid to enforce type safety and prevent mixing with other ids.
type MemberID struct {
	value uuid.UUID
}

// NewMemberID creates a new random MemberID.
func NewMemberID() MemberID {
	return MemberID{value: uuid.New()}
}

// ParseMemberID parses a string into a MemberID.
func ParseMemberID(s string) (MemberID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MemberID{}, fmt.Errorf("invalid member id: %w", err)
	}
	return MemberID{value: id}, nil
}

// MemberIDFromUUID creates a MemberID from an existing uuid.
func MemberIDFromUUID(id uuid.UUID) MemberID {
	return MemberID{value: id}
}

// String returns the string representation of the MemberID.
func (id MemberID) String() string {
	return id.value.String()
}

// UUID returns the underlying uuid value.
func (id MemberID) UUID() uuid.UUID {
	return id.value
}

// IsZero returns true if the MemberID is not set.
func (id MemberID) IsZero() bool {
	return id.value == uuid.Nil
}

// EnquiryID represents a unique identifier for an enquiry.
type EnquiryID struct {
	value uuid.UUID
}

// NewEnquiryID creates a new random EnquiryID.
func NewEnquiryID() EnquiryID {
	return EnquiryID{value: uuid.New()}
}

// ParseEnquiryID parses a string into an EnquiryID.
func ParseEnquiryID(s string) (EnquiryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EnquiryID{}, fmt.Errorf("invalid enquiry id: %w", err)
	}
	return EnquiryID{value: id}, nil
}

// EnquiryIDFromUUID creates an EnquiryID from an existing uuid.
func EnquiryIDFromUUID(id uuid.UUID) EnquiryID {
	return EnquiryID{value: id}
}

// String returns the string representation of the EnquiryID.
func (id EnquiryID) String() string {
	return id.value.String()
}

// UUID returns the underlying uuid value.
func (id EnquiryID) UUID() uuid.UUID {
	return id.value
}

// IsZero returns true if the EnquiryID is not set.
func (id EnquiryID) IsZero() bool {
	return id.value == uuid.Nil
}

// CheckInID represents a unique identifier for an attendance check-in.
type CheckInID struct {
	value uuid.UUID
}

// NewCheckInID creates a new random CheckInID.
func NewCheckInID() CheckInID {
	return CheckInID{value: uuid.New()}
}

// ParseCheckInID parses a string into a CheckInID.
func ParseCheckInID(s string) (CheckInID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CheckInID{}, fmt.Errorf("invalid check-in id: %w", err)
	}
	return CheckInID{value: id}, nil
}

// String returns the string representation of the CheckInID.
func (id CheckInID) String() string {
	return id.value.String()
}

// UUID returns the underlying uuid value.
func (id CheckInID) UUID() uuid.UUID {
	return id.value
}

// Fee represents a monthly membership fee in currency-agnostic units.
// an unset or unparseable fee is the unknown sentinel; non-positive
// values are kept as-is but substituted when charging.
type Fee struct {
	value float64
	known bool
}

// UnknownFee returns the unknown sentinel.
func UnknownFee() Fee {
	return Fee{}
}

// NewFee creates a Fee from a known amount.
func NewFee(v float64) Fee {
	return Fee{value: v, known: true}
}

// NormalizeFee converts an arbitrary numeric-like value into a Fee.
// nil and non-numeric inputs become the unknown sentinel.
func NormalizeFee(v any) Fee {
	switch val := v.(type) {
	case nil:
		return UnknownFee()
	case float64:
		return NewFee(val)
	case float32:
		return NewFee(float64(val))
	case int:
		return NewFee(float64(val))
	case int64:
		return NewFee(float64(val))
	case *float64:
		if val == nil {
			return UnknownFee()
		}
		return NewFee(*val)
	default:
		return UnknownFee()
	}
}

// Known returns true if the fee holds a real amount.
func (f Fee) Known() bool {
	return f.known
}

// Value returns the raw fee amount. zero when unknown.
func (f Fee) Value() float64 {
	return f.value
}

// ChargeableOr returns the fee amount usable for revenue projections,
// substituting fallback when the fee is unknown or non-positive.
func (f Fee) ChargeableOr(fallback float64) float64 {
	if !f.known || f.value <= 0 {
		return fallback
	}
	return f.value
}
