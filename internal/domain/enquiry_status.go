package domain

import "errors"

// EnquiryStatus represents where an enquiry sits in the sales funnel.
// defined as enum to enforce valid values at compile time.
type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusFollowUp  EnquiryStatus = "follow_up"
	EnquiryStatusConverted EnquiryStatus = "converted"
	EnquiryStatusLost      EnquiryStatus = "lost"
)

var ErrInvalidEnquiryStatus = errors.New("invalid enquiry status")

// validEnquiryStatuses for quick lookup.
var validEnquiryStatuses = map[EnquiryStatus]bool{
	EnquiryStatusNew:       true,
	EnquiryStatusFollowUp:  true,
	EnquiryStatusConverted: true,
	EnquiryStatusLost:      true,
}

// ParseEnquiryStatus validates and returns an EnquiryStatus from a string.
func ParseEnquiryStatus(s string) (EnquiryStatus, error) {
	status := EnquiryStatus(s)
	if !validEnquiryStatuses[status] {
		return "", ErrInvalidEnquiryStatus
	}
	return status, nil
}

// String returns the string representation of the EnquiryStatus.
func (s EnquiryStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s EnquiryStatus) IsValid() bool {
	return validEnquiryStatuses[s]
}

// IsClosed returns true for statuses that end the funnel.
func (s EnquiryStatus) IsClosed() bool {
	return s == EnquiryStatusConverted || s == EnquiryStatusLost
}

// IsActionable returns true if front-desk staff should still be chasing
// this enquiry. closed enquiries drop off the outreach list; the urgency
// highlight itself is computed regardless (only Converted short-circuits it).
func (s EnquiryStatus) IsActionable() bool {
	return !s.IsClosed()
}
