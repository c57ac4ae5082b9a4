package domain

import "context"

// EnquiryRecord is a read-only snapshot of a membership enquiry.
// like MemberRecord, it is immutable input for one classification pass.
type EnquiryRecord struct {
	id               EnquiryID
	name             string
	phone            string
	expectedJoinDate Day
	lastFollowUpDate Day
	followUpRequired bool
	status           EnquiryStatus
}

// NewEnquiryRecord builds an EnquiryRecord from raw input. date fields
// accept any date-like value and degrade to the unknown sentinel.
// an unrecognized status defaults to new rather than failing the record.
func NewEnquiryRecord(
	id EnquiryID,
	name string,
	phone string,
	expectedJoinDate any,
	lastFollowUpDate any,
	followUpRequired bool,
	status string,
) EnquiryRecord {
	parsed, err := ParseEnquiryStatus(status)
	if err != nil {
		parsed = EnquiryStatusNew
	}

	return EnquiryRecord{
		id:               id,
		name:             name,
		phone:            phone,
		expectedJoinDate: NormalizeDate(expectedJoinDate),
		lastFollowUpDate: NormalizeDate(lastFollowUpDate),
		followUpRequired: followUpRequired,
		status:           parsed,
	}
}

// ReconstructEnquiryRecord recreates an EnquiryRecord from typed storage data.
func ReconstructEnquiryRecord(
	id EnquiryID,
	name string,
	phone string,
	expectedJoinDate Day,
	lastFollowUpDate Day,
	followUpRequired bool,
	status EnquiryStatus,
) EnquiryRecord {
	return EnquiryRecord{
		id:               id,
		name:             name,
		phone:            phone,
		expectedJoinDate: expectedJoinDate,
		lastFollowUpDate: lastFollowUpDate,
		followUpRequired: followUpRequired,
		status:           status,
	}
}

// ID returns the enquiry's unique identifier.
func (e EnquiryRecord) ID() EnquiryID {
	return e.id
}

// Name returns the prospect's name.
func (e EnquiryRecord) Name() string {
	return e.name
}

// Phone returns the prospect's phone number.
func (e EnquiryRecord) Phone() string {
	return e.phone
}

// ExpectedJoinDate returns the day the prospect said they would join.
func (e EnquiryRecord) ExpectedJoinDate() Day {
	return e.expectedJoinDate
}

// LastFollowUpDate returns the day of the last follow-up call.
func (e EnquiryRecord) LastFollowUpDate() Day {
	return e.lastFollowUpDate
}

// FollowUpRequired returns true if staff flagged this enquiry for chasing.
func (e EnquiryRecord) FollowUpRequired() bool {
	return e.followUpRequired
}

// Status returns the enquiry's funnel status.
func (e EnquiryRecord) Status() EnquiryStatus {
	return e.status
}

// EnquiryRepository defines read access to the enquiry snapshot.
type EnquiryRepository interface {
	// ListSnapshot retrieves the full enquiry roster for classification.
	ListSnapshot(ctx context.Context) ([]EnquiryRecord, error)

	// FindByID retrieves a single enquiry.
	FindByID(ctx context.Context, id EnquiryID) (EnquiryRecord, error)
}
