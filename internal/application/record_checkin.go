package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// MemberChecker verifies that a member exists before a check-in is
// accepted. implementations may answer from a cache in front of the
// members table.
type MemberChecker interface {
	MemberExists(ctx context.Context, id domain.MemberID) (bool, error)
}

// ErrCheckInBufferFull is returned when the async ingestion buffer cannot
// accept more check-ins.
var ErrCheckInBufferFull = errors.New("check-in buffer full, try again later")

// RecordCheckInInput contains the data needed to record a check-in.
type RecordCheckInInput struct {
	MemberID string
	Source   string
}

// RecordCheckInOutput contains the result of recording a check-in.
type RecordCheckInOutput struct {
	CheckInID string
	MemberID  string
	Source    string
	Accepted  bool
	Buffered  bool
}

// RecordCheckInUseCase handles attendance check-in ingestion. when a
// buffer channel is configured the check-in is handed to the background
// worker instead of being written synchronously.
type RecordCheckInUseCase struct {
	checkInRepo   domain.CheckInRepository
	memberChecker MemberChecker
	timeProvider  TimeProvider
	logger        *logging.Logger

	checkInCh chan<- *domain.CheckIn
}

// NewRecordCheckInUseCase creates a new RecordCheckInUseCase.
func NewRecordCheckInUseCase(
	checkInRepo domain.CheckInRepository,
	memberChecker MemberChecker,
	logger *logging.Logger,
) *RecordCheckInUseCase {
	return &RecordCheckInUseCase{
		checkInRepo:   checkInRepo,
		memberChecker: memberChecker,
		timeProvider:  RealTime,
		logger:        logger.WithComponent("record_checkin"),
	}
}

// WithTimeProvider sets a custom time provider for testing.
func (uc *RecordCheckInUseCase) WithTimeProvider(tp TimeProvider) *RecordCheckInUseCase {
	uc.timeProvider = tp
	return uc
}

// WithCheckInChannel routes accepted check-ins to a background ingestion
// buffer instead of saving them inline.
func (uc *RecordCheckInUseCase) WithCheckInChannel(ch chan<- *domain.CheckIn) *RecordCheckInUseCase {
	uc.checkInCh = ch
	return uc
}

// Execute validates and records a new check-in.
func (uc *RecordCheckInUseCase) Execute(ctx context.Context, input RecordCheckInInput) (*RecordCheckInOutput, error) {
	// parse and validate member id
	memberID, err := domain.ParseMemberID(input.MemberID)
	if err != nil {
		uc.logger.Warn("check-in rejected: invalid member id",
			"member_id", input.MemberID,
			"reason", err.Error(),
		)
		return nil, fmt.Errorf("invalid member id: %w", err)
	}

	// verify member exists
	exists, err := uc.memberChecker.MemberExists(ctx, memberID)
	if err != nil {
		uc.logger.Warn("check-in rejected: member lookup failed",
			"member_id", memberID.String(),
			"reason", err.Error(),
		)
		return nil, fmt.Errorf("member lookup: %w", err)
	}
	if !exists {
		uc.logger.Warn("check-in rejected: member not found",
			"member_id", memberID.String(),
			"outcome", "rejected",
		)
		return nil, fmt.Errorf("member %s: %w", memberID.String(), domain.ErrNotFound)
	}

	// parse and validate source
	source, err := domain.ParseCheckInSource(input.Source)
	if err != nil {
		uc.logger.Warn("check-in rejected: invalid source",
			"member_id", memberID.String(),
			"source", input.Source,
			"reason", err.Error(),
		)
		return nil, fmt.Errorf("invalid check-in source: %w", err)
	}

	checkIn, err := domain.NewCheckIn(memberID, source, uc.timeProvider())
	if err != nil {
		uc.logger.Error("check-in creation failed",
			"member_id", memberID.String(),
			"source", source.String(),
			"error", err.Error(),
		)
		return nil, fmt.Errorf("creating check-in: %w", err)
	}

	buffered := false
	if uc.checkInCh != nil {
		// non-blocking hand-off to the ingestion worker
		select {
		case uc.checkInCh <- checkIn:
			buffered = true
		default:
			uc.logger.Warn("check-in rejected: buffer full",
				"member_id", memberID.String(),
				"outcome", "rejected",
			)
			return nil, ErrCheckInBufferFull
		}
	} else {
		if err := uc.checkInRepo.Save(ctx, checkIn); err != nil {
			uc.logger.Error("check-in save failed",
				"member_id", memberID.String(),
				"check_in_id", checkIn.ID().String(),
				"error", err.Error(),
			)
			return nil, fmt.Errorf("saving check-in: %w", err)
		}
	}

	uc.logger.Info("check-in recorded",
		"check_in_id", checkIn.ID().String(),
		"member_id", memberID.String(),
		"source", source.String(),
		"buffered", buffered,
		"outcome", "accepted",
	)

	return &RecordCheckInOutput{
		CheckInID: checkIn.ID().String(),
		MemberID:  memberID.String(),
		Source:    source.String(),
		Accepted:  true,
		Buffered:  buffered,
	}, nil
}
