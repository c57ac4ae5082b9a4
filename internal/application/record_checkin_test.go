package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// fakeCheckInRepo records saved check-ins.
type fakeCheckInRepo struct {
	saved []*domain.CheckIn
	err   error
}

func (f *fakeCheckInRepo) Save(ctx context.Context, c *domain.CheckIn) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, c)
	return nil
}

func (f *fakeCheckInRepo) SaveBatch(ctx context.Context, cs []*domain.CheckIn) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, cs...)
	return nil
}

func (f *fakeCheckInRepo) CountByMember(ctx context.Context, id domain.MemberID, since time.Time) (int64, error) {
	return int64(len(f.saved)), nil
}

type fakeMemberChecker struct {
	exists bool
	err    error
}

func (f *fakeMemberChecker) MemberExists(ctx context.Context, id domain.MemberID) (bool, error) {
	return f.exists, f.err
}

func TestRecordCheckInSynchronous(t *testing.T) {
	repo := &fakeCheckInRepo{}
	uc := NewRecordCheckInUseCase(repo, &fakeMemberChecker{exists: true}, logging.New()).
		WithTimeProvider(frozenClock)

	memberID := domain.NewMemberID()
	out, err := uc.Execute(context.Background(), RecordCheckInInput{
		MemberID: memberID.String(),
		Source:   "kiosk",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Accepted || out.Buffered {
		t.Errorf("output = %+v, want accepted and not buffered", out)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d check-ins, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.MemberID() != memberID {
		t.Errorf("saved member = %s, want %s", saved.MemberID(), memberID)
	}
	if saved.Source() != domain.CheckInSourceKiosk {
		t.Errorf("saved source = %s, want kiosk", saved.Source())
	}
	if !saved.CreatedAt().Equal(testNow) {
		t.Errorf("saved at = %v, want frozen clock %v", saved.CreatedAt(), testNow)
	}
}

func TestRecordCheckInRejections(t *testing.T) {
	memberID := domain.NewMemberID().String()

	tests := []struct {
		name    string
		input   RecordCheckInInput
		checker *fakeMemberChecker
	}{
		{
			name:    "invalid member id",
			input:   RecordCheckInInput{MemberID: "not-a-uuid", Source: "kiosk"},
			checker: &fakeMemberChecker{exists: true},
		},
		{
			name:    "unknown member",
			input:   RecordCheckInInput{MemberID: memberID, Source: "kiosk"},
			checker: &fakeMemberChecker{exists: false},
		},
		{
			name:    "member lookup failure",
			input:   RecordCheckInInput{MemberID: memberID, Source: "kiosk"},
			checker: &fakeMemberChecker{err: errors.New("db down")},
		},
		{
			name:    "invalid source",
			input:   RecordCheckInInput{MemberID: memberID, Source: "carrier-pigeon"},
			checker: &fakeMemberChecker{exists: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeCheckInRepo{}
			uc := NewRecordCheckInUseCase(repo, tt.checker, logging.New()).
				WithTimeProvider(frozenClock)

			if _, err := uc.Execute(context.Background(), tt.input); err == nil {
				t.Error("Execute() should have rejected the check-in")
			}
			if len(repo.saved) != 0 {
				t.Errorf("saved %d check-ins, want 0", len(repo.saved))
			}
		})
	}
}

func TestRecordCheckInBuffered(t *testing.T) {
	repo := &fakeCheckInRepo{}
	ch := make(chan *domain.CheckIn, 1)
	uc := NewRecordCheckInUseCase(repo, &fakeMemberChecker{exists: true}, logging.New()).
		WithTimeProvider(frozenClock).
		WithCheckInChannel(ch)

	out, err := uc.Execute(context.Background(), RecordCheckInInput{
		MemberID: domain.NewMemberID().String(),
		Source:   "face",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Buffered {
		t.Error("check-in should have been buffered")
	}
	if len(repo.saved) != 0 {
		t.Error("buffered check-in must not be saved inline")
	}
	select {
	case c := <-ch:
		if c.Source() != domain.CheckInSourceFace {
			t.Errorf("buffered source = %s, want face", c.Source())
		}
	default:
		t.Fatal("check-in never reached the buffer")
	}
}

func TestRecordCheckInBufferFull(t *testing.T) {
	ch := make(chan *domain.CheckIn) // unbuffered, nobody reading
	uc := NewRecordCheckInUseCase(&fakeCheckInRepo{}, &fakeMemberChecker{exists: true}, logging.New()).
		WithTimeProvider(frozenClock).
		WithCheckInChannel(ch)

	_, err := uc.Execute(context.Background(), RecordCheckInInput{
		MemberID: domain.NewMemberID().String(),
		Source:   "app",
	})
	if !errors.Is(err, ErrCheckInBufferFull) {
		t.Fatalf("Execute() error = %v, want ErrCheckInBufferFull", err)
	}
}
