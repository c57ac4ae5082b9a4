package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitdesk/retention/internal/domain"
)

// MemberRepository implements domain.MemberRepository using Postgres.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `id, name, phone, join_date, due_date, last_check_in_at, fee_amount, plan_type`

// ListSnapshot retrieves the full member roster for classification.
func (r *MemberRepository) ListSnapshot(ctx context.Context) ([]domain.MemberRecord, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM retention.members
		ORDER BY created_at
	`

	rows, err := GetQuerier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying member snapshot: %w", err)
	}
	defer rows.Close()

	var members []domain.MemberRecord
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// FindByID retrieves a single member.
func (r *MemberRepository) FindByID(ctx context.Context, id domain.MemberID) (domain.MemberRecord, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM retention.members
		WHERE id = $1
	`

	rows, err := GetQuerier(ctx, r.pool).Query(ctx, query, id.UUID())
	if err != nil {
		return domain.MemberRecord{}, fmt.Errorf("querying member: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.MemberRecord{}, fmt.Errorf("querying member: %w", err)
		}
		return domain.MemberRecord{}, domain.ErrNotFound
	}

	return scanMember(rows)
}

// Exists checks if a member with the given ID exists.
func (r *MemberRepository) Exists(ctx context.Context, id domain.MemberID) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM retention.members WHERE id = $1)`

	var exists bool
	err := GetQuerier(ctx, r.pool).QueryRow(ctx, query, id.UUID()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking member existence: %w", err)
	}
	return exists, nil
}

func scanMember(rows pgx.Rows) (domain.MemberRecord, error) {
	var (
		id            string
		name          string
		phone         string
		joinDate      *time.Time
		dueDate       *time.Time
		lastCheckInAt *time.Time
		feeAmount     *float64
		planType      string
	)

	err := rows.Scan(&id, &name, &phone, &joinDate, &dueDate, &lastCheckInAt, &feeAmount, &planType)
	if err != nil {
		return domain.MemberRecord{}, fmt.Errorf("scanning member row: %w", err)
	}

	// database stores trusted data, but we still validate for safety
	memberID, err := domain.ParseMemberID(id)
	if err != nil {
		return domain.MemberRecord{}, fmt.Errorf("corrupted member id in database: %w", err)
	}

	return domain.ReconstructMemberRecord(
		memberID,
		name,
		phone,
		dayFromNullable(joinDate),
		dayFromNullable(dueDate),
		lastCheckInAt,
		feeFromNullable(feeAmount),
		planType,
	), nil
}

// EnquiryRepository implements domain.EnquiryRepository using Postgres.
type EnquiryRepository struct {
	pool *pgxpool.Pool
}

// NewEnquiryRepository creates a new EnquiryRepository.
func NewEnquiryRepository(pool *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{pool: pool}
}

const enquiryColumns = `id, name, phone, expected_join_date, last_follow_up, follow_up_required, status`

// ListSnapshot retrieves the full enquiry roster for classification.
func (r *EnquiryRepository) ListSnapshot(ctx context.Context) ([]domain.EnquiryRecord, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM retention.enquiries
		ORDER BY created_at
	`

	rows, err := GetQuerier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying enquiry snapshot: %w", err)
	}
	defer rows.Close()

	var enquiries []domain.EnquiryRecord
	for rows.Next() {
		enquiry, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		enquiries = append(enquiries, enquiry)
	}

	return enquiries, rows.Err()
}

// FindByID retrieves a single enquiry.
func (r *EnquiryRepository) FindByID(ctx context.Context, id domain.EnquiryID) (domain.EnquiryRecord, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM retention.enquiries
		WHERE id = $1
	`

	rows, err := GetQuerier(ctx, r.pool).Query(ctx, query, id.UUID())
	if err != nil {
		return domain.EnquiryRecord{}, fmt.Errorf("querying enquiry: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.EnquiryRecord{}, fmt.Errorf("querying enquiry: %w", err)
		}
		return domain.EnquiryRecord{}, domain.ErrNotFound
	}

	return scanEnquiry(rows)
}

func scanEnquiry(rows pgx.Rows) (domain.EnquiryRecord, error) {
	var (
		id               string
		name             string
		phone            string
		expectedJoinDate *time.Time
		lastFollowUp     *time.Time
		followUpRequired bool
		status           string
	)

	err := rows.Scan(&id, &name, &phone, &expectedJoinDate, &lastFollowUp, &followUpRequired, &status)
	if err != nil {
		return domain.EnquiryRecord{}, fmt.Errorf("scanning enquiry row: %w", err)
	}

	enquiryID, err := domain.ParseEnquiryID(id)
	if err != nil {
		return domain.EnquiryRecord{}, fmt.Errorf("corrupted enquiry id in database: %w", err)
	}

	statusParsed, err := domain.ParseEnquiryStatus(status)
	if err != nil {
		return domain.EnquiryRecord{}, fmt.Errorf("corrupted enquiry status in database: %w", err)
	}

	return domain.ReconstructEnquiryRecord(
		enquiryID,
		name,
		phone,
		dayFromNullable(expectedJoinDate),
		dayFromNullable(lastFollowUp),
		followUpRequired,
		statusParsed,
	), nil
}

// CheckInRepository implements domain.CheckInRepository using Postgres.
type CheckInRepository struct {
	pool *pgxpool.Pool
}

// NewCheckInRepository creates a new CheckInRepository.
func NewCheckInRepository(pool *pgxpool.Pool) *CheckInRepository {
	return &CheckInRepository{pool: pool}
}

// Save persists a single check-in and advances the member's
// last_check_in_at when the new check-in is more recent.
func (r *CheckInRepository) Save(ctx context.Context, checkIn *domain.CheckIn) error {
	q := GetQuerier(ctx, r.pool)

	const insertQuery = `
		INSERT INTO retention.check_ins (id, member_id, source, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, insertQuery,
		checkIn.ID().UUID(),
		checkIn.MemberID().UUID(),
		checkIn.Source().String(),
		checkIn.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("saving check-in: %w", err)
	}

	if err := r.advanceLastCheckIn(ctx, q, checkIn.MemberID(), checkIn.CreatedAt()); err != nil {
		return err
	}

	return nil
}

// SaveBatch persists check-ins in bulk inside a single transaction.
func (r *CheckInRepository) SaveBatch(ctx context.Context, checkIns []*domain.CheckIn) error {
	if len(checkIns) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, len(checkIns))
	// track the most recent check-in per member so last_check_in_at
	// advances once per member, not once per row
	latest := make(map[domain.MemberID]time.Time)
	for i, checkIn := range checkIns {
		rows[i] = []any{
			checkIn.ID().UUID(),
			checkIn.MemberID().UUID(),
			checkIn.Source().String(),
			checkIn.CreatedAt(),
		}
		if checkIn.CreatedAt().After(latest[checkIn.MemberID()]) {
			latest[checkIn.MemberID()] = checkIn.CreatedAt()
		}
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"retention", "check_ins"},
		[]string{"id", "member_id", "source", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("batch inserting check-ins: %w", err)
	}

	for memberID, at := range latest {
		if err := r.advanceLastCheckIn(ctx, tx, memberID, at); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// CountByMember returns how many check-ins a member has since a given time.
func (r *CheckInRepository) CountByMember(ctx context.Context, memberID domain.MemberID, since time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM retention.check_ins
		WHERE member_id = $1 AND created_at >= $2
	`

	var count int64
	err := GetQuerier(ctx, r.pool).QueryRow(ctx, query, memberID.UUID(), since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting check-ins: %w", err)
	}
	return count, nil
}

func (r *CheckInRepository) advanceLastCheckIn(ctx context.Context, q Querier, memberID domain.MemberID, at time.Time) error {
	const query = `
		UPDATE retention.members
		SET last_check_in_at = $2, updated_at = now()
		WHERE id = $1
		  AND (last_check_in_at IS NULL OR last_check_in_at < $2)
	`

	if _, err := q.Exec(ctx, query, memberID.UUID(), at); err != nil {
		return fmt.Errorf("advancing last check-in: %w", err)
	}
	return nil
}

// AlertSubscriptionRepository implements domain.AlertSubscriptionRepository
// using Postgres.
type AlertSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewAlertSubscriptionRepository creates a new AlertSubscriptionRepository.
func NewAlertSubscriptionRepository(pool *pgxpool.Pool) *AlertSubscriptionRepository {
	return &AlertSubscriptionRepository{pool: pool}
}

// Save persists an alert subscription (insert or update).
func (r *AlertSubscriptionRepository) Save(ctx context.Context, sub *domain.AlertSubscription) error {
	const query = `
		INSERT INTO retention.alert_subscriptions (id, target_url, secret, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (target_url) DO UPDATE SET
			secret = EXCLUDED.secret,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	_, err := GetQuerier(ctx, r.pool).Exec(ctx, query,
		sub.ID().String(),
		sub.TargetURL(),
		sub.Secret(),
		sub.IsActive(),
		sub.CreatedAt(),
		sub.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("saving alert subscription: %w", err)
	}
	return nil
}

// FindActive retrieves all active subscriptions.
func (r *AlertSubscriptionRepository) FindActive(ctx context.Context) ([]*domain.AlertSubscription, error) {
	const query = `
		SELECT id, target_url, secret, is_active, created_at, updated_at
		FROM retention.alert_subscriptions
		WHERE is_active = true
		ORDER BY created_at
	`

	rows, err := GetQuerier(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying alert subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*domain.AlertSubscription
	for rows.Next() {
		var (
			id        string
			targetURL string
			secret    string
			isActive  bool
			createdAt time.Time
			updatedAt time.Time
		)

		if err := rows.Scan(&id, &targetURL, &secret, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning subscription row: %w", err)
		}

		subID, err := domain.NewAlertSubscriptionID(id)
		if err != nil {
			return nil, fmt.Errorf("corrupted subscription id in database: %w", err)
		}

		subs = append(subs, domain.ReconstructAlertSubscription(
			subID, targetURL, secret, isActive, createdAt, updatedAt,
		))
	}

	return subs, rows.Err()
}

// Delete removes a subscription.
func (r *AlertSubscriptionRepository) Delete(ctx context.Context, id domain.AlertSubscriptionID) error {
	const query = `DELETE FROM retention.alert_subscriptions WHERE id = $1`

	result, err := GetQuerier(ctx, r.pool).Exec(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// helper functions

func dayFromNullable(t *time.Time) domain.Day {
	if t == nil {
		return domain.UnknownDay()
	}
	return domain.DayOf(*t)
}

func feeFromNullable(f *float64) domain.Fee {
	if f == nil {
		return domain.UnknownFee()
	}
	return domain.NewFee(*f)
}
