package application

import (
	"context"
	"fmt"
	"time"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// TimeProvider abstracts time acquisition for testability.
// inject a custom implementation to freeze the reference clock in tests.
type TimeProvider func() time.Time

// RealTime returns the current UTC time.
// use this in production.
func RealTime() time.Time {
	return time.Now().UTC()
}

// OverviewConfig contains parameters for retention classification.
type OverviewConfig struct {
	// Thresholds is the classification policy for this tenant.
	Thresholds domain.RetentionThresholds
}

// DefaultOverviewConfig returns the stock policy.
func DefaultOverviewConfig() OverviewConfig {
	return OverviewConfig{
		Thresholds: domain.DefaultRetentionThresholds(),
	}
}

// OutreachRanking abstracts the cache layer for outreach ordering.
// allows the use case to remain decoupled from redis specifics.
type OutreachRanking interface {
	ReplaceRanking(ctx context.Context, bucket domain.RenewalBucket, members []domain.ClassifiedMember) error
}

// RetentionOverviewOutput is the full derived view over one member snapshot.
type RetentionOverviewOutput struct {
	GeneratedAt  time.Time
	TotalMembers int

	// StatusCounts holds the member count per lifecycle status.
	StatusCounts map[domain.LifecycleStatus]int

	// UnknownDueDateCount surfaces data quality: members that fell into
	// no bucket because their due date would not parse.
	UnknownDueDateCount int

	// Buckets are the ordered outreach lists, one per renewal bucket,
	// most urgent bucket first.
	Buckets []domain.PriorityBucket
}

// BuildRetentionOverviewUseCase classifies the member snapshot into
// lifecycle statuses, risk buckets, and prioritized outreach lists.
type BuildRetentionOverviewUseCase struct {
	memberRepo   domain.MemberRepository
	config       OverviewConfig
	timeProvider TimeProvider
	ranking      OutreachRanking
	notifier     domain.RiskNotifier
	logger       *logging.Logger
}

// NewBuildRetentionOverviewUseCase creates a new BuildRetentionOverviewUseCase.
func NewBuildRetentionOverviewUseCase(
	memberRepo domain.MemberRepository,
	config OverviewConfig,
	logger *logging.Logger,
) *BuildRetentionOverviewUseCase {
	return &BuildRetentionOverviewUseCase{
		memberRepo:   memberRepo,
		config:       config,
		timeProvider: RealTime,
		logger:       logger.WithComponent("retention_overview"),
	}
}

// WithTimeProvider sets a custom time provider for testing.
func (uc *BuildRetentionOverviewUseCase) WithTimeProvider(tp TimeProvider) *BuildRetentionOverviewUseCase {
	uc.timeProvider = tp
	return uc
}

// WithRanking sets the outreach ranking updater (redis cache).
// when set, each pass also refreshes the per-bucket rankings.
func (uc *BuildRetentionOverviewUseCase) WithRanking(r OutreachRanking) *BuildRetentionOverviewUseCase {
	uc.ranking = r
	return uc
}

// WithNotifier sets the risk notifier (webhook dispatcher).
// when set, buckets crossing the alert thresholds trigger notifications.
func (uc *BuildRetentionOverviewUseCase) WithNotifier(n domain.RiskNotifier) *BuildRetentionOverviewUseCase {
	uc.notifier = n
	return uc
}

// Execute loads the member snapshot and derives the full retention view.
// the engine itself is pure; this use case owns the I/O around it.
func (uc *BuildRetentionOverviewUseCase) Execute(ctx context.Context) (*RetentionOverviewOutput, error) {
	snapshot, err := uc.memberRepo.ListSnapshot(ctx)
	if err != nil {
		uc.logger.Error("overview failed: snapshot load failed",
			"error", err.Error(),
		)
		return nil, fmt.Errorf("loading member snapshot: %w", err)
	}

	// use injected time provider for testability
	now := uc.timeProvider()
	th := uc.config.Thresholds

	classified := domain.ClassifySnapshot(snapshot, now, th)

	statusCounts := make(map[domain.LifecycleStatus]int, 4)
	unknownDue := 0
	for _, m := range classified {
		statusCounts[m.LifecycleStatus]++
		if !m.Record.DueDate().Known() {
			unknownDue++
		}
	}

	buckets := make([]domain.PriorityBucket, 0, len(domain.OutreachBuckets))
	for _, bucket := range domain.OutreachBuckets {
		view := domain.BuildPriorityBucket(classified, bucket, now, th)
		buckets = append(buckets, view)

		// refresh the cached ranking (best-effort, postgres stays the
		// source of truth)
		if uc.ranking != nil {
			if err := uc.ranking.ReplaceRanking(ctx, bucket, view.Members); err != nil {
				uc.logger.Warn("ranking refresh failed",
					"bucket", bucket.String(),
					"error", err.Error(),
				)
			}
		}

		// raise risk alerts (best-effort, don't fail the pass)
		if uc.notifier != nil {
			thresholds := uc.notifier.Thresholds()
			if thresholds.IsAlertable(len(view.Members), view.RevenueAtRisk) {
				alert := domain.RiskAlert{
					Bucket:        bucket,
					MemberCount:   len(view.Members),
					RevenueAtRisk: view.RevenueAtRisk,
					Timestamp:     now,
				}
				if _, err := uc.notifier.NotifyRiskAlert(ctx, alert); err != nil {
					uc.logger.Warn("risk alert failed",
						"bucket", bucket.String(),
						"error", err.Error(),
					)
				} else {
					uc.logger.Info("risk alert raised",
						"bucket", bucket.String(),
						"member_count", len(view.Members),
						"revenue_at_risk", view.RevenueAtRisk,
					)
				}
			}
		}
	}

	uc.logger.Info("retention overview built",
		"total_members", len(classified),
		"expired", statusCounts[domain.LifecycleExpired],
		"soon", statusCounts[domain.LifecycleSoon],
		"unknown_due_date", unknownDue,
		"ranking_enabled", uc.ranking != nil,
		"notifier_enabled", uc.notifier != nil,
	)

	return &RetentionOverviewOutput{
		GeneratedAt:         now,
		TotalMembers:        len(classified),
		StatusCounts:        statusCounts,
		UnknownDueDateCount: unknownDue,
		Buckets:             buckets,
	}, nil
}

// ExecuteBucket derives the prioritized view for a single renewal bucket.
// used by the per-bucket API endpoint; same classification pass, smaller
// output.
func (uc *BuildRetentionOverviewUseCase) ExecuteBucket(ctx context.Context, bucketName string) (*domain.PriorityBucket, error) {
	bucket, err := domain.ParseRenewalBucket(bucketName)
	if err != nil {
		uc.logger.Warn("bucket view rejected: invalid bucket",
			"bucket", bucketName,
			"reason", err.Error(),
		)
		return nil, fmt.Errorf("invalid bucket: %w", err)
	}

	snapshot, err := uc.memberRepo.ListSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading member snapshot: %w", err)
	}

	now := uc.timeProvider()
	th := uc.config.Thresholds

	classified := domain.ClassifySnapshot(snapshot, now, th)
	view := domain.BuildPriorityBucket(classified, bucket, now, th)

	uc.logger.Info("bucket view built",
		"bucket", bucket.String(),
		"member_count", len(view.Members),
		"revenue_at_risk", view.RevenueAtRisk,
	)

	return &view, nil
}
