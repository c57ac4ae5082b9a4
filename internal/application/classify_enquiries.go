package application

import (
	"context"
	"fmt"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// ClassifyEnquiriesInput controls the enquiry urgency listing.
type ClassifyEnquiriesInput struct {
	// ActionableOnly drops converted and lost enquiries from the result.
	// the urgency highlight itself is always computed by the classifier;
	// this is purely a listing filter.
	ActionableOnly bool
}

// ClassifiedEnquiry is one enquiry with its derived urgency.
type ClassifiedEnquiry struct {
	Record  domain.EnquiryRecord
	Urgency domain.EnquiryUrgency
}

// ClassifyEnquiriesOutput is the derived urgency view over the enquiry
// snapshot.
type ClassifyEnquiriesOutput struct {
	Enquiries []ClassifiedEnquiry

	// HighlightCounts holds the enquiry count per urgency highlight,
	// computed over the returned (possibly filtered) set.
	HighlightCounts map[domain.UrgencyHighlight]int
}

// ClassifyEnquiriesUseCase derives follow-up urgency for the enquiry
// roster.
type ClassifyEnquiriesUseCase struct {
	enquiryRepo  domain.EnquiryRepository
	config       OverviewConfig
	timeProvider TimeProvider
	logger       *logging.Logger
}

// NewClassifyEnquiriesUseCase creates a new ClassifyEnquiriesUseCase.
func NewClassifyEnquiriesUseCase(
	enquiryRepo domain.EnquiryRepository,
	config OverviewConfig,
	logger *logging.Logger,
) *ClassifyEnquiriesUseCase {
	return &ClassifyEnquiriesUseCase{
		enquiryRepo:  enquiryRepo,
		config:       config,
		timeProvider: RealTime,
		logger:       logger.WithComponent("classify_enquiries"),
	}
}

// WithTimeProvider sets a custom time provider for testing.
func (uc *ClassifyEnquiriesUseCase) WithTimeProvider(tp TimeProvider) *ClassifyEnquiriesUseCase {
	uc.timeProvider = tp
	return uc
}

// Execute loads the enquiry snapshot and annotates each record with its
// urgency highlight and badge.
func (uc *ClassifyEnquiriesUseCase) Execute(ctx context.Context, input ClassifyEnquiriesInput) (*ClassifyEnquiriesOutput, error) {
	snapshot, err := uc.enquiryRepo.ListSnapshot(ctx)
	if err != nil {
		uc.logger.Error("enquiry classification failed: snapshot load failed",
			"error", err.Error(),
		)
		return nil, fmt.Errorf("loading enquiry snapshot: %w", err)
	}

	now := uc.timeProvider()
	th := uc.config.Thresholds

	out := &ClassifyEnquiriesOutput{
		Enquiries:       make([]ClassifiedEnquiry, 0, len(snapshot)),
		HighlightCounts: make(map[domain.UrgencyHighlight]int, 4),
	}

	for _, enquiry := range snapshot {
		if input.ActionableOnly && !enquiry.Status().IsActionable() {
			continue
		}

		urgency := domain.ClassifyUrgency(enquiry, now, th)
		out.Enquiries = append(out.Enquiries, ClassifiedEnquiry{
			Record:  enquiry,
			Urgency: urgency,
		})
		out.HighlightCounts[urgency.Highlight]++
	}

	uc.logger.Info("enquiries classified",
		"total", len(snapshot),
		"returned", len(out.Enquiries),
		"overdue", out.HighlightCounts[domain.UrgencyOverdue],
		"today", out.HighlightCounts[domain.UrgencyToday],
		"actionable_only", input.ActionableOnly,
	)

	return out, nil
}
