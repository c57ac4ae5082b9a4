package domain

import (
	"context"
	"time"
)

// AlertSubscription represents a webhook endpoint that wants to hear
// about revenue-at-risk spikes after a classification pass.
type AlertSubscription struct {
	id        AlertSubscriptionID
	targetURL string
	secret    string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

// AlertSubscriptionID uniquely identifies an alert subscription.
type AlertSubscriptionID struct {
	value string
}

// NewAlertSubscriptionID creates a new alert subscription ID from a string.
func NewAlertSubscriptionID(id string) (AlertSubscriptionID, error) {
	if id == "" {
		return AlertSubscriptionID{}, ErrInvalidInput
	}
	return AlertSubscriptionID{value: id}, nil
}

// String returns the string representation.
func (id AlertSubscriptionID) String() string {
	return id.value
}

// NewAlertSubscription creates a new alert subscription.
func NewAlertSubscription(id AlertSubscriptionID, targetURL, secret string) (*AlertSubscription, error) {
	if targetURL == "" {
		return nil, ErrInvalidInput
	}
	if secret == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now().UTC()
	return &AlertSubscription{
		id:        id,
		targetURL: targetURL,
		secret:    secret,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructAlertSubscription rebuilds a subscription from persistence.
// bypasses validation for trusted data from database.
func ReconstructAlertSubscription(
	id AlertSubscriptionID,
	targetURL string,
	secret string,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) *AlertSubscription {
	return &AlertSubscription{
		id:        id,
		targetURL: targetURL,
		secret:    secret,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters

func (s *AlertSubscription) ID() AlertSubscriptionID { return s.id }
func (s *AlertSubscription) TargetURL() string       { return s.targetURL }
func (s *AlertSubscription) Secret() string          { return s.secret }
func (s *AlertSubscription) IsActive() bool          { return s.isActive }
func (s *AlertSubscription) CreatedAt() time.Time    { return s.createdAt }
func (s *AlertSubscription) UpdatedAt() time.Time    { return s.updatedAt }

// Deactivate disables the subscription without deleting it.
func (s *AlertSubscription) Deactivate() {
	s.isActive = false
	s.updatedAt = time.Now().UTC()
}

// Activate enables a previously deactivated subscription.
func (s *AlertSubscription) Activate() {
	s.isActive = true
	s.updatedAt = time.Now().UTC()
}

// AlertSubscriptionRepository defines persistence for alert subscriptions.
type AlertSubscriptionRepository interface {
	// Save persists an alert subscription (insert or update).
	Save(ctx context.Context, sub *AlertSubscription) error

	// FindActive retrieves all active subscriptions.
	FindActive(ctx context.Context) ([]*AlertSubscription, error)

	// Delete removes a subscription.
	Delete(ctx context.Context, id AlertSubscriptionID) error
}

// RiskAlert describes a bucket whose revenue-at-risk crossed the alert
// thresholds during a classification pass.
type RiskAlert struct {
	Bucket        RenewalBucket
	MemberCount   int
	RevenueAtRisk float64
	Timestamp     time.Time
}

// RiskNotifier defines the interface for delivering risk alerts.
// implementations handle the actual delivery mechanism (webhooks, etc).
type RiskNotifier interface {
	// NotifyRiskAlert sends notifications for a risk alert.
	// returns the number of notifications sent.
	NotifyRiskAlert(ctx context.Context, alert RiskAlert) (int, error)

	// Thresholds returns the alerting policy in effect.
	Thresholds() RiskAlertThresholds
}

// RiskAlertThresholds defines when a bucket is worth waking someone up for.
type RiskAlertThresholds struct {
	// MinRevenueAtRisk is the minimum bucket revenue to trigger an alert.
	MinRevenueAtRisk float64

	// MinMemberCount is the minimum bucket size to trigger an alert.
	MinMemberCount int
}

// DefaultRiskAlertThresholds returns sensible defaults.
func DefaultRiskAlertThresholds() RiskAlertThresholds {
	return RiskAlertThresholds{
		MinRevenueAtRisk: 10000,
		MinMemberCount:   5,
	}
}

// IsAlertable determines if a bucket's state constitutes an alert.
func (t RiskAlertThresholds) IsAlertable(memberCount int, revenueAtRisk float64) bool {
	if revenueAtRisk < t.MinRevenueAtRisk {
		return false
	}
	return memberCount >= t.MinMemberCount
}
