package worker

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// AlertWorkerConfig holds configuration for the risk alert dispatcher.
type AlertWorkerConfig struct {
	// BufferSize is the size of the alert channel buffer.
	BufferSize int

	// WorkerCount is the number of concurrent workers dispatching webhooks.
	WorkerCount int

	// RequestTimeout is the max time to wait for each outgoing HTTP request.
	RequestTimeout time.Duration

	// Thresholds define when a bucket's state is worth alerting on.
	Thresholds domain.RiskAlertThresholds
}

// DefaultAlertWorkerConfig returns sensible defaults.
func DefaultAlertWorkerConfig() AlertWorkerConfig {
	return AlertWorkerConfig{
		BufferSize:     1000,
		WorkerCount:    2,
		RequestTimeout: 5 * time.Second,
		Thresholds:     domain.DefaultRiskAlertThresholds(),
	}
}

// AlertWorker dispatches webhook notifications for revenue-at-risk alerts.
// implements domain.RiskNotifier.
type AlertWorker struct {
	alertChan  chan domain.RiskAlert
	subRepo    domain.AlertSubscriptionRepository
	httpClient *http.Client
	config     AlertWorkerConfig
	logger     *logging.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewAlertWorker creates a new alert worker.
func NewAlertWorker(
	subRepo domain.AlertSubscriptionRepository,
	config AlertWorkerConfig,
	logger *logging.Logger,
) *AlertWorker {
	return &AlertWorker{
		alertChan: make(chan domain.RiskAlert, config.BufferSize),
		subRepo:   subRepo,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:  config,
		logger:  logger.WithComponent("alert_worker"),
		stopped: make(chan struct{}),
	}
}

// Start begins the worker goroutines.
func (w *AlertWorker) Start(ctx context.Context) {
	w.logger.Info("alert worker starting",
		"buffer_size", w.config.BufferSize,
		"worker_count", w.config.WorkerCount,
		"request_timeout", w.config.RequestTimeout.String(),
	)

	for i := 0; i < w.config.WorkerCount; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i)
	}
}

// Stop gracefully shuts down the worker.
func (w *AlertWorker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("alert worker stopping, draining buffer...")
		close(w.alertChan)
		w.wg.Wait()
		close(w.stopped)
		w.logger.Info("alert worker stopped")
	})
}

// Stopped returns a channel that closes when the worker has fully stopped.
func (w *AlertWorker) Stopped() <-chan struct{} {
	return w.stopped
}

// NotifyRiskAlert queues a risk alert for notification.
// implements domain.RiskNotifier.
func (w *AlertWorker) NotifyRiskAlert(ctx context.Context, alert domain.RiskAlert) (int, error) {
	select {
	case w.alertChan <- alert:
		w.logger.Debug("alert queued for notification",
			"bucket", alert.Bucket.String(),
			"revenue_at_risk", alert.RevenueAtRisk,
		)
		// actual count will be determined during dispatch
		// return 0 here as it's async
		return 0, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
		// buffer full, log and drop
		w.logger.Warn("alert buffer full, alert dropped",
			"bucket", alert.Bucket.String(),
		)
		return 0, nil
	}
}

// Thresholds returns the configured alert thresholds.
func (w *AlertWorker) Thresholds() domain.RiskAlertThresholds {
	return w.config.Thresholds
}

// runWorker is the main worker loop.
func (w *AlertWorker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case alert, ok := <-w.alertChan:
			if !ok {
				w.logger.Debug("worker exiting after drain", "worker_id", workerID)
				return
			}
			w.dispatchAlert(ctx, alert, workerID)

		case <-ctx.Done():
			w.logger.Debug("worker exiting on context cancel", "worker_id", workerID)
			return
		}
	}
}

// dispatchAlert sends webhook notifications for an alert.
func (w *AlertWorker) dispatchAlert(ctx context.Context, alert domain.RiskAlert, workerID int) {
	subs, err := w.subRepo.FindActive(ctx)
	if err != nil {
		w.logger.Error("failed to fetch subscriptions",
			"worker_id", workerID,
			"bucket", alert.Bucket.String(),
			"error", err.Error(),
		)
		return
	}

	if len(subs) == 0 {
		w.logger.Debug("no active alert subscriptions",
			"bucket", alert.Bucket.String(),
		)
		return
	}

	// prepare payload
	payload := AlertPayload{
		Event:         "revenue_at_risk",
		Bucket:        alert.Bucket.String(),
		MemberCount:   alert.MemberCount,
		RevenueAtRisk: alert.RevenueAtRisk,
		Timestamp:     alert.Timestamp.Format(time.RFC3339),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		w.logger.Error("failed to marshal payload",
			"worker_id", workerID,
			"error", err.Error(),
		)
		return
	}

	// dispatch to each subscriber
	var sent, failed int
	for _, sub := range subs {
		if w.sendWebhook(ctx, sub, payloadBytes, workerID) {
			sent++
		} else {
			failed++
		}
	}

	w.logger.Info("alert notifications dispatched",
		"worker_id", workerID,
		"bucket", alert.Bucket.String(),
		"sent", sent,
		"failed", failed,
	)
}

// sendWebhook sends a single webhook notification.
func (w *AlertWorker) sendWebhook(ctx context.Context, sub *domain.AlertSubscription, payload []byte, workerID int) bool {
	// compute HMAC signature
	signature := w.computeSignature(payload, sub.Secret())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.TargetURL(), bytes.NewReader(payload))
	if err != nil {
		w.logger.Error("failed to create request",
			"worker_id", workerID,
			"target_url", sub.TargetURL(),
			"error", err.Error(),
		)
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Retention-Signature", signature)
	req.Header.Set("X-Retention-Event", "revenue_at_risk")
	req.Header.Set("User-Agent", "Retention-Webhook/1.0")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.Warn("webhook request failed",
			"worker_id", workerID,
			"target_url", sub.TargetURL(),
			"error", err.Error(),
		)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		w.logger.Debug("webhook delivered",
			"target_url", sub.TargetURL(),
			"status", resp.StatusCode,
		)
		return true
	}

	w.logger.Warn("webhook returned non-success status",
		"worker_id", workerID,
		"target_url", sub.TargetURL(),
		"status", resp.StatusCode,
	)
	return false
}

// computeSignature generates HMAC-SHA256 signature.
func (w *AlertWorker) computeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return fmt.Sprintf("sha256=%s", hex.EncodeToString(mac.Sum(nil)))
}

// AlertPayload is the JSON structure sent to webhook endpoints.
type AlertPayload struct {
	Event         string  `json:"event"`
	Bucket        string  `json:"bucket"`
	MemberCount   int     `json:"member_count"`
	RevenueAtRisk float64 `json:"revenue_at_risk"`
	Timestamp     string  `json:"timestamp"`
}
