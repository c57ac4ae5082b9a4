package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all prometheus metrics for the retention service.
// uses a custom registry to avoid polluting the global namespace.
type Metrics struct {
	Registry *prometheus.Registry

	// http_request_duration_seconds - histogram for api latency
	HTTPRequestDuration *prometheus.HistogramVec

	// retention_checkins_ingested_total - counter for ingested check-ins
	CheckInsIngestedTotal *prometheus.CounterVec

	// retention_buffer_size - gauge for current check-in buffer size
	BufferSize prometheus.Gauge

	// retention_classification_duration_seconds - histogram for classification passes
	ClassificationDuration prometheus.Histogram

	// retention_revenue_at_risk - gauge for per-bucket revenue at risk
	RevenueAtRisk *prometheus.GaugeVec

	// retention_bucket_members - gauge for per-bucket member counts
	BucketMembers *prometheus.GaugeVec

	// retention_risk_alerts_total - counter for raised risk alerts
	RiskAlertsTotal *prometheus.CounterVec
}

// New creates and registers all prometheus metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	// add standard go runtime and process collectors
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		CheckInsIngestedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retention_checkins_ingested_total",
				Help: "Total number of attendance check-ins ingested",
			},
			[]string{"source"},
		),

		BufferSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "retention_buffer_size",
			Help: "Current number of check-ins waiting in the ingestion buffer",
		}),

		ClassificationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "retention_classification_duration_seconds",
			Help:    "Duration of member classification passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}),

		RevenueAtRisk: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "retention_revenue_at_risk",
				Help: "Revenue at risk per renewal bucket from the latest classification pass",
			},
			[]string{"bucket"},
		),

		BucketMembers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "retention_bucket_members",
				Help: "Member count per renewal bucket from the latest classification pass",
			},
			[]string{"bucket"},
		),

		RiskAlertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retention_risk_alerts_total",
				Help: "Total number of revenue-at-risk alerts raised",
			},
			[]string{"bucket"},
		),
	}

	// register all custom metrics
	reg.MustRegister(
		m.HTTPRequestDuration,
		m.CheckInsIngestedTotal,
		m.BufferSize,
		m.ClassificationDuration,
		m.RevenueAtRisk,
		m.BucketMembers,
		m.RiskAlertsTotal,
	)

	return m
}

// RecordHTTPRequest records the duration of an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
}

// RecordCheckInIngested increments the check-ins ingested counter.
func (m *Metrics) RecordCheckInIngested(source string) {
	m.CheckInsIngestedTotal.WithLabelValues(source).Inc()
}

// SetBufferSize sets the current buffer size gauge.
func (m *Metrics) SetBufferSize(size int) {
	m.BufferSize.Set(float64(size))
}

// RecordClassification records the duration of a classification pass.
func (m *Metrics) RecordClassification(durationSeconds float64) {
	m.ClassificationDuration.Observe(durationSeconds)
}

// SetBucketState updates the per-bucket gauges after a classification pass.
func (m *Metrics) SetBucketState(bucket string, memberCount int, revenueAtRisk float64) {
	m.BucketMembers.WithLabelValues(bucket).Set(float64(memberCount))
	m.RevenueAtRisk.WithLabelValues(bucket).Set(revenueAtRisk)
}

// RecordRiskAlert increments the risk alerts counter.
func (m *Metrics) RecordRiskAlert(bucket string) {
	m.RiskAlertsTotal.WithLabelValues(bucket).Inc()
}
