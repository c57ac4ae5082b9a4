package worker

import (
	"context"
	"sync"
	"time"

	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
)

// MetricsRecorder abstracts prometheus metrics for the ingestion worker.
// keeps worker decoupled from metrics package.
type MetricsRecorder interface {
	RecordCheckInIngested(source string)
	SetBufferSize(size int)
}

// CheckInIngestionWorkerConfig holds configuration for the ingestion worker.
type CheckInIngestionWorkerConfig struct {
	// BufferSize is the size of the check-in channel buffer.
	// larger buffer = more check-ins can queue before blocking
	BufferSize int

	// BatchSize is the number of check-ins to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time to wait before flushing a partial batch.
	FlushInterval time.Duration

	// WorkerCount is the number of concurrent workers processing check-ins.
	WorkerCount int
}

// DefaultCheckInIngestionConfig returns sensible defaults for the worker.
func DefaultCheckInIngestionConfig() CheckInIngestionWorkerConfig {
	return CheckInIngestionWorkerConfig{
		BufferSize:    5000, // morning rush at a large gym is bursty
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WorkerCount:   2,
	}
}

// CheckInIngestionWorker processes attendance check-ins from a buffered
// channel. implements batch saving to reduce database roundtrips.
type CheckInIngestionWorker struct {
	checkInChan chan *domain.CheckIn
	repo        domain.CheckInRepository
	config      CheckInIngestionWorkerConfig
	logger      *logging.Logger
	metrics     MetricsRecorder

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewCheckInIngestionWorker creates a new check-in ingestion worker.
func NewCheckInIngestionWorker(
	repo domain.CheckInRepository,
	config CheckInIngestionWorkerConfig,
	logger *logging.Logger,
) *CheckInIngestionWorker {
	return &CheckInIngestionWorker{
		checkInChan: make(chan *domain.CheckIn, config.BufferSize),
		repo:        repo,
		config:      config,
		logger:      logger.WithComponent("checkin_ingestion_worker"),
		stopped:     make(chan struct{}),
	}
}

// WithMetrics sets the metrics recorder for observability.
func (w *CheckInIngestionWorker) WithMetrics(m MetricsRecorder) *CheckInIngestionWorker {
	w.metrics = m
	return w
}

// CheckInChannel returns the channel for submitting check-ins.
// use this to push check-ins from the use case.
func (w *CheckInIngestionWorker) CheckInChannel() chan<- *domain.CheckIn {
	return w.checkInChan
}

// Start begins the worker goroutines.
// call this before accepting check-ins.
func (w *CheckInIngestionWorker) Start(ctx context.Context) {
	w.logger.Info("check-in ingestion worker starting",
		"buffer_size", w.config.BufferSize,
		"batch_size", w.config.BatchSize,
		"flush_interval", w.config.FlushInterval.String(),
		"worker_count", w.config.WorkerCount,
	)

	for i := 0; i < w.config.WorkerCount; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i)
	}
}

// Stop gracefully shuts down the worker, draining remaining check-ins.
func (w *CheckInIngestionWorker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("check-in ingestion worker stopping, draining buffer...")

		// close the channel to signal workers to drain and exit
		close(w.checkInChan)

		// wait for all workers to finish
		w.wg.Wait()

		close(w.stopped)
		w.logger.Info("check-in ingestion worker stopped")
	})
}

// Stopped returns a channel that closes when the worker has fully stopped.
func (w *CheckInIngestionWorker) Stopped() <-chan struct{} {
	return w.stopped
}

// QueueSize returns the current number of check-ins waiting in the buffer.
func (w *CheckInIngestionWorker) QueueSize() int {
	return len(w.checkInChan)
}

// runWorker is the main worker loop.
func (w *CheckInIngestionWorker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	batch := make([]*domain.CheckIn, 0, w.config.BatchSize)
	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		w.flushBatch(ctx, batch, workerID)
		batch = batch[:0] // reset slice, keep capacity
	}

	for {
		select {
		case checkIn, ok := <-w.checkInChan:
			if !ok {
				// channel closed, flush remaining and exit
				flush()
				w.logger.Debug("worker exiting after drain", "worker_id", workerID)
				return
			}

			batch = append(batch, checkIn)

			// flush if batch is full
			if len(batch) >= w.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			// flush partial batch on timeout
			flush()

		case <-ctx.Done():
			// context cancelled, flush and exit
			flush()
			w.logger.Debug("worker exiting on context cancel", "worker_id", workerID)
			return
		}
	}
}

// flushBatch persists a batch of check-ins to the database.
func (w *CheckInIngestionWorker) flushBatch(ctx context.Context, batch []*domain.CheckIn, workerID int) {
	if len(batch) == 0 {
		return
	}

	start := time.Now()

	// use bulk insert for efficiency
	err := w.repo.SaveBatch(ctx, batch)
	duration := time.Since(start)

	if err != nil {
		w.logger.Error("batch save failed",
			"worker_id", workerID,
			"batch_size", len(batch),
			"error", err.Error(),
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	// record metrics for successfully saved check-ins
	if w.metrics != nil {
		for _, checkIn := range batch {
			w.metrics.RecordCheckInIngested(checkIn.Source().String())
		}
		// update buffer size after flush
		w.metrics.SetBufferSize(len(w.checkInChan))
	}

	w.logger.Debug("batch flushed",
		"worker_id", workerID,
		"batch_size", len(batch),
		"duration_ms", duration.Milliseconds(),
	)
}

// IngestionStats holds current worker statistics.
type IngestionStats struct {
	QueueSize   int
	BufferSize  int
	WorkerCount int
}

// Stats returns current worker statistics.
func (w *CheckInIngestionWorker) Stats() IngestionStats {
	return IngestionStats{
		QueueSize:   len(w.checkInChan),
		BufferSize:  w.config.BufferSize,
		WorkerCount: w.config.WorkerCount,
	}
}
