package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitdesk/retention/internal/application"
	"github.com/fitdesk/retention/internal/infrastructure/api"
	"github.com/fitdesk/retention/internal/infrastructure/auth"
	"github.com/fitdesk/retention/internal/infrastructure/cache"
	"github.com/fitdesk/retention/internal/infrastructure/config"
	"github.com/fitdesk/retention/internal/infrastructure/database"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
	"github.com/fitdesk/retention/internal/infrastructure/metrics"
	"github.com/fitdesk/retention/internal/infrastructure/postgres"
	"github.com/fitdesk/retention/internal/infrastructure/worker"
)

const (
	// memberExistsCacheTTL bounds how long a member existence check may
	// be served from memory during check-in ingestion
	memberExistsCacheTTL = 1 * time.Minute
)

func main() {
	logger := logging.New()
	logger.Info("retention starting up")

	if err := run(logger); err != nil {
		logger.Error("application failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *logging.Logger) error {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err.Error())
		return err
	}

	// establish database connection
	conn, err := database.New(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	// run migrations
	migrator := database.NewMigrator(conn, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	// verify health after migrations
	if err := conn.HealthCheck(ctx); err != nil {
		return err
	}

	logger.Info("retention infrastructure ready", "schema", conn.Schema())

	// initialize prometheus metrics
	appMetrics := metrics.New()
	logger.Info("prometheus metrics initialized")

	// initialize jwt validator
	jwtValidator := auth.NewJWTValidator(cfg.Auth.JWTSecret)

	// initialize repositories
	pool := conn.Pool()
	memberRepo := postgres.NewMemberRepository(pool)
	enquiryRepo := postgres.NewEnquiryRepository(pool)
	checkInRepo := postgres.NewCheckInRepository(pool)
	alertSubRepo := postgres.NewAlertSubscriptionRepository(pool)

	// initialize redis (optional - disabled if REDIS_ADDR is empty)
	var redisClient *cache.RedisClient

	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Error("failed to create redis client", "error", err.Error())
			return err
		}

		if err := redisClient.Connect(ctx); err != nil {
			logger.Warn("redis connection failed, continuing without ranking cache", "error", err.Error())
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("redis outreach ranking cache enabled")
		}
	}

	// initialize check-in ingestion worker (async buffer pattern)
	ingestionWorkerConfig := worker.DefaultCheckInIngestionConfig()
	ingestionWorker := worker.NewCheckInIngestionWorker(checkInRepo, ingestionWorkerConfig, logger).
		WithMetrics(appMetrics)

	// start the ingestion worker before accepting requests
	workerCtx, workerCancel := context.WithCancel(context.Background())
	ingestionWorker.Start(workerCtx)

	// initialize alert worker for revenue-at-risk notifications
	alertWorkerConfig := worker.DefaultAlertWorkerConfig()
	alertWorkerConfig.Thresholds = cfg.Alerts.Thresholds()
	alertWorker := worker.NewAlertWorker(alertSubRepo, alertWorkerConfig, logger)
	alertWorker.Start(workerCtx)

	// initialize member existence cache for high-throughput check-in ingestion
	// caches member exists checks to avoid DB hits on every check-in
	memberExistsCache := cache.NewMemberExistsCache(memberRepo, memberExistsCacheTTL)

	// initialize use cases
	overviewConfig := application.OverviewConfig{Thresholds: cfg.Retention.Thresholds()}

	buildOverviewUseCase := application.NewBuildRetentionOverviewUseCase(
		memberRepo,
		overviewConfig,
		logger,
	).WithNotifier(alertWorker) // wire revenue-at-risk notifications

	// wire redis outreach ranking to the overview use case if available
	if redisClient != nil {
		buildOverviewUseCase = buildOverviewUseCase.WithRanking(redisClient)
	}

	classifyEnquiriesUseCase := application.NewClassifyEnquiriesUseCase(
		enquiryRepo,
		overviewConfig,
		logger,
	)

	recordCheckInUseCase := application.NewRecordCheckInUseCase(
		checkInRepo,
		memberExistsCache,
		logger,
	).WithCheckInChannel(ingestionWorker.CheckInChannel()) // enable async mode

	// initialize http server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		serverConfig.Port = ":" + port
	}

	server := api.NewServer(serverConfig, logger)

	// register routes
	api.RegisterRoutes(server.Echo(), api.RouterConfig{
		OverviewUseCase:  buildOverviewUseCase,
		EnquiriesUseCase: classifyEnquiriesUseCase,
		CheckInUseCase:   recordCheckInUseCase,
		SubscriptionRepo: alertSubRepo,
		JWTValidator:     jwtValidator,
		Logger:           logger,
		Metrics:          appMetrics,
		ReadinessChecker: conn.HealthCheck,
	})

	// start background classification worker
	classificationInterval := time.Duration(cfg.Retention.RecalculateIntervalSec) * time.Second
	go runClassificationWorker(workerCtx, buildOverviewUseCase, classificationInterval, appMetrics, logger)

	// start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("http server error", "error", err.Error())
		}
	}()

	// wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("retention shutting down")

	// stop background workers
	workerCancel()

	// stop ingestion worker and drain buffer
	ingestionWorker.Stop()

	// stop alert worker and drain buffer
	alertWorker.Stop()

	// graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err.Error())
		return err
	}

	logger.Info("retention shutdown complete")
	return nil
}

// runClassificationWorker re-runs the full member classification pass
// on a fixed interval until the context is cancelled
func runClassificationWorker(ctx context.Context, useCase *application.BuildRetentionOverviewUseCase, interval time.Duration, appMetrics *metrics.Metrics, logger *logging.Logger) {
	logger.Info("classification worker started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// run immediately on startup so rankings and alerts are warm
	runClassificationPass(ctx, useCase, appMetrics, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("classification worker stopping")
			return
		case <-ticker.C:
			runClassificationPass(ctx, useCase, appMetrics, logger)
		}
	}
}

// runClassificationPass executes a single classification cycle
func runClassificationPass(ctx context.Context, useCase *application.BuildRetentionOverviewUseCase, appMetrics *metrics.Metrics, logger *logging.Logger) {
	logger.ClassificationPassStarted()

	start := time.Now()
	result, err := useCase.Execute(ctx)
	duration := time.Since(start)

	// record metric regardless of success/failure
	if appMetrics != nil {
		appMetrics.RecordClassification(duration.Seconds())
	}

	if err != nil {
		logger.ClassificationPassFailed(err)
		return
	}

	if appMetrics != nil {
		for _, bucket := range result.Buckets {
			appMetrics.SetBucketState(bucket.Bucket.String(), len(bucket.Members), bucket.RevenueAtRisk)
		}
	}

	logger.ClassificationPassCompleted(result.TotalMembers, duration.Milliseconds())
}
