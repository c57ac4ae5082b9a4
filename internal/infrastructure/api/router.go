package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fitdesk/retention/internal/application"
	"github.com/fitdesk/retention/internal/domain"
	"github.com/fitdesk/retention/internal/infrastructure/auth"
	"github.com/fitdesk/retention/internal/infrastructure/logging"
	"github.com/fitdesk/retention/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for route registration.
type RouterConfig struct {
	OverviewUseCase  *application.BuildRetentionOverviewUseCase
	EnquiriesUseCase *application.ClassifyEnquiriesUseCase
	CheckInUseCase   *application.RecordCheckInUseCase
	SubscriptionRepo domain.AlertSubscriptionRepository
	JWTValidator     *auth.JWTValidator
	Logger           *logging.Logger
	Metrics          *metrics.Metrics
	ReadinessChecker ReadinessChecker
}

// RegisterRoutes sets up all API routes on the server.
// follows RESTful conventions and groups routes logically.
func RegisterRoutes(e *echo.Echo, config RouterConfig) {
	// prometheus metrics endpoint (no auth, standard scraping path)
	if config.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
			config.Metrics.Registry,
			promhttp.HandlerOpts{
				Registry:          config.Metrics.Registry,
				EnableOpenMetrics: true,
			},
		)))

		// apply metrics middleware to all routes
		e.Use(metrics.Middleware(config.Metrics))
	}

	// health endpoints (no auth required)
	RegisterHealthRoutes(e, config.ReadinessChecker)

	// api v1 group with auth
	v1 := e.Group("/api/v1")

	authConfig := AuthConfig{
		JWTValidator: config.JWTValidator,
		Skipper: PublicRoutesSkipper(
			"/health",
			"/ready",
		),
	}

	// apply optional auth to allow both authenticated and anonymous requests
	// individual handlers decide what to do with the staff context
	v1.Use(OptionalAuthMiddleware(authConfig))

	// register domain handlers
	if config.OverviewUseCase != nil {
		retentionHandler := NewRetentionHandler(config.OverviewUseCase)
		retentionHandler.RegisterRoutes(v1)
	}

	if config.EnquiriesUseCase != nil {
		enquiryHandler := NewEnquiryHandler(config.EnquiriesUseCase)
		enquiryHandler.RegisterRoutes(v1)
	}

	if config.CheckInUseCase != nil {
		checkInHandler := NewCheckInHandler(config.CheckInUseCase)
		checkInHandler.RegisterRoutes(v1)
	}

	if config.SubscriptionRepo != nil {
		subscriptionHandler := NewSubscriptionHandler(config.SubscriptionRepo)
		subscriptionHandler.RegisterRoutes(v1)
	}

	metricsEnabled := config.Metrics != nil
	config.Logger.Info("api routes registered",
		"version", "v1",
		"health_endpoints", []string{"/health", "/ready"},
		"metrics_enabled", metricsEnabled,
		"api_prefix", "/api/v1",
	)
}
