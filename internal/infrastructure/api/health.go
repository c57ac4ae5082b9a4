package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ReadinessChecker verifies downstream dependencies are reachable.
type ReadinessChecker func(ctx context.Context) error

// RegisterHealthRoutes registers health check endpoints.
// these are public and don't require authentication.
// readiness is optional; pass nil to always report ready.
func RegisterHealthRoutes(e *echo.Echo, ready ReadinessChecker) {
	e.GET("/health", healthHandler)
	e.GET("/ready", readyHandler(ready))
}

// healthHandler returns the basic health status.
// used for liveness probes.
func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "retention",
	})
}

// readyHandler returns the readiness status.
// used for readiness probes; checks database connectivity when wired.
func readyHandler(ready ReadinessChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ready != nil {
			if err := ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, HealthResponse{
					Status:  "not ready",
					Service: "retention",
				})
			}
		}
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ready",
			Service: "retention",
		})
	}
}
