package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitdesk/retention/internal/infrastructure/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// StaffContextKey is the context key for the authenticated staff claims.
	StaffContextKey contextKey = "staff_claims"
)

// AuthConfig holds authentication middleware configuration.
type AuthConfig struct {
	// JWTValidator validates incoming bearer tokens.
	JWTValidator *auth.JWTValidator

	// Skipper defines a function to skip auth for certain routes.
	Skipper func(c echo.Context) bool
}

// AuthMiddleware validates the Authorization header and stores the staff
// claims in context. returns 401 on protected routes when the token is
// missing or invalid.
func AuthMiddleware(config AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// check if we should skip auth for this route
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			token := auth.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			claims, err := config.JWTValidator.ValidateToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if !claims.IsStaff() {
				return echo.NewHTTPError(http.StatusForbidden, "staff role required")
			}

			// store in context for downstream handlers
			c.Set(string(StaffContextKey), claims)

			return next(c)
		}
	}
}

// OptionalAuthMiddleware extracts staff claims if a valid token is present
// but doesn't require one. useful for endpoints that degrade gracefully
// for unauthenticated callers.
func OptionalAuthMiddleware(config AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := auth.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token != "" {
				if claims, err := config.JWTValidator.ValidateToken(token); err == nil {
					c.Set(string(StaffContextKey), claims)
				}
			}

			return next(c)
		}
	}
}

// GetStaffClaims retrieves the authenticated staff claims from context.
// returns nil if not authenticated.
func GetStaffClaims(c echo.Context) *auth.StaffClaims {
	if val := c.Get(string(StaffContextKey)); val != nil {
		if claims, ok := val.(*auth.StaffClaims); ok {
			return claims
		}
	}
	return nil
}

// PublicRoutesSkipper returns a skipper function that skips auth for public routes.
func PublicRoutesSkipper(publicPaths ...string) func(echo.Context) bool {
	pathSet := make(map[string]bool)
	for _, p := range publicPaths {
		pathSet[p] = true
	}

	return func(c echo.Context) bool {
		return pathSet[c.Path()]
	}
}
