package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fitdesk/retention/internal/domain"
)

// SubscriptionHandler handles risk alert subscription HTTP endpoints.
type SubscriptionHandler struct {
	repo domain.AlertSubscriptionRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(repo domain.AlertSubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{repo: repo}
}

// RegisterRoutes registers subscription routes on the given group.
// all routes require a manager or owner token.
func (h *SubscriptionHandler) RegisterRoutes(g *echo.Group) {
	subs := g.Group("/alerts/subscriptions")
	subs.POST("", h.Create)
	subs.GET("", h.List)
	subs.DELETE("/:id", h.Delete)
}

// --- Request/Response DTOs ---

// createSubscriptionRequest is the request body for creating a subscription.
// @Description Request body for creating a risk alert subscription.
type createSubscriptionRequest struct {
	// TargetURL is the webhook endpoint that will receive notifications.
	TargetURL string `json:"target_url"`
	// Secret is used for HMAC-SHA256 signature verification.
	Secret string `json:"secret"`
}

// subscriptionResponse is the API representation of an alert subscription.
// @Description Risk alert subscription details.
type subscriptionResponse struct {
	ID        string    `json:"id"`
	TargetURL string    `json:"target_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listSubscriptionsResponse is the response for listing subscriptions.
// @Description List of active risk alert subscriptions.
type listSubscriptionsResponse struct {
	Subscriptions []subscriptionResponse `json:"subscriptions"`
	Count         int                    `json:"count"`
}

// requireManager checks the caller may manage alert subscriptions.
func requireManager(c echo.Context) error {
	claims := GetStaffClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if !claims.CanViewRevenue() {
		return echo.NewHTTPError(http.StatusForbidden, "manager or owner role required")
	}
	return nil
}

// --- Handlers ---

// Create creates a new alert subscription.
// @Summary Create a risk alert subscription
// @Description Subscribe a webhook endpoint to revenue-at-risk notifications.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body createSubscriptionRequest true "Subscription details"
// @Success 201 {object} subscriptionResponse
// @Failure 400 {object} echo.HTTPError "Invalid request"
// @Failure 401 {object} echo.HTTPError "Unauthorized"
// @Router /api/v1/alerts/subscriptions [post]
// @Security BearerAuth
func (h *SubscriptionHandler) Create(c echo.Context) error {
	if err := requireManager(c); err != nil {
		return err
	}

	// parse request body
	var req createSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// validate required fields
	if req.TargetURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_url is required")
	}
	if req.Secret == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "secret is required")
	}

	// validate target_url is a valid URL with http/https scheme
	parsedURL, err := url.Parse(req.TargetURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_url must be a valid HTTP or HTTPS URL")
	}

	// generate subscription ID
	subID, err := domain.NewAlertSubscriptionID(uuid.New().String())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate subscription id")
	}

	// create domain entity
	subscription, err := domain.NewAlertSubscription(subID, req.TargetURL, req.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription data")
	}

	// persist (upsert on target_url)
	if err := h.repo.Save(c.Request().Context(), subscription); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save subscription")
	}

	return c.JSON(http.StatusCreated, subscriptionResponse{
		ID:        subscription.ID().String(),
		TargetURL: subscription.TargetURL(),
		IsActive:  subscription.IsActive(),
		CreatedAt: subscription.CreatedAt(),
		UpdatedAt: subscription.UpdatedAt(),
	})
}

// List returns all active alert subscriptions.
// @Summary List risk alert subscriptions
// @Description Get all active risk alert subscriptions.
// @Tags subscriptions
// @Produce json
// @Success 200 {object} listSubscriptionsResponse
// @Failure 401 {object} echo.HTTPError "Unauthorized"
// @Router /api/v1/alerts/subscriptions [get]
// @Security BearerAuth
func (h *SubscriptionHandler) List(c echo.Context) error {
	if err := requireManager(c); err != nil {
		return err
	}

	// fetch from repository
	subs, err := h.repo.FindActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch subscriptions")
	}

	// map to response
	response := listSubscriptionsResponse{
		Subscriptions: make([]subscriptionResponse, 0, len(subs)),
		Count:         len(subs),
	}

	for _, sub := range subs {
		response.Subscriptions = append(response.Subscriptions, subscriptionResponse{
			ID:        sub.ID().String(),
			TargetURL: sub.TargetURL(),
			IsActive:  sub.IsActive(),
			CreatedAt: sub.CreatedAt(),
			UpdatedAt: sub.UpdatedAt(),
		})
	}

	return c.JSON(http.StatusOK, response)
}

// Delete removes a subscription by ID.
// @Summary Delete a risk alert subscription
// @Description Delete a risk alert subscription.
// @Tags subscriptions
// @Param id path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 401 {object} echo.HTTPError "Unauthorized"
// @Failure 404 {object} echo.HTTPError "Subscription not found"
// @Router /api/v1/alerts/subscriptions/{id} [delete]
// @Security BearerAuth
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	if err := requireManager(c); err != nil {
		return err
	}

	// parse subscription id from path
	subIDStr := c.Param("id")
	if subIDStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subscription id is required")
	}

	subID, err := domain.NewAlertSubscriptionID(subIDStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id format")
	}

	// delete
	if err := h.repo.Delete(c.Request().Context(), subID); err != nil {
		if err == domain.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "subscription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete subscription")
	}

	return c.NoContent(http.StatusNoContent)
}
