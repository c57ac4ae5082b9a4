package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitdesk/retention/internal/application"
	"github.com/fitdesk/retention/internal/domain"
)

// CheckInHandler handles attendance check-in HTTP requests.
type CheckInHandler struct {
	recordUseCase *application.RecordCheckInUseCase
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(recordUseCase *application.RecordCheckInUseCase) *CheckInHandler {
	return &CheckInHandler{
		recordUseCase: recordUseCase,
	}
}

// RegisterRoutes registers the check-in routes on the given group.
func (h *CheckInHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/members/:id/checkins", h.RecordCheckIn)
}

// RecordCheckInRequest is the request body for recording a check-in.
type RecordCheckInRequest struct {
	Source string `json:"source" validate:"required"`
}

// RecordCheckInResponse is the response for a recorded check-in.
type RecordCheckInResponse struct {
	CheckInID string `json:"check_in_id"`
	MemberID  string `json:"member_id"`
	Source    string `json:"source"`
	Accepted  bool   `json:"accepted"`
}

// RecordCheckIn handles POST /api/v1/members/:id/checkins
// records a new attendance check-in for a member.
//
// @Summary Record attendance check-in
// @Description Records a member visit from a capture source
// @Tags checkins
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param body body RecordCheckInRequest true "Check-in data"
// @Success 201 {object} RecordCheckInResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/members/{id}/checkins [post]
// @Security BearerAuth
func (h *CheckInHandler) RecordCheckIn(c echo.Context) error {
	memberID := c.Param("id")
	if memberID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "member id is required")
	}

	var req RecordCheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// source defaults to manual for front-desk entries without a body
	if req.Source == "" {
		req.Source = domain.CheckInSourceManual.String()
	}

	output, err := h.recordUseCase.Execute(c.Request().Context(), application.RecordCheckInInput{
		MemberID: memberID,
		Source:   req.Source,
	})
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, RecordCheckInResponse{
		CheckInID: output.CheckInID,
		MemberID:  output.MemberID,
		Source:    output.Source,
		Accepted:  output.Accepted,
	})
}
