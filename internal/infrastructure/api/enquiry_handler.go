package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitdesk/retention/internal/application"
)

// EnquiryHandler handles enquiry urgency HTTP requests.
type EnquiryHandler struct {
	classifyUseCase *application.ClassifyEnquiriesUseCase
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(classifyUseCase *application.ClassifyEnquiriesUseCase) *EnquiryHandler {
	return &EnquiryHandler{
		classifyUseCase: classifyUseCase,
	}
}

// RegisterRoutes registers the enquiry routes on the given group.
func (h *EnquiryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/enquiries/urgency", h.ListUrgency)
}

// EnquiryUrgencyResponse is the API representation of a classified enquiry.
type EnquiryUrgencyResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Status           string `json:"status"`
	Highlight        string `json:"highlight"`
	Badge            string `json:"badge,omitempty"`
	ExpectedJoinDate string `json:"expected_join_date"`
	LastFollowUpDate string `json:"last_follow_up_date"`
	FollowUpRequired bool   `json:"follow_up_required"`
}

// ListUrgencyResponse is the response for the urgency listing.
type ListUrgencyResponse struct {
	Enquiries       []EnquiryUrgencyResponse `json:"enquiries"`
	Count           int                      `json:"count"`
	HighlightCounts map[string]int           `json:"highlight_counts"`
}

// ListUrgency handles GET /api/v1/enquiries/urgency
// classifies the enquiry roster by follow-up urgency.
// pass ?actionable=true to drop converted and lost enquiries.
//
// @Summary Enquiry urgency listing
// @Description Enquiries annotated with follow-up urgency highlights
// @Tags enquiries
// @Produce json
// @Param actionable query bool false "Only actionable enquiries"
// @Success 200 {object} ListUrgencyResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/enquiries/urgency [get]
// @Security BearerAuth
func (h *EnquiryHandler) ListUrgency(c echo.Context) error {
	actionableOnly := c.QueryParam("actionable") == "true"

	output, err := h.classifyUseCase.Execute(c.Request().Context(), application.ClassifyEnquiriesInput{
		ActionableOnly: actionableOnly,
	})
	if err != nil {
		return mapDomainError(err)
	}

	enquiries := make([]EnquiryUrgencyResponse, 0, len(output.Enquiries))
	for _, e := range output.Enquiries {
		enquiries = append(enquiries, EnquiryUrgencyResponse{
			ID:               e.Record.ID().String(),
			Name:             e.Record.Name(),
			Phone:            e.Record.Phone(),
			Status:           e.Record.Status().String(),
			Highlight:        e.Urgency.Highlight.String(),
			Badge:            e.Urgency.Badge,
			ExpectedJoinDate: e.Record.ExpectedJoinDate().String(),
			LastFollowUpDate: e.Record.LastFollowUpDate().String(),
			FollowUpRequired: e.Record.FollowUpRequired(),
		})
	}

	highlightCounts := make(map[string]int, len(output.HighlightCounts))
	for highlight, count := range output.HighlightCounts {
		highlightCounts[highlight.String()] = count
	}

	return c.JSON(http.StatusOK, ListUrgencyResponse{
		Enquiries:       enquiries,
		Count:           len(enquiries),
		HighlightCounts: highlightCounts,
	})
}
