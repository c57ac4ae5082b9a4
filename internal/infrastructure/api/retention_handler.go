package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitdesk/retention/internal/application"
	"github.com/fitdesk/retention/internal/domain"
)

// RetentionHandler handles retention overview HTTP requests.
type RetentionHandler struct {
	overviewUseCase *application.BuildRetentionOverviewUseCase
}

// NewRetentionHandler creates a new RetentionHandler.
func NewRetentionHandler(overviewUseCase *application.BuildRetentionOverviewUseCase) *RetentionHandler {
	return &RetentionHandler{
		overviewUseCase: overviewUseCase,
	}
}

// RegisterRoutes registers the retention routes on the given group.
func (h *RetentionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/retention/overview", h.Overview)
	g.GET("/retention/buckets/:bucket", h.Bucket)
	g.POST("/retention/recalculate", h.Recalculate)
}

// MemberSummary is the API representation of a classified member.
type MemberSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Status        string  `json:"status"`
	DaysAbsent    int     `json:"days_absent"`
	RenewalBucket string  `json:"renewal_bucket"`
	DueDate       string  `json:"due_date"`
	Fee           float64 `json:"fee,omitempty"`
	PlanType      string  `json:"plan_type"`
}

// BucketResponse is one prioritized outreach bucket.
type BucketResponse struct {
	Bucket        string          `json:"bucket"`
	MemberCount   int             `json:"member_count"`
	RevenueAtRisk float64         `json:"revenue_at_risk,omitempty"`
	Members       []MemberSummary `json:"members"`
}

// OverviewResponse is the full retention overview.
type OverviewResponse struct {
	GeneratedAt         time.Time        `json:"generated_at"`
	TotalMembers        int              `json:"total_members"`
	StatusCounts        map[string]int   `json:"status_counts"`
	UnknownDueDateCount int              `json:"unknown_due_date_count"`
	Buckets             []BucketResponse `json:"buckets"`
}

// RecalculateResponse acknowledges a forced classification pass.
type RecalculateResponse struct {
	GeneratedAt  time.Time `json:"generated_at"`
	TotalMembers int       `json:"total_members"`
}

// Overview handles GET /api/v1/retention/overview
// returns the full derived view over the current member snapshot.
//
// @Summary Retention overview
// @Description Lifecycle status counts and prioritized outreach buckets
// @Tags retention
// @Produce json
// @Success 200 {object} OverviewResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/retention/overview [get]
// @Security BearerAuth
func (h *RetentionHandler) Overview(c echo.Context) error {
	output, err := h.overviewUseCase.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, toOverviewResponse(output, canViewRevenue(c)))
}

// Bucket handles GET /api/v1/retention/buckets/:bucket
// returns the prioritized call list for a single renewal bucket.
//
// @Summary Bucket call list
// @Description Members in one renewal bucket, most urgent first
// @Tags retention
// @Produce json
// @Param bucket path string true "Renewal bucket name"
// @Success 200 {object} BucketResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/retention/buckets/{bucket} [get]
// @Security BearerAuth
func (h *RetentionHandler) Bucket(c echo.Context) error {
	bucketName := c.Param("bucket")
	if bucketName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bucket name is required")
	}

	view, err := h.overviewUseCase.ExecuteBucket(c.Request().Context(), bucketName)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, toBucketResponse(*view, canViewRevenue(c)))
}

// Recalculate handles POST /api/v1/retention/recalculate
// forces a classification pass outside the background schedule. requires
// authentication.
//
// @Summary Force a classification pass
// @Description Recomputes the retention view and refreshes cached rankings
// @Tags retention
// @Produce json
// @Success 200 {object} RecalculateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/retention/recalculate [post]
// @Security BearerAuth
func (h *RetentionHandler) Recalculate(c echo.Context) error {
	if GetStaffClaims(c) == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	output, err := h.overviewUseCase.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, RecalculateResponse{
		GeneratedAt:  output.GeneratedAt,
		TotalMembers: output.TotalMembers,
	})
}

// canViewRevenue reports whether the caller may see revenue figures.
// anonymous callers on optional-auth routes don't get them.
func canViewRevenue(c echo.Context) bool {
	claims := GetStaffClaims(c)
	return claims != nil && claims.CanViewRevenue()
}

func toOverviewResponse(output *application.RetentionOverviewOutput, withRevenue bool) OverviewResponse {
	statusCounts := make(map[string]int, len(output.StatusCounts))
	for status, count := range output.StatusCounts {
		statusCounts[status.String()] = count
	}

	buckets := make([]BucketResponse, 0, len(output.Buckets))
	for _, b := range output.Buckets {
		buckets = append(buckets, toBucketResponse(b, withRevenue))
	}

	return OverviewResponse{
		GeneratedAt:         output.GeneratedAt,
		TotalMembers:        output.TotalMembers,
		StatusCounts:        statusCounts,
		UnknownDueDateCount: output.UnknownDueDateCount,
		Buckets:             buckets,
	}
}

func toBucketResponse(b domain.PriorityBucket, withRevenue bool) BucketResponse {
	members := make([]MemberSummary, 0, len(b.Members))
	for _, m := range b.Members {
		summary := MemberSummary{
			ID:            m.Record.ID().String(),
			Name:          m.Record.Name(),
			Phone:         m.Record.Phone(),
			Status:        m.LifecycleStatus.String(),
			DaysAbsent:    m.DaysAbsent.Days(),
			RenewalBucket: m.RenewalBucket.String(),
			DueDate:       m.Record.DueDate().String(),
			PlanType:      m.Record.PlanType(),
		}
		if withRevenue && m.Record.Fee().Known() {
			summary.Fee = m.Record.Fee().Value()
		}
		members = append(members, summary)
	}

	resp := BucketResponse{
		Bucket:      b.Bucket.String(),
		MemberCount: len(b.Members),
		Members:     members,
	}
	if withRevenue {
		resp.RevenueAtRisk = b.RevenueAtRisk
	}
	return resp
}
