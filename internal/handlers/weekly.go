package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/coachpulse/backend/internal/apierror"
	"github.com/coachpulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type WeeklyHandler struct {
	weeklyService service.WeeklyService
}

// NewWeeklyHandler creates a new weekly summaries handler
func NewWeeklyHandler(weeklyService service.WeeklyService) *WeeklyHandler {
	return &WeeklyHandler{weeklyService: weeklyService}
}

// GetWeeklySummaries handles GET /api/v1/coach/weekly-summaries
// Query parameters: week_start (optional, YYYY-MM-DD) and cohort_id
// (optional, restricts the roster to one visible cohort).
func (h *WeeklyHandler) GetWeeklySummaries(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	coach, ok := coachFromContext(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var weekStart *time.Time
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"week_start must be a date in YYYY-MM-DD format",
				"Invalid week_start date"))
			return
		}
		weekStart = &parsed
	}

	cohortID := c.Query("cohort_id")

	review, err := h.weeklyService.GetWeeklySummaries(c.Request.Context(), coach, weekStart, cohortID)
	if err != nil {
		if errors.Is(err, service.ErrCohortNotVisible) {
			apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, review)
}
