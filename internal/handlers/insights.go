package handlers

import (
	"net/http"

	"github.com/coachpulse/backend/internal/apierror"
	"github.com/coachpulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// GetCoachInsights handles GET /api/v1/coach/insights
func (h *InsightsHandler) GetCoachInsights(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	coach, ok := coachFromContext(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	insight, err := h.insightsService.GetCoachInsights(c.Request.Context(), coach)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, insight)
}
