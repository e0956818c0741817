package handlers

import (
	"net/http"

	"github.com/coachpulse/backend/internal/apierror"
	"github.com/coachpulse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Seconds a client should wait before retrying after an upstream read failed.
const upstreamRetryAfterSeconds = 5

type AttentionHandler struct {
	attentionService service.AttentionService
}

// NewAttentionHandler creates a new attention handler
func NewAttentionHandler(attentionService service.AttentionService) *AttentionHandler {
	return &AttentionHandler{attentionService: attentionService}
}

// GetMemberAttention handles GET /api/v1/members/:id/attention
func (h *AttentionHandler) GetMemberAttention(c *gin.Context) {
	requestID := apierror.GetRequestID(c)

	if _, ok := coachFromContext(c); !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	memberID := c.Param("id")
	if err := service.ValidateMemberID(memberID); err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", memberID))
		return
	}

	score, err := h.attentionService.CalculateAttentionScore(c.Request.Context(), memberID)
	if err != nil {
		// Single-member lookups fail loudly when a collaborator is down.
		apierror.WriteProblem(c, apierror.NewUpstreamDataError(requestID, upstreamRetryAfterSeconds))
		return
	}
	if score == nil {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "member", memberID))
		return
	}

	c.JSON(http.StatusOK, score)
}
