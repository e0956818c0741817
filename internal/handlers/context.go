package handlers

import (
	"github.com/coachpulse/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// coachFromContext reads the coach identity placed in the gin context by the
// auth middleware.
func coachFromContext(c *gin.Context) (models.CoachContext, bool) {
	value, exists := c.Get("coach_id")
	if !exists {
		return models.CoachContext{}, false
	}
	coachID, ok := value.(string)
	if !ok || coachID == "" {
		return models.CoachContext{}, false
	}

	isAdmin := false
	if value, exists := c.Get("is_admin"); exists {
		if admin, ok := value.(bool); ok {
			isAdmin = admin
		}
	}

	return models.CoachContext{CoachID: coachID, IsAdmin: isAdmin}, true
}
