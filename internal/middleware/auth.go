package middleware

import (
	"strings"

	"github.com/coachpulse/backend/internal/apierror"
	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
)

// Auth verifies the bearer token and places the coach identity in the gin
// context (coach_id, coach_email, is_admin). Every engine endpoint sits
// behind it; authorization against specific cohorts happens in the services.
func Auth(client *supabase.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Debug("authentication failed: invalid authorization format")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		token := parts[1]

		user, err := client.VerifyToken(token)
		if err != nil {
			log.Warn("authentication failed: token verification error",
				logger.Err(err),
			)
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		c.Set("coach_id", user.ID)
		c.Set("coach_email", user.Email)
		c.Set("is_admin", user.IsAdmin())

		// Add coach ID to request context for logging
		ctx := logger.WithCoachID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		log.Debug("authentication successful",
			logger.String("coach_id", user.ID),
			logger.Bool("is_admin", user.IsAdmin()),
		)

		c.Next()
	}
}
