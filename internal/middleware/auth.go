package middleware

import (
	"net/http"

	"complaint-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const callerIDKey = "caller_id"

// RequireAuth verifies the bearer credential and stores the caller identity
// in the request context. Requests without a valid token are rejected with
// 401 before any handler runs.
func RequireAuth(verifier *service.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.VerifyAuthHeader(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authentication required",
			})
			return
		}

		c.Set(callerIDKey, claims.UserID)
		c.Next()
	}
}

// CallerID returns the authenticated caller set by RequireAuth.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
