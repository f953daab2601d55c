package middleware

import (
	"strings"

	"hera_backend/internal/auth"
	"hera_backend/internal/logger"
	"hera_backend/pkg/apperrors"
	"hera_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a reviewer token and stores its claims in the
// gin context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing or invalid token"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "token rejected", "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.VerifiedForKey, claims.VerifiedFor)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetVerifiedFor returns the ticker the caller is verified for, or "".
func GetVerifiedFor(c *gin.Context) string {
	return c.GetString(contextkeys.VerifiedForKey)
}
