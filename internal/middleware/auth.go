package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/apperrors"
	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a Gin middleware handler that validates access tokens.
// Validation is signature and expiry only; no database round-trip happens here.
func AuthMiddleware(tokenService portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}

		userID, err := tokenService.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}

		// Add user ID to the logger and store both in the request context
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := WithUserID(c.Request.Context(), userID)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
