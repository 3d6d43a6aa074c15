package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/taskmgr_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks authenticated API calls with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by the auth middleware; anonymous calls are tracked by the handlers themselves.
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/users/me" -> "api_v1_users_me"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event for distinctID. Handlers use it for flows where
// the user is only known after the call succeeds, such as login.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, distinctID, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() || distinctID == "" {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.FullPath()
	posthogClient.Enqueue(distinctID, eventName, properties)
}
