package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bcv_rates/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware tracks successful mutating requests of authenticated users.
// The event name is derived from the route, e.g. "POST /api/v1/custom-rates/:id"
// becomes "post_api_v1_custom-rates_:id".
func PosthogMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if client == nil || !client.IsInitialized() || c.Request.Method == http.MethodGet {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok || c.FullPath() == "" {
			return
		}

		event := strings.ToLower(c.Request.Method) + "_" +
			strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")

		props := map[string]any{
			"status_code": c.Writer.Status(),
		}
		for _, p := range c.Params {
			props[p.Key] = p.Value
		}
		client.Enqueue(userID, event, props)
	}
}

// PosthogEvent sends a named event for the authenticated user, if any.
func PosthogEvent(c *gin.Context, client *utils.PosthogClientWrapper, event string, properties map[string]any) {
	if client == nil || !client.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["path"] = c.Request.URL.Path
	client.Enqueue(userID, event, properties)
}
