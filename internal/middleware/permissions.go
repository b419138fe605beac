package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/permission"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
	"github.com/skolar/timetable-api/pkg/response"
)

// RequireAdmin blocks everyone without the admin capability. Capabilities are
// re-derived from the stored session groups on every request.
func RequireAdmin() gin.HandlerFunc {
	return requireCapability(func(caps permission.Capabilities) bool { return caps.IsAdmin })
}

// RequireEditor blocks everyone without the general edit capability.
func RequireEditor() gin.HandlerFunc {
	return requireCapability(func(caps permission.Capabilities) bool { return caps.CanEditGeneral })
}

func requireCapability(allowed func(permission.Capabilities) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
			return
		}
		if !allowed(permission.Evaluate(sess.Groups)) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}
