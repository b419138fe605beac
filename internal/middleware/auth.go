package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/session"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
	"github.com/skolar/timetable-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the bearer session.
const ContextSessionKey = "currentSession"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Auth protects routes by requiring a valid bearer session.
func Auth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session"))
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// OptionalAuth attaches the session when a valid bearer token is present but
// never blocks. Read views stay public while rendering differently for
// authenticated teachers.
func OptionalAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session set by Auth or OptionalAuth.
func SessionFromContext(c *gin.Context) (*models.Session, bool) {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*models.Session)
	return sess, ok
}
