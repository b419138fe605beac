package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/middleware"
	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/permission"
)

func sessionFromContext(c *gin.Context) *models.Session {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil
	}
	return sess
}

func capabilitiesFromContext(c *gin.Context) (permission.Capabilities, *models.Session) {
	sess := sessionFromContext(c)
	if sess == nil {
		return permission.Capabilities{}, nil
	}
	return permission.Evaluate(sess.Groups), sess
}
