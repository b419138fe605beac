package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

// JSON sends a resource body directly, matching the legacy wire contract where
// reads return the entity or array without an envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Success acknowledges a mutation with {"success": true}.
func Success(c *gin.Context, status int) {
	JSON(c, status, gin.H{"success": true})
}

// Created acknowledges a creation with the new resource id.
func Created(c *gin.Context, id string) {
	JSON(c, http.StatusCreated, gin.H{"success": true, "id": id})
}

// Error sends an error response as {"error": message} with the mapped status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
