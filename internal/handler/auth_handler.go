package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/service"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
	"github.com/skolar/timetable-api/pkg/response"
)

// AuthHandler manages directory login and session endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login authenticates credentials against the directory and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "username and password are required"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Validate checks a token and username pair. Invalid pairs answer 200 with
// valid=false rather than an error status.
func (h *AuthHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token and username are required"))
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Logout revokes the bearer session.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	if err := h.service.Logout(c.Request.Context(), parts[1]); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}

// Session returns the current session snapshot with derived capabilities.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.Snapshot(sess))
}

// Link binds the session to a chosen teacher record.
func (h *AuthHandler) Link(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}

	var req service.LinkTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacherId is required"))
		return
	}
	if err := h.service.LinkTeacher(c.Request.Context(), sess, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}

// Unlink clears the session's teacher binding.
func (h *AuthHandler) Unlink(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return
	}
	if err := h.service.UnlinkTeacher(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}
