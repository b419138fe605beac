package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/service"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
	"github.com/skolar/timetable-api/pkg/response"
)

// SubstitutionHandler manages substitution endpoints.
type SubstitutionHandler struct {
	service *service.SubstitutionService
}

// NewSubstitutionHandler constructs a substitution handler.
func NewSubstitutionHandler(svc *service.SubstitutionService) *SubstitutionHandler {
	return &SubstitutionHandler{service: svc}
}

// List returns substitutions, optionally filtered by an exact date or a
// date range taken from the query string.
func (h *SubstitutionHandler) List(c *gin.Context) {
	filter := models.SubstitutionFilter{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	subs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs)
}

// ListByClass returns one class's substitutions on a given day.
func (h *SubstitutionHandler) ListByClass(c *gin.Context) {
	subs, err := h.service.ListByClass(c.Request.Context(), c.Param("classId"), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs)
}

// ListByTeacher returns substitutions where the teacher appears on either
// side, as the substitute or as the one being covered.
func (h *SubstitutionHandler) ListByTeacher(c *gin.Context) {
	subs, err := h.service.ListByTeacher(c.Request.Context(), c.Param("teacherId"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs)
}

// Create records a substitution stamped with the caller's username.
func (h *SubstitutionHandler) Create(c *gin.Context) {
	var req service.SubstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid substitution payload"))
		return
	}
	createdBy := ""
	if sess := sessionFromContext(c); sess != nil {
		createdBy = sess.Username
	}
	sub, err := h.service.Create(c.Request.Context(), req, createdBy)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub.ID)
}

// Update rewrites a substitution. The original creator stays on record.
func (h *SubstitutionHandler) Update(c *gin.Context) {
	var req service.SubstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid substitution payload"))
		return
	}
	if _, err := h.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}

// Delete removes a substitution.
func (h *SubstitutionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}
