package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/service"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
	"github.com/skolar/timetable-api/pkg/response"
)

// TimetableHandler manages the weekly timetable endpoints. Reads are open;
// writes go through the per-lesson permission check, so a teacher who is
// only teaching staff can touch their own lessons and nothing else.
type TimetableHandler struct {
	service *service.TimetableService
	metrics *service.MetricsService
}

// NewTimetableHandler constructs a timetable handler.
func NewTimetableHandler(svc *service.TimetableService, metrics *service.MetricsService) *TimetableHandler {
	return &TimetableHandler{service: svc, metrics: metrics}
}

// ListByClass returns the weekly schedule of one class.
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	entries, err := h.service.ListByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// ListByTeacher returns the weekly schedule of one teacher.
func (h *TimetableHandler) ListByTeacher(c *gin.Context) {
	entries, err := h.service.ListByTeacher(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// ListByRoom returns the weekly occupancy of one room.
func (h *TimetableHandler) ListByRoom(c *gin.Context) {
	entries, err := h.service.ListByRoom(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Create adds a timetable entry after the slot conflict check.
func (h *TimetableHandler) Create(c *gin.Context) {
	var req service.TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid timetable payload"))
		return
	}
	if !h.canEditLesson(c, req.TeacherID) {
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.recordConflict(err)
		response.Error(c, err)
		return
	}
	response.Created(c, entry.ID)
}

// Update rewrites a timetable entry. The caller must be allowed to edit
// both the lesson as stored and the lesson as requested, otherwise a
// teacher could hand their slot to a colleague or grab someone else's.
func (h *TimetableHandler) Update(c *gin.Context) {
	var req service.TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid timetable payload"))
		return
	}
	id := c.Param("id")
	existing, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canEditLesson(c, existing.TeacherID) || !h.canEditLesson(c, req.TeacherID) {
		return
	}
	if _, err := h.service.Update(c.Request.Context(), id, req); err != nil {
		h.recordConflict(err)
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}

// Delete removes a timetable entry.
func (h *TimetableHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	existing, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canEditLesson(c, existing.TeacherID) {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK)
}

// canEditLesson writes the error response itself when the check fails.
func (h *TimetableHandler) canEditLesson(c *gin.Context, lessonTeacherID string) bool {
	caps, sess := capabilitiesFromContext(c)
	if sess == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "authentication required"))
		return false
	}
	if !caps.CanEditLesson(lessonTeacherID, sess.LinkedTeacherID) {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient permissions"))
		return false
	}
	return true
}

func (h *TimetableHandler) recordConflict(err error) {
	if h.metrics == nil {
		return
	}
	var conflict *models.SlotConflictError
	if errors.As(err, &conflict) {
		h.metrics.RecordSlotConflict(conflict.Dimension)
	}
}
