package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/repository"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

type timetableRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.TimetableEntryDetail, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TimetableEntryDetail, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.TimetableEntryDetail, error)
	FindByID(ctx context.Context, id string) (*models.TimetableEntry, error)
	FindSlot(ctx context.Context, dayOfWeek int, periodID, excludeID string) ([]models.TimetableEntry, error)
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Update(ctx context.Context, entry *models.TimetableEntry) error
	Delete(ctx context.Context, id string) error
}

// TimetableEntryRequest is the payload for creating or updating a weekly
// lesson. DayOfWeek runs 1 (Monday) through 5 (Friday).
type TimetableEntryRequest struct {
	DayOfWeek int     `json:"dayOfWeek" validate:"required,min=1,max=5"`
	PeriodID  string  `json:"periodId" validate:"required"`
	ClassID   string  `json:"classId" validate:"required"`
	SubjectID string  `json:"subjectId" validate:"required"`
	TeacherID string  `json:"teacherId" validate:"required"`
	RoomID    string  `json:"roomId" validate:"required"`
	Note      *string `json:"note"`
}

// TimetableService coordinates the weekly timetable and its slot rules: a
// class, a teacher and a room can each hold at most one lesson per slot.
type TimetableService struct {
	repo      timetableRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService instantiates TimetableService.
func NewTimetableService(repo timetableRepository, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, validator: validate, logger: logger}
}

// ListByClass returns the resolved weekly schedule of a class.
func (s *TimetableService) ListByClass(ctx context.Context, classID string) ([]models.TimetableEntryDetail, error) {
	entries, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class timetable")
	}
	return entries, nil
}

// ListByTeacher returns the resolved weekly schedule of a teacher.
func (s *TimetableService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TimetableEntryDetail, error) {
	entries, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher timetable")
	}
	return entries, nil
}

// ListByRoom returns the resolved weekly schedule of a room.
func (s *TimetableService) ListByRoom(ctx context.Context, roomID string) ([]models.TimetableEntryDetail, error) {
	entries, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room timetable")
	}
	return entries, nil
}

// FindByID loads one timetable entry.
func (s *TimetableService) FindByID(ctx context.Context, id string) (*models.TimetableEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	return entry, nil
}

// Create inserts a new lesson after the slot check.
func (s *TimetableService) Create(ctx context.Context, req TimetableEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	entry := models.TimetableEntry{
		DayOfWeek: req.DayOfWeek,
		PeriodID:  req.PeriodID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		RoomID:    req.RoomID,
		Note:      req.Note,
	}

	if err := s.ensureNoConflict(ctx, entry, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, s.storeError(err, "failed to create timetable entry")
	}
	return &entry, nil
}

// Update moves or rewrites an existing lesson. The entry under edit never
// counts as its own conflict, so saving it unchanged succeeds.
func (s *TimetableService) Update(ctx context.Context, id string, req TimetableEntryRequest) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}

	updated := models.TimetableEntry{
		ID:        existing.ID,
		DayOfWeek: req.DayOfWeek,
		PeriodID:  req.PeriodID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		RoomID:    req.RoomID,
		Note:      req.Note,
		CreatedAt: existing.CreatedAt,
	}

	if err := s.ensureNoConflict(ctx, updated, existing.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, s.storeError(err, "failed to update timetable entry")
	}
	return &updated, nil
}

// Delete removes a lesson.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entry")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable entry")
	}
	return nil
}

// ensureNoConflict rejects a candidate colliding with an occupied slot on the
// class, teacher or room axis, checked in that order. Only one entry per axis
// can occupy a day/period pair.
func (s *TimetableService) ensureNoConflict(ctx context.Context, entry models.TimetableEntry, ignoreID string) error {
	existing, err := s.repo.FindSlot(ctx, entry.DayOfWeek, entry.PeriodID, ignoreID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check timetable slot")
	}

	for _, item := range existing {
		if item.ID == ignoreID {
			continue
		}
		if item.ClassID == entry.ClassID {
			return s.wrapConflict("class", "class already scheduled for this slot", item)
		}
	}
	for _, item := range existing {
		if item.TeacherID == entry.TeacherID {
			return s.wrapConflict("teacher", "teacher already scheduled for this slot", item)
		}
	}
	for _, item := range existing {
		if item.RoomID == entry.RoomID {
			return s.wrapConflict("room", "room already booked for this slot", item)
		}
	}
	return nil
}

func (s *TimetableService) wrapConflict(dimension, message string, existing models.TimetableEntry) error {
	domainErr := &models.SlotConflictError{
		Dimension: dimension,
		Message:   message,
		Conflict: models.SlotConflict{
			EntryID:   existing.ID,
			DayOfWeek: existing.DayOfWeek,
			PeriodID:  existing.PeriodID,
			ClassID:   existing.ClassID,
			TeacherID: existing.TeacherID,
			RoomID:    existing.RoomID,
			Dimension: dimension,
		},
	}
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, message)
}

// storeError maps a write failure. A racing writer can slip between the slot
// check and the insert; the store's own guard then reports the collision.
func (s *TimetableService) storeError(err error, message string) error {
	var conflict *models.SlotConflictError
	if errors.As(err, &conflict) {
		return appErrors.Wrap(conflict, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflictMessage(conflict.Dimension))
	}
	if repository.IsUniqueViolation(err) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "slot already taken")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func conflictMessage(dimension string) string {
	switch dimension {
	case "class":
		return "class already scheduled for this slot"
	case "teacher":
		return "teacher already scheduled for this slot"
	case "room":
		return "room already booked for this slot"
	}
	return "slot already taken"
}
