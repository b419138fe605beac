package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

type substitutionRepository interface {
	List(ctx context.Context, filter models.SubstitutionFilter) ([]models.SubstitutionDetail, error)
	ListByClass(ctx context.Context, classID, date string) ([]models.SubstitutionDetail, error)
	ListByTeacher(ctx context.Context, teacherID, startDate, endDate string) ([]models.SubstitutionDetail, error)
	FindByID(ctx context.Context, id string) (*models.Substitution, error)
	Create(ctx context.Context, sub *models.Substitution) error
	Update(ctx context.Context, sub *models.Substitution) error
	Delete(ctx context.Context, id string) error
}

// SubstitutionRequest is the payload for creating or updating a substitution.
// A nil substituteTeacherId with cancelled set records a dropped lesson.
type SubstitutionRequest struct {
	Date                string  `json:"date" validate:"required,datetime=2006-01-02"`
	PeriodID            string  `json:"periodId" validate:"required"`
	ClassID             string  `json:"classId" validate:"required"`
	OriginalTeacherID   *string `json:"originalTeacherId"`
	SubstituteTeacherID *string `json:"substituteTeacherId"`
	SubjectID           *string `json:"subjectId"`
	RoomID              *string `json:"roomId"`
	Reason              string  `json:"reason"`
	Note                string  `json:"note"`
	Cancelled           bool    `json:"cancelled"`
}

// SubstitutionService coordinates date-scoped timetable overrides. They layer
// on top of the weekly grid and are exempt from slot conflict checks.
type SubstitutionService struct {
	repo      substitutionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubstitutionService instantiates SubstitutionService.
func NewSubstitutionService(repo substitutionRepository, validate *validator.Validate, logger *zap.Logger) *SubstitutionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutionService{repo: repo, validator: validate, logger: logger}
}

// List returns substitutions narrowed by the filter.
func (s *SubstitutionService) List(ctx context.Context, filter models.SubstitutionFilter) ([]models.SubstitutionDetail, error) {
	subs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list substitutions")
	}
	return subs, nil
}

// ListByClass returns the substitutions of one class on one date.
func (s *SubstitutionService) ListByClass(ctx context.Context, classID, date string) ([]models.SubstitutionDetail, error) {
	subs, err := s.repo.ListByClass(ctx, classID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class substitutions")
	}
	return subs, nil
}

// ListByTeacher returns substitutions involving a teacher on either side of
// the swap, optionally narrowed to a date range.
func (s *SubstitutionService) ListByTeacher(ctx context.Context, teacherID, startDate, endDate string) ([]models.SubstitutionDetail, error) {
	subs, err := s.repo.ListByTeacher(ctx, teacherID, startDate, endDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher substitutions")
	}
	return subs, nil
}

// Create records a new substitution. createdBy is the username of the session
// making the change.
func (s *SubstitutionService) Create(ctx context.Context, req SubstitutionRequest, createdBy string) (*models.Substitution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution payload")
	}

	sub := models.Substitution{
		Date:                req.Date,
		PeriodID:            req.PeriodID,
		ClassID:             req.ClassID,
		OriginalTeacherID:   req.OriginalTeacherID,
		SubstituteTeacherID: req.SubstituteTeacherID,
		SubjectID:           req.SubjectID,
		RoomID:              req.RoomID,
		Reason:              req.Reason,
		Note:                req.Note,
		Cancelled:           req.Cancelled,
		CreatedBy:           createdBy,
	}
	if err := s.repo.Create(ctx, &sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create substitution")
	}
	return &sub, nil
}

// Update rewrites an existing substitution.
func (s *SubstitutionService) Update(ctx context.Context, id string, req SubstitutionRequest) (*models.Substitution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "substitution not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitution")
	}

	updated := models.Substitution{
		ID:                  existing.ID,
		Date:                req.Date,
		PeriodID:            req.PeriodID,
		ClassID:             req.ClassID,
		OriginalTeacherID:   req.OriginalTeacherID,
		SubstituteTeacherID: req.SubstituteTeacherID,
		SubjectID:           req.SubjectID,
		RoomID:              req.RoomID,
		Reason:              req.Reason,
		Note:                req.Note,
		Cancelled:           req.Cancelled,
		CreatedBy:           existing.CreatedBy,
		CreatedAt:           existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update substitution")
	}
	return &updated, nil
}

// Delete removes a substitution.
func (s *SubstitutionService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "substitution not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitution")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete substitution")
	}
	return nil
}
