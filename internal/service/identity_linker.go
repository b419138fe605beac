package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
)

type teacherDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByLDAPUsername(ctx context.Context, username string) (*models.Teacher, error)
	FindByName(ctx context.Context, name string) (*models.Teacher, error)
}

// IdentityLinker maps a directory account onto a teacher roster record. The
// directory and the roster are maintained independently, so the match is best
// effort: an explicit ldap_username binding wins, then an exact display name
// match. Both lookups ignore case, and the same inputs always resolve to the
// same record.
type IdentityLinker struct {
	teachers teacherDirectory
	logger   *zap.Logger
}

// NewIdentityLinker instantiates IdentityLinker.
func NewIdentityLinker(teachers teacherDirectory, logger *zap.Logger) *IdentityLinker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityLinker{teachers: teachers, logger: logger}
}

// Resolve finds the roster record for a directory user. A nil teacher with a
// nil error means no match; the caller then asks the user to pick manually.
func (l *IdentityLinker) Resolve(ctx context.Context, username, displayName string) (*models.Teacher, error) {
	teacher, err := l.teachers.FindByLDAPUsername(ctx, username)
	if err == nil {
		return teacher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if displayName == "" {
		return nil, nil
	}
	teacher, err = l.teachers.FindByName(ctx, displayName)
	if err == nil {
		l.logger.Info("linked teacher by display name",
			zap.String("username", username),
			zap.String("teacher_id", teacher.ID))
		return teacher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return nil, nil
}
