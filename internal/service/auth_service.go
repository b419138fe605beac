package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/directory"
	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/permission"
	"github.com/skolar/timetable-api/internal/session"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

// LoginResult is returned on a successful directory login. The token is the
// opaque credential for subsequent requests.
type LoginResult struct {
	Success               bool                    `json:"success"`
	Token                 string                  `json:"token"`
	User                  models.DirectoryUser    `json:"user"`
	Groups                []string                `json:"groups"`
	Permissions           permission.Capabilities `json:"permissions"`
	LinkedTeacherID       *string                 `json:"linkedTeacherId,omitempty"`
	NeedsTeacherSelection bool                    `json:"needsTeacherSelection,omitempty"`
}

// SessionSnapshot is the current state of a bearer session.
type SessionSnapshot struct {
	User            models.DirectoryUser    `json:"user"`
	Groups          []string                `json:"groups"`
	Permissions     permission.Capabilities `json:"permissions"`
	LinkedTeacherID *string                 `json:"linkedTeacherId,omitempty"`
}

// LinkTeacherRequest selects the roster record for the current session.
type LinkTeacherRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
}

// AuthService ties the directory, the session store and the teacher roster
// together.
type AuthService struct {
	authenticator directory.Authenticator
	sessions      session.Store
	linker        *IdentityLinker
	teachers      teacherDirectory
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAuthService instantiates AuthService.
func NewAuthService(authenticator directory.Authenticator, sessions session.Store, teachers teacherDirectory, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		authenticator: authenticator,
		sessions:      sessions,
		linker:        NewIdentityLinker(teachers, logger),
		teachers:      teachers,
		validator:     validate,
		logger:        logger,
	}
}

// Login authenticates against the directory and issues a session. Teaching
// staff without admin rights get linked to their roster record when one
// matches; otherwise the result asks the client for a manual selection.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	result, err := s.authenticator.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", req.Username))
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, result.User.Username, result.User, result.Groups)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	login := &LoginResult{
		Success:     true,
		Token:       sess.Token,
		User:        sess.User,
		Groups:      sess.Groups,
		Permissions: permission.Evaluate(sess.Groups),
	}

	if login.Permissions.IsTeacherOnly {
		teacher, err := s.linker.Resolve(ctx, result.User.Username, result.User.DisplayName)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teacher record")
		}
		if teacher != nil {
			if err := s.sessions.SetLinkedTeacher(ctx, sess.Token, teacher.ID); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link teacher record")
			}
			login.LinkedTeacherID = &teacher.ID
		} else {
			login.NeedsTeacherSelection = true
		}
	}

	s.logger.Info("login succeeded",
		zap.String("username", result.User.Username),
		zap.Strings("groups", result.Groups))
	return login, nil
}

// Validate checks a token and username pair. An invalid session is not an
// error: the response simply reports valid=false.
func (s *AuthService) Validate(ctx context.Context, req models.ValidateRequest) (*models.ValidateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "token and username are required")
	}

	sess, err := s.sessions.Validate(ctx, req.Token, req.Username)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return &models.ValidateResponse{Valid: false}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate session")
	}
	return &models.ValidateResponse{Valid: true, User: &sess.User, Groups: sess.Groups}, nil
}

// Logout revokes the bearer session. Revoking an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

// Snapshot renders the current session state with derived capabilities.
func (s *AuthService) Snapshot(sess *models.Session) SessionSnapshot {
	return SessionSnapshot{
		User:            sess.User,
		Groups:          sess.Groups,
		Permissions:     permission.Evaluate(sess.Groups),
		LinkedTeacherID: sess.LinkedTeacherID,
	}
}

// LinkTeacher binds the session to a roster record picked by the user.
func (s *AuthService) LinkTeacher(ctx context.Context, sess *models.Session, req LinkTeacherRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacherId is required")
	}

	if !permission.IsTeachingStaff(sess.Groups) {
		return appErrors.Clone(appErrors.ErrForbidden, "only teaching staff can link a teacher record")
	}

	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if err := s.sessions.SetLinkedTeacher(ctx, sess.Token, req.TeacherID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link teacher record")
	}
	return nil
}

// UnlinkTeacher clears the session's roster binding.
func (s *AuthService) UnlinkTeacher(ctx context.Context, sess *models.Session) error {
	if !permission.IsTeachingStaff(sess.Groups) {
		return appErrors.Clone(appErrors.ErrForbidden, "only teaching staff can link a teacher record")
	}
	if err := s.sessions.SetLinkedTeacher(ctx, sess.Token, ""); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unlink teacher record")
	}
	return nil
}
