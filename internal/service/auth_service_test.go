package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolar/timetable-api/internal/directory"
	"github.com/skolar/timetable-api/internal/models"
	"github.com/skolar/timetable-api/internal/session"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

type mockTeacherDirectory struct {
	teachers []models.Teacher
}

func (m *mockTeacherDirectory) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	for _, t := range m.teachers {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherDirectory) FindByLDAPUsername(ctx context.Context, username string) (*models.Teacher, error) {
	for _, t := range m.teachers {
		if t.LDAPUsername != nil && strings.EqualFold(*t.LDAPUsername, username) {
			t := t
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherDirectory) FindByName(ctx context.Context, name string) (*models.Teacher, error) {
	for _, t := range m.teachers {
		if strings.EqualFold(t.Name, name) {
			t := t
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubAuthenticator struct {
	result *directory.Result
	err    error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, username, password string) (*directory.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newAuthFixture(auth directory.Authenticator, teachers *mockTeacherDirectory) (*AuthService, session.Store) {
	sessions := session.NewMemoryStore(time.Hour, nil)
	return NewAuthService(auth, sessions, teachers, nil, nil), sessions
}

func TestAuthServiceLoginAdmin(t *testing.T) {
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "admin", DisplayName: "System Administrator"},
		Groups: []string{"system-admin"},
	}}
	svc, sessions := newAuthFixture(auth, &mockTeacherDirectory{})

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.True(t, login.Success)
	assert.Len(t, login.Token, 64)
	assert.True(t, login.Permissions.IsAdmin)
	assert.False(t, login.NeedsTeacherSelection)
	assert.Nil(t, login.LinkedTeacherID)

	sess, err := sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Username)
}

func TestAuthServiceLoginAutoLinksTeacher(t *testing.T) {
	ldap := "nagy.istvan"
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{
		{ID: "t1", Name: "Nagy István", LDAPUsername: &ldap},
	}}
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "nagy.istvan", DisplayName: "Nagy István"},
		Groups: []string{"teaching-staff"},
	}}
	svc, sessions := newAuthFixture(auth, teachers)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "nagy.istvan", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, login.LinkedTeacherID)
	assert.Equal(t, "t1", *login.LinkedTeacherID)
	assert.False(t, login.NeedsTeacherSelection)

	sess, err := sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)
	require.NotNil(t, sess.LinkedTeacherID)
	assert.Equal(t, "t1", *sess.LinkedTeacherID)
}

func TestAuthServiceLoginFallsBackToDisplayName(t *testing.T) {
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{
		{ID: "t2", Name: "Szabó Anna"},
	}}
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "szabo.anna", DisplayName: "Szabó Anna"},
		Groups: []string{"teaching-staff"},
	}}
	svc, _ := newAuthFixture(auth, teachers)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "szabo.anna", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, login.LinkedTeacherID)
	assert.Equal(t, "t2", *login.LinkedTeacherID)
}

func TestAuthServiceLoginNeedsTeacherSelection(t *testing.T) {
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "uj.tanar", DisplayName: "Új Tanár"},
		Groups: []string{"teaching-staff"},
	}}
	svc, _ := newAuthFixture(auth, &mockTeacherDirectory{})

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "uj.tanar", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, login.NeedsTeacherSelection)
	assert.Nil(t, login.LinkedTeacherID)
}

func TestAuthServiceLoginAdminTeacherNotLinked(t *testing.T) {
	// Leadership members who also teach are not teacher-only, so no auto link.
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "igazgato", DisplayName: "School Principal"},
		Groups: []string{"leadership", "teaching-staff"},
	}}
	svc, _ := newAuthFixture(auth, &mockTeacherDirectory{})

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "igazgato", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, login.Permissions.IsAdmin)
	assert.False(t, login.NeedsTeacherSelection)
	assert.Nil(t, login.LinkedTeacherID)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	auth := &stubAuthenticator{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "")}
	svc, _ := newAuthFixture(auth, &mockTeacherDirectory{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidate(t *testing.T) {
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "clerk", DisplayName: "Test Clerk"},
		Groups: []string{"office-staff"},
	}}
	svc, _ := newAuthFixture(auth, &mockTeacherDirectory{})

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "clerk", Password: "pw"})
	require.NoError(t, err)

	resp, err := svc.Validate(context.Background(), models.ValidateRequest{Token: login.Token, Username: "clerk"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.User)
	assert.Equal(t, "clerk", resp.User.Username)

	// Wrong username for the token fails closed without detail.
	resp, err = svc.Validate(context.Background(), models.ValidateRequest{Token: login.Token, Username: "admin"})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Nil(t, resp.User)

	resp, err = svc.Validate(context.Background(), models.ValidateRequest{Token: "deadbeef", Username: "clerk"})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

func TestAuthServiceLogoutRevokes(t *testing.T) {
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "clerk"},
		Groups: []string{"office-staff"},
	}}
	svc, sessions := newAuthFixture(auth, &mockTeacherDirectory{})

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "clerk", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), login.Token))

	_, err = sessions.Get(context.Background(), login.Token)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestAuthServiceLinkAndUnlink(t *testing.T) {
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{{ID: "t9", Name: "Papp Judit"}}}
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "papp.judit", DisplayName: "Ismeretlen Név"},
		Groups: []string{"teaching-staff"},
	}}
	svc, sessions := newAuthFixture(auth, teachers)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "papp.judit", Password: "pw"})
	require.NoError(t, err)
	require.True(t, login.NeedsTeacherSelection)

	sess, err := sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)

	require.NoError(t, svc.LinkTeacher(context.Background(), sess, LinkTeacherRequest{TeacherID: "t9"}))
	sess, err = sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)
	require.NotNil(t, sess.LinkedTeacherID)
	assert.Equal(t, "t9", *sess.LinkedTeacherID)

	err = svc.LinkTeacher(context.Background(), sess, LinkTeacherRequest{TeacherID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.UnlinkTeacher(context.Background(), sess))
	sess, err = sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Nil(t, sess.LinkedTeacherID)
}

func TestAuthServiceLinkForbiddenForNonTeachingStaff(t *testing.T) {
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{{ID: "t9", Name: "Papp Judit"}}}
	auth := &stubAuthenticator{result: &directory.Result{
		User:   models.DirectoryUser{Username: "clerk"},
		Groups: []string{"office-staff"},
	}}
	svc, sessions := newAuthFixture(auth, teachers)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "clerk", Password: "pw"})
	require.NoError(t, err)
	sess, err := sessions.Get(context.Background(), login.Token)
	require.NoError(t, err)

	err = svc.LinkTeacher(context.Background(), sess, LinkTeacherRequest{TeacherID: "t9"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestIdentityLinkerDeterminism(t *testing.T) {
	ldap := "kovacs.maria"
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{
		{ID: "t1", Name: "Kovács Mária", LDAPUsername: &ldap},
		{ID: "t2", Name: "Kovács Mária"},
	}}
	linker := NewIdentityLinker(teachers, nil)

	// The explicit username binding wins over the name match.
	for i := 0; i < 5; i++ {
		teacher, err := linker.Resolve(context.Background(), "kovacs.maria", "Kovács Mária")
		require.NoError(t, err)
		require.NotNil(t, teacher)
		assert.Equal(t, "t1", teacher.ID)
	}

	// Without a username binding the display name decides.
	teacher, err := linker.Resolve(context.Background(), "masik.nev", "Kovács Mária")
	require.NoError(t, err)
	require.NotNil(t, teacher)

	// No match at all resolves to nil without error.
	teacher, err = linker.Resolve(context.Background(), "senki", "Senki Sem")
	require.NoError(t, err)
	assert.Nil(t, teacher)
}
