package directory

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/skolar/timetable-api/internal/models"
	appErrors "github.com/skolar/timetable-api/pkg/errors"
)

// StaticUser is a built-in account for development mode.
type StaticUser struct {
	PasswordHash []byte
	DisplayName  string
	Email        string
	Groups       []string
}

// StaticAuthenticator serves a fixed user set when no directory is configured.
type StaticAuthenticator struct {
	users map[string]StaticUser
}

// NewStaticAuthenticator constructs an authenticator over the given users.
func NewStaticAuthenticator(users map[string]StaticUser) *StaticAuthenticator {
	return &StaticAuthenticator{users: users}
}

// NewTestAuthenticator returns the development accounts: one per role, with
// the password equal to the username.
func NewTestAuthenticator() *StaticAuthenticator {
	users := map[string]StaticUser{
		"admin":     {DisplayName: "System Administrator", Groups: []string{"system-admin"}},
		"principal": {DisplayName: "School Principal", Groups: []string{"leadership"}},
		"teacher":   {DisplayName: "Test Teacher", Groups: []string{"teaching-staff"}},
		"clerk":     {DisplayName: "Test Clerk", Groups: []string{"office-staff"}},
		"student":   {DisplayName: "Test Student", Groups: []string{"students"}},
	}
	for name, user := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(name), bcrypt.MinCost)
		if err != nil {
			continue
		}
		user.PasswordHash = hash
		users[name] = user
	}
	return NewStaticAuthenticator(users)
}

// Authenticate checks the credentials against the static set.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (*Result, error) {
	user, ok := a.users[strings.ToLower(username)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}

	return &Result{
		User: models.DirectoryUser{
			Username:    strings.ToLower(username),
			DisplayName: user.DisplayName,
			Email:       user.Email,
		},
		Groups: append([]string(nil), user.Groups...),
	}, nil
}
