// Package directory abstracts the identity provider that validates
// credentials and returns group memberships.
package directory

import (
	"context"

	"github.com/skolar/timetable-api/internal/models"
)

// Result carries the authenticated profile and its lowercase group names.
type Result struct {
	User   models.DirectoryUser
	Groups []string
}

// Authenticator validates a username/password pair against a directory.
// A failed bind and an unreachable directory are both surfaced as errors;
// callers translate them into authentication failures without retrying.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Result, error)
}
