// Package session owns the server-side records behind opaque bearer tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/skolar/timetable-api/internal/models"
)

// ErrInvalidSession is the single failure returned for an absent, expired or
// mismatched session. Callers cannot distinguish which check failed; the
// detail is only logged.
var ErrInvalidSession = errors.New("session invalid or expired")

// Store manages session lifecycle. Implementations fail closed: any lookup
// problem surfaces as ErrInvalidSession.
type Store interface {
	// Create issues a new token for the authenticated user.
	Create(ctx context.Context, username string, user models.DirectoryUser, groups []string) (*models.Session, error)
	// Validate checks a token and username pair without extending expiry.
	Validate(ctx context.Context, token, username string) (*models.Session, error)
	// Get returns the session behind a bearer token.
	Get(ctx context.Context, token string) (*models.Session, error)
	// SetLinkedTeacher updates the linked teacher record; an empty teacherID
	// clears the link. Idempotent.
	SetLinkedTeacher(ctx context.Context, token, teacherID string) error
	// Revoke removes the session; used on logout.
	Revoke(ctx context.Context, token string) error
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
