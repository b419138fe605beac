package models

import "time"

// Session is the server-side record behind an opaque bearer token. The store
// is authoritative; clients only hold a convenience copy.
type Session struct {
	Token           string        `json:"token"`
	Username        string        `json:"username"`
	User            DirectoryUser `json:"user"`
	Groups          []string      `json:"groups"`
	LinkedTeacherID *string       `json:"linkedTeacherId,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	ExpiresAt       time.Time     `json:"expires_at"`
}

// Expired reports whether the session expired at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
