package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
)

// MemoryStore keeps sessions in process memory. Expired entries are evicted
// opportunistically on each Create and purged when a lookup finds them stale.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	lifetime time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewMemoryStore constructs an in-memory session store.
func NewMemoryStore(lifetime time.Duration, logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		lifetime: lifetime,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the time source; tests use this to force expiry.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Create issues a token and stores the session record.
func (s *MemoryStore) Create(ctx context.Context, username string, user models.DirectoryUser, groups []string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := models.Session{
		Token:     token,
		Username:  username,
		User:      user,
		Groups:    append([]string(nil), groups...),
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked(now)
	s.sessions[token] = sess

	copy := sess
	return &copy, nil
}

// Validate checks token and username. Expiry is not extended; an expired
// record found here is purged.
func (s *MemoryStore) Validate(ctx context.Context, token, username string) (*models.Session, error) {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.Username != username {
		s.logger.Debug("session username mismatch", zap.String("username", username))
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// Get returns the session behind a token, purging it if expired.
func (s *MemoryStore) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrInvalidSession
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		s.logger.Debug("session expired", zap.String("username", sess.Username))
		return nil, ErrInvalidSession
	}

	copy := sess
	return &copy, nil
}

// SetLinkedTeacher updates the linked teacher on the stored record.
func (s *MemoryStore) SetLinkedTeacher(ctx context.Context, token, teacherID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || sess.Expired(s.now()) {
		delete(s.sessions, token)
		return ErrInvalidSession
	}

	if teacherID == "" {
		sess.LinkedTeacherID = nil
	} else {
		sess.LinkedTeacherID = &teacherID
	}
	s.sessions[token] = sess
	return nil
}

// Revoke removes a session. Revoking an unknown token is not an error.
func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) evictExpiredLocked(now time.Time) {
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
		}
	}
}
