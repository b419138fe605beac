package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/skolar/timetable-api/internal/models"
)

const keyPrefix = "session:"

// RedisStore persists sessions in Redis. The key TTL doubles as the expiry
// backstop, so no explicit cleanup pass is needed.
type RedisStore struct {
	client   *redis.Client
	lifetime time.Duration
	logger   *zap.Logger
}

// NewRedisStore constructs a Redis-backed session store.
func NewRedisStore(client *redis.Client, lifetime time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, lifetime: lifetime, logger: logger}
}

// Create issues a token and stores the session under it with a TTL.
func (s *RedisStore) Create(ctx context.Context, username string, user models.DirectoryUser, groups []string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := models.Session{
		Token:     token,
		Username:  username,
		User:      user,
		Groups:    append([]string(nil), groups...),
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime),
	}

	if err := s.write(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Validate checks token and username without extending the TTL.
func (s *RedisStore) Validate(ctx context.Context, token, username string) (*models.Session, error) {
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

// Get returns the session behind a token.
func (s *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("session lookup failed", zap.Error(err))
		}
		return nil, ErrInvalidSession
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("corrupt session record", zap.Error(err))
		return nil, ErrInvalidSession
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.client.Del(ctx, keyPrefix+token).Err()
		return nil, ErrInvalidSession
	}
	return &sess, nil
}

// SetLinkedTeacher rewrites the record preserving the remaining TTL.
func (s *RedisStore) SetLinkedTeacher(ctx context.Context, token, teacherID string) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	if teacherID == "" {
		sess.LinkedTeacherID = nil
	} else {
		sess.LinkedTeacherID = &teacherID
	}
	return s.write(ctx, sess)
}

// Revoke removes the session.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, sess *models.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrInvalidSession
	}
	if err := s.client.Set(ctx, keyPrefix+sess.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
