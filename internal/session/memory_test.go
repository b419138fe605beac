package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolar/timetable-api/internal/models"
)

func newTestStore(lifetime time.Duration) (*MemoryStore, *time.Time) {
	current := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	store := NewMemoryStore(lifetime, nil).WithClock(func() time.Time { return current })
	return store, &current
}

func TestMemoryStoreCreateAndValidate(t *testing.T) {
	store, _ := newTestStore(time.Hour)

	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe", DisplayName: "Jane Doe"}, []string{"teaching-staff"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	assert.Len(t, sess.Token, 64)

	got, err := store.Validate(context.Background(), sess.Token, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.User.DisplayName)
	assert.Equal(t, []string{"teaching-staff"}, got.Groups)
}

func TestMemoryStoreValidateFailsClosed(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe"}, nil)
	require.NoError(t, err)

	_, err = store.Validate(context.Background(), "unknown-token", "jdoe")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = store.Validate(context.Background(), sess.Token, "someone-else")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestMemoryStoreExpiryPurges(t *testing.T) {
	store, clock := newTestStore(180 * 24 * time.Hour)
	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe"}, nil)
	require.NoError(t, err)

	// One day past the 180-day lifetime.
	*clock = clock.Add(181 * 24 * time.Hour)

	_, err = store.Validate(context.Background(), sess.Token, "jdoe")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// The expired record is gone, not just rejected.
	store.mu.Lock()
	_, present := store.sessions[sess.Token]
	store.mu.Unlock()
	assert.False(t, present)
}

func TestMemoryStoreNoSlidingExpiration(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe"}, nil)
	require.NoError(t, err)

	*clock = clock.Add(59 * time.Minute)
	validated, err := store.Validate(context.Background(), sess.Token, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, sess.ExpiresAt, validated.ExpiresAt)

	*clock = clock.Add(2 * time.Minute)
	_, err = store.Validate(context.Background(), sess.Token, "jdoe")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestMemoryStoreCreateEvictsExpired(t *testing.T) {
	store, clock := newTestStore(time.Hour)
	stale, err := store.Create(context.Background(), "old", models.DirectoryUser{Username: "old"}, nil)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)
	_, err = store.Create(context.Background(), "new", models.DirectoryUser{Username: "new"}, nil)
	require.NoError(t, err)

	store.mu.Lock()
	_, present := store.sessions[stale.Token]
	count := len(store.sessions)
	store.mu.Unlock()
	assert.False(t, present)
	assert.Equal(t, 1, count)
}

func TestMemoryStoreSetLinkedTeacher(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.SetLinkedTeacher(context.Background(), sess.Token, "t1"))
	// Idempotent.
	require.NoError(t, store.SetLinkedTeacher(context.Background(), sess.Token, "t1"))

	got, err := store.Get(context.Background(), sess.Token)
	require.NoError(t, err)
	require.NotNil(t, got.LinkedTeacherID)
	assert.Equal(t, "t1", *got.LinkedTeacherID)

	// Empty id clears the link.
	require.NoError(t, store.SetLinkedTeacher(context.Background(), sess.Token, ""))
	got, err = store.Get(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got.LinkedTeacherID)
}

func TestMemoryStoreRevoke(t *testing.T) {
	store, _ := newTestStore(time.Hour)
	sess, err := store.Create(context.Background(), "jdoe", models.DirectoryUser{Username: "jdoe"}, nil)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(context.Background(), sess.Token))
	_, err = store.Get(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// Revoking again is a no-op.
	require.NoError(t, store.Revoke(context.Background(), sess.Token))
}
