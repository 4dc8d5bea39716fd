package models

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepoExpiry(t *testing.T) {
	repo := NewMemorySessionRepo()
	now := time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.CreateSession(ctx, &Session{ID: "a", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.CreateSession(ctx, &Session{ID: "b", UserID: 2, CreatedAt: now, ExpiresAt: now.Add(2 * time.Hour)}))

	got, err := repo.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.UserID)

	now = now.Add(90 * time.Minute)
	_, err = repo.GetSession(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	repo.CleanupExpired()
	repo.mu.RLock()
	assert.Len(t, repo.sessions, 1)
	repo.mu.RUnlock()

	require.NoError(t, repo.DeleteSession(ctx, "b"))
	_, err = repo.GetSession(ctx, "b")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
