package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_CreateAndGet(t *testing.T) {
	s := NewSessions(time.Hour)

	token, err := s.Create(Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	a, ok := s.Get(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", a.Username)

	_, ok = s.Get("no-such-token")
	assert.False(t, ok)
}

func TestSessions_Expiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewSessions(24 * time.Hour)
	s.now = func() time.Time { return current }

	token, err := s.Create(Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)

	// Still valid just inside the window.
	current = current.Add(24*time.Hour - time.Minute)
	_, ok := s.Get(token)
	assert.True(t, ok)

	// Gone just past it, and stays gone.
	current = current.Add(2 * time.Minute)
	_, ok = s.Get(token)
	assert.False(t, ok)

	current = current.Add(-time.Hour)
	_, ok = s.Get(token)
	assert.False(t, ok, "an expired token is deleted, not merely hidden")
}

func TestSessions_CreatePrunesExpired(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := NewSessions(time.Hour)
	s.now = func() time.Time { return current }

	stale, err := s.Create(Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = s.Create(Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)

	assert.Len(t, s.m, 1)
	_, ok := s.m[stale]
	assert.False(t, ok)
}

func TestSessions_Delete(t *testing.T) {
	s := NewSessions(time.Hour)

	token, err := s.Create(Admin{ID: 1, Username: "admin"})
	require.NoError(t, err)

	s.Delete(token)
	_, ok := s.Get(token)
	assert.False(t, ok)
}

func TestSessions_TokensAreUnique(t *testing.T) {
	s := NewSessions(time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := s.Create(Admin{ID: 1})
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
