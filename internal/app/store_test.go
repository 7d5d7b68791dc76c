package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockhaven/townsquare/internal/domain"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	_, ok := store.Get("g1")
	assert.False(t, ok)

	s1 := domain.NewGameSession("h", "main", []domain.MemberID{"a"})
	store.Set("g1", s1)

	got, ok := store.Get("g1")
	require.True(t, ok)
	assert.Same(t, s1, got)

	// A new game silently replaces the running one.
	s2 := domain.NewGameSession("h2", "main", nil)
	store.Set("g1", s2)
	got, _ = store.Get("g1")
	assert.Same(t, s2, got)

	store.Clear("g1")
	_, ok = store.Get("g1")
	assert.False(t, ok)

	// Clearing an absent guild is harmless.
	store.Clear("g1")
}

func TestSessionStoreSnapshot(t *testing.T) {
	store := NewSessionStore()
	s := domain.NewGameSession("h", "main", []domain.MemberID{"a", "b"})
	require.NoError(t, s.MarkSpectator("b"))
	store.Set("g1", s)

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "g1", snap[0].GuildID)
	assert.Equal(t, s.ID, snap[0].SessionID)
	assert.Equal(t, 1, snap[0].Players)
	assert.Equal(t, 1, snap[0].Spectators)
}
