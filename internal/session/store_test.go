package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/every-minesweeper/internal/mines"
	"github.com/vancomm/every-minesweeper/internal/seed"
)

func newGame(t *testing.T) *mines.Game {
	t.Helper()
	g, err := mines.NewGame(3, seed.Seed{0, 7, 0})
	require.NoError(t, err)
	return g
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore()
	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore()
	seedID := int64(7)

	a := s.Create("alice", newGame(t), nil)
	b := s.Create("bob", newGame(t), &seedID)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := s.Get(b.ID)
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Equal(t, "bob", got.OwnerID)
	require.NotNil(t, got.SeedID)
	assert.Equal(t, seedID, *got.SeedID)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	a := s.Create("alice", newGame(t), nil)
	s.Create("alice", newGame(t), nil)

	s.Delete(a.ID)
	s.Delete(12345)

	_, err := s.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Count())
}

func TestStorePrune(t *testing.T) {
	s := NewStore()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	stale := s.Create("x", newGame(t), nil)
	fresh := s.Create("x", newGame(t), nil)

	clock = clock.Add(time.Hour)
	_, err := s.Get(fresh.ID)
	require.NoError(t, err)

	removed := s.Prune(clock.Add(-time.Minute))
	assert.Equal(t, 1, removed)

	_, err = s.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionTouchKeepsHeldSessionAlive(t *testing.T) {
	s := NewStore()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	held := s.Create("x", newGame(t), nil)

	clock = clock.Add(time.Hour)
	held.Touch()
	assert.Equal(t, clock, held.LastActive())

	assert.Zero(t, s.Prune(clock.Add(-time.Minute)))
	_, err := s.Get(held.ID)
	assert.NoError(t, err)
}
