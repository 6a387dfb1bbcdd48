package session

import (
	"errors"
	"sync"
	"time"

	"github.com/vancomm/every-minesweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        int64
	OwnerID   string
	SeedID    *int64 /* catalog entry the game was started from, if any */
	Game      *mines.Game
	StartedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	now        func() time.Time
}

// Touch marks the session as active. Callers holding a session outside of
// [Store.Get], such as a websocket loop, call it on every action.
func (s *Session) Touch() {
	now := s.now().UTC()
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Store keeps running games in memory. Sessions do not survive a restart.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

func (s *Store) Create(ownerID string, game *mines.Game, seedID *int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.now().UTC()
	session := &Session{
		ID:         s.nextID,
		OwnerID:    ownerID,
		SeedID:     seedID,
		Game:       game,
		StartedAt:  now,
		lastActive: now,
		now:        s.now,
	}
	s.sessions[session.ID] = session
	return session
}

// Get returns the session with the given id and marks it as active.
func (s *Store) Get(id int64) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	session.Touch()
	return session, nil
}

// Deletes a session without checking if it existed.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune drops sessions idle since before cutoff and reports how many were
// removed.
func (s *Store) Prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, session := range s.sessions {
		if session.LastActive().Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
