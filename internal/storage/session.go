package storage

import (
	"sync"
	"time"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

// SessionStore provides in-memory storage for active review sessions by
// session ID. Sessions are ephemeral: they live here for the duration of a
// study flow and are dropped on finish, abandon or idle eviction.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	session   *entities.ReviewSession
	touchedAt time.Time
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Store saves a session under its ID.
func (s *SessionStore) Store(session *entities.ReviewSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = &entry{session: session, touchedAt: s.now()}
}

// Get retrieves a session by ID, or nil if it is not held. A hit refreshes
// the session's idle clock.
func (s *SessionStore) Get(id string) *entities.ReviewSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	e.touchedAt = s.now()
	return e.session
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Sweep evicts sessions that have been idle longer than maxIdle and
// returns how many were dropped.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	evicted := 0
	for id, e := range s.entries {
		if e.touchedAt.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}
