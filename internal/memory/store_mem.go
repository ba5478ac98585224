package memory

import (
	"sync"
	"time"
)

// sessionData holds the turns and activity marker for a single session.
type sessionData struct {
	turns      []Turn
	lastActive time.Time
}

// InMemoryStore is a thread-safe, in-memory implementation of Store.
// When maxTurns > 0, appending beyond the cap evicts the oldest turns.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionData
	maxTurns int

	// now is injectable for deterministic testing.
	now func() time.Time
}

// NewInMemoryStore creates an empty store. maxTurns caps the number of
// turns kept per session; zero means unbounded.
func NewInMemoryStore(maxTurns int) *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*sessionData),
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// Compile-time interface checks.
var (
	_ Store  = (*InMemoryStore)(nil)
	_ Pruner = (*InMemoryStore)(nil)
)

// Append adds a turn to the session's history, evicting the oldest
// turns when the per-session cap is exceeded.
func (s *InMemoryStore) Append(sessionID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sd, ok := s.sessions[sessionID]
	if !ok {
		sd = &sessionData{}
		s.sessions[sessionID] = sd
	}
	sd.turns = append(sd.turns, turn)
	sd.lastActive = s.now()

	if s.maxTurns > 0 && len(sd.turns) > s.maxTurns {
		drop := len(sd.turns) - s.maxTurns
		sd.turns = append(sd.turns[:0:0], sd.turns[drop:]...)
	}
	return nil
}

// Recent returns up to limit most recent turns in chronological order.
func (s *InMemoryStore) Recent(sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sd, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	turns := sd.turns
	if limit < len(turns) {
		turns = turns[len(turns)-limit:]
	}
	result := make([]Turn, len(turns))
	copy(result, turns)
	return result, nil
}

// Clear removes all history for a session. Idempotent.
func (s *InMemoryStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of turns stored for a session.
func (s *InMemoryStore) Len(sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sd, ok := s.sessions[sessionID]
	if !ok {
		return 0, nil
	}
	return len(sd.turns), nil
}

// Prune removes sessions whose idle time exceeds maxIdle and returns
// the number of sessions removed. Intended to be driven by a periodic
// retention job.
func (s *InMemoryStore) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	pruned := 0
	for id, sd := range s.sessions {
		if now.Sub(sd.lastActive) > maxIdle {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}
