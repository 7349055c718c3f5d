package session

import "sync"

// InMemoryStore is a volatile Store keeping sessions in a process-local map.
// Suited for the interactive CLI and tests; a durable implementation can be
// swapped in behind the Store interface without touching the loop.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use. The same pointer
// is returned for every call with the same id so appends are visible to all
// holders.
func (s *InMemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = NewSession(id)
		s.sessions[id] = sess
	}
	return sess, nil
}
