// Package session holds durable cross-turn conversational memory. A Session
// is an append-only ordered sequence of messages; a Store keys sessions by
// identifier so concurrent users never share history.
package session

import (
	"sync"
	"time"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
)

// Session is an ordered, append-only message log for one conversation. It is
// safe for concurrent access. Snapshot returns a defensive copy so callers
// can never mutate internal state.
type Session struct {
	ID      string
	Created time.Time
	Updated time.Time

	mu       sync.RWMutex
	messages []chat.Message
}

// NewSession creates an empty session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, Created: now, Updated: now}
}

// Append adds a message to the end of the log.
func (s *Session) Append(msgs ...chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
	s.Updated = time.Now()
}

// Snapshot returns a copy of the full message sequence in order.
func (s *Session) Snapshot() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear resets the session to an empty log. A subsequent turn starts with no
// prior context.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.Updated = time.Now()
}

// Len returns the number of stored messages.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Store persists sessions keyed by session ID.
type Store interface {
	// Get returns the session for id, creating it lazily if absent.
	Get(id string) (*Session, error)
}
