package faqrag

import (
	"sync"
	"time"
)

// SessionStore accumulates query/response pairs per session, in call order.
// A session exists from its first Record until it is drained; nothing is
// persisted here, so sessions are lost on process restart by design.
//
// The single mutex serializes all map access, so records against distinct
// sessions can never interleave into each other's lists. Callers sharing one
// session ID are expected to serialize their own Record/Drain ordering.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]Interaction
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]Interaction),
	}
}

// Record appends an interaction to the session, creating it if absent.
func (s *SessionStore) Record(sessionID, query, response string) {
	interaction := Interaction{
		Query:     query,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], interaction)
}

// Drain returns the session's interactions in recording order and removes the
// session atomically. Draining an unknown session yields an empty slice.
func (s *SessionStore) Drain(sessionID string) []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	interactions := s.sessions[sessionID]
	delete(s.sessions, sessionID)

	return interactions
}

// Len reports the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
