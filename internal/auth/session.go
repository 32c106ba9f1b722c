package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

type session struct {
	identity   Identity
	expiration time.Time
}

func (s session) expired() bool {
	return s.expiration.Before(time.Now())
}

// Sessions is an in-memory registry of logged-in users keyed by an
// opaque token. It is safe for concurrent use.
type Sessions struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]session
}

// NewSessions creates a session registry whose entries expire after ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create registers a session for id and returns its token and expiry.
func (s *Sessions) Create(id Identity) (string, time.Time) {
	token := uuid.NewString()
	expiration := time.Now().Add(s.ttl)

	s.mu.Lock()
	s.sessions[token] = session{identity: id, expiration: expiration}
	s.mu.Unlock()

	return token, expiration
}

// Get returns the identity bound to token. Expired sessions are
// removed and reported as absent.
func (s *Sessions) Get(token string) (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Identity{}, false
	}
	if sess.expired() {
		delete(s.sessions, token)
		return Identity{}, false
	}
	return sess.identity, true
}

// Delete removes the session bound to token, if present.
func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}
