package rpc

import (
	"sync"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a gateway session.
type SessionState string

const (
	SessionState_Connected   SessionState = "connected"
	SessionState_Initialized SessionState = "initialized"
	SessionState_Active      SessionState = "active"
	SessionState_Closed      SessionState = "closed"
)

// Session holds the per-connection state. A stateless HTTP request gets a
// session of its own that lives for the duration of the request.
type Session struct {
	mu          sync.RWMutex
	id          string
	state       SessionState
	auth        *domain.AuthContext
	authErr     error
	clientInfo  map[string]any
	connectedAt time.Time
}

// NewSession creates a Connected session carrying the auth resolved by the
// transport. authErr is kept so every protected method can report it.
func NewSession(auth *domain.AuthContext, authErr error, connectedAt time.Time) *Session {
	return &Session{
		id:          uuid.NewString(),
		state:       SessionState_Connected,
		auth:        auth,
		authErr:     authErr,
		connectedAt: connectedAt,
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Auth returns the principal attached to the session and the error raised while resolving it.
func (s *Session) Auth() (*domain.AuthContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth, s.authErr
}

// SetAuth replaces the principal of the session.
func (s *Session) SetAuth(auth *domain.AuthContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
	s.authErr = nil
}

// Initialize moves a Connected session to Initialized. It is idempotent and
// never moves an Active session back. It reports false when the session is closed.
func (s *Session) Initialize(clientInfo map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case SessionState_Closed:
		return false
	case SessionState_Connected:
		s.state = SessionState_Initialized
	}
	if clientInfo != nil {
		s.clientInfo = clientInfo
	}
	return true
}

// Activate marks the session Active. It reports false when the session is closed.
func (s *Session) Activate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionState_Closed {
		return false
	}
	s.state = SessionState_Active
	return true
}

// Close moves the session to the terminal Closed state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionState_Closed
}

// Closed reports whether the session was closed.
func (s *Session) Closed() bool {
	return s.State() == SessionState_Closed
}
