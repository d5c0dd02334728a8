package session

import (
	"context"
	"sync"
)

type contextKey struct{}

var sessionKey = contextKey{}

// Session is the explicit per-request session object every gateway call
// reads its bearer token from. When an upstream answers 401 the gateway
// invalidates the session, and the HTTP layer tells the caller to sign in
// again. Invalidate may race with concurrent enrichment fetches on the same
// request, hence the mutex.
type Session struct {
	mu      sync.Mutex
	token   string
	expired bool
}

func New(token string) *Session {
	return &Session{token: token}
}

// Token returns the bearer token, or "" when the session is anonymous or
// has been invalidated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return ""
	}

	return s.token
}

// Invalidate clears the stored token. Called by the gateway on any 401.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.expired = true
}

func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expired
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the request session. An anonymous session is returned
// when none was attached, so gateway calls never have to nil-check.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok {
		return s
	}

	return New("")
}
