// Package session holds the console's login state: the access/refresh token
// pair issued by the backend. There is deliberately no ambient global — a
// *Session is created per request from the cookie store, passed through the
// request context, and read by the route guard and the backend transport.
package session

import (
	"context"
	"sync"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

// Session is the per-request view of the stored token pair. The backend
// transport may replace the access token mid-request (single automatic
// refresh) or invalidate the whole session (refresh failure), so access is
// guarded by a mutex even though requests are otherwise single-flighted.
type Session struct {
	mu          sync.Mutex
	tokens      entity.TokenPair
	dirty       bool
	invalidated bool
}

// New builds a session around an existing token pair. An empty pair is a
// logged-out session.
func New(tokens entity.TokenPair) *Session {
	return &Session{tokens: tokens}
}

// LoggedIn reports whether the session carries a usable token pair.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.Valid() && !s.invalidated
}

// Tokens returns a copy of the current pair.
func (s *Session) Tokens() entity.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

// SetTokens stores a freshly obtained pair (login).
func (s *Session) SetTokens(tp entity.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tp
	s.invalidated = false
	s.dirty = true
}

// SetAccess replaces only the access token after a successful refresh.
func (s *Session) SetAccess(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.Access = access
	s.dirty = true
}

// Invalidate clears both tokens (logout, or refresh failure).
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = entity.TokenPair{}
	s.invalidated = true
	s.dirty = true
}

// Dirty reports whether the cookie needs rewriting.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Invalidated reports whether the session was cleared this request.
func (s *Session) Invalidated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

type ctxKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the session placed by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
