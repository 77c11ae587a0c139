package session

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
)

const (
	cookieName = "dressmaking_session"

	keyAccess  = "access"
	keyRefresh = "refresh"
)

// Store loads and persists sessions through an encrypted cookie. The tokens
// never touch server-side storage; the cookie is the browser-local
// persistent state the workflow expects, cleared on logout or refresh
// failure.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore builds a cookie store from the configured session key.
func NewStore(key []byte, secure bool) *Store {
	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Load reads the session cookie. A missing or undecodable cookie yields a
// logged-out session, never an error: the guard middleware turns that into
// a 401.
func (st *Store) Load(r *http.Request) *Session {
	cs, err := st.cookies.Get(r, cookieName)
	if err != nil {
		return New(entity.TokenPair{})
	}
	access, _ := cs.Values[keyAccess].(string)
	refresh, _ := cs.Values[keyRefresh].(string)
	return New(entity.TokenPair{Access: access, Refresh: refresh})
}

// Save writes the session back to the cookie. Invalidated sessions delete
// the cookie via MaxAge -1.
func (st *Store) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	cs, _ := st.cookies.Get(r, cookieName)
	if s.Invalidated() {
		cs.Options.MaxAge = -1
		cs.Values = map[any]any{}
		return cs.Save(r, w)
	}
	tp := s.Tokens()
	cs.Values[keyAccess] = tp.Access
	cs.Values[keyRefresh] = tp.Refresh
	return cs.Save(r, w)
}
