package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/erfansky/Dressmaking/internal/console/session"
	"github.com/erfansky/Dressmaking/internal/pkg/requestid"
)

// sessionWriter flushes the session cookie just before the first byte of
// the response goes out. The backend transport can rotate the access token
// or invalidate the session at any point during the handler, so the cookie
// can only be written once the handler is past all backend calls.
type sessionWriter struct {
	http.ResponseWriter
	r       *http.Request
	store   *session.Store
	sess    *session.Session
	flushed bool
}

func (w *sessionWriter) flush() {
	if w.flushed {
		return
	}
	w.flushed = true
	if !w.sess.Dirty() {
		return
	}
	if err := w.store.Save(w.ResponseWriter, w.r, w.sess); err != nil {
		slog.ErrorContext(w.r.Context(), "failed to persist session cookie", "error", err)
	}
}

func (w *sessionWriter) WriteHeader(status int) {
	w.flush()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

// AttachSession loads the session from the cookie store into the request
// context and writes it back on the way out when it changed. It also folds
// the router's request id into the context so outbound backend calls carry
// the same correlation id.
func AttachSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)

			ctx := session.NewContext(r.Context(), sess)
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = requestid.NewContext(ctx, id)
			} else {
				ctx, _ = requestid.Ensure(ctx)
			}
			r = r.WithContext(ctx)

			sw := &sessionWriter{ResponseWriter: w, r: r, store: store, sess: sess}
			defer sw.flush()
			next.ServeHTTP(sw, r)
		})
	}
}

// RequireLogin rejects requests whose session carries no usable token pair.
// The actual token validity is only known to the backend; an expired pair
// surfaces later as a 401 from the transport's failed refresh.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.LoggedIn() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"not_logged_in"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
