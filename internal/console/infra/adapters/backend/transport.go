package backend

import (
	"context"
	"net/http"

	"github.com/erfansky/Dressmaking/internal/console/session"
	"github.com/erfansky/Dressmaking/internal/pkg/requestid"
)

// authTransport injects the session's bearer token into every outbound
// request. On an authorization failure it performs exactly one refresh and
// replays the original request once; a refresh failure invalidates the
// session so the caller is forced back to login. Any other response passes
// through untouched — there is no other retry policy.
type authTransport struct {
	base    http.RoundTripper
	refresh func(ctx context.Context, refreshToken string) (string, error)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	sess, hasSession := session.FromContext(req.Context())

	attempt := cloneRequest(req)
	if hasSession {
		if access := sess.Tokens().Access; access != "" {
			attempt.Header.Set("Authorization", "Bearer "+access)
		}
	}
	requestid.Propagate(attempt)

	resp, err := t.base.RoundTrip(attempt)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || !hasSession {
		return resp, err
	}

	// One refresh, one replay. The request is marked retried by construction:
	// this path runs once because the replayed response is returned directly.
	resp.Body.Close()
	resp.Body = http.NoBody

	refreshToken := sess.Tokens().Refresh
	if refreshToken == "" {
		return resp, nil
	}

	access, refreshErr := t.refresh(req.Context(), refreshToken)
	if refreshErr != nil {
		sess.Invalidate()
		// Surface the original 401; do() maps it to ErrSessionExpired.
		return resp, nil
	}
	sess.SetAccess(access)

	retry := cloneRequest(req)
	retry.Header.Set("Authorization", "Bearer "+access)
	requestid.Propagate(retry)
	return t.base.RoundTrip(retry)
}

// cloneRequest copies the request with a replayable body. Bodies built by
// http.NewRequest from byte readers always carry GetBody.
func cloneRequest(req *http.Request) *http.Request {
	out := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			out.Body = body
		}
	}
	return out
}
