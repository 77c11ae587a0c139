// Package requestid propagates a per-request correlation id from the
// console's HTTP surface to the outbound backend calls it fans into, so a
// single user action can be followed across both sets of logs.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the wire header carrying the id, both inbound and outbound.
const Header = "X-Request-ID"

// ctxKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// NewContext returns a context carrying the request id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// FromContext returns the request id, or "" when none was attached.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ensure returns the id from ctx, minting a fresh one when absent.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return NewContext(ctx, id), id
}

// Propagate copies the context's request id onto an outbound request.
func Propagate(req *http.Request) {
	if id := FromContext(req.Context()); id != "" {
		req.Header.Set(Header, id)
	}
}
