// Package backend is the REST adapter for the dressmaking backend. It
// implements the console's ports over the backend's JSON API (base path
// /api/), attaching the session's bearer token to every call and absorbing
// exactly one token refresh on an authorization failure.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// Client talks to the backend. It implements every collection port plus
// ports.TokenService.
type Client struct {
	base *url.URL

	// authed carries the bearer-injecting, refresh-retrying transport and is
	// used for every collection call. bare has no auth at all; the token
	// endpoints must never trigger the refresh cycle themselves.
	authed *http.Client
	bare   *http.Client
}

var _ ports.Backend = (*Client)(nil)
var _ ports.TokenService = (*Client)(nil)

// New builds a client for the given base URL, e.g. "http://backend:8000/api/".
func New(baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url %q: %w", baseURL, err)
	}

	c := &Client{
		base: base,
		bare: &http.Client{Timeout: 30 * time.Second},
	}
	c.authed = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &authTransport{
			base:    http.DefaultTransport,
			refresh: c.Refresh,
		},
	}
	return c, nil
}

// APIError is a non-2xx backend response that is not one of the mapped
// sentinel errors.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Body)
}

// resolve turns a path or an absolute cursor URL into the request URL.
// Cursors come back verbatim from the backend (its own next/previous
// links), so absolute URLs are followed as given.
func (c *Client) resolve(pathOrURL string, q url.Values) (string, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}
	ref, err := url.Parse(pathOrURL)
	if err != nil {
		return "", fmt.Errorf("backend: bad path %q: %w", pathOrURL, err)
	}
	u := c.base.ResolveReference(ref)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues one request through the authenticated client and decodes the
// response. Status mapping: 401 → ErrSessionExpired (the transport already
// spent its single refresh), 404 → ErrNotFound, other non-2xx → *APIError.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	target, err := c.resolve(path, q)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.authed.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ports.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		return ports.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// getCollection fetches a list endpoint that may or may not be paginated
// and returns the raw items. The backend wraps most collections in a
// {count, next, previous, results} envelope but returns bare arrays when
// pagination is disabled; both shapes are accepted.
func getCollection[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, q, &raw); err != nil {
		return nil, err
	}
	return decodeCollection[T](raw)
}

func decodeCollection[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("backend: decode list: %w", err)
		}
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("backend: decode page: %w", err)
	}
	return page.Results, nil
}
