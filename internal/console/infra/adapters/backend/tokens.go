package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/erfansky/Dressmaking/internal/console/core/domain/entity"
	"github.com/erfansky/Dressmaking/internal/console/core/ports"
)

// Obtain exchanges credentials for a token pair via POST token/.
// Any 4xx comes back as ErrInvalidCredentials — the backend does not say
// which part was wrong and the console does not either.
func (c *Client) Obtain(ctx context.Context, username, password string) (entity.TokenPair, error) {
	var pair entity.TokenPair
	err := c.tokenCall(ctx, "token/", map[string]string{
		"username": username,
		"password": password,
	}, &pair)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return entity.TokenPair{}, ports.ErrInvalidCredentials
		}
		return entity.TokenPair{}, err
	}
	return pair, nil
}

// Refresh exchanges the refresh token for a fresh access token via
// POST token/refresh/. Used by the authenticated transport; a failure here
// means the session is over.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		Access string `json:"access"`
	}
	err := c.tokenCall(ctx, "token/refresh/", map[string]string{
		"refresh": refreshToken,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("backend: refresh token: %w", err)
	}
	return out.Access, nil
}

// tokenCall posts to a token endpoint through the bare client: the token
// endpoints sit outside the bearer/refresh cycle.
func (c *Client) tokenCall(ctx context.Context, path string, payload any, out any) error {
	target, err := c.resolve(path, nil)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("backend: encode token request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("backend: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.bare.Do(req)
	if err != nil {
		return fmt.Errorf("backend: token call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: http.StatusText(resp.StatusCode)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
