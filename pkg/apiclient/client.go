// Package apiclient wraps an HTTP client with the session behavior every
// call shares: bearer injection, activity stamping, and the global 401
// handler that tears the session down no matter which endpoint rejected it.
package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"farmstead/pkg/session"
)

// Navigator receives forced navigation requests (the login redirect). In a
// browser shell this maps to a location change; in tests it records the path.
type Navigator func(path string)

type Client struct {
	baseURL  string
	http     *http.Client
	tracker  *session.Tracker
	navigate Navigator
}

func New(baseURL string, tracker *session.Tracker, navigate Navigator) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		tracker:  tracker,
		navigate: navigate,
	}
}

// WithHTTPClient swaps the underlying transport; used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// APIError carries the server's flat error payload.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tracker.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Server-side authority overrides client belief: any 401 anywhere
		// ends the session.
		c.tracker.Logout()
		if c.navigate != nil {
			c.navigate(session.LoginPath)
		}
		return c.decodeError(resp.StatusCode, payload)
	}

	// Authenticated traffic counts as user activity.
	if !strings.HasPrefix(path, "/api/auth") {
		c.tracker.Touch()
	}

	if resp.StatusCode >= 400 {
		return c.decodeError(resp.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		return json.Unmarshal(payload, out)
	}
	return nil
}

func (c *Client) decodeError(status int, payload []byte) error {
	apiErr := &APIError{StatusCode: status}
	_ = json.Unmarshal(payload, apiErr)
	return apiErr
}
