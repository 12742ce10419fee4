package apiclient

import (
	"context"

	"github.com/goccy/go-json"
)

type authResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Login authenticates and primes the session tracker with the returned
// credential.
func (c *Client) Login(ctx context.Context, email string, password string) error {
	var resp authResponse
	err := c.Post(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	c.tracker.Login(resp.Token, string(resp.User))
	return nil
}

// Signup registers a new account; a successful signup logs the user in.
func (c *Client) Signup(ctx context.Context, name string, email string, password string) error {
	var resp authResponse
	err := c.Post(ctx, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	c.tracker.Login(resp.Token, string(resp.User))
	return nil
}

// Logout clears the local session. The server keeps no session state.
func (c *Client) Logout() {
	c.tracker.Logout()
}
