// Package userapi is the HTTP client for the user service endpoints the profile
// editor depends on. Requests authenticate with the caller's session cookie.
package userapi

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

	"github.com/nfrund/profiledash/internal/profileeditor"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "auth_token"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// User is the JSON representation of the current user returned by Me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Profile converts the user into the snapshot an editor is mounted with.
func (u User) Profile() profileeditor.UserProfile {
	return profileeditor.UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

// Client talks to the user API on behalf of one session.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API rooted at baseURL, authenticating with the
// given session token.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid user api url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid user api url %q: scheme and host are required", baseURL)
	}
	c := &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UpdateProfile issues PATCH /api/user/{id}.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update profileeditor.Update) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode profile update: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPatch, "/api/user/"+url.PathEscape(userID), body)
	if err != nil {
		return err
	}
	return drain(resp)
}

// DeleteAccount issues DELETE /api/user/delete.
func (c *Client) DeleteAccount(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/user/delete", nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

// SignOut issues DELETE /api/session, revoking the client's session token.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/session", nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/user/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &u, nil
}

// do sends the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, r)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = drain(resp)
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// drain discards the body so the connection can be reused.
func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

var _ profileeditor.ProfileAPI = (*Client)(nil)
