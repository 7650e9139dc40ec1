// Package client is the portal's session-aware API client. It owns the one
// piece of client-side authentication state: a single identity holder that
// is provisional until a Rehydrate or Login round-trip confirms it with the
// server. The session cookie is the only credential and rides along
// automatically on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
)

var (
	// ErrUnauthenticated is the server's definitive "no valid session". Only
	// this clears local state; transport failures never do.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Identity is what the server says about the logged-in principal. The
// client keeps no identity data it did not just fetch.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole is the client-side mirror of the server's role gate. UX only;
// enforcement stays server-side.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL string
	http    *http.Client

	mu       sync.Mutex
	identity *Identity
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// Current returns the held identity, if confirmed. The second return is
// false both before the first successful Rehydrate/Login and after Logout.
func (c *Client) Current() (Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return Identity{}, false
	}
	return *c.identity, true
}

// Login authenticates and stores the confirmed identity. The session cookie
// lands in the jar as a side effect of the response.
func (c *Client) Login(ctx context.Context, username, password string) (Identity, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	var id Identity
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), &id); err != nil {
		return Identity{}, err
	}

	c.setIdentity(&id)
	return id, nil
}

// Rehydrate asks the server "who am I" and restores the identity from the
// answer. A definitive 401 clears local state and returns
// ErrUnauthenticated; a transport error leaves the held identity untouched,
// because connectivity trouble is not an authentication verdict.
func (c *Client) Rehydrate(ctx context.Context) (Identity, error) {
	var id Identity
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &id)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			c.setIdentity(nil)
		}
		return Identity{}, err
	}

	c.setIdentity(&id)
	return id, nil
}

// Logout has two independent outcomes: the local identity is always
// cleared, and the server call's error (if any) is returned so the caller
// can observe it. Client-side correctness never depends on the server
// acknowledging the logout.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.setIdentity(nil)
	if err != nil && !errors.Is(err, ErrUnauthenticated) {
		return err
	}
	return nil
}

func (c *Client) setIdentity(id *Identity) {
	c.mu.Lock()
	c.identity = id
	c.mu.Unlock()
}

// do runs one request and decodes the response. 401 and 403 are mapped to
// the package sentinels; other non-2xx statuses surface the server's error
// message verbatim.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode >= 400:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, e.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
