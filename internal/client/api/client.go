// Package api implements the REST client for the Knowledge Platform backend.
//
// Every request flows through a single dispatch path that attaches the
// current access token as a bearer credential, detects authorization
// failures, refreshes the access token at most once per request using the
// stored refresh token, and replays the original request with the new token.
// A request that fails again after its one replay forces the session into
// the logged-out state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hhsksonu/kpcli/internal/logging"
)

const defaultTimeout = 30 * time.Second

// CredentialSource supplies tokens to the transport and stores rotated ones.
// Implemented by the session credential store.
type CredentialSource interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Client is the authenticated API client.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger

	// onSessionExpired is invoked (fire-and-forget) when the refresh token
	// is rejected or a replayed request fails authorization again.
	onSessionExpired func()

	// refreshMu serializes concurrent refresh attempts so a burst of 401s
	// results in a single refresh call against the shared refresh token.
	refreshMu sync.Mutex
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (timeouts, transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the structured logger; a no-op-ish default is used otherwise.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionExpiredHandler registers the callback fired when the session
// can no longer be recovered. The handler runs on its own goroutine; the
// failing request does not wait for it.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New builds a Client for the given base URL, e.g. "http://localhost:8000/api".
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		creds: creds,
		log:   logging.NewDefault(io.Discard, "info"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one API invocation. Keeping the marshaled body alongside
// the method and path lets the dispatch loop rebuild and replay the request
// after a token refresh without mutating the original *http.Request.
type call struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func jsonCall(method, path string, payload any) (call, error) {
	cl := call{method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return call{}, fmt.Errorf("marshal request: %w", err)
		}
		cl.body = b
		cl.contentType = "application/json"
	}
	return cl, nil
}

func (c *Client) buildRequest(ctx context.Context, cl call, token string) (*http.Request, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

// do executes a call and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, cl call, out any) error {
	return c.dispatch(ctx, cl, out, false)
}

// dispatch is the interceptor pair in one place. The retried flag is the
// per-request marker bounding recovery to exactly one refresh and one
// replay; it never outlives the call.
func (c *Client) dispatch(ctx context.Context, cl call, out any, retried bool) error {
	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential store read failed", "error", err)
		token = ""
	}

	req, err := c.buildRequest(ctx, cl, token)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", cl.method, cl.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := parseError(resp.StatusCode, body)
		if token == "" {
			// Unauthenticated call rejected (e.g. bad login). Nothing to
			// refresh and no session to tear down.
			return apiErr
		}
		if retried {
			// Already replayed once. Force logout and surface the original
			// failure to the caller.
			c.expireSession(ctx)
			return apiErr
		}
		if refreshErr := c.refresh(ctx, token); refreshErr != nil {
			c.log.Warn(ctx, "token refresh failed", "error", refreshErr)
			c.expireSession(ctx)
			return apiErr
		}
		return c.dispatch(ctx, cl, out, true)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", cl.method, cl.path, err)
		}
	}
	return nil
}

// refresh rotates the access token using the stored refresh token. The
// refresh call itself carries no bearer header and is never retried.
//
// staleToken is the access token the failing request was sent with: when a
// concurrent request already rotated it, this refresh is skipped and the
// caller replays with the fresh token.
func (c *Client) refresh(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current, err := c.creds.AccessToken(ctx); err == nil && current != "" && current != staleToken {
		return nil
	}

	refreshToken, err := c.creds.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return ErrUnauthorized
	}

	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return fmt.Errorf("marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh/", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if result.Access == "" {
		return ErrUnauthorized
	}

	if err := c.creds.SetAccessToken(ctx, result.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	c.log.Debug(ctx, "access token refreshed")
	return nil
}

// expireSession clears persisted credentials and notifies the application
// shell. The notification is fire-and-forget so the failing request can
// return its error without waiting on navigation concerns.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error(ctx, "clearing credentials failed", "error", err)
	}
	c.log.Info(ctx, "session expired, credentials cleared")
	if c.onSessionExpired != nil {
		go c.onSessionExpired()
	}
}
