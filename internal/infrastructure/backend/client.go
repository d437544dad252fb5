// Package backend is the single point of outbound HTTP communication with
// the remote admin REST API. Every request funnels through one path that
// attaches the stored bearer token, and every response is checked for the
// global 401 policy: any unauthorized reply clears the token and ends the
// session, whatever endpoint produced it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/panelworks/admin-console/internal/api/metrics"
	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/ports"
)

const (
	defaultTimeout        = 30 * time.Second
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 15 * time.Second
)

// Client talks to the remote backend. The base address is fixed at
// construction.
type Client struct {
	baseURL          string
	http             *http.Client
	tokens           ports.TokenStore
	onSessionExpired func()
	log              zerolog.Logger
}

// Option adjusts the client at construction time.
type Option func(*Client)

// WithTimeout overrides the total request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The bearer transport
// is still layered on top of its transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(baseURL string, tokens ports.TokenStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log,
		http:    newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{tokens: tokens, base: base}
	return c
}

// OnSessionExpired registers the hook fired after any 401 reply, once the
// stored token has already been cleared.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Auth groups the authentication operations.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

// Users groups the user CRUD operations.
func (c *Client) Users() *UsersService { return &UsersService{c: c} }

// Roles groups the role CRUD operations.
func (c *Client) Roles() *RolesService { return &RolesService{c: c} }

// Permissions groups the permission catalogue operations.
func (c *Client) Permissions() *PermissionsService { return &PermissionsService{c: c} }

// Ping reports whether the backend answers HTTP at all. Any status counts as
// reachable; only transport failures do not. A 401 still tears the session
// down, the same as on any other call.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(http.MethodGet, "/")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// bearerTransport attaches the stored bearer token to every outbound
// request. When no token is stored the request proceeds unauthenticated.
type bearerTransport struct {
	tokens ports.TokenStore
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok, err := t.tokens.Load()
	if err == nil && ok {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// do performs one backend call. resource and operation label the call for
// metrics only.
func (c *Client) do(ctx context.Context, method, path string, body, out any, resource, operation string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(resource, operation, "transport_error").Inc()
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues(resource, operation).Observe(time.Since(start).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(resource, operation, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		// Blunt global policy: the token is gone before the caller even
		// sees the error, and the session-expiry hook forces the view
		// back to the root path.
		c.expireSession(method, path)
		return &domain.ServerError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.ServerError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// expireSession clears the stored token and fires the expiry hook. Every 401
// reply lands here, whichever call produced it.
func (c *Client) expireSession(method, path string) {
	_ = c.tokens.Clear()
	metrics.SessionExpiriesTotal.Inc()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	c.log.Warn().Str("method", method).Str("path", path).Msg("backend returned 401, session cleared")
}

// readMessage extracts the optional {"message": ...} field of an error body.
func readMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}

func statusClass(code int) string {
	switch {
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
