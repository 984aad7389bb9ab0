// Package client is the authenticated HTTP adapter and session for the
// workdesk backend. A Client owns the Session; every resource call goes
// through the same transport chain, which attaches the bearer token and
// turns any 401 into a global forced logout.
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/workdesk/workdesk-client/internal/api"
	"github.com/workdesk/workdesk-client/internal/job"
	"github.com/workdesk/workdesk-client/tokenstore"
)

// DefaultBaseURL is the versioned API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	rc      *resty.Client
	exec    executor
	session *Session

	store  tokenstore.Store
	nav    Navigator
	logger zerolog.Logger

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the API root at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   tokenstore.NewMemory(),
		nav:     noopNavigator{},
		logger:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor(c.logger)
	}

	c.session = newSession(c.store, c.nav, c.logger)
	c.wrapTransportWithBearer()

	c.rc = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")
	c.session.rc = c.rc

	return c, nil
}

// wrapTransportWithBearer installs the bearer transport on top of whatever
// options left in place, so it sees every request first.
func (c *Client) wrapTransportWithBearer() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{base: base, session: c.session}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the client's session store.
func (c *Client) Session() *Session { return c.session }

// Logger returns the logger configured with WithLogger.
func (c *Client) Logger() zerolog.Logger { return c.logger }

// Close stops the background executor. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// Background runs fn once on the client's executor. Jobs sharing a key run in
// submission order. Failures are logged, never retried.
func (c *Client) Background(ctx context.Context, key, name string, fn func(context.Context) error) error {
	if err := c.exec.Submit(ctx, key, job.New(name, fn)); err != nil {
		return mapSubmitError(err)
	}
	backgroundJobsTotal.Inc()
	return nil
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// ServerLogout tells the backend the session ended. Local logout does not
// depend on it.
func (c *Client) ServerLogout(ctx context.Context) error {
	return api.Logout(ctx, c.rc)
}

// CheckAdminExists reports whether the backend already has an administrator.
func (c *Client) CheckAdminExists(ctx context.Context) (bool, error) {
	return api.CheckAdminExists(ctx, c.rc)
}

// CreateAdmin bootstraps the first administrator.
func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*User, error) {
	return api.CreateAdmin(ctx, c.rc, req)
}

// ResetAdminPassword resets the administrator password with a security token.
func (c *Client) ResetAdminPassword(ctx context.Context, req ResetAdminPasswordRequest) error {
	return api.ResetAdminPassword(ctx, c.rc, req)
}

// CurrentUser fetches the profile of the authenticated user without touching
// the session.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	return api.CurrentUser(ctx, c.rc)
}
