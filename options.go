package client

// This file defines functional options that configure the Client during
// construction.

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/workdesk/workdesk-client/tokenstore"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer transport is installed, so transport
// options (like debug logging) end up underneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines; this bounds the total time spent on a
// single HTTP request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Its transport is
// wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include bearer tokens; keep it out of
// production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithTokenStore sets where the bearer token is persisted. The default keeps
// it in memory only.
func WithTokenStore(s tokenstore.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return errors.New("token store cannot be nil")
		}
		c.store = s
		return nil
	}
}

// WithNavigator receives the forced navigation to the login view.
func WithNavigator(n Navigator) Option {
	return func(c *Client) error {
		if n == nil {
			return errors.New("navigator cannot be nil")
		}
		c.nav = n
		return nil
	}
}

// WithLogger sets the logger used by the session and background jobs.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// withExecutor swaps the background executor; tests use it to run jobs
// synchronously.
func withExecutor(e executor) Option {
	return func(c *Client) error {
		c.exec = e
		return nil
	}
}
