// Package app composes the client, the query cache and the shell flags into
// headless page controllers. Front ends (the CLI, the MCP server) drive pages
// instead of rendering them.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/querycache"
)

// ErrAccessDenied is the page state for a role that may not see a view.
var ErrAccessDenied = errors.New("access denied")

// NoticeFunc shows a one-line message to the user, the way a toast would.
type NoticeFunc func(msg string)

// App is the dependency-injected context every page works against: one
// client with its session, one cache, one shell and one router.
type App struct {
	client *client.Client
	cache  *querycache.Cache
	shell  *Shell
	router *Router
	notice NoticeFunc
	logger zerolog.Logger

	unsubscribe func()
}

type settings struct {
	clientOpts []client.Option
	policy     querycache.Policy
	notice     NoticeFunc
	logger     zerolog.Logger
}

// Option configures New.
type Option func(*settings)

// WithClientOptions passes options through to client.New.
func WithClientOptions(opts ...client.Option) Option {
	return func(s *settings) { s.clientOpts = append(s.clientOpts, opts...) }
}

// WithCachePolicy sets the query cache policy.
func WithCachePolicy(p querycache.Policy) Option {
	return func(s *settings) { s.policy = p }
}

// WithNotice sets where failure messages go.
func WithNotice(fn NoticeFunc) Option {
	return func(s *settings) { s.notice = fn }
}

// WithLogger sets the logger for the app, the client and the cache.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// New builds an App for the API root at baseURL.
func New(baseURL string, opts ...Option) (*App, error) {
	s := settings{
		policy: querycache.DefaultPolicy(),
		notice: func(string) {},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(&s)
	}

	router := NewRouter()
	copts := append([]client.Option{client.WithNavigator(router), client.WithLogger(s.logger)}, s.clientOpts...)
	c, err := client.New(baseURL, copts...)
	if err != nil {
		return nil, err
	}

	a := &App{
		client: c,
		cache:  querycache.New(s.policy, querycache.WithLogger(s.logger)),
		shell:  NewShell(),
		router: router,
		notice: s.notice,
		logger: s.logger,
	}
	// Cached data belongs to the user who fetched it. A login starts from
	// LoggingIn without passing LoggedOut, so both states clear.
	a.unsubscribe = c.Session().Subscribe(func(snap client.SessionSnapshot) {
		switch snap.State {
		case client.StateLoggedOut, client.StateLoggingIn:
			a.cache.Clear()
		}
	})
	return a, nil
}

// Client returns the underlying client.
func (a *App) Client() *client.Client { return a.client }

// Cache returns the query cache.
func (a *App) Cache() *querycache.Cache { return a.cache }

// Shell returns the shell flags.
func (a *App) Shell() *Shell { return a.shell }

// Router returns the router.
func (a *App) Router() *Router { return a.router }

// Session is shorthand for Client().Session().
func (a *App) Session() *client.Session { return a.client.Session() }

// Close releases the cache and the client.
func (a *App) Close() error {
	a.unsubscribe()
	a.cache.Close()
	return a.client.Close()
}

// Start restores a persisted session and routes to path accordingly.
func (a *App) Start(ctx context.Context, path string) (Route, error) {
	err := a.Session().LoadUser(ctx)
	if err != nil && !errors.Is(err, client.ErrTokenExpired) && !client.IsUnauthorized(err) {
		a.Report(err)
	}
	r := Resolve(path, a.Session().IsAuthenticated())
	a.router.Navigate(r.Path)
	return r, err
}

// Visit resolves path for the current session, applies the role gate and
// navigates.
func (a *App) Visit(path string) (Route, error) {
	r := Resolve(path, a.Session().IsAuthenticated())
	a.router.Navigate(r.Path)
	if !r.Allowed(a.Session().User()) {
		return r, ErrAccessDenied
	}
	return r, nil
}

// Logout ends the session locally, tells the backend best-effort and returns
// to the login view. It never fails.
func (a *App) Logout(ctx context.Context) {
	if a.Session().IsAuthenticated() {
		if err := a.client.ServerLogout(ctx); err != nil {
			a.logger.Debug().Err(err).Msg("server logout failed")
		}
	}
	a.Session().Logout()
	a.router.Navigate(RouteLogin)
}

// Report hands err to the notice handler. 401s are skipped: the forced
// logout already happened.
func (a *App) Report(err error) {
	if err == nil || client.IsUnauthorized(err) {
		return
	}
	a.logger.Warn().Err(err).Msg("operation failed")
	a.notice(client.DisplayMessage(err))
}

// requireRole gates a view by role.
func (a *App) requireRole(roles ...client.Role) error {
	u := a.Session().User()
	if u == nil {
		return client.ErrNotAuthenticated
	}
	if !u.HasRole(roles...) {
		return ErrAccessDenied
	}
	return nil
}

// currentUser returns the session user or ErrNotAuthenticated.
func (a *App) currentUser() (*client.User, error) {
	u := a.Session().User()
	if u == nil {
		return nil, client.ErrNotAuthenticated
	}
	return u, nil
}

// mutate runs fn through the cache and reports failures.
func mutate[T any](ctx context.Context, a *App, fn func(context.Context) (T, error), invalidate ...querycache.Key) (T, error) {
	v, err := querycache.Run(ctx, a.cache, fn, withDerived(invalidate)...)
	if err != nil {
		a.Report(err)
	}
	return v, err
}

// exec is mutate for writes without a result.
func exec(ctx context.Context, a *App, fn func(context.Context) error, invalidate ...querycache.Key) error {
	err := a.cache.Mutate(ctx, fn, withDerived(invalidate)...)
	if err != nil {
		a.Report(err)
	}
	return err
}

// read fetches through the cache and reports failures.
func read[T any](ctx context.Context, a *App, key querycache.Key, fn func(context.Context) (T, error)) (T, error) {
	v, err := querycache.Get(ctx, a.cache, key, fn)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Report(err)
	}
	return v, err
}
