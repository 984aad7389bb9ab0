package client

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/workdesk/workdesk-client/internal/api"
	"github.com/workdesk/workdesk-client/tokenstore"
)

// LoginPath is where a forced logout sends the user.
const LoginPath = "/login"

// Navigator receives navigation side effects from the session. The app's
// router implements it.
type Navigator interface {
	Navigate(path string)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

// State is the session's position in its login state machine.
type State int

const (
	StateLoggedOut State = iota
	StateLoggingIn
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggingIn:
		return "logging_in"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

// SessionSnapshot is a consistent copy of the session at one instant.
type SessionSnapshot struct {
	User            *User
	Token           string
	IsAuthenticated bool
	State           State
}

// Session holds the authenticated user and bearer token. IsAuthenticated is
// true iff both are present. No lock is held across a network call; an epoch
// counter detects logouts that land while a login or restore is in flight.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *User
	state State
	epoch uint64

	store  tokenstore.Store
	nav    Navigator
	rc     *resty.Client
	logger zerolog.Logger

	subsMu  sync.Mutex
	subs    map[int]func(SessionSnapshot)
	nextSub int
}

func newSession(store tokenstore.Store, nav Navigator, logger zerolog.Logger) *Session {
	return &Session{
		store:  store,
		nav:    nav,
		logger: logger,
		subs:   make(map[int]func(SessionSnapshot)),
	}
}

// --------------------------------------------------------------------
// Read accessors
// --------------------------------------------------------------------

// Token returns the in-memory bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// IsAuthenticated reports whether both a token and a user are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticatedLocked()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a consistent copy of the session.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called after every session change. The
// returned func removes the subscription.
func (s *Session) Subscribe(fn func(SessionSnapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// --------------------------------------------------------------------
// Transitions
// --------------------------------------------------------------------

// Login exchanges credentials for a token, persists it, then fetches the
// profile. Only when both calls succeed does the session become LoggedIn. On
// any failure the session reverts to LoggedOut, the partial token is cleared
// and the error is returned for the login view to present.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.token, s.user, s.state = "", nil, StateLoggingIn
	s.mu.Unlock()
	s.notify()

	tok, err := api.Login(ctx, s.rc, email, password)
	if err != nil {
		s.abortLogin(epoch)
		return err
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return ErrSessionReset
	}
	s.token = tok.AccessToken
	if err := s.store.Save(tok.AccessToken); err != nil {
		s.resetLocked()
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.mu.Unlock()

	u, err := api.CurrentUser(ctx, s.rc)
	if err != nil {
		s.abortLogin(epoch)
		return err
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return ErrSessionReset
	}
	s.user = u
	s.state = StateLoggedIn
	s.mu.Unlock()

	s.logger.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("logged in")
	s.notify()
	return nil
}

// abortLogin reverts a failed login unless something else already moved the
// session on.
func (s *Session) abortLogin(epoch uint64) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.clearStoreLocked()
	s.mu.Unlock()
	s.notify()
}

// Logout clears the persisted token and the in-memory user. It cannot fail.
func (s *Session) Logout() {
	s.mu.Lock()
	s.epoch++
	s.resetLocked()
	s.clearStoreLocked()
	s.mu.Unlock()
	s.notify()
}

// LoadUser restores a session on start. With no stored token it settles as
// LoggedOut and returns nil. With a token it fetches the profile; on failure
// the token is cleared, the session settles as LoggedOut and the cause is
// returned. A JWT whose exp has passed is cleared without a request.
func (s *Session) LoadUser(ctx context.Context) error {
	tok, err := s.store.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not read stored token")
		tok = ""
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	if tok == "" {
		s.resetLocked()
		s.mu.Unlock()
		s.notify()
		return nil
	}
	if tokenExpired(tok, time.Now()) {
		s.resetLocked()
		s.clearStoreLocked()
		s.mu.Unlock()
		s.notify()
		return ErrTokenExpired
	}
	s.token, s.user, s.state = tok, nil, StateLoggingIn
	s.mu.Unlock()
	s.notify()

	u, err := api.CurrentUser(ctx, s.rc)
	if err != nil {
		s.abortLogin(epoch)
		return err
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return ErrSessionReset
	}
	s.user = u
	s.state = StateLoggedIn
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetTheme updates the cached profile's theme locally and returns the
// previous value. It never calls the backend and does not change
// IsAuthenticated. It is a no-op without a user.
func (s *Session) SetTheme(theme string) (previous string, ok bool) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return "", false
	}
	previous = s.user.Theme
	u := *s.user
	u.Theme = theme
	s.user = &u
	s.mu.Unlock()
	s.notify()
	return previous, true
}

// RestoreTheme sets the theme back to previous only if it is still current,
// so a newer theme change is never clobbered by an older failure.
func (s *Session) RestoreTheme(current, previous string) bool {
	s.mu.Lock()
	if s.user == nil || s.user.Theme != current {
		s.mu.Unlock()
		return false
	}
	u := *s.user
	u.Theme = previous
	s.user = &u
	s.mu.Unlock()
	s.notify()
	return true
}

// ReplaceUser swaps in a freshly fetched profile for the same account, e.g.
// after a profile update. It is ignored when logged out or when the id
// differs.
func (s *Session) ReplaceUser(u *User) bool {
	if u == nil {
		return false
	}
	s.mu.Lock()
	if s.user == nil || s.user.ID != u.ID {
		s.mu.Unlock()
		return false
	}
	s.user = copyUser(u)
	s.mu.Unlock()
	s.notify()
	return true
}

// forceLogout ends the session after a 401 for token. A 401 for a token that
// is no longer current is ignored.
func (s *Session) forceLogout(token string) {
	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.resetLocked()
	s.clearStoreLocked()
	s.mu.Unlock()

	forcedLogoutsTotal.Inc()
	s.logger.Warn().Msg("session rejected by backend, logging out")
	s.notify()
	s.nav.Navigate(LoginPath)
}

// --------------------------------------------------------------------
// internals
// --------------------------------------------------------------------

func (s *Session) resetLocked() {
	s.token, s.user, s.state = "", nil, StateLoggedOut
}

func (s *Session) clearStoreLocked() {
	if err := s.store.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("could not clear stored token")
	}
}

func (s *Session) authenticatedLocked() bool {
	return s.token != "" && s.user != nil
}

func (s *Session) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		User:            copyUser(s.user),
		Token:           s.token,
		IsAuthenticated: s.authenticatedLocked(),
		State:           s.state,
	}
}

func (s *Session) notify() {
	snap := s.Snapshot()
	s.subsMu.Lock()
	fns := make([]func(SessionSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// tokenExpired reports whether tok is a JWT with an exp claim before now.
// Opaque tokens and JWTs without exp are left for the backend to judge.
func tokenExpired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
