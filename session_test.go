package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdesk/workdesk-client/internal/apitest"
	"github.com/workdesk/workdesk-client/tokenstore"
)

type recordingNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNav) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *recordingNav) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type fixture struct {
	srv   *apitest.Server
	c     *Client
	nav   *recordingNav
	store *tokenstore.Memory
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{srv: apitest.New(t), nav: &recordingNav{}, store: tokenstore.NewMemory()}
	opts = append([]Option{WithNavigator(f.nav), WithTokenStore(f.store)}, opts...)
	c, err := New(f.srv.BaseURL(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	f.c = c
	return f
}

func stored(t *testing.T, s tokenstore.Store) string {
	t.Helper()
	tok, err := s.Load()
	require.NoError(t, err)
	return tok
}

func TestLoginUsesBackendToken(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("admin@x.io", "pw", RoleAdmin)
	f.srv.SetLoginToken("T")

	require.NoError(t, f.c.Session().Login(context.Background(), "admin@x.io", "pw"))

	s := f.c.Session().Snapshot()
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, StateLoggedIn, s.State)
	assert.Equal(t, "T", s.Token)
	assert.Equal(t, RoleAdmin, s.User.Role)
	assert.Equal(t, "T", stored(t, f.store))
}

func TestLogoutClearsSessionAndStore(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("m@x.io", "pw", RoleManager)
	require.NoError(t, f.c.Session().Login(context.Background(), "m@x.io", "pw"))

	f.c.Session().Logout()

	assert.False(t, f.c.Session().IsAuthenticated())
	assert.Nil(t, f.c.Session().User())
	assert.Empty(t, stored(t, f.store))
	assert.Empty(t, f.nav.Paths())
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)
	require.NoError(t, f.c.Session().Login(context.Background(), "e@x.io", "pw"))

	f.srv.RevokeTokens()
	_, err := f.c.ListBoards(context.Background(), false)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, f.c.Session().IsAuthenticated())
	assert.Equal(t, StateLoggedOut, f.c.Session().State())
	assert.Empty(t, stored(t, f.store))
	assert.Equal(t, []string{LoginPath}, f.nav.Paths())
}

func TestBadCredentialsDoNotNavigate(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)

	err := f.c.Session().Login(context.Background(), "e@x.io", "wrong")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Incorrect email or password", DisplayMessage(err))
	assert.Equal(t, StateLoggedOut, f.c.Session().State())
	assert.Empty(t, f.nav.Paths())
}

func TestLoginFailsWhenProfileFetchFails(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)
	f.srv.FailNext("GET /auth/me", http.StatusInternalServerError, "db down")

	err := f.c.Session().Login(context.Background(), "e@x.io", "pw")

	require.Error(t, err)
	assert.False(t, f.c.Session().IsAuthenticated())
	assert.Empty(t, f.c.Session().Token())
	assert.Empty(t, stored(t, f.store))
}

func TestLoadUser(t *testing.T) {
	t.Run("no stored token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.c.Session().LoadUser(context.Background()))
		assert.Equal(t, StateLoggedOut, f.c.Session().State())
		assert.Zero(t, f.srv.Hits("GET /auth/me"))
	})

	t.Run("valid token", func(t *testing.T) {
		f := newFixture(t)
		u := f.srv.AddUser("e@x.io", "pw", RoleExecutor)
		require.NoError(t, f.store.Save(f.srv.IssueToken(u.ID)))

		require.NoError(t, f.c.Session().LoadUser(context.Background()))
		assert.True(t, f.c.Session().IsAuthenticated())
		assert.Equal(t, u.ID, f.c.Session().User().ID)
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.store.Save("bogus"))

		err := f.c.Session().LoadUser(context.Background())
		require.Error(t, err)
		assert.False(t, f.c.Session().IsAuthenticated())
		assert.Equal(t, StateLoggedOut, f.c.Session().State())
		assert.Empty(t, stored(t, f.store))
	})

	t.Run("expired jwt", func(t *testing.T) {
		f := newFixture(t)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		require.NoError(t, f.store.Save(tok))

		err = f.c.Session().LoadUser(context.Background())
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Empty(t, stored(t, f.store))
		assert.Zero(t, f.srv.Hits("GET /auth/me"))
	})
}

func TestLogoutDuringLoginResetsSession(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)
	release := f.srv.Gate("GET /auth/me")
	defer release()

	done := make(chan error, 1)
	go func() { done <- f.c.Session().Login(context.Background(), "e@x.io", "pw") }()

	require.Eventually(t, func() bool { return f.srv.Hits("GET /auth/me") == 1 }, 2*time.Second, 5*time.Millisecond)
	f.c.Session().Logout()
	release()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSessionReset)
	case <-time.After(2 * time.Second):
		t.Fatal("login did not return")
	}
	assert.False(t, f.c.Session().IsAuthenticated())
	assert.Empty(t, stored(t, f.store))
}

func TestStaleUnauthorizedIsIgnored(t *testing.T) {
	s := newSession(tokenstore.NewMemory(), &recordingNav{}, zeroLogger())
	s.token, s.user, s.state = "new", &User{ID: 1}, StateLoggedIn

	s.forceLogout("old")

	assert.True(t, s.IsAuthenticated())
	assert.Empty(t, s.nav.(*recordingNav).Paths())
}

func TestThemeChanges(t *testing.T) {
	s := newSession(tokenstore.NewMemory(), noopNavigator{}, zeroLogger())
	_, ok := s.SetTheme("dark")
	assert.False(t, ok, "no user yet")

	s.token, s.user, s.state = "tok", &User{ID: 1, Theme: "light"}, StateLoggedIn
	prev, ok := s.SetTheme("dark")
	require.True(t, ok)
	assert.Equal(t, "light", prev)
	assert.Equal(t, "dark", s.User().Theme)
	assert.True(t, s.IsAuthenticated())

	// A newer change wins over the revert of an older one.
	_, _ = s.SetTheme("blue")
	assert.False(t, s.RestoreTheme("dark", "light"))
	assert.Equal(t, "blue", s.User().Theme)
	assert.True(t, s.RestoreTheme("blue", "light"))
	assert.Equal(t, "light", s.User().Theme)
}

func TestReplaceUserKeepsIdentity(t *testing.T) {
	s := newSession(tokenstore.NewMemory(), noopNavigator{}, zeroLogger())
	s.token, s.user = "tok", &User{ID: 1, FullName: "Ann"}

	assert.False(t, s.ReplaceUser(&User{ID: 2, FullName: "Bob"}))
	assert.True(t, s.ReplaceUser(&User{ID: 1, FullName: "Ann B."}))
	assert.Equal(t, "Ann B.", s.User().FullName)
}

func TestSubscribeSeesTransitions(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)

	var mu sync.Mutex
	var states []State
	cancel := f.c.Session().Subscribe(func(s SessionSnapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})
	require.NoError(t, f.c.Session().Login(context.Background(), "e@x.io", "pw"))
	cancel()
	f.c.Session().Logout()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateLoggingIn, StateLoggedIn}, states)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, tokenExpired("opaque-token", now))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	assert.False(t, tokenExpired(noExp, now))

	live, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}).SignedString([]byte("k"))
	assert.False(t, tokenExpired(live, now))
	assert.True(t, tokenExpired(live, now.Add(2*time.Hour)))
}
