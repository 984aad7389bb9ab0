package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdesk/workdesk-client/internal/shardqueue"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func zeroLogger() zerolog.Logger { return zerolog.Nop() }

// syncExecutor runs jobs inline and records their errors.
type syncExecutor struct{ errs []error }

func (e *syncExecutor) Submit(ctx context.Context, _ string, j shardqueue.Job) error {
	if err := j.Run(ctx); err != nil {
		e.errs = append(e.errs, err)
	}
	return nil
}

func (e *syncExecutor) Stop() {}

func TestNewValidatesBaseURL(t *testing.T) {
	_, err := New("   ")
	require.Error(t, err)

	c, err := New("http://example.com/api/v1/")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, "http://example.com/api/v1", c.BaseURL())
}

func TestOptionsRejectBadValues(t *testing.T) {
	_, err := New("http://example.com", WithHTTPTimeout(0))
	assert.Error(t, err)
	_, err = New("http://example.com", WithHTTPClient(nil))
	assert.Error(t, err)
	_, err = New("http://example.com", WithTokenStore(nil))
	assert.Error(t, err)
	_, err = New("http://example.com", WithNavigator(nil))
	assert.Error(t, err)
}

func TestWithHTTPTimeout(t *testing.T) {
	c, err := New("http://example.com", WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("WORKDESK_DEBUG", "true")
	c, err := New("http://example.com")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	bt, ok := c.http.Transport.(*bearerTransport)
	require.True(t, ok, "bearer transport must be outermost")
	_, ok = bt.base.(*debugTransport)
	assert.True(t, ok, "expected debugTransport under the bearer transport")
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.ListBoards(context.Background(), false)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, StateLoggedOut, c.Session().State())
}

func TestRequestsCarryIDAndBearer(t *testing.T) {
	var auth, reqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, reqID = r.Header.Get("Authorization"), r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.ListBoards(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, auth, "anonymous request must not send a bearer header")
	assert.NotEmpty(t, reqID)

	c.Session().mu.Lock()
	c.Session().token = "abc"
	c.Session().mu.Unlock()
	_, err = c.ListBoards(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
}

func TestForbiddenDoesNotLogOut(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("e@x.io", "pw", RoleExecutor)
	require.NoError(t, f.c.Session().Login(context.Background(), "e@x.io", "pw"))

	_, err := f.c.ListUsers(context.Background())

	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.True(t, f.c.Session().IsAuthenticated())
	assert.Empty(t, f.nav.Paths())
}

func TestValidationErrorsAreJoined(t *testing.T) {
	f := newFixture(t)
	f.srv.AddUser("a@x.io", "pw", RoleAdmin)
	require.NoError(t, f.c.Session().Login(context.Background(), "a@x.io", "pw"))

	_, err := f.c.CreateBoard(context.Background(), CreateBoardRequest{})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, DisplayMessage(err), "field required")
}

func TestBackgroundRunsNamedJob(t *testing.T) {
	exec := &syncExecutor{}
	c, err := New("http://example.com", withExecutor(exec))
	require.NoError(t, err)

	ran := false
	require.NoError(t, c.Background(context.Background(), "k", "ok", func(context.Context) error {
		ran = true
		return nil
	}))
	require.NoError(t, c.Background(context.Background(), "k", "save-theme", func(context.Context) error {
		return errors.New("boom")
	}))

	assert.True(t, ran)
	require.Len(t, exec.errs, 1)
	assert.True(t, strings.HasPrefix(exec.errs[0].Error(), "save-theme: "))
}

func TestBackgroundAfterClose(t *testing.T) {
	c, err := New("http://example.com")
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	err = c.Background(context.Background(), "k", "late", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBackgroundRunsOnDefaultExecutor(t *testing.T) {
	c, err := New("http://example.com")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	done := make(chan struct{})
	require.NoError(t, c.Background(context.Background(), "k", "signal", func(context.Context) error {
		close(done)
		return nil
	}))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}
