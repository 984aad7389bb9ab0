package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/internal/apitest"
)

func newBackend(t *testing.T) *apitest.Server {
	t.Helper()
	srv := apitest.New(t)
	t.Setenv("WORKDESK_API_URL", srv.BaseURL())
	t.Setenv("WORKDESK_HOME", t.TempDir())
	t.Setenv("WORKDESK_TOKEN_STORE", "file")
	t.Setenv("WORKDESK_PASSWORD", "")
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := (&cli{}).execute(args, &out, &errOut)
	return out.String(), err
}

func TestLoginListWhoamiLogout(t *testing.T) {
	srv := newBackend(t)
	u := srv.AddUser("ann@example.com", "secret", client.RoleExecutor)
	srv.SeedBoard("Roadmap", u.ID)

	out, err := run(t, "login", "--email", "ann@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ann@example.com (executor)")

	out, err = run(t, "boards", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"Roadmap"`)

	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ann@example.com")

	_, err = run(t, "logout")
	require.NoError(t, err)

	_, err = run(t, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLoginReadsPasswordFromEnv(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser("ann@example.com", "secret", client.RoleExecutor)
	t.Setenv("WORKDESK_PASSWORD", "secret")

	_, err := run(t, "login", "--email", "ann@example.com")
	require.NoError(t, err)
}

func TestLoginRequiresCredentials(t *testing.T) {
	newBackend(t)
	_, err := run(t, "login", "--email", "ann@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestWrongPasswordFails(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser("ann@example.com", "secret", client.RoleExecutor)

	_, err := run(t, "login", "--email", "ann@example.com", "--password", "nope")
	require.Error(t, err)

	_, err = run(t, "whoami")
	require.Error(t, err)
}

func TestReportNeedsManager(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser("ann@example.com", "secret", client.RoleExecutor)
	_, err := run(t, "login", "--email", "ann@example.com", "--password", "secret")
	require.NoError(t, err)

	_, err = run(t, "report", "performance")
	require.Error(t, err)
	assert.Zero(t, srv.Hits("GET /reports/{kind}"))
}

func TestReportForManager(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser("max@example.com", "secret", client.RoleManager)
	_, err := run(t, "login", "--email", "max@example.com", "--password", "secret")
	require.NoError(t, err)

	_, err = run(t, "report", "performance", "--days", "7")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits("GET /reports/{kind}"))
}

func TestThemeIsSavedBeforeExit(t *testing.T) {
	srv := newBackend(t)
	srv.AddUser("ann@example.com", "secret", client.RoleExecutor)
	_, err := run(t, "login", "--email", "ann@example.com", "--password", "secret")
	require.NoError(t, err)

	_, err = run(t, "theme", "dark")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits("PUT /users/{id}"))

	out, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, `"dark"`)
}

func TestBoardExportWritesFile(t *testing.T) {
	srv := newBackend(t)
	u := srv.AddUser("ann@example.com", "secret", client.RoleExecutor)
	d := srv.SeedBoard("Roadmap", u.ID)
	_, err := run(t, "login", "--email", "ann@example.com", "--password", "secret")
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "board.zip")
	_, err = run(t, "boards", "export", strconv.Itoa(d.ID), "-o", dst)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "blob:"+strconv.Itoa(d.ID), string(data))
}

func TestFailedCommandStillReleasesAppAndStore(t *testing.T) {
	newBackend(t)
	t.Setenv("WORKDESK_TOKEN_STORE", "sqlite")

	c := &cli{}
	var out, errOut bytes.Buffer
	err := c.execute([]string{"whoami"}, &out, &errOut)
	require.Error(t, err)
	require.NotNil(t, c.app)
	require.NotNil(t, c.store)

	err = c.app.Client().Background(context.Background(), "k", "noop", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, client.ErrClosed)
	_, err = c.store.Load()
	assert.Error(t, err, "sqlite store should be closed")
}
