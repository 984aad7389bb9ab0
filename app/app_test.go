package app

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/internal/apitest"
	"github.com/workdesk/workdesk-client/tokenstore"
)

type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) add(msg string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *notices) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

type fixture struct {
	srv     *apitest.Server
	app     *App
	user    client.User
	store   tokenstore.Store
	notices *notices
}

const password = "secret"

func newFixture(t *testing.T, role client.Role) *fixture {
	t.Helper()
	srv := apitest.New(t)
	f := &fixture{
		srv:     srv,
		user:    srv.AddUser("ann@example.com", password, role),
		store:   tokenstore.NewMemory(),
		notices: &notices{},
	}
	f.app = f.open(t)
	require.NoError(t, f.app.Login().Submit(context.Background(), "ann@example.com", password))
	return f
}

// open builds another App against the same backend and token store.
func (f *fixture) open(t *testing.T) *App {
	t.Helper()
	a, err := New(f.srv.BaseURL(),
		WithClientOptions(client.WithTokenStore(f.store)),
		WithLogger(zerolog.Nop()),
		WithNotice(f.notices.add),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestLoginNavigatesToDashboard(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	assert.Equal(t, RouteDashboard, f.app.Router().Current())
	assert.True(t, f.app.Session().IsAuthenticated())
}

func TestBadCredentialsShowNotice(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	f.app.Logout(context.Background())

	err := f.app.Login().Submit(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Len(t, f.notices.all(), 1)
	assert.Equal(t, RouteLogin, f.app.Router().Current())
}

func TestListIsServedFromCacheUntilCreate(t *testing.T) {
	f := newFixture(t, client.RoleManager)
	ctx := context.Background()
	f.srv.SeedBoard("Roadmap", f.user.ID)

	boards, err := f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	require.Len(t, boards, 1)

	_, err = f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.srv.Hits("GET /boards/"))

	_, err = f.app.Boards().Create(ctx, client.CreateBoardRequest{Title: "Launch"})
	require.NoError(t, err)

	boards, err = f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.Equal(t, 2, f.srv.Hits("GET /boards/"))
}

func TestFailedCreateKeepsCacheAndShowsNotice(t *testing.T) {
	f := newFixture(t, client.RoleManager)
	ctx := context.Background()

	_, err := f.app.Boards().List(ctx, false)
	require.NoError(t, err)

	f.srv.FailNext("POST /boards/", http.StatusInternalServerError, "database down")
	_, err = f.app.Boards().Create(ctx, client.CreateBoardRequest{Title: "Launch"})
	require.Error(t, err)

	_, err = f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.srv.Hits("GET /boards/"))
	require.Len(t, f.notices.all(), 1)
	assert.Contains(t, f.notices.all()[0], "database down")
}

func TestUnrelatedMutationKeepsOtherQueries(t *testing.T) {
	f := newFixture(t, client.RoleManager)
	ctx := context.Background()

	_, err := f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	_, err = f.app.Contacts().Create(ctx, client.ContactRequest{CompanyName: "Acme", Type: "client"})
	require.NoError(t, err)
	_, err = f.app.Boards().List(ctx, false)
	require.NoError(t, err)

	assert.Equal(t, 1, f.srv.Hits("GET /boards/"))
}

func TestLogoutClearsCache(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	ctx := context.Background()

	_, err := f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	require.Positive(t, f.app.Cache().Len())

	f.app.Logout(ctx)
	assert.Equal(t, 0, f.app.Cache().Len())
	assert.Equal(t, RouteLogin, f.app.Router().Current())
	assert.Equal(t, 1, f.srv.Hits("POST /auth/logout"))

	require.NoError(t, f.app.Login().Submit(ctx, "ann@example.com", password))
	_, err = f.app.Boards().List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.srv.Hits("GET /boards/"))
}

func TestRejectedTokenLogsOutAndRoutesToLogin(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	ctx := context.Background()

	_, err := f.app.Boards().List(ctx, false)
	require.NoError(t, err)

	f.srv.RevokeTokens()
	_, err = f.app.Contacts().List(ctx, "")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	assert.False(t, f.app.Session().IsAuthenticated())
	assert.Equal(t, RouteLogin, f.app.Router().Current())
	assert.Equal(t, 0, f.app.Cache().Len())
	assert.Empty(t, f.notices.all(), "401s are not shown as notices")
}

func TestStartRestoresSession(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)

	again := f.open(t)
	r, err := again.Start(context.Background(), "/boards/7")
	require.NoError(t, err)
	assert.Equal(t, 7, r.BoardID)
	assert.Equal(t, "/boards/7", again.Router().Current())
	assert.Equal(t, f.user.ID, again.Session().User().ID)
}

func TestStartWithoutTokenRoutesToLogin(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	f.app.Logout(context.Background())

	again := f.open(t)
	r, err := again.Start(context.Background(), RouteContacts)
	require.NoError(t, err)
	assert.Equal(t, RouteLogin, r.Path)
	assert.Equal(t, RouteLogin, again.Router().Current())
}

func TestRoleGates(t *testing.T) {
	ctx := context.Background()

	t.Run("executor", func(t *testing.T) {
		f := newFixture(t, client.RoleExecutor)
		_, err := f.app.Reports().Performance(ctx, 30)
		assert.ErrorIs(t, err, ErrAccessDenied)
		_, err = f.app.Admin().Users(ctx, "")
		assert.ErrorIs(t, err, ErrAccessDenied)
		_, err = f.app.Visit(RouteAdmin)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, 0, f.srv.Hits("GET /reports/{kind}"))
		assert.Equal(t, 0, f.srv.Hits("GET /users/"))
	})

	t.Run("manager", func(t *testing.T) {
		f := newFixture(t, client.RoleManager)
		rep, err := f.app.Reports().Performance(ctx, 30)
		require.NoError(t, err)
		assert.Contains(t, string(rep), `"performance"`)
		_, err = f.app.Visit(RouteReports)
		assert.NoError(t, err)
		_, err = f.app.Visit(RouteAdmin)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown report", func(t *testing.T) {
		f := newFixture(t, client.RoleAdmin)
		_, err := f.app.Reports().Get(ctx, "nope", nil)
		assert.Error(t, err)
	})
}

func TestReportParamsShareEntry(t *testing.T) {
	a := reportKey(client.ReportTasks, map[string]string{"b": "2", "a": "1"})
	b := reportKey(client.ReportTasks, map[string]string{"a": "1", "b": "2"})
	assert.Equal(t, a.String(), b.String())
	assert.True(t, a.HasPrefix(KeyReports))
}

func TestThemeRevertsWhenSaveFails(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	f.srv.FailNext("PUT /users/{id}", http.StatusInternalServerError, "cannot save")

	require.NoError(t, f.app.Settings().SetTheme(context.Background(), "dark"))
	assert.Equal(t, "dark", f.app.Session().User().Theme, "applied before the save")

	require.Eventually(t, func() bool {
		return f.app.Session().User().Theme == "light"
	}, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(f.notices.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, f.app.Session().IsAuthenticated())
}

func TestThemeIsPersisted(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)

	require.NoError(t, f.app.Settings().SetTheme(context.Background(), "dark"))
	require.Eventually(t, func() bool {
		return f.srv.Hits("PUT /users/{id}") == 1
	}, 2*time.Second, 5*time.Millisecond)

	u, err := f.app.Client().CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", u.Theme)
	assert.Equal(t, "dark", f.app.Session().User().Theme)
}

func TestSameThemeIsNotSaved(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	require.NoError(t, f.app.Settings().SetTheme(context.Background(), "light"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, f.srv.Hits("PUT /users/{id}"))
}

func TestUpdateProfileReplacesSessionUser(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	name := "Ann Lee"

	u, err := f.app.Settings().UpdateProfile(context.Background(), client.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.FullName)
	assert.Equal(t, name, f.app.Session().User().FullName)
}

func TestLoginAsAnotherUserDropsCachedData(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	ctx := context.Background()
	f.srv.SeedNotification(f.user.ID, "ann only")

	ns, err := f.app.Notifications().List(ctx, false)
	require.NoError(t, err)
	require.Len(t, ns, 1)

	f.srv.AddUser("bob@example.com", password, client.RoleExecutor)
	require.NoError(t, f.app.Login().Submit(ctx, "bob@example.com", password))

	ns, err = f.app.Notifications().List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, ns)
	assert.Equal(t, 2, f.srv.Hits("GET /notifications/"))
}

func TestCardWriteRefreshesReports(t *testing.T) {
	f := newFixture(t, client.RoleManager)
	ctx := context.Background()
	b := f.srv.SeedBoard("Roadmap", f.user.ID)

	_, err := f.app.Reports().Get(ctx, client.ReportTasks, nil)
	require.NoError(t, err)
	_, err = f.app.Reports().Get(ctx, client.ReportTasks, nil)
	require.NoError(t, err)
	require.Equal(t, 1, f.srv.Hits("GET /reports/{kind}"))

	_, err = f.app.BoardDetail(b.ID).CreateCard(ctx, client.CreateCardRequest{
		ColumnID: b.Columns[0].ID, Title: "Ship it", AssigneeIDs: []int{},
	})
	require.NoError(t, err)

	_, err = f.app.Reports().Get(ctx, client.ReportTasks, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.srv.Hits("GET /reports/{kind}"))
}

func TestBoardWriteRefreshesSearch(t *testing.T) {
	f := newFixture(t, client.RoleExecutor)
	ctx := context.Background()

	_, err := f.app.Search().Run(ctx, "Road")
	require.NoError(t, err)
	_, err = f.app.Boards().Create(ctx, client.CreateBoardRequest{Title: "Roadshow"})
	require.NoError(t, err)
	_, err = f.app.Search().Run(ctx, "Road")
	require.NoError(t, err)
	assert.Equal(t, 2, f.srv.Hits("GET /search/"))
}

func TestNotificationWriteKeepsReports(t *testing.T) {
	f := newFixture(t, client.RoleManager)
	ctx := context.Background()

	_, err := f.app.Reports().Get(ctx, client.ReportTasks, nil)
	require.NoError(t, err)
	require.NoError(t, f.app.Notifications().MarkAllRead(ctx))
	_, err = f.app.Reports().Get(ctx, client.ReportTasks, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.srv.Hits("GET /reports/{kind}"))
}
