package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	client "github.com/workdesk/workdesk-client"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path          string
		authenticated bool
		want          string
		boardID       int
	}{
		{"/boards", false, RouteLogin, 0},
		{"/login", false, RouteLogin, 0},
		{"/login", true, RouteDashboard, 0},
		{"/boards/", true, RouteBoards, 0},
		{"/boards/12", true, "/boards/12", 12},
		{"/boards/abc", true, RouteDashboard, 0},
		{"/boards/0", true, RouteDashboard, 0},
		{"/nowhere", true, RouteDashboard, 0},
		{"", true, RouteDashboard, 0},
		{"/reports", true, RouteReports, 0},
	}
	for _, tt := range tests {
		r := Resolve(tt.path, tt.authenticated)
		assert.Equal(t, tt.want, r.Path, "path %q auth=%v", tt.path, tt.authenticated)
		assert.Equal(t, tt.boardID, r.BoardID)
	}
}

func TestRouteAllowed(t *testing.T) {
	exec := &client.User{ID: 1, Role: client.RoleExecutor}
	mgr := &client.User{ID: 2, Role: client.RoleManager}
	admin := &client.User{ID: 3, Role: client.RoleAdmin}

	reports := Resolve(RouteReports, true)
	adminRoute := Resolve(RouteAdmin, true)
	boards := Resolve(RouteBoards, true)

	assert.False(t, reports.Allowed(exec))
	assert.True(t, reports.Allowed(mgr))
	assert.True(t, reports.Allowed(admin))
	assert.False(t, adminRoute.Allowed(mgr))
	assert.True(t, adminRoute.Allowed(admin))
	assert.True(t, boards.Allowed(exec))
	assert.False(t, boards.Allowed(nil))
	assert.True(t, Resolve(RouteLogin, false).Allowed(nil))
}

func TestRouterRecordsNavigation(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, RouteLogin, r.Current())

	var seen []string
	r.OnNavigate(func(p string) { seen = append(seen, p) })
	r.Navigate(RouteDashboard)
	r.Navigate(RouteChat)

	assert.Equal(t, RouteChat, r.Current())
	assert.Equal(t, []string{RouteDashboard, RouteChat}, r.History())
	assert.Equal(t, []string{RouteDashboard, RouteChat}, seen)
}

func TestShellDefaults(t *testing.T) {
	s := NewShell()
	assert.Equal(t, ShellState{SidebarOpen: true}, s.Snapshot())

	assert.False(t, s.ToggleSidebar())
	assert.True(t, s.ToggleSidebar())

	s.OpenSearch()
	assert.True(t, s.Snapshot().SearchOpen)
	s.CloseSearch()
	assert.False(t, s.Snapshot().SearchOpen)
}
