package app

import (
	"strconv"
	"strings"
	"sync"

	client "github.com/workdesk/workdesk-client"
)

// Route paths.
const (
	RouteLogin         = client.LoginPath
	RouteDashboard     = "/"
	RouteBoards        = "/boards"
	RouteContacts      = "/contacts"
	RouteCalendar      = "/calendar"
	RouteChat          = "/chat"
	RouteReports       = "/reports"
	RouteAdmin         = "/admin"
	RouteSettings      = "/settings"
	RouteNotifications = "/notifications"
	RouteSearch        = "/search"
)

// Route is a resolved entry of the route table.
type Route struct {
	Path    string
	Public  bool
	Roles   []client.Role // empty means any authenticated user
	BoardID int           // set for /boards/{id}
}

var routes = map[string]Route{
	RouteLogin:         {Path: RouteLogin, Public: true},
	RouteDashboard:     {Path: RouteDashboard},
	RouteBoards:        {Path: RouteBoards},
	RouteContacts:      {Path: RouteContacts},
	RouteCalendar:      {Path: RouteCalendar},
	RouteChat:          {Path: RouteChat},
	RouteNotifications: {Path: RouteNotifications},
	RouteSearch:        {Path: RouteSearch},
	RouteSettings:      {Path: RouteSettings},
	RouteReports:       {Path: RouteReports, Roles: []client.Role{client.RoleAdmin, client.RoleManager}},
	RouteAdmin:         {Path: RouteAdmin, Roles: []client.Role{client.RoleAdmin}},
}

// lookup matches path against the table, including /boards/{id}.
func lookup(path string) (Route, bool) {
	path = "/" + strings.Trim(path, "/")
	if r, ok := routes[path]; ok {
		return r, true
	}
	if rest, ok := strings.CutPrefix(path, RouteBoards+"/"); ok {
		if id, err := strconv.Atoi(rest); err == nil && id > 0 {
			return Route{Path: path, BoardID: id}, true
		}
	}
	return Route{}, false
}

// Resolve returns the route to show for path. Unauthenticated users land on
// the login view, authenticated users are moved off it, and unknown paths
// fall back to the dashboard.
func Resolve(path string, authenticated bool) Route {
	r, ok := lookup(path)
	switch {
	case !authenticated:
		return routes[RouteLogin]
	case !ok, r.Public:
		return routes[RouteDashboard]
	default:
		return r
	}
}

// Allowed reports whether u may see r. It is a UX hint only; the backend
// enforces authorization.
func (r Route) Allowed(u *client.User) bool {
	if r.Public {
		return true
	}
	if u == nil {
		return false
	}
	return len(r.Roles) == 0 || u.HasRole(r.Roles...)
}

// Router records the current route and implements client.Navigator, so a
// forced logout moves it to the login view.
type Router struct {
	mu        sync.Mutex
	current   string
	history   []string
	listeners []func(string)
}

// NewRouter starts at the login view.
func NewRouter() *Router {
	return &Router{current: RouteLogin}
}

// Navigate implements client.Navigator.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.current = path
	r.history = append(r.history, path)
	fns := append([]func(string){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range fns {
		fn(path)
	}
}

// Current returns the last navigated path.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns every path navigated to, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// OnNavigate registers fn for every navigation.
func (r *Router) OnNavigate(fn func(string)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}
