// Package apitest runs an in-process fake of the workdesk backend for tests.
// It keeps state in memory, enforces bearer auth and the admin/manager role
// checks, counts hits per route template and can inject failures or hold
// requests at a gate.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/workdesk/workdesk-client/internal/types"
)

// Prefix is the versioned API root served by the fake.
const Prefix = "/api/v1"

type account struct {
	password string
	user     types.User
}

type failure struct {
	status int
	detail any
}

// Server is a fake backend. Route names used by Hits, FailNext and Gate are
// "METHOD template", e.g. "GET /boards/{id}".
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	accounts   map[string]*account // by email
	tokens     map[string]int      // token -> user id
	loginToken string
	nextToken  int
	nextID     int

	boards        map[int]*types.Board
	columns       map[int]*types.Column
	cards         map[int]*types.Card
	comments      map[int]*types.Comment
	checklists    map[int]*types.Checklist
	contacts      map[int]*types.Contact
	events        map[int]*types.CalendarEvent
	notifications map[int]*types.Notification
	files         map[int]*storedFile
	conversations map[int]*types.Conversation

	hits     map[string]int
	failures map[string][]failure
	gates    map[string]chan struct{}
}

type storedFile struct {
	meta types.File
	data []byte
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		accounts:      make(map[string]*account),
		tokens:        make(map[string]int),
		boards:        make(map[int]*types.Board),
		columns:       make(map[int]*types.Column),
		cards:         make(map[int]*types.Card),
		comments:      make(map[int]*types.Comment),
		checklists:    make(map[int]*types.Checklist),
		contacts:      make(map[int]*types.Contact),
		events:        make(map[int]*types.CalendarEvent),
		notifications: make(map[int]*types.Notification),
		files:         make(map[int]*storedFile),
		conversations: make(map[int]*types.Conversation),
		hits:          make(map[string]int),
		failures:      make(map[string][]failure),
		gates:         make(map[string]chan struct{}),
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the API root to hand to client.New.
func (s *Server) BaseURL() string { return s.srv.URL + Prefix }

// ------------------------------
// Test controls
// ------------------------------

// AddUser registers an approved, active account and returns its profile.
func (s *Server) AddUser(email, password string, role types.Role) types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := types.User{
		ID: s.nextID, Email: email, FullName: strings.Split(email, "@")[0],
		Role: role, Theme: "light", IsActive: true, IsApproved: true,
	}
	s.accounts[email] = &account{password: password, user: u}
	return u
}

// AddPendingUser registers an account awaiting approval.
func (s *Server) AddPendingUser(email string) types.User {
	u := s.AddUser(email, "pending", types.RoleExecutor)
	s.mu.Lock()
	s.accounts[email].user.IsApproved = false
	s.mu.Unlock()
	u.IsApproved = false
	return u
}

// IssueToken returns a valid token for userID without a login round trip.
func (s *Server) IssueToken(userID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

// SetLoginToken makes every later successful login return token.
func (s *Server) SetLoginToken(token string) {
	s.mu.Lock()
	s.loginToken = token
	s.mu.Unlock()
}

// RevokeTokens invalidates every issued token; the next authenticated request
// gets a 401.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	s.tokens = make(map[string]int)
	s.mu.Unlock()
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// FailNext makes the next request to route fail with status and a FastAPI
// style {"detail": detail} body.
func (s *Server) FailNext(route string, status int, detail any) {
	s.mu.Lock()
	s.failures[route] = append(s.failures[route], failure{status: status, detail: detail})
	s.mu.Unlock()
}

// Gate holds every request to route until the returned release func is
// called. Hits are counted before the request blocks.
func (s *Server) Gate(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// ------------------------------
// Routing
// ------------------------------

var publicRoutes = map[string]bool{
	"POST /auth/login":                true,
	"GET /auth/check-admin":           true,
	"POST /auth/create-admin":         true,
	"POST /auth/reset-admin-password": true,
}

func (s *Server) router() http.Handler {
	root := mux.NewRouter()
	r := root.PathPrefix(Prefix).Subrouter()
	r.Use(s.middleware)

	r.HandleFunc("/auth/login", s.login).Methods("POST")
	r.HandleFunc("/auth/me", s.me).Methods("GET")
	r.HandleFunc("/auth/logout", s.ack("Successfully logged out")).Methods("POST")
	r.HandleFunc("/auth/check-admin", s.checkAdmin).Methods("GET")
	r.HandleFunc("/auth/create-admin", s.createAdmin).Methods("POST")
	r.HandleFunc("/auth/reset-admin-password", s.ack("Password reset")).Methods("POST")

	r.HandleFunc("/users/", s.adminOnly(s.listUsers)).Methods("GET")
	r.HandleFunc("/users/pending/", s.adminOnly(s.listPending)).Methods("GET")
	r.HandleFunc("/users/", s.adminOnly(s.createUser)).Methods("POST")
	r.HandleFunc("/users/{id:[0-9]+}", s.updateUser).Methods("PUT")
	r.HandleFunc("/users/{id:[0-9]+}", s.adminOnly(s.deleteUser)).Methods("DELETE")
	r.HandleFunc("/users/{id:[0-9]+}/{action:approve|reject}", s.adminOnly(s.userAction)).Methods("POST")

	s.boardRoutes(r)
	s.cardRoutes(r)
	s.miscRoutes(r)
	return root
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeName(r)

		s.mu.Lock()
		s.hits[route]++
		gate := s.gates[route]
		var fail *failure
		if q := s.failures[route]; len(q) > 0 {
			fail = &q[0]
			s.failures[route] = q[1:]
		}
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if fail != nil {
			writeJSON(w, fail.status, map[string]any{"detail": fail.detail})
			return
		}
		if !publicRoutes[route] {
			if _, ok := s.userFor(r); !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func routeName(r *http.Request) string {
	tpl := r.URL.Path
	if cur := mux.CurrentRoute(r); cur != nil {
		if t, err := cur.GetPathTemplate(); err == nil {
			tpl = t
		}
	}
	tpl = strings.TrimPrefix(tpl, Prefix)
	// Drop regexp constraints: {id:[0-9]+} -> {id}
	var b strings.Builder
	depth := 0
	skipping := false
	for _, ch := range tpl {
		switch {
		case ch == '{':
			depth++
			b.WriteRune(ch)
		case ch == '}':
			depth--
			skipping = false
			b.WriteRune(ch)
		case ch == ':' && depth > 0:
			skipping = true
		case !skipping:
			b.WriteRune(ch)
		}
	}
	return r.Method + " " + b.String()
}

// userFor resolves the bearer token to the caller's profile.
func (s *Server) userFor(r *http.Request) (types.User, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return types.User{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userForLocked(r)
}

func (s *Server) userForLocked(r *http.Request) (types.User, bool) {
	id, ok := s.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		return types.User{}, false
	}
	if a := s.findAccountLocked(id); a != nil {
		return a.user, true
	}
	return types.User{}, false
}

func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, roles ...types.Role) bool {
	u, _ := s.userFor(r)
	if !u.HasRole(roles...) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
		return false
	}
	return true
}

func (s *Server) adminOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.requireRole(w, r, types.RoleAdmin) {
			h(w, r)
		}
	}
}

func (s *Server) issueTokenLocked(userID int) string {
	tok := s.loginToken
	if tok == "" {
		s.nextToken++
		tok = fmt.Sprintf("tok-%d", s.nextToken)
	}
	s.tokens[tok] = userID
	return tok
}

func (s *Server) newIDLocked() int {
	s.nextID++
	return s.nextID
}

// ------------------------------
// Auth and users
// ------------------------------

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid form"})
		return
	}
	s.mu.Lock()
	a, ok := s.accounts[r.PostForm.Get("username")]
	if !ok || a.password != r.PostForm.Get("password") {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		return
	}
	if !a.user.IsApproved {
		s.mu.Unlock()
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Account pending approval"})
		return
	}
	tok := s.issueTokenLocked(a.user.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, types.Token{AccessToken: tok, TokenType: "bearer"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, _ := s.userFor(r)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) checkAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	exists := false
	for _, a := range s.accounts {
		if a.user.Role == types.RoleAdmin {
			exists = true
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, types.AdminExists{AdminExists: exists})
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	var in types.CreateAdminRequest
	if !decode(w, r, &in) {
		return
	}
	u := s.AddUser(in.Email, in.Password, types.RoleAdmin)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]types.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		if a.user.IsApproved {
			out = append(out, a.user)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listPending(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := []types.User{}
	for _, a := range s.accounts {
		if !a.user.IsApproved {
			out = append(out, a.user)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in types.CreateUserRequest
	if !decode(w, r, &in) {
		return
	}
	if !strings.Contains(in.Email, "@") {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "email"}, "msg": "value is not a valid email address"}},
		})
		return
	}
	role := in.Role
	if role == "" {
		role = types.RoleExecutor
	}
	writeJSON(w, http.StatusCreated, s.AddUser(in.Email, in.Password, role))
}

func (s *Server) findAccountLocked(id int) *account {
	for _, a := range s.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	caller, _ := s.userFor(r)
	if caller.ID != id && caller.Role != types.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
		return
	}
	var in types.UpdateUserRequest
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	a := s.findAccountLocked(id)
	if a == nil {
		s.mu.Unlock()
		notFound(w, "User")
		return
	}
	if in.FullName != nil {
		a.user.FullName = *in.FullName
	}
	if in.Theme != nil {
		a.user.Theme = *in.Theme
	}
	if in.Role != nil {
		a.user.Role = *in.Role
	}
	if in.IsActive != nil {
		a.user.IsActive = *in.IsActive
	}
	if in.Language != nil {
		a.user.Language = *in.Language
	}
	u := a.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	for email, a := range s.accounts {
		if a.user.ID == id {
			delete(s.accounts, email)
		}
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) userAction(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	action := mux.Vars(r)["action"]
	s.mu.Lock()
	a := s.findAccountLocked(id)
	if a == nil {
		s.mu.Unlock()
		notFound(w, "User")
		return
	}
	if action == "approve" {
		a.user.IsApproved = true
	} else {
		a.user.IsActive = false
	}
	u := a.user
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) ack(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.Ack{Message: msg})
	}
}
