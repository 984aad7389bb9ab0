package apitest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdesk/workdesk-client/internal/types"
)

func get(t *testing.T, s *Server, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.BaseURL()+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouteNameStripsConstraints(t *testing.T) {
	s := New(t)
	u := s.AddUser("a@x.io", "pw", types.RoleAdmin)
	s.SeedBoard("Roadmap", u.ID)
	tok := s.IssueToken(u.ID)

	resp := get(t, s, "/boards/1", tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, s.Hits("GET /boards/{id}"))
}

func TestUnauthenticatedRequestsGet401(t *testing.T) {
	s := New(t)
	resp := get(t, s, "/boards/", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, s, "/boards/", "forged")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAndRevoke(t *testing.T) {
	s := New(t)
	s.AddUser("a@x.io", "pw", types.RoleManager)
	s.SetLoginToken("T")

	form := url.Values{"username": {"a@x.io"}, "password": {"pw"}}
	resp, err := http.Post(s.BaseURL()+"/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var tok types.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	assert.Equal(t, "T", tok.AccessToken)

	assert.Equal(t, http.StatusOK, get(t, s, "/auth/me", "T").StatusCode)
	s.RevokeTokens()
	assert.Equal(t, http.StatusUnauthorized, get(t, s, "/auth/me", "T").StatusCode)
}

func TestFailNextIsConsumedOnce(t *testing.T) {
	s := New(t)
	u := s.AddUser("a@x.io", "pw", types.RoleAdmin)
	tok := s.IssueToken(u.ID)
	s.FailNext("GET /boards/", http.StatusInternalServerError, "boom")

	assert.Equal(t, http.StatusInternalServerError, get(t, s, "/boards/", tok).StatusCode)
	assert.Equal(t, http.StatusOK, get(t, s, "/boards/", tok).StatusCode)
	assert.Equal(t, 2, s.Hits("GET /boards/"))
}

func TestReportsRequireManager(t *testing.T) {
	s := New(t)
	exec := s.AddUser("e@x.io", "pw", types.RoleExecutor)
	mgr := s.AddUser("m@x.io", "pw", types.RoleManager)

	assert.Equal(t, http.StatusForbidden, get(t, s, "/reports/tasks", s.IssueToken(exec.ID)).StatusCode)
	assert.Equal(t, http.StatusOK, get(t, s, "/reports/tasks", s.IssueToken(mgr.ID)).StatusCode)
}
