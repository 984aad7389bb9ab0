package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPError_Categories(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   Category
	}{
		{401, Unauthorized}, {403, Forbidden}, {404, NotFound},
		{400, Validation}, {422, Validation}, {500, Server}, {409, Server},
	}
	for _, c := range cases {
		e := NewHTTPError("op", c.status, nil)
		assert.Equal(t, c.want, e.Category, "status %d", c.status)
	}
}

func TestNewHTTPError_StringDetail(t *testing.T) {
	t.Parallel()
	e := NewHTTPError("login", 400, []byte(`{"detail":"Incorrect email or password"}`))
	assert.Equal(t, "Incorrect email or password", e.Display())
	assert.Empty(t, e.Fields)
}

func TestNewHTTPError_FastAPIValidationList(t *testing.T) {
	t.Parallel()
	body := []byte(`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"},{"loc":["body","password"],"msg":"too short","type":"value_error"}]}`)
	e := NewHTTPError("create user", 422, body)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "email", e.Fields[0].Field)
	assert.Equal(t, "email: value is not a valid email address, password: too short", e.Display())
}

func TestNewHTTPError_FieldMessageList(t *testing.T) {
	t.Parallel()
	e := NewHTTPError("create contact", 400, []byte(`{"detail":[{"field":"company_name","message":"required"}]}`))
	assert.Equal(t, "company_name: required", e.Display())
}

func TestNewHTTPError_NonJSONBody(t *testing.T) {
	t.Parallel()
	e := NewHTTPError("get board", 502, []byte("bad gateway\n"))
	assert.Equal(t, "bad gateway", e.Display())
}

func TestNetworkErrorAndHelpers(t *testing.T) {
	t.Parallel()
	root := errors.New("connection refused")
	e := NewNetworkError("list boards", root)
	assert.Equal(t, Transport, e.Category)
	assert.ErrorIs(t, e, root)

	wrapped := fmt.Errorf("page: %w", NewHTTPError("x", 403, nil))
	assert.True(t, Is(wrapped, Forbidden))
	assert.False(t, Is(wrapped, Validation))
	assert.False(t, Is(root, Transport))
	assert.Equal(t, "connection refused", Display(root))
	assert.Equal(t, "", Display(nil))
}
