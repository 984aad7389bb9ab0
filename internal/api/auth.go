package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// Login exchanges form-encoded credentials for a bearer token.
func Login(ctx context.Context, rc *resty.Client, email, password string) (*types.Token, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	req.SetFormData(map[string]string{"username": email, "password": password})

	var tok types.Token
	if err := execute(req, "login", http.MethodPost, "/auth/login", &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// CurrentUser fetches the profile of the token holder.
func CurrentUser(ctx context.Context, rc *resty.Client) (*types.User, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var u types.User
	if err := execute(req, "get current user", http.MethodGet, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout notifies the backend that the token holder signed out.
func Logout(ctx context.Context, rc *resty.Client) error {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "logout", http.MethodPost, "/auth/logout", nil)
}

// CheckAdminExists reports whether the system already has an administrator.
func CheckAdminExists(ctx context.Context, rc *resty.Client) (bool, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return false, err
	}
	var out types.AdminExists
	if err := execute(req, "check admin", http.MethodGet, "/auth/check-admin", &out); err != nil {
		return false, err
	}
	return out.AdminExists, nil
}

// CreateAdmin bootstraps the first administrator account.
func CreateAdmin(ctx context.Context, rc *resty.Client, in types.CreateAdminRequest) (*types.User, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var u types.User
	if err := execute(req.SetBody(in), "create admin", http.MethodPost, "/auth/create-admin", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ResetAdminPassword resets the administrator password using a security token.
func ResetAdminPassword(ctx context.Context, rc *resty.Client, in types.ResetAdminPasswordRequest) error {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req.SetBody(in), "reset admin password", http.MethodPost, "/auth/reset-admin-password", nil)
}
