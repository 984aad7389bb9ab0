package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListUsers returns all users visible to the caller.
func ListUsers(ctx context.Context, rc *resty.Client) ([]types.User, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.User
	if err := execute(req, "list users", http.MethodGet, "/users/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingUsers returns users awaiting approval.
func ListPendingUsers(ctx context.Context, rc *resty.Client) ([]types.User, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.User
	if err := execute(req, "list pending users", http.MethodGet, "/users/pending/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser registers a new user.
func CreateUser(ctx context.Context, rc *resty.Client, in types.CreateUserRequest) (*types.User, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var u types.User
	if err := execute(req.SetBody(in), "create user", http.MethodPost, "/users/", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser patches a user.
func UpdateUser(ctx context.Context, rc *resty.Client, userID int, in types.UpdateUserRequest) (*types.User, error) {
	if err := types.ValidateID(userID, "userId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var u types.User
	if err := execute(req.SetBody(in), "update user", http.MethodPut, "/users/"+itoa(userID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes a user. Backend returns 204 No Content on success.
func DeleteUser(ctx context.Context, rc *resty.Client, userID int) error {
	if err := types.ValidateID(userID, "userId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete user", http.MethodDelete, "/users/"+itoa(userID), nil)
}

// ApproveUser approves a pending registration.
func ApproveUser(ctx context.Context, rc *resty.Client, userID int) (*types.User, error) {
	return userAction(ctx, rc, userID, "approve")
}

// RejectUser rejects a pending registration.
func RejectUser(ctx context.Context, rc *resty.Client, userID int) (*types.User, error) {
	return userAction(ctx, rc, userID, "reject")
}

func userAction(ctx context.Context, rc *resty.Client, userID int, action string) (*types.User, error) {
	if err := types.ValidateID(userID, "userId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var u types.User
	if err := execute(req, action+" user", http.MethodPost, "/users/"+itoa(userID)+"/"+action, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
