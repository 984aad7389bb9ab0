package app

import (
	"context"
	"strings"

	client "github.com/workdesk/workdesk-client"
)

// AdminPage manages user accounts. Admins only.
type AdminPage struct{ a *App }

// Admin returns the admin controller.
func (a *App) Admin() AdminPage { return AdminPage{a} }

// Users lists accounts whose name or email contains search.
func (p AdminPage) Users(ctx context.Context, search string) ([]client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := read(ctx, p.a, KeyUsers, func(ctx context.Context) ([]client.User, error) {
		return p.a.client.ListUsers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return filterUsers(users, search), nil
}

// Pending lists accounts awaiting approval.
func (p AdminPage) Pending(ctx context.Context) ([]client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	return read(ctx, p.a, KeyPendingUsers, func(ctx context.Context) ([]client.User, error) {
		return p.a.client.ListPendingUsers(ctx)
	})
}

// Create adds an account.
func (p AdminPage) Create(ctx context.Context, req client.CreateUserRequest) (*client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	return mutate(ctx, p.a, func(ctx context.Context) (*client.User, error) {
		return p.a.client.CreateUser(ctx, req)
	}, KeyUsers, KeyPendingUsers)
}

// Approve activates a pending account.
func (p AdminPage) Approve(ctx context.Context, userID int) (*client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	return mutate(ctx, p.a, func(ctx context.Context) (*client.User, error) {
		return p.a.client.ApproveUser(ctx, userID)
	}, KeyUsers, KeyPendingUsers)
}

// Reject declines a pending account.
func (p AdminPage) Reject(ctx context.Context, userID int) (*client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	return mutate(ctx, p.a, func(ctx context.Context) (*client.User, error) {
		return p.a.client.RejectUser(ctx, userID)
	}, KeyUsers, KeyPendingUsers)
}

// Update edits an account.
func (p AdminPage) Update(ctx context.Context, userID int, req client.UpdateUserRequest) (*client.User, error) {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return nil, err
	}
	u, err := mutate(ctx, p.a, func(ctx context.Context) (*client.User, error) {
		return p.a.client.UpdateUser(ctx, userID, req)
	}, KeyUsers)
	if err == nil {
		p.a.Session().ReplaceUser(u)
	}
	return u, err
}

// Delete removes an account.
func (p AdminPage) Delete(ctx context.Context, userID int) error {
	if err := p.a.requireRole(client.RoleAdmin); err != nil {
		return err
	}
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteUser(ctx, userID)
	}, KeyUsers)
}

func filterUsers(users []client.User, search string) []client.User {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return users
	}
	out := []client.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FullName), search) || strings.Contains(strings.ToLower(u.Email), search) {
			out = append(out, u)
		}
	}
	return out
}
