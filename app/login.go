package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
)

// LoginPage is the public entry view, including first-run admin setup.
type LoginPage struct{ a *App }

// Login returns the login controller.
func (a *App) Login() LoginPage { return LoginPage{a} }

// Submit logs in and moves to the dashboard.
func (p LoginPage) Submit(ctx context.Context, email, password string) error {
	if err := p.a.Session().Login(ctx, email, password); err != nil {
		p.a.Report(unauthorizedAsMessage(err))
		return err
	}
	p.a.router.Navigate(RouteDashboard)
	return nil
}

// NeedsSetup reports whether no administrator exists yet.
func (p LoginPage) NeedsSetup(ctx context.Context) (bool, error) {
	exists, err := p.a.client.CheckAdminExists(ctx)
	if err != nil {
		p.a.Report(err)
		return false, err
	}
	return !exists, nil
}

// CreateAdmin bootstraps the first administrator.
func (p LoginPage) CreateAdmin(ctx context.Context, req client.CreateAdminRequest) (*client.User, error) {
	u, err := p.a.client.CreateAdmin(ctx, req)
	if err != nil {
		p.a.Report(err)
	}
	return u, err
}

// ResetAdminPassword resets the administrator password with the server's
// security token.
func (p LoginPage) ResetAdminPassword(ctx context.Context, req client.ResetAdminPasswordRequest) error {
	err := p.a.client.ResetAdminPassword(ctx, req)
	if err != nil {
		p.a.Report(err)
	}
	return err
}

type credentialsError struct{ err error }

func (e credentialsError) Error() string { return client.DisplayMessage(e.err) }

// unauthorizedAsMessage lets a bad-credentials 401 reach the notice handler,
// which skips 401s elsewhere.
func unauthorizedAsMessage(err error) error {
	if client.IsUnauthorized(err) {
		return credentialsError{err}
	}
	return err
}
