package app

import (
	"context"
	"strconv"

	client "github.com/workdesk/workdesk-client"
)

// SettingsPage edits the current user's profile and theme.
type SettingsPage struct{ a *App }

// Settings returns the settings controller.
func (a *App) Settings() SettingsPage { return SettingsPage{a} }

// UpdateProfile saves profile fields and swaps the fresh profile into the
// session.
func (p SettingsPage) UpdateProfile(ctx context.Context, req client.UpdateUserRequest) (*client.User, error) {
	me, err := p.a.currentUser()
	if err != nil {
		return nil, err
	}
	u, err := mutate(ctx, p.a, func(ctx context.Context) (*client.User, error) {
		return p.a.client.UpdateUser(ctx, me.ID, client.UpdateUserRequest{
			FullName: req.FullName,
			Email:    req.Email,
			Password: req.Password,
			Language: req.Language,
			Avatar:   req.Avatar,
			Theme:    req.Theme,
		})
	}, KeyCurrentUser, KeyUsers)
	if err != nil {
		return nil, err
	}
	p.a.Session().ReplaceUser(u)
	return u, nil
}

// SetTheme applies theme locally at once and persists it in the background.
// If persisting fails the previous theme comes back, unless the user has
// changed it again in the meantime.
func (p SettingsPage) SetTheme(ctx context.Context, theme string) error {
	me, err := p.a.currentUser()
	if err != nil {
		return err
	}
	prev, ok := p.a.Session().SetTheme(theme)
	if !ok || prev == theme {
		return nil
	}

	key := "user-theme/" + strconv.Itoa(me.ID)
	err = p.a.client.Background(context.WithoutCancel(ctx), key, "save theme", func(ctx context.Context) error {
		_, err := p.a.client.UpdateUser(ctx, me.ID, client.UpdateUserRequest{Theme: &theme})
		if err != nil {
			if p.a.Session().RestoreTheme(theme, prev) {
				p.a.logger.Warn().Err(err).Str("theme", theme).Msg("theme not saved, reverted")
			}
			p.a.Report(err)
		}
		return err
	})
	if err != nil {
		p.a.Session().RestoreTheme(theme, prev)
		return err
	}
	return nil
}
