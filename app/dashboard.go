package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
	"golang.org/x/sync/errgroup"
)

// DashboardData is what the dashboard shows.
type DashboardData struct {
	MyCards     []client.Card
	Boards      []client.Board
	UnreadCount int
}

// DashboardPage is the landing view.
type DashboardPage struct{ a *App }

// Dashboard returns the dashboard controller.
func (a *App) Dashboard() DashboardPage { return DashboardPage{a} }

// Load reads the three dashboard queries in parallel.
func (p DashboardPage) Load(ctx context.Context) (DashboardData, error) {
	var d DashboardData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.MyCards, err = p.MyCards(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Boards, err = p.a.Boards().List(ctx, false)
		return err
	})
	g.Go(func() (err error) {
		d.UnreadCount, err = p.a.Notifications().UnreadCount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardData{}, err
	}
	return d, nil
}

// MyCards lists cards assigned to the current user.
func (p DashboardPage) MyCards(ctx context.Context) ([]client.Card, error) {
	return read(ctx, p.a, myCardsKey(), func(ctx context.Context) ([]client.Card, error) {
		return p.a.client.ListCards(ctx, client.ListCardsParams{AssignedToMe: true})
	})
}
