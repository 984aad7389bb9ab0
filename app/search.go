package app

import (
	"context"
	"strings"

	client "github.com/workdesk/workdesk-client"
)

// SearchPage is the global search panel.
type SearchPage struct{ a *App }

// Search returns the search controller.
func (a *App) Search() SearchPage { return SearchPage{a} }

// Run searches boards, cards, contacts and comments. A blank query returns
// empty results without a request; the backend enforces the minimum length.
func (p SearchPage) Run(ctx context.Context, q string) (*client.SearchResults, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &client.SearchResults{}, nil
	}
	return read(ctx, p.a, searchKey(q), func(ctx context.Context) (*client.SearchResults, error) {
		return p.a.client.Search(ctx, q)
	})
}
