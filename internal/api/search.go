package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// Search runs a global search. Blank queries return empty results without a
// request.
func Search(ctx context.Context, rc *resty.Client, query string) (*types.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &types.SearchResults{}, nil
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out types.SearchResults
	if err := execute(req.SetQueryParam("q", query), "search", http.MethodGet, "/search/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
