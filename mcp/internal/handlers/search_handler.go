package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/workdesk/workdesk-client/app"
)

// SearchHandler exposes global search.
type SearchHandler struct {
	app *app.App
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(a *app.App) *SearchHandler { return &SearchHandler{app: a} }

// RegisterTools registers the search tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("search",
		mcp.WithDescription("Search boards, cards, contacts and comments. Results are grouped by kind; each hit has id, title and type."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text, at least 2 characters")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	res, err := sh.app.Search().Run(ctx, query)
	if err != nil {
		return failed("search", err)
	}
	return jsonResult(res)
}
