package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/workdesk/workdesk-client/app"
)

// SessionHandler exposes login, logout and whoami.
type SessionHandler struct {
	app *app.App
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(a *app.App) *SessionHandler { return &SessionHandler{app: a} }

// RegisterTools registers the session tools.
func (sh *SessionHandler) RegisterTools(s *server.MCPServer) error {
	login := mcp.NewTool("login",
		mcp.WithDescription("Log in to workdesk; the token is stored for later calls"),
		mcp.WithString("email", mcp.Required(), mcp.Description("Account email")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password")),
	)
	logout := mcp.NewTool("logout", mcp.WithDescription("End the current session"))
	whoami := mcp.NewTool("whoami", mcp.WithDescription("Show the logged-in user"))

	s.AddTool(login, sh.handleLogin)
	s.AddTool(logout, sh.handleLogout)
	s.AddTool(whoami, sh.handleWhoami)
	return nil
}

func (sh *SessionHandler) handleLogin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("email parameter is required"), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError("password parameter is required"), nil
	}

	start := time.Now()
	if err := sh.app.Login().Submit(ctx, email, password); err != nil {
		log.Error().Err(err).Str("email", email).Dur("elapsed", time.Since(start)).Msg("login failed")
		return failed("login", err)
	}
	return jsonResult(sh.app.Session().User())
}

func (sh *SessionHandler) handleLogout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sh.app.Logout(ctx)
	return mcp.NewToolResultText("logged out"), nil
}

func (sh *SessionHandler) handleWhoami(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u := sh.app.Session().User()
	if u == nil {
		return mcp.NewToolResultError("not logged in"), nil
	}
	return jsonResult(u)
}
