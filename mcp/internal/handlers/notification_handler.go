package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/workdesk/workdesk-client/app"
)

// NotificationHandler exposes notifications.
type NotificationHandler struct {
	app *app.App
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(a *app.App) *NotificationHandler { return &NotificationHandler{app: a} }

// RegisterTools registers the notification tools.
func (nh *NotificationHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_notifications",
		mcp.WithDescription("List notifications with the unread count"),
		mcp.WithBoolean("unread_only", mcp.Description("Only unread notifications")),
	)
	markAll := mcp.NewTool("mark_notifications_read", mcp.WithDescription("Mark every notification read"))
	s.AddTool(list, nh.handleList)
	s.AddTool(markAll, nh.handleMarkAll)
	return nil
}

func (nh *NotificationHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := nh.app.Notifications()
	items, err := page.List(ctx, boolArg(req, "unread_only"))
	if err != nil {
		return failed("list_notifications", err)
	}
	unread, err := page.UnreadCount(ctx)
	if err != nil {
		return failed("list_notifications", err)
	}
	return jsonResult(map[string]any{"unread": unread, "notifications": items})
}

func (nh *NotificationHandler) handleMarkAll(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := nh.app.Notifications().MarkAllRead(ctx); err != nil {
		return failed("mark_notifications_read", err)
	}
	return mcp.NewToolResultText("all notifications marked read"), nil
}
