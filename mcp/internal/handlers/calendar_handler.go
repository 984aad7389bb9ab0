package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

// CalendarHandler exposes calendar events and due cards.
type CalendarHandler struct {
	app *app.App
	now func() time.Time
}

// NewCalendarHandler creates a calendar handler.
func NewCalendarHandler(a *app.App) *CalendarHandler {
	return &CalendarHandler{app: a, now: time.Now}
}

// RegisterTools registers the calendar tools.
func (ch *CalendarHandler) RegisterTools(s *server.MCPServer) error {
	agenda := mcp.NewTool("agenda",
		mcp.WithDescription("Events and open cards due in a range; defaults to the next 7 days"),
		mcp.WithString("start", mcp.Description("Range start, RFC3339")),
		mcp.WithString("end", mcp.Description("Range end, RFC3339")),
	)
	create := mcp.NewTool("create_event",
		mcp.WithDescription("Add a calendar event"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start, RFC3339")),
		mcp.WithString("end_date", mcp.Description("End, RFC3339")),
		mcp.WithBoolean("all_day", mcp.Description("All-day event")),
	)
	s.AddTool(agenda, ch.handleAgenda)
	s.AddTool(create, ch.handleCreate)
	return nil
}

func (ch *CalendarHandler) handleAgenda(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := timeArg(req, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := timeArg(req, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if start == nil {
		now := ch.now()
		start = &now
	}
	if end == nil {
		e := start.AddDate(0, 0, 7)
		end = &e
	}
	d, err := ch.app.Calendar().Load(ctx, *start, *end)
	if err != nil {
		return failed("agenda", err)
	}
	return jsonResult(map[string]any{"events": d.Events, "due_cards": d.DueCards})
}

func (ch *CalendarHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	start, err := timeArg(req, "start_date")
	if err != nil || start == nil {
		return mcp.NewToolResultError("start_date must be RFC3339"), nil
	}
	end, err := timeArg(req, "end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := ch.app.Calendar().Create(ctx, client.CalendarEventRequest{
		Title: title, StartDate: start, EndDate: end, AllDay: boolArg(req, "all_day"),
	})
	if err != nil {
		return failed("create_event", err)
	}
	return jsonResult(ev)
}
