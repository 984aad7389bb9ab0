package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

// ReportHandler exposes the analytics reports. Admins and managers only.
type ReportHandler struct {
	app *app.App
}

// NewReportHandler creates a report handler.
func NewReportHandler(a *app.App) *ReportHandler { return &ReportHandler{app: a} }

// RegisterTools registers the get_report tool.
func (rh *ReportHandler) RegisterTools(s *server.MCPServer) error {
	kinds := make([]string, len(client.ReportKinds))
	for i, k := range client.ReportKinds {
		kinds[i] = string(k)
	}
	tool := mcp.NewTool("get_report",
		mcp.WithDescription("Fetch an analytics report; the payload is returned as the backend sends it"),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kinds...), mcp.Description("Report kind")),
		mcp.WithNumber("days", mcp.Description("Look-back window in days")),
		mcp.WithNumber("board_id", mcp.Description("Restrict to one board")),
	)
	s.AddTool(tool, rh.handleGetReport)
	return nil
}

func (rh *ReportHandler) handleGetReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind parameter is required"), nil
	}
	params := map[string]string{}
	if v, ok := intArg(req, "days"); ok && v > 0 {
		params["days"] = strconv.Itoa(v)
	}
	if v, ok := intArg(req, "board_id"); ok && v > 0 {
		params["board_id"] = strconv.Itoa(v)
	}

	rep, err := rh.app.Reports().Get(ctx, client.ReportKind(kind), params)
	if err != nil {
		return failed("get_report", err)
	}
	var pretty any
	if err := json.Unmarshal(rep, &pretty); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report is not JSON: %v", err)), nil
	}
	return jsonResult(pretty)
}
