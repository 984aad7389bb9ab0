package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

// ContactHandler exposes the contact directory.
type ContactHandler struct {
	app *app.App
}

// NewContactHandler creates a contact handler.
func NewContactHandler(a *app.App) *ContactHandler { return &ContactHandler{app: a} }

// RegisterTools registers the contact tools.
func (ch *ContactHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_contacts",
		mcp.WithDescription("List contacts, optionally filtered by company name"),
		mcp.WithString("search", mcp.Description("Company name filter")),
	)
	create := mcp.NewTool("create_contact",
		mcp.WithDescription("Add a contact"),
		mcp.WithString("company_name", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("contact_person", mcp.Description("Person to talk to")),
		mcp.WithString("type", mcp.Description("client, supplier or partner")),
		mcp.WithString("email", mcp.Description("Email")),
		mcp.WithString("phone", mcp.Description("Phone")),
	)
	s.AddTool(list, ch.handleList)
	s.AddTool(create, ch.handleCreate)
	return nil
}

func (ch *ContactHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contacts, err := ch.app.Contacts().List(ctx, stringArg(req, "search"))
	if err != nil {
		return failed("list_contacts", err)
	}
	return jsonResult(contacts)
}

func (ch *ContactHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company, err := req.RequireString("company_name")
	if err != nil {
		return mcp.NewToolResultError("company_name parameter is required"), nil
	}
	kind := stringArg(req, "type")
	if kind == "" {
		kind = "client"
	}
	c, err := ch.app.Contacts().Create(ctx, client.ContactRequest{
		CompanyName:   company,
		ContactPerson: stringArg(req, "contact_person"),
		Type:          kind,
		Email:         stringArg(req, "email"),
		Phone:         stringArg(req, "phone"),
	})
	if err != nil {
		return failed("create_contact", err)
	}
	return jsonResult(c)
}
