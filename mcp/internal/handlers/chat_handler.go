package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

// ChatHandler exposes conversations.
type ChatHandler struct {
	app *app.App
}

// NewChatHandler creates a chat handler.
func NewChatHandler(a *app.App) *ChatHandler { return &ChatHandler{app: a} }

// RegisterTools registers the chat tools.
func (ch *ChatHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_conversations", mcp.WithDescription("List conversations"))
	read := mcp.NewTool("read_conversation",
		mcp.WithDescription("Get a conversation with its messages and mark it read"),
		mcp.WithNumber("conversation_id", mcp.Required(), mcp.Description("Conversation id")),
	)
	send := mcp.NewTool("send_message",
		mcp.WithDescription("Post a message to a conversation"),
		mcp.WithNumber("conversation_id", mcp.Required(), mcp.Description("Conversation id")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Message text")),
		mcp.WithNumber("linked_card_id", mcp.Description("Card to link")),
	)
	s.AddTool(list, ch.handleList)
	s.AddTool(read, ch.handleRead)
	s.AddTool(send, ch.handleSend)
	return nil
}

func (ch *ChatHandler) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	convs, err := ch.app.Chat().Conversations(ctx)
	if err != nil {
		return failed("list_conversations", err)
	}
	return jsonResult(convs)
}

func (ch *ChatHandler) handleRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireInt(req, "conversation_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page := ch.app.Chat()
	conv, err := page.Conversation(ctx, id)
	if err != nil {
		return failed("read_conversation", err)
	}
	if err := page.MarkAllRead(ctx, id); err != nil {
		return failed("read_conversation", err)
	}
	return jsonResult(conv)
}

func (ch *ChatHandler) handleSend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireInt(req, "conversation_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content parameter is required"), nil
	}
	msg := client.SendMessageRequest{Content: content}
	if card, ok := intArg(req, "linked_card_id"); ok && card > 0 {
		msg.LinkedCardID = &card
	}
	m, err := ch.app.Chat().Send(ctx, id, msg)
	if err != nil {
		return failed("send_message", err)
	}
	return jsonResult(m)
}
