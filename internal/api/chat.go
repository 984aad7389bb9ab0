package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListConversations returns the caller's conversations.
func ListConversations(ctx context.Context, rc *resty.Client) ([]types.Conversation, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.Conversation
	if err := execute(req, "list conversations", http.MethodGet, "/chat/conversations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConversation retrieves a conversation with its messages.
func GetConversation(ctx context.Context, rc *resty.Client, conversationID int) (*types.Conversation, error) {
	if err := types.ValidateID(conversationID, "conversationId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Conversation
	if err := execute(req, "get conversation", http.MethodGet, "/chat/conversations/"+itoa(conversationID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateConversation opens a direct or group conversation.
func CreateConversation(ctx context.Context, rc *resty.Client, in types.CreateConversationRequest) (*types.Conversation, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = "direct"
	}
	var c types.Conversation
	if err := execute(req.SetBody(in), "create conversation", http.MethodPost, "/chat/conversations", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SendMessage posts a message to a conversation.
func SendMessage(ctx context.Context, rc *resty.Client, conversationID int, in types.SendMessageRequest) (*types.Message, error) {
	if err := types.ValidateID(conversationID, "conversationId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var m types.Message
	url := "/chat/conversations/" + itoa(conversationID) + "/messages"
	if err := execute(req.SetBody(in), "send message", http.MethodPost, url, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkMessageRead marks one message as read.
func MarkMessageRead(ctx context.Context, rc *resty.Client, messageID int) error {
	if err := types.ValidateID(messageID, "messageId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "mark message read", http.MethodPost, "/chat/messages/"+itoa(messageID)+"/read", nil)
}

// MarkConversationRead marks every message in a conversation as read.
func MarkConversationRead(ctx context.Context, rc *resty.Client, conversationID int) error {
	if err := types.ValidateID(conversationID, "conversationId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "mark conversation read", http.MethodPost, "/chat/conversations/"+itoa(conversationID)+"/read-all", nil)
}

// DeleteConversation deletes a conversation.
func DeleteConversation(ctx context.Context, rc *resty.Client, conversationID int) error {
	if err := types.ValidateID(conversationID, "conversationId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete conversation", http.MethodDelete, "/chat/conversations/"+itoa(conversationID), nil)
}
