package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
)

// ChatPage manages conversations and messages.
type ChatPage struct{ a *App }

// Chat returns the chat controller.
func (a *App) Chat() ChatPage { return ChatPage{a} }

// Conversations reads the conversation list.
func (p ChatPage) Conversations(ctx context.Context) ([]client.Conversation, error) {
	return read(ctx, p.a, KeyConversations, func(ctx context.Context) ([]client.Conversation, error) {
		return p.a.client.ListConversations(ctx)
	})
}

// Conversation reads one conversation with its messages.
func (p ChatPage) Conversation(ctx context.Context, id int) (*client.Conversation, error) {
	return read(ctx, p.a, conversationKey(id), func(ctx context.Context) (*client.Conversation, error) {
		return p.a.client.GetConversation(ctx, id)
	})
}

// LinkableCards lists the user's cards for linking into a message.
func (p ChatPage) LinkableCards(ctx context.Context) ([]client.Card, error) {
	return p.a.Dashboard().MyCards(ctx)
}

// Start opens a conversation with participants.
func (p ChatPage) Start(ctx context.Context, req client.CreateConversationRequest) (*client.Conversation, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Conversation, error) {
		return p.a.client.CreateConversation(ctx, req)
	}, KeyConversations)
}

// Send posts a message.
func (p ChatPage) Send(ctx context.Context, conversationID int, req client.SendMessageRequest) (*client.Message, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Message, error) {
		return p.a.client.SendMessage(ctx, conversationID, req)
	}, conversationKey(conversationID), KeyConversations)
}

// MarkRead marks one message read.
func (p ChatPage) MarkRead(ctx context.Context, conversationID, messageID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.MarkMessageRead(ctx, messageID)
	}, conversationKey(conversationID))
}

// MarkAllRead marks a whole conversation read.
func (p ChatPage) MarkAllRead(ctx context.Context, conversationID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.MarkConversationRead(ctx, conversationID)
	}, conversationKey(conversationID), KeyConversations)
}

// Delete removes a conversation.
func (p ChatPage) Delete(ctx context.Context, conversationID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteConversation(ctx, conversationID)
	}, KeyConversations, conversationKey(conversationID))
}
