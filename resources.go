package client

import (
	"context"
	"time"

	"github.com/workdesk/workdesk-client/internal/api"
)

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// ListUsers returns all users visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) { return api.ListUsers(ctx, c.rc) }

// ListPendingUsers returns users awaiting approval.
func (c *Client) ListPendingUsers(ctx context.Context) ([]User, error) {
	return api.ListPendingUsers(ctx, c.rc)
}

// CreateUser registers a user.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return api.CreateUser(ctx, c.rc, req)
}

// UpdateUser patches a user.
func (c *Client) UpdateUser(ctx context.Context, userID int, req UpdateUserRequest) (*User, error) {
	return api.UpdateUser(ctx, c.rc, userID, req)
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return api.DeleteUser(ctx, c.rc, userID)
}

// ApproveUser approves a pending user.
func (c *Client) ApproveUser(ctx context.Context, userID int) (*User, error) {
	return api.ApproveUser(ctx, c.rc, userID)
}

// RejectUser rejects a pending user.
func (c *Client) RejectUser(ctx context.Context, userID int) (*User, error) {
	return api.RejectUser(ctx, c.rc, userID)
}

// --------------------------------------------------------------------
// Board operations - delegated to internal/api
// --------------------------------------------------------------------

// ListBoards returns boards, optionally including archived ones.
func (c *Client) ListBoards(ctx context.Context, includeArchived bool) ([]Board, error) {
	return api.ListBoards(ctx, c.rc, includeArchived)
}

// GetBoard retrieves a board with its columns and cards.
func (c *Client) GetBoard(ctx context.Context, boardID int) (*BoardDetail, error) {
	return api.GetBoard(ctx, c.rc, boardID)
}

// CreateBoard creates a board.
func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*Board, error) {
	return api.CreateBoard(ctx, c.rc, req)
}

// UpdateBoard patches a board.
func (c *Client) UpdateBoard(ctx context.Context, boardID int, req UpdateBoardRequest) (*Board, error) {
	return api.UpdateBoard(ctx, c.rc, boardID, req)
}

// DeleteBoard deletes a board.
func (c *Client) DeleteBoard(ctx context.Context, boardID int) error {
	return api.DeleteBoard(ctx, c.rc, boardID)
}

// ListColumns returns a board's columns.
func (c *Client) ListColumns(ctx context.Context, boardID int) ([]Column, error) {
	return api.ListColumns(ctx, c.rc, boardID)
}

// CreateColumn adds a column.
func (c *Client) CreateColumn(ctx context.Context, req CreateColumnRequest) (*Column, error) {
	return api.CreateColumn(ctx, c.rc, req)
}

// UpdateColumn patches a column.
func (c *Client) UpdateColumn(ctx context.Context, columnID int, req UpdateColumnRequest) (*Column, error) {
	return api.UpdateColumn(ctx, c.rc, columnID, req)
}

// DeleteColumn deletes a column.
func (c *Client) DeleteColumn(ctx context.Context, columnID int) error {
	return api.DeleteColumn(ctx, c.rc, columnID)
}

// ArchiveBoard downloads a zip of the board's files.
func (c *Client) ArchiveBoard(ctx context.Context, boardID int) (*Download, error) {
	return api.ArchiveBoard(ctx, c.rc, boardID)
}

// ExportBoardPDF downloads the board as PDF.
func (c *Client) ExportBoardPDF(ctx context.Context, boardID int) (*Download, error) {
	return api.ExportBoardPDF(ctx, c.rc, boardID)
}

// --------------------------------------------------------------------
// Card operations - delegated to internal/api
// --------------------------------------------------------------------

// ListCards returns cards matching the filter.
func (c *Client) ListCards(ctx context.Context, p ListCardsParams) ([]Card, error) {
	return api.ListCards(ctx, c.rc, p)
}

// GetCard retrieves one card.
func (c *Client) GetCard(ctx context.Context, cardID int) (*Card, error) {
	return api.GetCard(ctx, c.rc, cardID)
}

// CreateCard creates a card.
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (*Card, error) {
	return api.CreateCard(ctx, c.rc, req)
}

// UpdateCard patches a card.
func (c *Client) UpdateCard(ctx context.Context, cardID int, req UpdateCardRequest) (*Card, error) {
	return api.UpdateCard(ctx, c.rc, cardID, req)
}

// MoveCard moves a card to a column position.
func (c *Client) MoveCard(ctx context.Context, cardID int, req MoveCardRequest) (*Card, error) {
	return api.MoveCard(ctx, c.rc, cardID, req)
}

// DeleteCard deletes a card.
func (c *Client) DeleteCard(ctx context.Context, cardID int) error {
	return api.DeleteCard(ctx, c.rc, cardID)
}

// DeleteCardWithConfirm deletes a card after a password re-check.
func (c *Client) DeleteCardWithConfirm(ctx context.Context, cardID int, password string) error {
	return api.DeleteCardWithConfirm(ctx, c.rc, cardID, password)
}

// ListComments returns a card's comments.
func (c *Client) ListComments(ctx context.Context, cardID int) ([]Comment, error) {
	return api.ListComments(ctx, c.rc, cardID)
}

// CreateComment adds a comment.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	return api.CreateComment(ctx, c.rc, req)
}

// UpdateCommentStatus changes a comment's review status.
func (c *Client) UpdateCommentStatus(ctx context.Context, commentID int, req CommentStatusRequest) (*Comment, error) {
	return api.UpdateCommentStatus(ctx, c.rc, commentID, req)
}

// ListChecklists returns a card's checklists.
func (c *Client) ListChecklists(ctx context.Context, cardID int) ([]Checklist, error) {
	return api.ListChecklists(ctx, c.rc, cardID)
}

// CreateChecklist adds a checklist.
func (c *Client) CreateChecklist(ctx context.Context, req CreateChecklistRequest) (*Checklist, error) {
	return api.CreateChecklist(ctx, c.rc, req)
}

// UpdateChecklist renames a checklist.
func (c *Client) UpdateChecklist(ctx context.Context, checklistID int, req UpdateChecklistRequest) (*Checklist, error) {
	return api.UpdateChecklist(ctx, c.rc, checklistID, req)
}

// DeleteChecklist deletes a checklist.
func (c *Client) DeleteChecklist(ctx context.Context, checklistID int) error {
	return api.DeleteChecklist(ctx, c.rc, checklistID)
}

// CreateChecklistItem adds a checklist item.
func (c *Client) CreateChecklistItem(ctx context.Context, req CreateChecklistItemRequest) (*ChecklistItem, error) {
	return api.CreateChecklistItem(ctx, c.rc, req)
}

// UpdateChecklistItem patches a checklist item.
func (c *Client) UpdateChecklistItem(ctx context.Context, itemID int, req UpdateChecklistItemRequest) (*ChecklistItem, error) {
	return api.UpdateChecklistItem(ctx, c.rc, itemID, req)
}

// DeleteChecklistItem deletes a checklist item.
func (c *Client) DeleteChecklistItem(ctx context.Context, itemID int) error {
	return api.DeleteChecklistItem(ctx, c.rc, itemID)
}

// --------------------------------------------------------------------
// Contacts, calendar, notifications
// --------------------------------------------------------------------

// ListContacts returns contacts, filtered by search.
func (c *Client) ListContacts(ctx context.Context, search string) ([]Contact, error) {
	return api.ListContacts(ctx, c.rc, search)
}

// GetContact retrieves a contact.
func (c *Client) GetContact(ctx context.Context, contactID int) (*Contact, error) {
	return api.GetContact(ctx, c.rc, contactID)
}

// CreateContact creates a contact.
func (c *Client) CreateContact(ctx context.Context, req ContactRequest) (*Contact, error) {
	return api.CreateContact(ctx, c.rc, req)
}

// UpdateContact updates a contact.
func (c *Client) UpdateContact(ctx context.Context, contactID int, req ContactRequest) (*Contact, error) {
	return api.UpdateContact(ctx, c.rc, contactID, req)
}

// DeleteContact deletes a contact.
func (c *Client) DeleteContact(ctx context.Context, contactID int) error {
	return api.DeleteContact(ctx, c.rc, contactID)
}

// ListEvents returns events in [start, end].
func (c *Client) ListEvents(ctx context.Context, start, end time.Time) ([]CalendarEvent, error) {
	return api.ListEvents(ctx, c.rc, start, end)
}

// GetEvent retrieves an event.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*CalendarEvent, error) {
	return api.GetEvent(ctx, c.rc, eventID)
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, req CalendarEventRequest) (*CalendarEvent, error) {
	return api.CreateEvent(ctx, c.rc, req)
}

// UpdateEvent updates an event.
func (c *Client) UpdateEvent(ctx context.Context, eventID int, req CalendarEventRequest) (*CalendarEvent, error) {
	return api.UpdateEvent(ctx, c.rc, eventID, req)
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	return api.DeleteEvent(ctx, c.rc, eventID)
}

// ListNotifications returns the caller's notifications.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	return api.ListNotifications(ctx, c.rc, unreadOnly)
}

// UnreadNotificationCount returns the unread count.
func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	return api.UnreadNotificationCount(ctx, c.rc)
}

// MarkNotificationRead marks a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int) (*Notification, error) {
	return api.MarkNotificationRead(ctx, c.rc, notificationID)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return api.MarkAllNotificationsRead(ctx, c.rc)
}

// DeleteNotification deletes a notification.
func (c *Client) DeleteNotification(ctx context.Context, notificationID int) error {
	return api.DeleteNotification(ctx, c.rc, notificationID)
}

// --------------------------------------------------------------------
// Files, search, chat, reports
// --------------------------------------------------------------------

// ListFiles returns visible files.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) { return api.ListFiles(ctx, c.rc) }

// UploadFile uploads a file to a card.
func (c *Client) UploadFile(ctx context.Context, req UploadFileRequest) (*File, error) {
	return api.UploadFile(ctx, c.rc, req)
}

// DownloadFile fetches a file's contents.
func (c *Client) DownloadFile(ctx context.Context, fileID int) (*Download, error) {
	return api.DownloadFile(ctx, c.rc, fileID)
}

// DeleteFile deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID int) error {
	return api.DeleteFile(ctx, c.rc, fileID)
}

// Search runs a global search.
func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	return api.Search(ctx, c.rc, query)
}

// ListConversations returns the caller's conversations.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	return api.ListConversations(ctx, c.rc)
}

// GetConversation retrieves a conversation with its messages.
func (c *Client) GetConversation(ctx context.Context, conversationID int) (*Conversation, error) {
	return api.GetConversation(ctx, c.rc, conversationID)
}

// CreateConversation opens a conversation.
func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (*Conversation, error) {
	return api.CreateConversation(ctx, c.rc, req)
}

// SendMessage posts a message.
func (c *Client) SendMessage(ctx context.Context, conversationID int, req SendMessageRequest) (*Message, error) {
	return api.SendMessage(ctx, c.rc, conversationID, req)
}

// MarkMessageRead marks one message as read.
func (c *Client) MarkMessageRead(ctx context.Context, messageID int) error {
	return api.MarkMessageRead(ctx, c.rc, messageID)
}

// MarkConversationRead marks a whole conversation as read.
func (c *Client) MarkConversationRead(ctx context.Context, conversationID int) error {
	return api.MarkConversationRead(ctx, c.rc, conversationID)
}

// DeleteConversation deletes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, conversationID int) error {
	return api.DeleteConversation(ctx, c.rc, conversationID)
}

// GetReport fetches an opaque report payload.
func (c *Client) GetReport(ctx context.Context, kind ReportKind, params map[string]string) (Report, error) {
	return api.GetReport(ctx, c.rc, kind, params)
}
