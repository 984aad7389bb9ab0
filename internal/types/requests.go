package types

import (
	"io"
	"time"
)

// ------------------------------
// Request Types
// ------------------------------

// CreateAdminRequest bootstraps the first administrator.
type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ResetAdminPasswordRequest resets the admin password with a security token.
type ResetAdminPasswordRequest struct {
	SecurityToken string `json:"security_token"`
	NewPassword   string `json:"new_password"`
}

// CreateUserRequest holds parameters for a new user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role,omitempty"`
	Password string `json:"password"`
}

// UpdateUserRequest patches a user; nil fields are left untouched.
type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"`
	FullName   *string `json:"full_name,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	Password   *string `json:"password,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	IsApproved *bool   `json:"is_approved,omitempty"`
	Theme      *string `json:"theme,omitempty"`
	Language   *string `json:"language,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// CreateBoardRequest holds parameters for a new board.
type CreateBoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateBoardRequest patches a board.
type UpdateBoardRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsArchived  *bool   `json:"is_archived,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// CreateColumnRequest holds parameters for a new column.
type CreateColumnRequest struct {
	BoardID  int    `json:"board_id"`
	Title    string `json:"title"`
	Color    string `json:"color,omitempty"`
	Position int    `json:"position"`
}

// UpdateColumnRequest patches a column.
type UpdateColumnRequest struct {
	Title    *string `json:"title,omitempty"`
	Position *int    `json:"position,omitempty"`
	Color    *string `json:"color,omitempty"`
}

// ListCardsParams filters the card list.
type ListCardsParams struct {
	ColumnID     int
	BoardID      int
	AssignedToMe bool
	Skip         int
	Limit        int
}

// CreateCardRequest holds parameters for a new card.
type CreateCardRequest struct {
	ColumnID    int        `json:"column_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ContactID   *int       `json:"contact_id,omitempty"`
	AssigneeIDs []int      `json:"assignee_ids"`
}

// UpdateCardRequest patches a card.
type UpdateCardRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ColumnID    *int       `json:"column_id,omitempty"`
	Position    *int       `json:"position,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	ContactID   *int       `json:"contact_id,omitempty"`
	AssigneeIDs []int      `json:"assignee_ids,omitempty"`
}

// MoveCardRequest moves a card to a column position.
type MoveCardRequest struct {
	ColumnID int `json:"column_id"`
	Position int `json:"position"`
}

// CreateCommentRequest holds parameters for a new comment.
type CreateCommentRequest struct {
	CardID  int    `json:"card_id"`
	Content string `json:"content"`
}

// CommentStatusRequest changes a comment's review status.
type CommentStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// CreateChecklistRequest holds parameters for a new checklist.
type CreateChecklistRequest struct {
	CardID int    `json:"card_id"`
	Title  string `json:"title"`
}

// UpdateChecklistRequest renames a checklist.
type UpdateChecklistRequest struct {
	Title *string `json:"title,omitempty"`
}

// CreateChecklistItemRequest holds parameters for a new checklist item.
type CreateChecklistItemRequest struct {
	ChecklistID int    `json:"checklist_id"`
	Content     string `json:"content"`
	Position    int    `json:"position"`
}

// UpdateChecklistItemRequest patches a checklist item.
type UpdateChecklistItemRequest struct {
	Content   *string `json:"content,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// ContactRequest creates or updates a contact.
type ContactRequest struct {
	CompanyName   string `json:"company_name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Type          string `json:"type,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Website       string `json:"website,omitempty"`
	Address       string `json:"address,omitempty"`
	Notes         string `json:"notes,omitempty"`
	SharedUserIDs []int  `json:"shared_user_ids,omitempty"`
}

// CalendarEventRequest creates or updates a calendar event.
type CalendarEventRequest struct {
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	AllDay        bool       `json:"all_day"`
	Color         string     `json:"color,omitempty"`
	CardID        *int       `json:"card_id,omitempty"`
	SharedUserIDs []int      `json:"shared_user_ids,omitempty"`
}

// UploadFileRequest is a multipart upload.
type UploadFileRequest struct {
	Filename      string
	Content       io.Reader
	CardID        int
	RetentionDays *int
}

// CreateConversationRequest opens a conversation.
type CreateConversationRequest struct {
	Type           string `json:"type"`
	Title          string `json:"title,omitempty"`
	ParticipantIDs []int  `json:"participant_ids"`
}

// SendMessageRequest posts a chat message.
type SendMessageRequest struct {
	Content      string `json:"content"`
	LinkedCardID *int   `json:"linked_card_id,omitempty"`
}
