package types

import (
	"encoding/json"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role is the backend's user role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleExecutor Role = "executor"
)

// User is the profile returned by /auth/me and the users endpoints.
type User struct {
	ID         int        `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       Role       `json:"role"`
	Theme      string     `json:"theme"`
	Language   string     `json:"language,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsApproved bool       `json:"is_approved"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// Board is a kanban board summary.
type Board struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color"`
	Status      string     `json:"status"`
	OwnerID     int        `json:"owner_id"`
	IsArchived  bool       `json:"is_archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Owner       *User      `json:"owner,omitempty"`
}

// BoardDetail is a board with its columns and cards.
type BoardDetail struct {
	Board
	Columns []Column `json:"columns"`
}

// Column is one board column.
type Column struct {
	ID        int       `json:"id"`
	BoardID   int       `json:"board_id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	Cards     []Card    `json:"cards"`
}

// Card is a task card.
type Card struct {
	ID          int        `json:"id"`
	ColumnID    int        `json:"column_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Position    int        `json:"position"`
	Completed   bool       `json:"completed"`
	ContactID   *int       `json:"contact_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Assignees   []User     `json:"assignees"`
	Files       []File     `json:"files"`
	Comments    []Comment  `json:"comments"`
}

// Comment is a card comment with its review status.
type Comment struct {
	ID        int       `json:"id"`
	CardID    int       `json:"card_id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	Status    string    `json:"status,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"user,omitempty"`
}

// Checklist groups checklist items on a card.
type Checklist struct {
	ID     int             `json:"id"`
	CardID int             `json:"card_id"`
	Title  string          `json:"title"`
	Items  []ChecklistItem `json:"items"`
}

// ChecklistItem is one checklist entry.
type ChecklistItem struct {
	ID          int    `json:"id"`
	ChecklistID int    `json:"checklist_id"`
	Content     string `json:"content"`
	Completed   bool   `json:"completed"`
	Position    int    `json:"position"`
}

// Contact is a CRM contact.
type Contact struct {
	ID              int        `json:"id"`
	CompanyName     string     `json:"company_name"`
	ContactPerson   string     `json:"contact_person,omitempty"`
	Type            string     `json:"type"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Website         string     `json:"website,omitempty"`
	Address         string     `json:"address,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedByID     int        `json:"created_by_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	SharedWithUsers []User     `json:"shared_with_users"`
}

// CalendarEvent is a calendar entry.
type CalendarEvent struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	AllDay          bool       `json:"all_day"`
	Color           string     `json:"color"`
	CardID          *int       `json:"card_id,omitempty"`
	CreatedByID     int        `json:"created_by_id"`
	CreatedAt       time.Time  `json:"created_at"`
	SharedWithUsers []User     `json:"shared_with_users"`
}

// Notification is an in-app notification.
type Notification struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	CardID    *int       `json:"card_id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Link      string     `json:"link,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// File is an uploaded attachment.
type File struct {
	ID               int        `json:"id"`
	OriginalFilename string     `json:"original_filename"`
	MimeType         string     `json:"mime_type,omitempty"`
	FileSize         int64      `json:"file_size"`
	CardID           *int       `json:"card_id,omitempty"`
	UploadedByID     int        `json:"uploaded_by_id"`
	RetentionDays    *int       `json:"retention_days,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Message is a chat message.
type Message struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	SenderID       int       `json:"sender_id"`
	Content        string    `json:"content"`
	LinkedCardID   *int      `json:"linked_card_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	Sender         *User     `json:"sender,omitempty"`
}

// Conversation is a chat conversation with its messages.
type Conversation struct {
	ID           int        `json:"id"`
	Type         string     `json:"type"`
	Title        string     `json:"title,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Participants []User     `json:"participants"`
	Messages     []Message  `json:"messages"`
	UnreadCount  int        `json:"unread_count,omitempty"`
	LastMessage  *Message   `json:"last_message,omitempty"`
}

// Report is an opaque backend-owned report payload.
type Report = json.RawMessage
