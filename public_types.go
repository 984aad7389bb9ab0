package client

import (
	"github.com/workdesk/workdesk-client/internal/api"
	"github.com/workdesk/workdesk-client/internal/types"
)

// Public type aliases so consumers can import only the client package.
type (
	// Domain entities
	Role          = types.Role
	User          = types.User
	Board         = types.Board
	BoardDetail   = types.BoardDetail
	Column        = types.Column
	Card          = types.Card
	Comment       = types.Comment
	Checklist     = types.Checklist
	ChecklistItem = types.ChecklistItem
	Contact       = types.Contact
	CalendarEvent = types.CalendarEvent
	Notification  = types.Notification
	File          = types.File
	Message       = types.Message
	Conversation  = types.Conversation
	Report        = types.Report

	// Requests
	CreateAdminRequest         = types.CreateAdminRequest
	ResetAdminPasswordRequest  = types.ResetAdminPasswordRequest
	CreateUserRequest          = types.CreateUserRequest
	UpdateUserRequest          = types.UpdateUserRequest
	CreateBoardRequest         = types.CreateBoardRequest
	UpdateBoardRequest         = types.UpdateBoardRequest
	CreateColumnRequest        = types.CreateColumnRequest
	UpdateColumnRequest        = types.UpdateColumnRequest
	ListCardsParams            = types.ListCardsParams
	CreateCardRequest          = types.CreateCardRequest
	UpdateCardRequest          = types.UpdateCardRequest
	MoveCardRequest            = types.MoveCardRequest
	CreateCommentRequest       = types.CreateCommentRequest
	CommentStatusRequest       = types.CommentStatusRequest
	CreateChecklistRequest     = types.CreateChecklistRequest
	UpdateChecklistRequest     = types.UpdateChecklistRequest
	CreateChecklistItemRequest = types.CreateChecklistItemRequest
	UpdateChecklistItemRequest = types.UpdateChecklistItemRequest
	ContactRequest             = types.ContactRequest
	CalendarEventRequest       = types.CalendarEventRequest
	UploadFileRequest          = types.UploadFileRequest
	CreateConversationRequest  = types.CreateConversationRequest
	SendMessageRequest         = types.SendMessageRequest

	// Responses
	Token         = types.Token
	SearchHit     = types.SearchHit
	SearchResults = types.SearchResults
	Download      = types.Download

	ReportKind = api.ReportKind
)

const (
	RoleAdmin    = types.RoleAdmin
	RoleManager  = types.RoleManager
	RoleExecutor = types.RoleExecutor
)

const (
	ReportDashboard            = api.ReportDashboard
	ReportTasks                = api.ReportTasks
	ReportUsers                = api.ReportUsers
	ReportPerformance          = api.ReportPerformance
	ReportManagerEfficiency    = api.ReportManagerEfficiency
	ReportEmployeeContribution = api.ReportEmployeeContribution
	ReportGanttChart           = api.ReportGanttChart
	ReportFlexibleSummary      = api.ReportFlexibleSummary
)

// ReportKinds lists every report the backend serves.
var ReportKinds = api.ReportKinds
