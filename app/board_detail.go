package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/querycache"
)

// BoardDetailData is the board view: columns with cards plus the users that
// can be assigned.
type BoardDetailData struct {
	Board *client.BoardDetail
	Users []client.User
}

// BoardDetailPage manages one board, its columns, cards, comments,
// checklists and attachments.
type BoardDetailPage struct {
	a  *App
	id int
}

// BoardDetail returns the controller for board id.
func (a *App) BoardDetail(id int) BoardDetailPage { return BoardDetailPage{a: a, id: id} }

func (p BoardDetailPage) key() querycache.Key { return boardDetailKey(p.id) }

// Load reads the board and, for admins, the assignable users.
func (p BoardDetailPage) Load(ctx context.Context) (BoardDetailData, error) {
	b, err := read(ctx, p.a, p.key(), func(ctx context.Context) (*client.BoardDetail, error) {
		return p.a.client.GetBoard(ctx, p.id)
	})
	if err != nil {
		return BoardDetailData{}, err
	}
	d := BoardDetailData{Board: b}
	if p.a.requireRole(client.RoleAdmin) == nil {
		users, err := p.a.Admin().Users(ctx, "")
		if err != nil {
			return BoardDetailData{}, err
		}
		d.Users = users
	}
	return d, nil
}

// UpdateBoard edits the board itself; the board list shows the change too.
func (p BoardDetailPage) UpdateBoard(ctx context.Context, req client.UpdateBoardRequest) (*client.Board, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Board, error) {
		return p.a.client.UpdateBoard(ctx, p.id, req)
	}, KeyBoards)
}

// ------------------------------
// Columns
// ------------------------------

// CreateColumn adds a column to this board.
func (p BoardDetailPage) CreateColumn(ctx context.Context, title string, position int) (*client.Column, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Column, error) {
		return p.a.client.CreateColumn(ctx, client.CreateColumnRequest{BoardID: p.id, Title: title, Position: position})
	}, p.key())
}

// UpdateColumn renames or moves a column.
func (p BoardDetailPage) UpdateColumn(ctx context.Context, columnID int, req client.UpdateColumnRequest) (*client.Column, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Column, error) {
		return p.a.client.UpdateColumn(ctx, columnID, req)
	}, p.key())
}

// DeleteColumn removes a column.
func (p BoardDetailPage) DeleteColumn(ctx context.Context, columnID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteColumn(ctx, columnID)
	}, p.key())
}

// ------------------------------
// Cards
// ------------------------------

// CreateCard adds a card; the assignee's card list changes too.
func (p BoardDetailPage) CreateCard(ctx context.Context, req client.CreateCardRequest) (*client.Card, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Card, error) {
		return p.a.client.CreateCard(ctx, req)
	}, p.key(), KeyCards)
}

// UpdateCard edits a card.
func (p BoardDetailPage) UpdateCard(ctx context.Context, cardID int, req client.UpdateCardRequest) (*client.Card, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Card, error) {
		return p.a.client.UpdateCard(ctx, cardID, req)
	}, p.key(), KeyCards)
}

// MoveCard drops a card into a column at position.
func (p BoardDetailPage) MoveCard(ctx context.Context, cardID, columnID, position int) (*client.Card, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Card, error) {
		return p.a.client.MoveCard(ctx, cardID, client.MoveCardRequest{ColumnID: columnID, Position: position})
	}, p.key())
}

// DeleteCard removes a card after the backend checks password.
func (p BoardDetailPage) DeleteCard(ctx context.Context, cardID int, password string) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteCardWithConfirm(ctx, cardID, password)
	}, p.key(), KeyCards)
}

// UploadFile attaches a file to a card on this board.
func (p BoardDetailPage) UploadFile(ctx context.Context, req client.UploadFileRequest) (*client.File, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.File, error) {
		return p.a.client.UploadFile(ctx, req)
	}, p.key(), KeyFiles)
}

// ------------------------------
// Comments
// ------------------------------

// Comments reads a card's comments.
func (p BoardDetailPage) Comments(ctx context.Context, cardID int) ([]client.Comment, error) {
	return read(ctx, p.a, commentsKey(cardID), func(ctx context.Context) ([]client.Comment, error) {
		return p.a.client.ListComments(ctx, cardID)
	})
}

// AddComment posts a comment; the board shows comment counts.
func (p BoardDetailPage) AddComment(ctx context.Context, cardID int, content string) (*client.Comment, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Comment, error) {
		return p.a.client.CreateComment(ctx, client.CreateCommentRequest{CardID: cardID, Content: content})
	}, commentsKey(cardID), p.key())
}

// SetCommentStatus approves or rejects a comment.
func (p BoardDetailPage) SetCommentStatus(ctx context.Context, cardID, commentID int, req client.CommentStatusRequest) (*client.Comment, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Comment, error) {
		return p.a.client.UpdateCommentStatus(ctx, commentID, req)
	}, commentsKey(cardID))
}

// ------------------------------
// Checklists
// ------------------------------

// Checklists reads a card's checklists.
func (p BoardDetailPage) Checklists(ctx context.Context, cardID int) ([]client.Checklist, error) {
	return read(ctx, p.a, checklistsKey(cardID), func(ctx context.Context) ([]client.Checklist, error) {
		return p.a.client.ListChecklists(ctx, cardID)
	})
}

// CreateChecklist adds a checklist to a card.
func (p BoardDetailPage) CreateChecklist(ctx context.Context, cardID int, title string) (*client.Checklist, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Checklist, error) {
		return p.a.client.CreateChecklist(ctx, client.CreateChecklistRequest{CardID: cardID, Title: title})
	}, checklistsKey(cardID))
}

// RenameChecklist changes a checklist title.
func (p BoardDetailPage) RenameChecklist(ctx context.Context, cardID, checklistID int, title string) (*client.Checklist, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Checklist, error) {
		return p.a.client.UpdateChecklist(ctx, checklistID, client.UpdateChecklistRequest{Title: &title})
	}, checklistsKey(cardID))
}

// DeleteChecklist removes a checklist.
func (p BoardDetailPage) DeleteChecklist(ctx context.Context, cardID, checklistID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteChecklist(ctx, checklistID)
	}, checklistsKey(cardID))
}

// AddChecklistItem appends an item.
func (p BoardDetailPage) AddChecklistItem(ctx context.Context, cardID int, req client.CreateChecklistItemRequest) (*client.ChecklistItem, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.ChecklistItem, error) {
		return p.a.client.CreateChecklistItem(ctx, req)
	}, checklistsKey(cardID))
}

// UpdateChecklistItem edits or ticks an item.
func (p BoardDetailPage) UpdateChecklistItem(ctx context.Context, cardID, itemID int, req client.UpdateChecklistItemRequest) (*client.ChecklistItem, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.ChecklistItem, error) {
		return p.a.client.UpdateChecklistItem(ctx, itemID, req)
	}, checklistsKey(cardID))
}

// DeleteChecklistItem removes an item.
func (p BoardDetailPage) DeleteChecklistItem(ctx context.Context, cardID, itemID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteChecklistItem(ctx, itemID)
	}, checklistsKey(cardID))
}
