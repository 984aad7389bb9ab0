package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListCards returns cards matching the filter.
func ListCards(ctx context.Context, rc *resty.Client, p types.ListCardsParams) ([]types.Card, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if p.ColumnID > 0 {
		req.SetQueryParam("column_id", itoa(p.ColumnID))
	}
	if p.BoardID > 0 {
		req.SetQueryParam("board_id", itoa(p.BoardID))
	}
	if p.AssignedToMe {
		req.SetQueryParam("assigned_to_me", strconv.FormatBool(true))
	}
	if p.Skip > 0 {
		req.SetQueryParam("skip", itoa(p.Skip))
	}
	if p.Limit > 0 {
		req.SetQueryParam("limit", itoa(p.Limit))
	}
	var out []types.Card
	if err := execute(req, "list cards", http.MethodGet, "/cards/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCard retrieves one card.
func GetCard(ctx context.Context, rc *resty.Client, cardID int) (*types.Card, error) {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Card
	if err := execute(req, "get card", http.MethodGet, "/cards/"+itoa(cardID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCard creates a card in a column.
func CreateCard(ctx context.Context, rc *resty.Client, in types.CreateCardRequest) (*types.Card, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if in.AssigneeIDs == nil {
		in.AssigneeIDs = []int{}
	}
	var c types.Card
	if err := execute(req.SetBody(in), "create card", http.MethodPost, "/cards/", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCard patches a card.
func UpdateCard(ctx context.Context, rc *resty.Client, cardID int, in types.UpdateCardRequest) (*types.Card, error) {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Card
	if err := execute(req.SetBody(in), "update card", http.MethodPut, "/cards/"+itoa(cardID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MoveCard moves a card to another column or position.
func MoveCard(ctx context.Context, rc *resty.Client, cardID int, in types.MoveCardRequest) (*types.Card, error) {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Card
	if err := execute(req.SetBody(in), "move card", http.MethodPost, "/cards/"+itoa(cardID)+"/move", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCard deletes a card without confirmation.
func DeleteCard(ctx context.Context, rc *resty.Client, cardID int) error {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete card", http.MethodDelete, "/cards/"+itoa(cardID), nil)
}

// DeleteCardWithConfirm deletes a card after the backend re-checks the
// caller's password.
func DeleteCardWithConfirm(ctx context.Context, rc *resty.Client, cardID int, password string) error {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	body := map[string]string{"password": password}
	return execute(req.SetBody(body), "delete card", http.MethodPost, "/cards/"+itoa(cardID)+"/delete", nil)
}

// ListComments returns the comments on a card.
func ListComments(ctx context.Context, rc *resty.Client, cardID int) ([]types.Comment, error) {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.Comment
	if err := execute(req, "list comments", http.MethodGet, "/cards/"+itoa(cardID)+"/comments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment adds a comment to a card.
func CreateComment(ctx context.Context, rc *resty.Client, in types.CreateCommentRequest) (*types.Comment, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Comment
	if err := execute(req.SetBody(in), "create comment", http.MethodPost, "/cards/comments", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCommentStatus changes a comment's review status.
func UpdateCommentStatus(ctx context.Context, rc *resty.Client, commentID int, in types.CommentStatusRequest) (*types.Comment, error) {
	if err := types.ValidateID(commentID, "commentId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Comment
	if err := execute(req.SetBody(in), "update comment status", http.MethodPut, "/cards/comments/"+itoa(commentID)+"/status", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChecklists returns the checklists of a card.
func ListChecklists(ctx context.Context, rc *resty.Client, cardID int) ([]types.Checklist, error) {
	if err := types.ValidateID(cardID, "cardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.Checklist
	if err := execute(req, "list checklists", http.MethodGet, "/cards/"+itoa(cardID)+"/checklists", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateChecklist adds a checklist to a card.
func CreateChecklist(ctx context.Context, rc *resty.Client, in types.CreateChecklistRequest) (*types.Checklist, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Checklist
	if err := execute(req.SetBody(in), "create checklist", http.MethodPost, "/cards/checklists", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateChecklist renames a checklist.
func UpdateChecklist(ctx context.Context, rc *resty.Client, checklistID int, in types.UpdateChecklistRequest) (*types.Checklist, error) {
	if err := types.ValidateID(checklistID, "checklistId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Checklist
	if err := execute(req.SetBody(in), "update checklist", http.MethodPut, "/cards/checklists/"+itoa(checklistID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteChecklist deletes a checklist.
func DeleteChecklist(ctx context.Context, rc *resty.Client, checklistID int) error {
	if err := types.ValidateID(checklistID, "checklistId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete checklist", http.MethodDelete, "/cards/checklists/"+itoa(checklistID), nil)
}

// CreateChecklistItem adds an item to a checklist.
func CreateChecklistItem(ctx context.Context, rc *resty.Client, in types.CreateChecklistItemRequest) (*types.ChecklistItem, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var it types.ChecklistItem
	if err := execute(req.SetBody(in), "create checklist item", http.MethodPost, "/cards/checklist-items", &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateChecklistItem patches a checklist item.
func UpdateChecklistItem(ctx context.Context, rc *resty.Client, itemID int, in types.UpdateChecklistItemRequest) (*types.ChecklistItem, error) {
	if err := types.ValidateID(itemID, "itemId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var it types.ChecklistItem
	if err := execute(req.SetBody(in), "update checklist item", http.MethodPut, "/cards/checklist-items/"+itoa(itemID), &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// DeleteChecklistItem deletes a checklist item.
func DeleteChecklistItem(ctx context.Context, rc *resty.Client, itemID int) error {
	if err := types.ValidateID(itemID, "itemId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete checklist item", http.MethodDelete, "/cards/checklist-items/"+itoa(itemID), nil)
}
