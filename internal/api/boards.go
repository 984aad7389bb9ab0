package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListBoards returns boards, optionally including archived ones.
func ListBoards(ctx context.Context, rc *resty.Client, includeArchived bool) ([]types.Board, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	req.SetQueryParam("include_archived", strconv.FormatBool(includeArchived))
	var out []types.Board
	if err := execute(req, "list boards", http.MethodGet, "/boards/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBoard retrieves a board with its columns and cards.
func GetBoard(ctx context.Context, rc *resty.Client, boardID int) (*types.BoardDetail, error) {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var b types.BoardDetail
	if err := execute(req, "get board", http.MethodGet, "/boards/"+itoa(boardID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBoard creates a board.
func CreateBoard(ctx context.Context, rc *resty.Client, in types.CreateBoardRequest) (*types.Board, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var b types.Board
	if err := execute(req.SetBody(in), "create board", http.MethodPost, "/boards/", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBoard patches a board.
func UpdateBoard(ctx context.Context, rc *resty.Client, boardID int, in types.UpdateBoardRequest) (*types.Board, error) {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var b types.Board
	if err := execute(req.SetBody(in), "update board", http.MethodPut, "/boards/"+itoa(boardID), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBoard deletes a board. Backend returns 204 No Content on success.
func DeleteBoard(ctx context.Context, rc *resty.Client, boardID int) error {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete board", http.MethodDelete, "/boards/"+itoa(boardID), nil)
}

// ListColumns returns the columns of a board.
func ListColumns(ctx context.Context, rc *resty.Client, boardID int) ([]types.Column, error) {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.Column
	if err := execute(req, "list columns", http.MethodGet, "/boards/"+itoa(boardID)+"/columns", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateColumn adds a column to a board.
func CreateColumn(ctx context.Context, rc *resty.Client, in types.CreateColumnRequest) (*types.Column, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Column
	if err := execute(req.SetBody(in), "create column", http.MethodPost, "/boards/columns", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateColumn patches a column.
func UpdateColumn(ctx context.Context, rc *resty.Client, columnID int, in types.UpdateColumnRequest) (*types.Column, error) {
	if err := types.ValidateID(columnID, "columnId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var c types.Column
	if err := execute(req.SetBody(in), "update column", http.MethodPut, "/boards/columns/"+itoa(columnID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteColumn deletes a column.
func DeleteColumn(ctx context.Context, rc *resty.Client, columnID int) error {
	if err := types.ValidateID(columnID, "columnId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete column", http.MethodDelete, "/boards/columns/"+itoa(columnID), nil)
}

// ArchiveBoard downloads a zip archive of the board's files.
func ArchiveBoard(ctx context.Context, rc *resty.Client, boardID int) (*types.Download, error) {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	return download(req, "archive board", "/boards/"+itoa(boardID)+"/archive")
}

// ExportBoardPDF downloads the board rendered as PDF.
func ExportBoardPDF(ctx context.Context, rc *resty.Client, boardID int) (*types.Download, error) {
	if err := types.ValidateID(boardID, "boardId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	return download(req, "export board pdf", "/boards/"+itoa(boardID)+"/export-pdf")
}
