package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
)

// BoardsPage lists and manages boards.
type BoardsPage struct{ a *App }

// Boards returns the boards controller.
func (a *App) Boards() BoardsPage { return BoardsPage{a} }

// List reads the board list.
func (p BoardsPage) List(ctx context.Context, includeArchived bool) ([]client.Board, error) {
	return read(ctx, p.a, boardsListKey(includeArchived), func(ctx context.Context) ([]client.Board, error) {
		return p.a.client.ListBoards(ctx, includeArchived)
	})
}

// Create adds a board.
func (p BoardsPage) Create(ctx context.Context, req client.CreateBoardRequest) (*client.Board, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Board, error) {
		return p.a.client.CreateBoard(ctx, req)
	}, KeyBoards)
}

// Delete removes a board.
func (p BoardsPage) Delete(ctx context.Context, boardID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteBoard(ctx, boardID)
	}, KeyBoards)
}

// Archive downloads the zip of every file on the board.
func (p BoardsPage) Archive(ctx context.Context, boardID int) (*client.Download, error) {
	d, err := p.a.client.ArchiveBoard(ctx, boardID)
	if err != nil {
		p.a.Report(err)
	}
	return d, err
}

// ExportPDF downloads the board as a PDF.
func (p BoardsPage) ExportPDF(ctx context.Context, boardID int) (*client.Download, error) {
	d, err := p.a.client.ExportBoardPDF(ctx, boardID)
	if err != nil {
		p.a.Report(err)
	}
	return d, err
}
