package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
)

// FilesPage lists and manages uploaded files.
type FilesPage struct{ a *App }

// Files returns the files controller.
func (a *App) Files() FilesPage { return FilesPage{a} }

// List reads every file visible to the user.
func (p FilesPage) List(ctx context.Context) ([]client.File, error) {
	return read(ctx, p.a, KeyFiles, func(ctx context.Context) ([]client.File, error) {
		return p.a.client.ListFiles(ctx)
	})
}

// Download fetches a file's bytes.
func (p FilesPage) Download(ctx context.Context, fileID int) (*client.Download, error) {
	d, err := p.a.client.DownloadFile(ctx, fileID)
	if err != nil {
		p.a.Report(err)
	}
	return d, err
}

// Delete removes a file; boards show attachments, so every board detail is
// refreshed.
func (p FilesPage) Delete(ctx context.Context, fileID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteFile(ctx, fileID)
	}, KeyFiles, KeyBoards.With("detail"))
}
