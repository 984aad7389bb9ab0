package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListFiles returns the files visible to the caller.
func ListFiles(ctx context.Context, rc *resty.Client) ([]types.File, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var out []types.File
	if err := execute(req, "list files", http.MethodGet, "/files/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadFile sends a multipart upload attached to a card.
func UploadFile(ctx context.Context, rc *resty.Client, in types.UploadFileRequest) (*types.File, error) {
	if err := types.ValidateID(in.CardID, "cardId"); err != nil {
		return nil, err
	}
	if in.Filename == "" || in.Content == nil {
		return nil, errMissingFile
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	form := map[string]string{"card_id": itoa(in.CardID)}
	if in.RetentionDays != nil {
		form["retention_days"] = itoa(*in.RetentionDays)
	}
	req.SetFileReader("file", in.Filename, in.Content).SetMultipartFormData(form)

	var f types.File
	if err := execute(req, "upload file", http.MethodPost, "/files/upload", &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DownloadFile fetches the raw contents of a file.
func DownloadFile(ctx context.Context, rc *resty.Client, fileID int) (*types.Download, error) {
	if err := types.ValidateID(fileID, "fileId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	return download(req, "download file", "/files/"+itoa(fileID)+"/download")
}

// DeleteFile deletes a file.
func DeleteFile(ctx context.Context, rc *resty.Client, fileID int) error {
	if err := types.ValidateID(fileID, "fileId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete file", http.MethodDelete, "/files/"+itoa(fileID), nil)
}
