// Package api maps each backend endpoint to one function. There is no retry,
// caching or business logic here; callers decide what to cache.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/go-resty/resty/v2"
	apierrors "github.com/workdesk/workdesk-client/internal/errors"
	"github.com/workdesk/workdesk-client/internal/types"
)

// newRequest starts a request bound to ctx. Authorization is added by the
// transport underneath resty.
func newRequest(ctx context.Context, rc *resty.Client) (*resty.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rc.R().SetContext(ctx), nil
}

// execute sends req and decodes a JSON body into out when out is non-nil.
func execute(req *resty.Request, op, method, url string, out any) error {
	resp, err := req.Execute(method, url)
	if err != nil {
		return apierrors.NewNetworkError(op, err)
	}
	if !isSuccess(resp.StatusCode()) {
		return apierrors.NewHTTPError(op, resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// download fetches an opaque binary payload.
func download(req *resty.Request, op, url string) (*types.Download, error) {
	resp, err := req.SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return nil, apierrors.NewNetworkError(op, err)
	}
	raw := resp.RawBody()
	defer func() { _ = raw.Close() }()

	data, err := io.ReadAll(raw)
	if err != nil {
		return nil, apierrors.NewNetworkError(op, err)
	}
	if !isSuccess(resp.StatusCode()) {
		return nil, apierrors.NewHTTPError(op, resp.StatusCode(), data)
	}
	return &types.Download{
		Filename:    filenameFrom(resp.Header(), path.Base(url)),
		ContentType: resp.Header().Get("Content-Type"),
		Data:        data,
	}, nil
}

func filenameFrom(h http.Header, fallback string) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	return fallback
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

func itoa(i int) string { return strconv.Itoa(i) }
