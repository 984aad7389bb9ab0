package api

import (
	"context"
	"net/http"
	"testing"

	apierrors "github.com/workdesk/workdesk-client/internal/errors"
	"github.com/workdesk/workdesk-client/internal/types"
)

func TestListBoards_IncludeArchivedParam(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("include_archived"); got != "true" {
			t.Errorf("include_archived = %q", got)
		}
		writeJSON(w, http.StatusOK, []types.Board{{ID: 1, Title: "Roadmap"}})
	})

	boards, err := ListBoards(context.Background(), rc, true)
	if err != nil {
		t.Fatalf("ListBoards error: %v", err)
	}
	if len(boards) != 1 || boards[0].Title != "Roadmap" {
		t.Fatalf("unexpected boards: %+v", boards)
	}
}

func TestGetBoard_DecodesColumns(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.BoardDetail{
			Board:   types.Board{ID: 7, Title: "Ops"},
			Columns: []types.Column{{ID: 1, BoardID: 7, Title: "Todo", Cards: []types.Card{{ID: 3, Title: "x"}}}},
		})
	})

	b, err := GetBoard(context.Background(), rc, 7)
	if err != nil {
		t.Fatalf("GetBoard error: %v", err)
	}
	if b.ID != 7 || len(b.Columns) != 1 || len(b.Columns[0].Cards) != 1 {
		t.Fatalf("unexpected board: %+v", b)
	}
}

func TestGetBoard_InputValidation(t *testing.T) {
	t.Parallel()
	called := false
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	if _, err := GetBoard(context.Background(), rc, 0); err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if called {
		t.Fatal("validation failure should not reach the server")
	}
}

func TestDeleteBoard_NoContent(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/boards/4" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := DeleteBoard(context.Background(), rc, 4); err != nil {
		t.Fatalf("DeleteBoard error: %v", err)
	}
}

func TestDeleteBoard_Forbidden(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
	})
	err := DeleteBoard(context.Background(), rc, 4)
	if !apierrors.Is(err, apierrors.Forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestExportBoardPDF_Download(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/2/export-pdf" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="board_2.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	d, err := ExportBoardPDF(context.Background(), rc, 2)
	if err != nil {
		t.Fatalf("ExportBoardPDF error: %v", err)
	}
	if d.Filename != "board_2.pdf" || d.ContentType != "application/pdf" || string(d.Data) != "%PDF-1.4" {
		t.Fatalf("unexpected download: %+v", d)
	}
}

func TestArchiveBoard_ErrorBody(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Board not found"})
	})

	_, err := ArchiveBoard(context.Background(), rc, 9)
	if !apierrors.Is(err, apierrors.NotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if apierrors.Display(err) != "Board not found" {
		t.Fatalf("unexpected message: %q", apierrors.Display(err))
	}
}
