package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	apierrors "github.com/workdesk/workdesk-client/internal/errors"
	"github.com/workdesk/workdesk-client/internal/types"
)

func TestSearch_BlankQuerySkipsRequest(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank search should not reach the server")
	})
	res, err := Search(context.Background(), rc, "   ")
	if err != nil || res == nil || len(res.Cards) != 0 {
		t.Fatalf("unexpected result: %+v, %v", res, err)
	}
}

func TestSearch_Query(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "roadmap" {
			t.Errorf("unexpected query: %v", r.URL.Query())
		}
		writeJSON(w, http.StatusOK, types.SearchResults{Boards: []types.SearchHit{{ID: 1, Title: "Roadmap", Type: "board"}}})
	})
	res, err := Search(context.Background(), rc, " roadmap ")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(res.Boards) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUnreadNotificationCount(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.UnreadCount{Count: 3})
	})
	n, err := UnreadNotificationCount(context.Background(), rc)
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d, %v", n, err)
	}
}

func TestListEvents_DateRange(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2025-03-01T00:00:00Z" || q.Has("end_date") {
			t.Errorf("unexpected query: %v", q)
		}
		writeJSON(w, http.StatusOK, []types.CalendarEvent{})
	})
	if _, err := ListEvents(context.Background(), rc, start, time.Time{}); err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
}

func TestCreateConversation_DefaultsToDirect(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, types.Conversation{ID: 1, Type: "direct"})
	})
	c, err := CreateConversation(context.Background(), rc, types.CreateConversationRequest{ParticipantIDs: []int{2}})
	if err != nil || c.Type != "direct" {
		t.Fatalf("unexpected conversation: %+v, %v", c, err)
	}
}

func TestGetReport_PassesPayloadThrough(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports/performance" || r.URL.Query().Get("days") != "7" {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"series":[1,2,3]}`))
	})
	rep, err := GetReport(context.Background(), rc, ReportPerformance, map[string]string{"days": "7"})
	if err != nil {
		t.Fatalf("GetReport error: %v", err)
	}
	if string(rep) != `{"series":[1,2,3]}` {
		t.Fatalf("unexpected payload: %s", rep)
	}
}

func TestGetReport_UnknownKind(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown report should not reach the server")
	})
	if _, err := GetReport(context.Background(), rc, ReportKind("bogus"), nil); err == nil {
		t.Fatal("expected error for unknown report")
	}
}

func TestUpdateUser_ValidationDetail(t *testing.T) {
	t.Parallel()
	rc := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "email"}, "msg": "invalid email"}},
		})
	})
	email := "nope"
	_, err := UpdateUser(context.Background(), rc, 1, types.UpdateUserRequest{Email: &email})
	if !apierrors.Is(err, apierrors.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
