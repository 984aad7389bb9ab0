package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListEvents returns calendar events within [start, end]. Zero times are
// not sent.
func ListEvents(ctx context.Context, rc *resty.Client, start, end time.Time) ([]types.CalendarEvent, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() {
		req.SetQueryParam("start_date", start.UTC().Format(time.RFC3339))
	}
	if !end.IsZero() {
		req.SetQueryParam("end_date", end.UTC().Format(time.RFC3339))
	}
	var out []types.CalendarEvent
	if err := execute(req, "list events", http.MethodGet, "/calendar/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent retrieves one event.
func GetEvent(ctx context.Context, rc *resty.Client, eventID int) (*types.CalendarEvent, error) {
	if err := types.ValidateID(eventID, "eventId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var e types.CalendarEvent
	if err := execute(req, "get event", http.MethodGet, "/calendar/"+itoa(eventID), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEvent creates a calendar event.
func CreateEvent(ctx context.Context, rc *resty.Client, in types.CalendarEventRequest) (*types.CalendarEvent, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var e types.CalendarEvent
	if err := execute(req.SetBody(in), "create event", http.MethodPost, "/calendar/", &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEvent replaces an event's fields.
func UpdateEvent(ctx context.Context, rc *resty.Client, eventID int, in types.CalendarEventRequest) (*types.CalendarEvent, error) {
	if err := types.ValidateID(eventID, "eventId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var e types.CalendarEvent
	if err := execute(req.SetBody(in), "update event", http.MethodPut, "/calendar/"+itoa(eventID), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEvent deletes an event.
func DeleteEvent(ctx context.Context, rc *resty.Client, eventID int) error {
	if err := types.ValidateID(eventID, "eventId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete event", http.MethodDelete, "/calendar/"+itoa(eventID), nil)
}
