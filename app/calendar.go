package app

import (
	"context"
	"sort"
	"time"

	client "github.com/workdesk/workdesk-client"
	"golang.org/x/sync/errgroup"
)

// CalendarData is one visible range: events plus the user's cards due in it.
type CalendarData struct {
	Events   []client.CalendarEvent
	DueCards []client.Card
}

// CalendarPage manages calendar events.
type CalendarPage struct{ a *App }

// Calendar returns the calendar controller.
func (a *App) Calendar() CalendarPage { return CalendarPage{a} }

// Load reads events in [start, end] and the user's cards due in that range.
func (p CalendarPage) Load(ctx context.Context, start, end time.Time) (CalendarData, error) {
	var (
		d     CalendarData
		cards []client.Card
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Events, err = p.Events(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		cards, err = p.a.Dashboard().MyCards(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return CalendarData{}, err
	}
	d.DueCards = dueBetween(cards, start, end)
	return d, nil
}

// Events reads the events in range.
func (p CalendarPage) Events(ctx context.Context, start, end time.Time) ([]client.CalendarEvent, error) {
	return read(ctx, p.a, eventsKey(start, end), func(ctx context.Context) ([]client.CalendarEvent, error) {
		return p.a.client.ListEvents(ctx, start, end)
	})
}

// Create adds an event.
func (p CalendarPage) Create(ctx context.Context, req client.CalendarEventRequest) (*client.CalendarEvent, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.CalendarEvent, error) {
		return p.a.client.CreateEvent(ctx, req)
	}, KeyCalendarEvents)
}

// Update edits an event.
func (p CalendarPage) Update(ctx context.Context, eventID int, req client.CalendarEventRequest) (*client.CalendarEvent, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.CalendarEvent, error) {
		return p.a.client.UpdateEvent(ctx, eventID, req)
	}, KeyCalendarEvents)
}

// Delete removes an event.
func (p CalendarPage) Delete(ctx context.Context, eventID int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteEvent(ctx, eventID)
	}, KeyCalendarEvents)
}

// dueBetween keeps open cards whose due date is in [start, end], earliest
// first.
func dueBetween(cards []client.Card, start, end time.Time) []client.Card {
	out := []client.Card{}
	for _, c := range cards {
		if c.DueDate == nil || c.Completed {
			continue
		}
		if c.DueDate.Before(start) || c.DueDate.After(end) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	return out
}
