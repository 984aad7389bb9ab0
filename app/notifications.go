package app

import (
	"context"

	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/querycache"
)

// NotificationsPage lists and clears notifications.
type NotificationsPage struct{ a *App }

// Notifications returns the notifications controller.
func (a *App) Notifications() NotificationsPage { return NotificationsPage{a} }

// List reads notifications.
func (p NotificationsPage) List(ctx context.Context, unreadOnly bool) ([]client.Notification, error) {
	return read(ctx, p.a, notificationsKey(unreadOnly), func(ctx context.Context) ([]client.Notification, error) {
		return p.a.client.ListNotifications(ctx, unreadOnly)
	})
}

// UnreadCount reads the badge count.
func (p NotificationsPage) UnreadCount(ctx context.Context) (int, error) {
	return read(ctx, p.a, unreadCountKey(), func(ctx context.Context) (int, error) {
		return p.a.client.UnreadNotificationCount(ctx)
	})
}

// WatchUnread keeps fn updated with the badge count until the observer is
// closed. With a refetch interval in the cache policy the count is polled.
func (p NotificationsPage) WatchUnread(fn func(count int, err error)) *querycache.Observer {
	return p.a.cache.Observe(unreadCountKey(), func(ctx context.Context) (any, error) {
		return p.a.client.UnreadNotificationCount(ctx)
	}, func(e querycache.Entry) {
		if e.Fetching || e.Stale || e.Status == querycache.StatusIdle || e.Status == querycache.StatusLoading {
			return
		}
		n, _ := querycache.As[int](e)
		fn(n, e.Err)
	})
}

// MarkRead marks one notification read.
func (p NotificationsPage) MarkRead(ctx context.Context, id int) (*client.Notification, error) {
	return mutate(ctx, p.a, func(ctx context.Context) (*client.Notification, error) {
		return p.a.client.MarkNotificationRead(ctx, id)
	}, KeyNotifications)
}

// MarkAllRead marks every notification read.
func (p NotificationsPage) MarkAllRead(ctx context.Context) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.MarkAllNotificationsRead(ctx)
	}, KeyNotifications)
}

// Delete removes a notification.
func (p NotificationsPage) Delete(ctx context.Context, id int) error {
	return exec(ctx, p.a, func(ctx context.Context) error {
		return p.a.client.DeleteNotification(ctx, id)
	}, KeyNotifications)
}
