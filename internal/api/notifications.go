package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/workdesk/workdesk-client/internal/types"
)

// ListNotifications returns the caller's notifications.
func ListNotifications(ctx context.Context, rc *resty.Client, unreadOnly bool) ([]types.Notification, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	if unreadOnly {
		req.SetQueryParam("unread_only", strconv.FormatBool(true))
	}
	var out []types.Notification
	if err := execute(req, "list notifications", http.MethodGet, "/notifications/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadNotificationCount returns how many notifications are unread.
func UnreadNotificationCount(ctx context.Context, rc *resty.Client) (int, error) {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return 0, err
	}
	var out types.UnreadCount
	if err := execute(req, "unread notification count", http.MethodGet, "/notifications/unread-count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(ctx context.Context, rc *resty.Client, notificationID int) (*types.Notification, error) {
	if err := types.ValidateID(notificationID, "notificationId"); err != nil {
		return nil, err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	var n types.Notification
	body := map[string]bool{"is_read": true}
	if err := execute(req.SetBody(body), "mark notification read", http.MethodPut, "/notifications/"+itoa(notificationID), &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllNotificationsRead marks every notification of the caller as read.
func MarkAllNotificationsRead(ctx context.Context, rc *resty.Client) error {
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "mark all notifications read", http.MethodPost, "/notifications/mark-all-read", nil)
}

// DeleteNotification deletes a notification.
func DeleteNotification(ctx context.Context, rc *resty.Client, notificationID int) error {
	if err := types.ValidateID(notificationID, "notificationId"); err != nil {
		return err
	}
	req, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	return execute(req, "delete notification", http.MethodDelete, "/notifications/"+itoa(notificationID), nil)
}
