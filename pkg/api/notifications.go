package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Notification is one in-app notification.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Icon      string         `json:"icon,omitempty"`
	ActionURL string         `json:"action_url,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationsPage is one page of the notification feed.
type NotificationsPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
	Total         int            `json:"total"`
}

// Notifications returns a page of the feed, newest first. When unreadOnly is
// set, read notifications are filtered out.
func (c *Client) Notifications(ctx context.Context, limit, offset int, unreadOnly bool) (*NotificationsPage, error) {
	if limit <= 0 {
		limit = 50
	}
	path := fmt.Sprintf("/api/notifications?limit=%d&offset=%d&unread_only=%t", limit, offset, unreadOnly)

	var out NotificationsPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/notifications/"+notificationID+"/read", nil, nil)
}

// MarkAllNotificationsRead marks the whole feed as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/notifications/mark-all-read", nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/notifications/"+notificationID, nil, nil)
}

// DeleteReadNotifications removes every read notification.
func (c *Client) DeleteReadNotifications(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/notifications/delete-all-read", nil, nil)
}
