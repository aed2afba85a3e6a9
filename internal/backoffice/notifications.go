package backoffice

import (
	"context"
	"encoding/json"

	"github.com/cobaltpay/backoffice/internal/collection"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Notifications is the list container behind the notification drawer
type Notifications struct {
	*collection.Collection[*notification.Notification]
	client *Client
}

// NewNotifications creates the list container for the notification drawer
func NewNotifications(client *Client) *Notifications {
	container := &Notifications{client: client}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *notification.Notification) string { return row.ID.String() },
	)
	return container
}

func (container *Notifications) fetch(ctx context.Context, query paging.Query) ([]*notification.Notification, uint64, error) {
	values := query.Values()
	for name, value := range query.Filters {
		values.Set(name, value)
	}

	raw, total, err := container.client.List(ctx, "/v1/notifications", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*notification.Notification
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetUnreadOnly toggles between showing only unread notifications and all of them
func (container *Notifications) SetUnreadOnly(ctx context.Context, unreadOnly bool) {
	if unreadOnly {
		container.SetFilter(ctx, "read", "false")
	} else {
		container.SetFilter(ctx, "read", "")
	}
}

// UnreadCount retrieves the amount of unread notifications
func (container *Notifications) UnreadCount(ctx context.Context) (uint64, error) {
	raw, err := container.client.Get(ctx, "/v1/notifications/unread_count")
	if err != nil {
		return 0, err
	}
	envelope := struct {
		Count uint64 `json:"count"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0, err
	}
	return envelope.Count, nil
}

// MarkRead marks a single notification as read and refreshes the list
func (container *Notifications) MarkRead(ctx context.Context, id uuid.UUID) error {
	if _, err := container.client.Post(ctx, "/v1/notifications/"+id.String()+"/read", nil); err != nil {
		return err
	}
	container.Refresh(ctx)
	return nil
}

// MarkAllRead marks every notification as read and refreshes the list
func (container *Notifications) MarkAllRead(ctx context.Context) error {
	if _, err := container.client.Post(ctx, "/v1/notifications/read_all", nil); err != nil {
		return err
	}
	container.Refresh(ctx)
	return nil
}

// Delete removes a notification and refreshes the list
func (container *Notifications) Delete(ctx context.Context, id uuid.UUID) error {
	if err := container.client.Delete(ctx, "/v1/notifications/"+id.String()); err != nil {
		return err
	}
	container.Refresh(ctx)
	return nil
}
