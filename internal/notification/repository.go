package notification

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Repository defines the notification repository API
type Repository interface {
	// Get retrieves multiple notifications following a filter
	Get(ctx context.Context, filter *Filter, page paging.Request) ([]*Notification, uint64, error)

	// GetByID retrieves a notification by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// Create creates a new notification
	Create(ctx context.Context, create *Create) (*Notification, error)

	// MarkRead marks a single notification as read
	MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error)

	// MarkAllRead marks all unread notifications of a user as read and returns the amount of affected rows
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// CountUnread counts the unread notifications of a user
	CountUnread(ctx context.Context, userID string) (uint64, error)

	// Delete deletes a notification by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter is used to query notifications based on a filter.
// All set fields are combined with logical AND.
type Filter struct {
	UserID *string
	Read   *bool
}

// Create is used to create a new notification
type Create struct {
	UserID string
	Title  string
	Body   string
}
