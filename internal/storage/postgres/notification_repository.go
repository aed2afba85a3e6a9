package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// notificationSortable maps the exposed notification sort keys to their columns
var notificationSortable = map[string]string{
	"title":     "title",
	"read":      "read",
	"createdAt": "created_at",
}

// NotificationRepository implements the notification.Repository interface using PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

var _ notification.Repository = (*NotificationRepository)(nil)

// Get retrieves multiple notifications following a filter
func (repo *NotificationRepository) Get(ctx context.Context, filter *notification.Filter, page paging.Request) ([]*notification.Notification, uint64, error) {
	var conds []squirrel.Sqlizer
	if filter != nil {
		if filter.UserID != nil {
			conds = append(conds, squirrel.Eq{"user_id": *filter.UserID})
		}
		if filter.Read != nil {
			conds = append(conds, squirrel.Eq{"read": *filter.Read})
		}
	}

	countQuery := squirrel.Select("COUNT(*)").From("notifications")
	listQuery := squirrel.Select("notification_id", "user_id", "title", "body", "read", "created_at").From("notifications")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*notification.Notification{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, notificationSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*notification.Notification{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*notification.Notification{}
	for rows.Next() {
		obj, err := repo.rowToNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetByID retrieves a notification by its ID
func (repo *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	row := repo.db.QueryRow(ctx, "SELECT notification_id, user_id, title, body, read, created_at FROM notifications WHERE notification_id = $1", id)
	obj, err := repo.rowToNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new notification
func (repo *NotificationRepository) Create(ctx context.Context, create *notification.Create) (*notification.Notification, error) {
	obj := &notification.Notification{
		ID:        uuid.New(),
		UserID:    create.UserID,
		Title:     create.Title,
		Body:      create.Body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := repo.db.Exec(ctx, "INSERT INTO notifications VALUES ($1, $2, $3, $4, $5, $6)",
		obj.ID, obj.UserID, obj.Title, obj.Body, obj.Read, obj.CreatedAt)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// MarkRead marks a single notification as read
func (repo *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	if _, err := repo.db.Exec(ctx, "UPDATE notifications SET read = TRUE WHERE notification_id = $1", id); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// MarkAllRead marks all unread notifications of a user as read and returns the amount of affected rows
func (repo *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := repo.db.Exec(ctx, "UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read", userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountUnread counts the unread notifications of a user
func (repo *NotificationRepository) CountUnread(ctx context.Context, userID string) (uint64, error) {
	var n uint64
	if err := repo.db.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read", userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete deletes a notification by its ID
func (repo *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM notifications WHERE notification_id = $1", id)
	return err
}

func (repo *NotificationRepository) rowToNotification(row pgx.Row) (*notification.Notification, error) {
	obj := new(notification.Notification)
	if err := row.Scan(&obj.ID, &obj.UserID, &obj.Title, &obj.Body, &obj.Read, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}
