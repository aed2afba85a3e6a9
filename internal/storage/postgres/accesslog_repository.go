package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// accessLogSortable maps the exposed access log sort keys to their columns
var accessLogSortable = map[string]string{
	"method":    "method",
	"path":      "path",
	"status":    "status",
	"createdAt": "created_at",
}

// AccessLogRepository implements the accesslog.Repository interface using PostgreSQL
type AccessLogRepository struct {
	db *pgxpool.Pool
}

var _ accesslog.Repository = (*AccessLogRepository)(nil)

// Get retrieves multiple access logs following a filter
func (repo *AccessLogRepository) Get(ctx context.Context, filter *accesslog.Filter, page paging.Request) ([]*accesslog.Log, uint64, error) {
	var conds []squirrel.Sqlizer
	if filter != nil {
		if filter.UserID != nil {
			conds = append(conds, squirrel.Eq{"user_id": *filter.UserID})
		}
		if filter.Method != nil {
			conds = append(conds, squirrel.Eq{"method": *filter.Method})
		}
		if filter.Status != nil {
			conds = append(conds, squirrel.Eq{"status": *filter.Status})
		}
		if filter.Search != nil && *filter.Search != "" {
			conds = append(conds, squirrel.ILike{"path": "%" + *filter.Search + "%"})
		}
		if filter.CreatedAfter != nil {
			conds = append(conds, squirrel.GtOrEq{"created_at": *filter.CreatedAfter})
		}
		if filter.CreatedBefore != nil {
			conds = append(conds, squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
		}
	}

	countQuery := squirrel.Select("COUNT(*)").From("access_logs")
	listQuery := squirrel.Select("access_log_id", "user_id", "method", "path", "status", "ip", "created_at").From("access_logs")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*accesslog.Log{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, accessLogSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*accesslog.Log{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*accesslog.Log{}
	for rows.Next() {
		obj := new(accesslog.Log)
		if err := rows.Scan(&obj.ID, &obj.UserID, &obj.Method, &obj.Path, &obj.Status, &obj.IP, &obj.CreatedAt); err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// CreateMany inserts multiple access logs at once
func (repo *AccessLogRepository) CreateMany(ctx context.Context, logs []*accesslog.Log) error {
	if len(logs) == 0 {
		return nil
	}

	query := squirrel.Insert("access_logs").Columns("access_log_id", "user_id", "method", "path", "status", "ip", "created_at")
	for _, log := range logs {
		query = query.Values(log.ID, log.UserID, log.Method, log.Path, log.Status, log.IP, log.CreatedAt)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(ctx, sql, vals...)
	return err
}
