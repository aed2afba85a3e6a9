package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/jackc/pgx/v4/pgxpool"
)

// defaultLimit is used whenever a list request does not carry a usable page size
const defaultLimit = 10

// countRows executes the given builder as a COUNT query
func countRows(ctx context.Context, db *pgxpool.Pool, query squirrel.SelectBuilder) (uint64, error) {
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, err
	}
	var n uint64
	if err := db.QueryRow(ctx, sql, vals...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// applyPage applies the sorting and paging window of a list request to the given builder.
// The requested sort key is resolved against the repository's whitelist of sortable columns.
func applyPage(query squirrel.SelectBuilder, page paging.Request, sortable map[string]string, fallback string) squirrel.SelectBuilder {
	limit := page.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return query.
		OrderBy(page.OrderClause(sortable, fallback)).
		Limit(limit).
		Offset(page.Offset())
}
