package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// accountSortable maps the exposed account transaction sort keys to their columns
var accountSortable = map[string]string{
	"amount":       "amount",
	"balanceAfter": "balance_after",
	"createdAt":    "created_at",
}

// AccountRepository implements the account.Repository interface using PostgreSQL
type AccountRepository struct {
	db *pgxpool.Pool
}

var _ account.Repository = (*AccountRepository)(nil)

// Get retrieves multiple account transactions following a filter
func (repo *AccountRepository) Get(ctx context.Context, filter *account.Filter, page paging.Request) ([]*account.Transaction, uint64, error) {
	var conds []squirrel.Sqlizer
	if filter != nil {
		if filter.MerchantID != nil {
			conds = append(conds, squirrel.Eq{"merchant_id": *filter.MerchantID})
		}
		if filter.CurrencyID != nil {
			conds = append(conds, squirrel.Eq{"currency_id": *filter.CurrencyID})
		}
		if filter.Kind != nil {
			conds = append(conds, squirrel.Eq{"kind": *filter.Kind})
		}
		if filter.Search != nil && *filter.Search != "" {
			conds = append(conds, squirrel.ILike{"reference": "%" + *filter.Search + "%"})
		}
		if filter.CreatedAfter != nil {
			conds = append(conds, squirrel.GtOrEq{"created_at": *filter.CreatedAfter})
		}
		if filter.CreatedBefore != nil {
			conds = append(conds, squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
		}
	}

	countQuery := squirrel.Select("COUNT(*)").From("account_transactions")
	listQuery := squirrel.Select("account_transaction_id", "merchant_id", "currency_id", "kind", "amount", "balance_after", "reference", "created_at").From("account_transactions")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*account.Transaction{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, accountSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*account.Transaction{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*account.Transaction{}
	for rows.Next() {
		obj, err := repo.rowToTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetByID retrieves an account transaction by its ID
func (repo *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Transaction, error) {
	row := repo.db.QueryRow(ctx, "SELECT account_transaction_id, merchant_id, currency_id, kind, amount, balance_after, reference, created_at FROM account_transactions WHERE account_transaction_id = $1", id)
	obj, err := repo.rowToTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

func (repo *AccountRepository) rowToTransaction(row pgx.Row) (*account.Transaction, error) {
	obj := new(account.Transaction)
	if err := row.Scan(&obj.ID, &obj.MerchantID, &obj.CurrencyID, &obj.Kind, &obj.Amount, &obj.BalanceAfter, &obj.Reference, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}
