package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// transactionSortable maps the exposed transaction sort keys to their columns
var transactionSortable = map[string]string{
	"amount":    "amount",
	"status":    "status",
	"reference": "reference",
	"createdAt": "created_at",
}

// TransactionRepository implements the transaction.Repository interface using PostgreSQL
type TransactionRepository struct {
	db *pgxpool.Pool
}

var _ transaction.Repository = (*TransactionRepository)(nil)

// Get retrieves multiple transactions following a filter
func (repo *TransactionRepository) Get(ctx context.Context, filter *transaction.Filter, page paging.Request) ([]*transaction.Transaction, uint64, error) {
	conds := transactionConds(filter)

	countQuery := squirrel.Select("COUNT(*)").From("transactions")
	listQuery := squirrel.Select("transaction_id", "kind", "merchant_id", "method_id", "currency_id", "amount", "reference", "status", "created_at").From("transactions")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*transaction.Transaction{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, transactionSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*transaction.Transaction{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*transaction.Transaction{}
	for rows.Next() {
		obj, err := repo.rowToTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetByID retrieves a transaction by its ID
func (repo *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	row := repo.db.QueryRow(ctx, "SELECT transaction_id, kind, merchant_id, method_id, currency_id, amount, reference, status, created_at FROM transactions WHERE transaction_id = $1", id)
	obj, err := repo.rowToTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new transaction
func (repo *TransactionRepository) Create(ctx context.Context, create *transaction.Create) (*transaction.Transaction, error) {
	obj := &transaction.Transaction{
		ID:         uuid.New(),
		Kind:       create.Kind,
		MerchantID: create.MerchantID,
		MethodID:   create.MethodID,
		CurrencyID: create.CurrencyID,
		Amount:     create.Amount,
		Reference:  create.Reference,
		Status:     transaction.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := repo.db.Exec(ctx, "INSERT INTO transactions VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		obj.ID, obj.Kind, obj.MerchantID, obj.MethodID, obj.CurrencyID, obj.Amount, obj.Reference, obj.Status, obj.CreatedAt)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateStatus updates the status of an existing transaction
func (repo *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) (*transaction.Transaction, error) {
	if _, err := repo.db.Exec(ctx, "UPDATE transactions SET status = $1 WHERE transaction_id = $2", status, id); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

func (repo *TransactionRepository) rowToTransaction(row pgx.Row) (*transaction.Transaction, error) {
	obj := new(transaction.Transaction)
	if err := row.Scan(&obj.ID, &obj.Kind, &obj.MerchantID, &obj.MethodID, &obj.CurrencyID, &obj.Amount, &obj.Reference, &obj.Status, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}

func transactionConds(filter *transaction.Filter) []squirrel.Sqlizer {
	if filter == nil {
		return nil
	}
	var conds []squirrel.Sqlizer
	if filter.Kind != nil {
		conds = append(conds, squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.MerchantID != nil {
		conds = append(conds, squirrel.Eq{"merchant_id": *filter.MerchantID})
	}
	if filter.MethodID != nil {
		conds = append(conds, squirrel.Eq{"method_id": *filter.MethodID})
	}
	if filter.CurrencyID != nil {
		conds = append(conds, squirrel.Eq{"currency_id": *filter.CurrencyID})
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
	}
	// The search box fills both parameters with the same term, so an exact
	// reference match and a substring match are alternatives, not a conjunction
	exact := filter.Reference != nil && *filter.Reference != ""
	fragment := filter.Search != nil && *filter.Search != ""
	switch {
	case exact && fragment:
		conds = append(conds, squirrel.Or{
			squirrel.Eq{"reference": *filter.Reference},
			squirrel.ILike{"reference": "%" + *filter.Search + "%"},
		})
	case exact:
		conds = append(conds, squirrel.Eq{"reference": *filter.Reference})
	case fragment:
		conds = append(conds, squirrel.ILike{"reference": "%" + *filter.Search + "%"})
	}
	if filter.CreatedAfter != nil {
		conds = append(conds, squirrel.GtOrEq{"created_at": *filter.CreatedAfter})
	}
	if filter.CreatedBefore != nil {
		conds = append(conds, squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
	}
	return conds
}
