package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// commissionLogSortable maps the exposed commission log sort keys to their columns
var commissionLogSortable = map[string]string{
	"amount":    "amount",
	"settled":   "settled",
	"createdAt": "created_at",
}

// settlementSortable maps the exposed settlement sort keys to their columns
var settlementSortable = map[string]string{
	"amount":    "amount",
	"status":    "status",
	"createdAt": "created_at",
}

// CommissionRepository implements the commission.Repository interface using PostgreSQL
type CommissionRepository struct {
	db *pgxpool.Pool
}

var _ commission.Repository = (*CommissionRepository)(nil)

// Logs retrieves multiple commission logs following a filter
func (repo *CommissionRepository) Logs(ctx context.Context, filter *commission.LogFilter, page paging.Request) ([]*commission.Log, uint64, error) {
	var conds []squirrel.Sqlizer
	if filter != nil {
		if filter.AgentID != nil {
			conds = append(conds, squirrel.Eq{"agent_id": *filter.AgentID})
		}
		if filter.CurrencyID != nil {
			conds = append(conds, squirrel.Eq{"currency_id": *filter.CurrencyID})
		}
		if filter.Settled != nil {
			conds = append(conds, squirrel.Eq{"settled": *filter.Settled})
		}
		if filter.CreatedAfter != nil {
			conds = append(conds, squirrel.GtOrEq{"created_at": *filter.CreatedAfter})
		}
		if filter.CreatedBefore != nil {
			conds = append(conds, squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
		}
	}

	countQuery := squirrel.Select("COUNT(*)").From("commission_logs")
	listQuery := squirrel.Select("commission_log_id", "agent_id", "transaction_id", "currency_id", "amount", "settled", "created_at").From("commission_logs")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*commission.Log{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, commissionLogSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*commission.Log{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*commission.Log{}
	for rows.Next() {
		obj, err := repo.rowToLog(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// UnsettledLogs retrieves all unsettled commission logs of an agent in a specific currency
func (repo *CommissionRepository) UnsettledLogs(ctx context.Context, agentID, currencyID uuid.UUID) ([]*commission.Log, error) {
	rows, err := repo.db.Query(ctx, "SELECT commission_log_id, agent_id, transaction_id, currency_id, amount, settled, created_at FROM commission_logs WHERE agent_id = $1 AND currency_id = $2 AND NOT settled", agentID, currencyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*commission.Log{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	objs := []*commission.Log{}
	for rows.Next() {
		obj, err := repo.rowToLog(rows)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// UnsettledTotals sums the unsettled commission log amounts, grouped by agent and currency
func (repo *CommissionRepository) UnsettledTotals(ctx context.Context) (map[uuid.UUID][]commission.CurrencyTotal, error) {
	rows, err := repo.db.Query(ctx, "SELECT agent_id, currency_id, SUM(amount) FROM commission_logs WHERE NOT settled GROUP BY agent_id, currency_id")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return map[uuid.UUID][]commission.CurrencyTotal{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	totals := map[uuid.UUID][]commission.CurrencyTotal{}
	for rows.Next() {
		var agentID uuid.UUID
		var total commission.CurrencyTotal
		if err := rows.Scan(&agentID, &total.CurrencyID, &total.Amount); err != nil {
			return nil, err
		}
		totals[agentID] = append(totals[agentID], total)
	}
	return totals, nil
}

// Settlements retrieves multiple settlements following a filter
func (repo *CommissionRepository) Settlements(ctx context.Context, filter *commission.SettlementFilter, page paging.Request) ([]*commission.Settlement, uint64, error) {
	var conds []squirrel.Sqlizer
	if filter != nil {
		if filter.AgentID != nil {
			conds = append(conds, squirrel.Eq{"agent_id": *filter.AgentID})
		}
		if filter.CurrencyID != nil {
			conds = append(conds, squirrel.Eq{"currency_id": *filter.CurrencyID})
		}
		if filter.Status != nil {
			conds = append(conds, squirrel.Eq{"status": *filter.Status})
		}
		if filter.CreatedAfter != nil {
			conds = append(conds, squirrel.GtOrEq{"created_at": *filter.CreatedAfter})
		}
		if filter.CreatedBefore != nil {
			conds = append(conds, squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
		}
	}

	countQuery := squirrel.Select("COUNT(*)").From("settlements")
	listQuery := squirrel.Select("settlement_id", "agent_id", "method_id", "currency_id", "amount", "status", "created_at").From("settlements")
	for _, cond := range conds {
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*commission.Settlement{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, settlementSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*commission.Settlement{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*commission.Settlement{}
	for rows.Next() {
		obj, err := repo.rowToSettlement(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetSettlementByID retrieves a settlement by its ID
func (repo *CommissionRepository) GetSettlementByID(ctx context.Context, id uuid.UUID) (*commission.Settlement, error) {
	row := repo.db.QueryRow(ctx, "SELECT settlement_id, agent_id, method_id, currency_id, amount, status, created_at FROM settlements WHERE settlement_id = $1", id)
	obj, err := repo.rowToSettlement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// CreateSettlement creates a new settlement covering the given commission logs
// and marks them settled. Creation and marking happen in a single transaction.
func (repo *CommissionRepository) CreateSettlement(ctx context.Context, create *commission.SettlementCreate) (*commission.Settlement, error) {
	txn, err := repo.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback(ctx)

	obj := &commission.Settlement{
		ID:         uuid.New(),
		AgentID:    create.AgentID,
		MethodID:   create.MethodID,
		CurrencyID: create.CurrencyID,
		Amount:     create.Amount,
		Status:     commission.SettlementStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = txn.Exec(ctx, "INSERT INTO settlements VALUES ($1, $2, $3, $4, $5, $6, $7)",
		obj.ID, obj.AgentID, obj.MethodID, obj.CurrencyID, obj.Amount, obj.Status, obj.CreatedAt)
	if err != nil {
		return nil, err
	}

	sql, vals, err := squirrel.Update("commission_logs").
		Set("settled", true).
		Set("settlement_id", obj.ID).
		Where(squirrel.Eq{"commission_log_id": create.LogIDs}).
		Where(squirrel.Eq{"settled": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := txn.Exec(ctx, sql, vals...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != int64(len(create.LogIDs)) {
		return nil, commission.ErrLogsAlreadySettled
	}

	if err := txn.Commit(ctx); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateSettlementStatus updates the payout status of an existing settlement
func (repo *CommissionRepository) UpdateSettlementStatus(ctx context.Context, id uuid.UUID, status commission.SettlementStatus) (*commission.Settlement, error) {
	if _, err := repo.db.Exec(ctx, "UPDATE settlements SET status = $1 WHERE settlement_id = $2", status, id); err != nil {
		return nil, err
	}
	return repo.GetSettlementByID(ctx, id)
}

func (repo *CommissionRepository) rowToLog(row pgx.Row) (*commission.Log, error) {
	obj := new(commission.Log)
	if err := row.Scan(&obj.ID, &obj.AgentID, &obj.TransactionID, &obj.CurrencyID, &obj.Amount, &obj.Settled, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}

func (repo *CommissionRepository) rowToSettlement(row pgx.Row) (*commission.Settlement, error) {
	obj := new(commission.Settlement)
	if err := row.Scan(&obj.ID, &obj.AgentID, &obj.MethodID, &obj.CurrencyID, &obj.Amount, &obj.Status, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}
