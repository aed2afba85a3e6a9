package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// merchantSortable maps the exposed merchant sort keys to their columns
var merchantSortable = map[string]string{
	"name":      "name",
	"email":     "email",
	"status":    "status",
	"createdAt": "created_at",
}

// MerchantRepository implements the merchant.Repository interface using PostgreSQL
type MerchantRepository struct {
	db *pgxpool.Pool
}

var _ merchant.Repository = (*MerchantRepository)(nil)

// Get retrieves multiple merchants following a filter
func (repo *MerchantRepository) Get(ctx context.Context, filter *merchant.Filter, page paging.Request) ([]*merchant.Merchant, uint64, error) {
	countQuery := squirrel.Select("COUNT(*)").From("merchants")
	listQuery := squirrel.Select("merchant_id", "name", "email", "status", "created_at").From("merchants")

	if filter != nil {
		if filter.Status != nil {
			countQuery = countQuery.Where(squirrel.Eq{"status": *filter.Status})
			listQuery = listQuery.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.Search != nil && *filter.Search != "" {
			search := squirrel.Or{
				squirrel.ILike{"name": "%" + *filter.Search + "%"},
				squirrel.ILike{"email": "%" + *filter.Search + "%"},
			}
			countQuery = countQuery.Where(search)
			listQuery = listQuery.Where(search)
		}
	}

	n, err := countRows(ctx, repo.db, countQuery)
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*merchant.Merchant{}, 0, nil
	}

	sql, vals, err := applyPage(listQuery, page, merchantSortable, "created_at").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*merchant.Merchant{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*merchant.Merchant{}
	for rows.Next() {
		obj, err := repo.rowToMerchant(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetByID retrieves a merchant by its ID
func (repo *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*merchant.Merchant, error) {
	row := repo.db.QueryRow(ctx, "SELECT merchant_id, name, email, status, created_at FROM merchants WHERE merchant_id = $1", id)
	obj, err := repo.rowToMerchant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new merchant
func (repo *MerchantRepository) Create(ctx context.Context, create *merchant.Create) (*merchant.Merchant, error) {
	obj := &merchant.Merchant{
		ID:        uuid.New(),
		Name:      create.Name,
		Email:     create.Email,
		Status:    merchant.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	_, err := repo.db.Exec(ctx, "INSERT INTO merchants VALUES ($1, $2, $3, $4, $5)",
		obj.ID, obj.Name, obj.Email, obj.Status, obj.CreatedAt)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Update updates an existing merchant
func (repo *MerchantRepository) Update(ctx context.Context, id uuid.UUID, update *merchant.Update) (*merchant.Merchant, error) {
	query := squirrel.Update("merchants").Where(squirrel.Eq{"merchant_id": id})
	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.Status != nil {
		query = query.Set("status", *update.Status)
	}

	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := repo.db.Exec(ctx, sql, vals...); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// Delete deletes a merchant by its ID
func (repo *MerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM merchants WHERE merchant_id = $1", id)
	return err
}

func (repo *MerchantRepository) rowToMerchant(row pgx.Row) (*merchant.Merchant, error) {
	obj := new(merchant.Merchant)
	if err := row.Scan(&obj.ID, &obj.Name, &obj.Email, &obj.Status, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}
