package postgres

import (
	"context"
	"errors"

	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RefDataRepository implements the refdata.Repository interface using PostgreSQL
type RefDataRepository struct {
	db *pgxpool.Pool
}

var _ refdata.Repository = (*RefDataRepository)(nil)

// Banks retrieves all banks
func (repo *RefDataRepository) Banks(ctx context.Context) ([]*refdata.Bank, error) {
	rows, err := repo.db.Query(ctx, "SELECT bank_id, name, code FROM banks ORDER BY name")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*refdata.Bank{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	objs := []*refdata.Bank{}
	for rows.Next() {
		obj := new(refdata.Bank)
		if err := rows.Scan(&obj.ID, &obj.Name, &obj.Code); err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Currencies retrieves all currencies
func (repo *RefDataRepository) Currencies(ctx context.Context) ([]*refdata.Currency, error) {
	rows, err := repo.db.Query(ctx, "SELECT currency_id, code, exponent FROM currencies ORDER BY code")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*refdata.Currency{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	objs := []*refdata.Currency{}
	for rows.Next() {
		obj := new(refdata.Currency)
		if err := rows.Scan(&obj.ID, &obj.Code, &obj.Exponent); err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Methods retrieves all payment and settlement methods
func (repo *RefDataRepository) Methods(ctx context.Context) ([]*refdata.Method, error) {
	rows, err := repo.db.Query(ctx, "SELECT method_id, name, currency_id, min_settlement_amount FROM methods ORDER BY name")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*refdata.Method{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	objs := []*refdata.Method{}
	for rows.Next() {
		obj := new(refdata.Method)
		if err := rows.Scan(&obj.ID, &obj.Name, &obj.CurrencyID, &obj.MinSettlementAmount); err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// GetMethodByID retrieves a single method by its ID
func (repo *RefDataRepository) GetMethodByID(ctx context.Context, id uuid.UUID) (*refdata.Method, error) {
	obj := new(refdata.Method)
	err := repo.db.QueryRow(ctx, "SELECT method_id, name, currency_id, min_settlement_amount FROM methods WHERE method_id = $1", id).
		Scan(&obj.ID, &obj.Name, &obj.CurrencyID, &obj.MinSettlementAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}
