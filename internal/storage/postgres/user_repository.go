package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/bitflag"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// userSortable maps the exposed user sort keys to their columns
var userSortable = map[string]string{
	"displayName": "display_name",
	"email":       "email",
}

// UserRepository implements the user.Repository interface using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ user.Repository = (*UserRepository)(nil)

// Get retrieves multiple users
func (repo *UserRepository) Get(ctx context.Context, page paging.Request) ([]*user.User, uint64, error) {
	n, err := countRows(ctx, repo.db, squirrel.Select("COUNT(*)").From("users"))
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return []*user.User{}, 0, nil
	}

	listQuery := squirrel.Select("user_id", "display_name", "email", "permissions", "restricted", "admin").From("users")
	sql, vals, err := applyPage(listQuery, page, userSortable, "display_name").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := repo.db.Query(ctx, sql, vals...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*user.User{}, n, nil
		}
		return nil, 0, err
	}
	defer rows.Close()

	objs := []*user.User{}
	for rows.Next() {
		obj, err := repo.rowToUser(rows)
		if err != nil {
			return nil, 0, err
		}
		objs = append(objs, obj)
	}
	return objs, n, nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := repo.db.QueryRow(ctx, "SELECT user_id, display_name, email, permissions, restricted, admin FROM users WHERE user_id = $1", id)
	obj, err := repo.rowToUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	obj := &user.User{
		ID:          create.ID,
		DisplayName: create.DisplayName,
		Email:       create.Email,
		Permissions: create.Permissions,
	}
	_, err := repo.db.Exec(ctx, "INSERT INTO users VALUES ($1, $2, $3, $4, $5, $6)",
		obj.ID, obj.DisplayName, obj.Email, uint(obj.Permissions), obj.Restricted, obj.Admin)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Update updates an existing user
func (repo *UserRepository) Update(ctx context.Context, id string, update *user.Update) (*user.User, error) {
	query := squirrel.Update("users").Where(squirrel.Eq{"user_id": id})
	if update.DisplayName != nil {
		query = query.Set("display_name", *update.DisplayName)
	}
	if update.Permissions != nil {
		query = query.Set("permissions", uint(*update.Permissions))
	}
	if update.Restricted != nil {
		query = query.Set("restricted", *update.Restricted)
	}
	if update.Admin != nil {
		query = query.Set("admin", *update.Admin)
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

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM users WHERE user_id = $1", id)
	return err
}

func (repo *UserRepository) rowToUser(row pgx.Row) (*user.User, error) {
	obj := new(user.User)
	var permissions int64
	if err := row.Scan(&obj.ID, &obj.DisplayName, &obj.Email, &permissions, &obj.Restricted, &obj.Admin); err != nil {
		return nil, err
	}
	obj.Permissions = bitflag.Container(permissions)
	return obj, nil
}
