package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/cobaltpay/backoffice/internal/storage"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL storage driver implementation
type Driver struct {
	dsn           string
	db            *pgxpool.Pool
	users         *UserRepository
	merchants     *MerchantRepository
	transactions  *TransactionRepository
	accounts      *AccountRepository
	commissions   *CommissionRepository
	accessLogs    *AccessLogRepository
	notifications *NotificationRepository
	refData       *RefDataRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty PostgreSQL storage driver.
// Use Initialize to open the database connection and initialize the repository implementations.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection, migrates the database and initializes the repository implementations
func (driver *Driver) Initialize(ctx context.Context) error {
	// Perform SQL migrations
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	// Initialize the database connection pool
	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return err
	}
	driver.db = pool

	// Initialize the repository implementations
	driver.users = &UserRepository{db: pool}
	driver.merchants = &MerchantRepository{db: pool}
	driver.transactions = &TransactionRepository{db: pool}
	driver.accounts = &AccountRepository{db: pool}
	driver.commissions = &CommissionRepository{db: pool}
	driver.accessLogs = &AccessLogRepository{db: pool}
	driver.notifications = &NotificationRepository{db: pool}
	driver.refData = &RefDataRepository{db: pool}

	return nil
}

// Users provides the PostgreSQL user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Merchants provides the PostgreSQL merchant repository implementation
func (driver *Driver) Merchants() merchant.Repository {
	return driver.merchants
}

// Transactions provides the PostgreSQL transaction repository implementation
func (driver *Driver) Transactions() transaction.Repository {
	return driver.transactions
}

// Accounts provides the PostgreSQL account transaction repository implementation
func (driver *Driver) Accounts() account.Repository {
	return driver.accounts
}

// Commissions provides the PostgreSQL commission repository implementation
func (driver *Driver) Commissions() commission.Repository {
	return driver.commissions
}

// AccessLogs provides the PostgreSQL access log repository implementation
func (driver *Driver) AccessLogs() accesslog.Repository {
	return driver.accessLogs
}

// Notifications provides the PostgreSQL notification repository implementation
func (driver *Driver) Notifications() notification.Repository {
	return driver.notifications
}

// RefData provides the PostgreSQL reference data repository implementation
func (driver *Driver) RefData() refdata.Repository {
	return driver.refData
}

// Close discards the repository implementations and closes the database connection
func (driver *Driver) Close() {
	driver.users = nil
	driver.merchants = nil
	driver.transactions = nil
	driver.accounts = nil
	driver.commissions = nil
	driver.accessLogs = nil
	driver.notifications = nil
	driver.refData = nil

	driver.db.Close()
	driver.db = nil
}
