package cache

import (
	"context"
	"time"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/hashmap"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/cobaltpay/backoffice/internal/storage"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/google/uuid"
)

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching.
// Only users, merchants and reference data are cached; the transactional repositories pass straight through.
type Driver struct {
	underlying storage.Driver
	users      *UserRepository
	merchants  *MerchantRepository
	refData    *RefDataRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver
func New(underlying storage.Driver) *Driver {
	return &Driver{
		underlying: underlying,
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	userCache := hashmap.NewExpiring[string, *user.User](5 * time.Minute)
	userCache.ScheduleCleanupTask(10 * time.Second)
	driver.users = &UserRepository{
		repo:  driver.underlying.Users(),
		cache: userCache,
	}

	merchantCache := hashmap.NewExpiring[uuid.UUID, *merchant.Merchant](5 * time.Minute)
	merchantCache.ScheduleCleanupTask(10 * time.Second)
	driver.merchants = &MerchantRepository{
		repo:  driver.underlying.Merchants(),
		cache: merchantCache,
	}

	refDataCache := hashmap.NewExpiring[string, any](time.Hour)
	refDataCache.ScheduleCleanupTask(time.Minute)
	driver.refData = &RefDataRepository{
		repo:  driver.underlying.RefData(),
		cache: refDataCache,
	}

	return nil
}

// Users provides the caching user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Merchants provides the caching merchant repository implementation
func (driver *Driver) Merchants() merchant.Repository {
	return driver.merchants
}

// Transactions provides the underlying transaction repository implementation
func (driver *Driver) Transactions() transaction.Repository {
	return driver.underlying.Transactions()
}

// Accounts provides the underlying account transaction repository implementation
func (driver *Driver) Accounts() account.Repository {
	return driver.underlying.Accounts()
}

// Commissions provides the underlying commission repository implementation
func (driver *Driver) Commissions() commission.Repository {
	return driver.underlying.Commissions()
}

// AccessLogs provides the underlying access log repository implementation
func (driver *Driver) AccessLogs() accesslog.Repository {
	return driver.underlying.AccessLogs()
}

// Notifications provides the underlying notification repository implementation
func (driver *Driver) Notifications() notification.Repository {
	return driver.underlying.Notifications()
}

// RefData provides the caching reference data repository implementation
func (driver *Driver) RefData() refdata.Repository {
	return driver.refData
}

// Close closes the caching repositories and disposes their instances
func (driver *Driver) Close() {
	driver.users.cache.StopCleanupTask()
	driver.users = nil
	driver.merchants.cache.StopCleanupTask()
	driver.merchants = nil
	driver.refData.cache.StopCleanupTask()
	driver.refData = nil
}
