package storage

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/notification"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/cobaltpay/backoffice/internal/user"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Users provides a user repository implementation
	Users() user.Repository

	// Merchants provides a merchant repository implementation
	Merchants() merchant.Repository

	// Transactions provides a transaction repository implementation
	Transactions() transaction.Repository

	// Accounts provides an account transaction repository implementation
	Accounts() account.Repository

	// Commissions provides a commission repository implementation
	Commissions() commission.Repository

	// AccessLogs provides an access log repository implementation
	AccessLogs() accesslog.Repository

	// Notifications provides a notification repository implementation
	Notifications() notification.Repository

	// RefData provides a reference data repository implementation
	RefData() refdata.Repository

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
