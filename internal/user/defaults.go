package user

import (
	"github.com/cobaltpay/backoffice/internal/bitflag"
)

// DefaultPermissions returns the permissions granted to newly registered users
func DefaultPermissions() bitflag.Container {
	return bitflag.EmptyContainer.With(
		PermissionViewTransactions,
		PermissionViewMerchants,
		PermissionViewCommissions,
	)
}
