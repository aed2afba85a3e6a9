package user

import "github.com/cobaltpay/backoffice/internal/bitflag"

// The permissions a back office user may hold
const (
	// PermissionViewTransactions allows viewing payment, withdrawal and refund transactions
	PermissionViewTransactions bitflag.Flag = 1 << iota
	// PermissionManageTransactions allows changing transaction statuses
	PermissionManageTransactions
	// PermissionViewMerchants allows viewing merchants
	PermissionViewMerchants
	// PermissionManageMerchants allows creating, editing and deleting merchants
	PermissionManageMerchants
	// PermissionViewCommissions allows viewing commission logs and settlements
	PermissionViewCommissions
	// PermissionManageSettlements allows creating and updating commission settlements
	PermissionManageSettlements
	// PermissionViewAccessLogs allows viewing access logs
	PermissionViewAccessLogs
	// PermissionManageUsers allows editing back office users
	PermissionManageUsers
)

// Role represents a named permission preset
type Role struct {
	Name        string            `json:"name"`
	Permissions bitflag.Container `json:"permissions"`
}

// Roles returns the built-in permission presets, ordered from least to most privileged
func Roles() []Role {
	return []Role{
		{
			Name: "viewer",
			Permissions: bitflag.EmptyContainer.With(
				PermissionViewTransactions,
				PermissionViewMerchants,
				PermissionViewCommissions,
			),
		},
		{
			Name: "operator",
			Permissions: bitflag.EmptyContainer.With(
				PermissionViewTransactions,
				PermissionManageTransactions,
				PermissionViewMerchants,
				PermissionViewCommissions,
				PermissionManageSettlements,
			),
		},
		{
			Name: "supervisor",
			Permissions: bitflag.EmptyContainer.With(
				PermissionViewTransactions,
				PermissionManageTransactions,
				PermissionViewMerchants,
				PermissionManageMerchants,
				PermissionViewCommissions,
				PermissionManageSettlements,
				PermissionViewAccessLogs,
				PermissionManageUsers,
			),
		},
	}
}
