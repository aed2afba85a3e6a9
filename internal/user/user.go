package user

import (
	"github.com/cobaltpay/backoffice/internal/bitflag"
)

// User represents a back office user registered to the service
type User struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Email       string            `json:"email"`
	Permissions bitflag.Container `json:"permissions"`
	Restricted  bool              `json:"restricted"`
	Admin       bool              `json:"admin"`
}

// Can checks whether the user holds all the given permissions.
// Admins implicitly hold every permission; restricted users hold none.
func (obj *User) Can(permissions ...bitflag.Flag) bool {
	if obj.Restricted {
		return false
	}
	if obj.Admin {
		return true
	}
	return obj.Permissions.Has(permissions...)
}
