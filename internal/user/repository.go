package user

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/bitflag"
	"github.com/cobaltpay/backoffice/internal/paging"
)

// Repository defines the user repository API
type Repository interface {
	// Get retrieves multiple users
	Get(ctx context.Context, page paging.Request) ([]*User, uint64, error)

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, create *Create) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, id string, update *Update) (*User, error)

	// Delete deletes a user by their ID
	Delete(ctx context.Context, id string) error
}

// Create is used to create a new user
type Create struct {
	ID          string
	DisplayName string
	Email       string
	Permissions bitflag.Container
}

// Update is used to update an existing user
type Update struct {
	DisplayName *string
	Permissions *bitflag.Container
	Restricted  *bool
	Admin       *bool
}
