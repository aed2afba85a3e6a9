package merchant

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Repository defines the merchant repository API
type Repository interface {
	// Get retrieves multiple merchants following a filter
	Get(ctx context.Context, filter *Filter, page paging.Request) ([]*Merchant, uint64, error)

	// GetByID retrieves a merchant by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Merchant, error)

	// Create creates a new merchant
	Create(ctx context.Context, create *Create) (*Merchant, error)

	// Update updates an existing merchant
	Update(ctx context.Context, id uuid.UUID, update *Update) (*Merchant, error)

	// Delete deletes a merchant by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter is used to query merchants based on a filter.
// All set fields are combined with logical AND.
type Filter struct {
	Status *Status
	// Search matches case-insensitively against the merchant name and email
	Search *string
}

// Create is used to create a new merchant
type Create struct {
	Name  string
	Email string
}

// Update is used to update an existing merchant
type Update struct {
	Name   *string
	Email  *string
	Status *Status
}
