package account

import (
	"context"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Repository defines the account transaction repository API
type Repository interface {
	// Get retrieves multiple account transactions following a filter
	Get(ctx context.Context, filter *Filter, page paging.Request) ([]*Transaction, uint64, error)

	// GetByID retrieves an account transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

// Filter is used to query account transactions based on a filter.
// All set fields are combined with logical AND.
type Filter struct {
	MerchantID    *uuid.UUID
	CurrencyID    *uuid.UUID
	Kind          *Kind
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
