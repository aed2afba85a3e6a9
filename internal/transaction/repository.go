package transaction

import (
	"context"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Repository defines the transaction repository API
type Repository interface {
	// Get retrieves multiple transactions following a filter
	Get(ctx context.Context, filter *Filter, page paging.Request) ([]*Transaction, uint64, error)

	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, create *Create) (*Transaction, error)

	// UpdateStatus updates the status of an existing transaction
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Transaction, error)
}

// Filter is used to query transactions based on a filter.
// All set fields are combined with logical AND, except Reference and Search:
// when both are set, a row matches if either of them does, since the search
// box fills both with the same term.
type Filter struct {
	Kind       *Kind
	MerchantID *uuid.UUID
	MethodID   *uuid.UUID
	CurrencyID *uuid.UUID
	Status     *Status
	// Reference matches the exact transaction reference
	Reference *string
	// Search matches case-insensitively against the transaction reference
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Create is used to create a new transaction
type Create struct {
	Kind       Kind
	MerchantID uuid.UUID
	MethodID   uuid.UUID
	CurrencyID uuid.UUID
	Amount     int64
	Reference  string
}
