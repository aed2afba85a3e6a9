package refdata

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the reference data repository API.
// Reference datasets are small and returned without paging.
type Repository interface {
	// Banks retrieves all banks
	Banks(ctx context.Context) ([]*Bank, error)

	// Currencies retrieves all currencies
	Currencies(ctx context.Context) ([]*Currency, error)

	// Methods retrieves all payment and settlement methods
	Methods(ctx context.Context) ([]*Method, error)

	// GetMethodByID retrieves a single method by its ID
	GetMethodByID(ctx context.Context, id uuid.UUID) (*Method, error)
}
