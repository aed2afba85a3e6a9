package cache

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/hashmap"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
)

const (
	keyBanks      = "banks"
	keyCurrencies = "currencies"
	keyMethods    = "methods"
)

// RefDataRepository implements the refdata.Repository interface in order to implement caching.
// Reference datasets are small and change rarely, so whole lists are cached under fixed keys.
type RefDataRepository struct {
	repo  refdata.Repository
	cache *hashmap.ExpiringMap[string, any]
}

var _ refdata.Repository = (*RefDataRepository)(nil)

// Banks retrieves all banks
func (repo *RefDataRepository) Banks(ctx context.Context) ([]*refdata.Bank, error) {
	cached, ok := repo.cache.Lookup(keyBanks)
	if ok {
		return cached.([]*refdata.Bank), nil
	}
	objs, err := repo.repo.Banks(ctx)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(keyBanks, objs)
	return objs, nil
}

// Currencies retrieves all currencies
func (repo *RefDataRepository) Currencies(ctx context.Context) ([]*refdata.Currency, error) {
	cached, ok := repo.cache.Lookup(keyCurrencies)
	if ok {
		return cached.([]*refdata.Currency), nil
	}
	objs, err := repo.repo.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(keyCurrencies, objs)
	return objs, nil
}

// Methods retrieves all payment and settlement methods
func (repo *RefDataRepository) Methods(ctx context.Context) ([]*refdata.Method, error) {
	cached, ok := repo.cache.Lookup(keyMethods)
	if ok {
		return cached.([]*refdata.Method), nil
	}
	objs, err := repo.repo.Methods(ctx)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(keyMethods, objs)
	return objs, nil
}

// GetMethodByID retrieves a single method by its ID
func (repo *RefDataRepository) GetMethodByID(ctx context.Context, id uuid.UUID) (*refdata.Method, error) {
	methods, err := repo.Methods(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range methods {
		if obj.ID == id {
			return obj, nil
		}
	}
	return nil, nil
}
