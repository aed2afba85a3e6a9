package cache

import (
	"context"

	"github.com/cobaltpay/backoffice/internal/hashmap"
	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// MerchantRepository implements the merchant.Repository interface in order to implement caching
type MerchantRepository struct {
	repo  merchant.Repository
	cache *hashmap.ExpiringMap[uuid.UUID, *merchant.Merchant]
}

var _ merchant.Repository = (*MerchantRepository)(nil)

// Get retrieves multiple merchants following a filter
func (repo *MerchantRepository) Get(ctx context.Context, filter *merchant.Filter, page paging.Request) ([]*merchant.Merchant, uint64, error) {
	merchants, n, err := repo.repo.Get(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	for _, obj := range merchants {
		repo.cache.Set(obj.ID, obj)
	}
	return merchants, n, nil
}

// GetByID retrieves a merchant by its ID
func (repo *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*merchant.Merchant, error) {
	cached, ok := repo.cache.Lookup(id)
	if ok {
		return cached, nil
	}
	obj, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj)
	}
	return obj, nil
}

// Create creates a new merchant
func (repo *MerchantRepository) Create(ctx context.Context, create *merchant.Create) (*merchant.Merchant, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// Update updates an existing merchant
func (repo *MerchantRepository) Update(ctx context.Context, id uuid.UUID, update *merchant.Update) (*merchant.Merchant, error) {
	obj, err := repo.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// Delete deletes a merchant by its ID
func (repo *MerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	repo.cache.Unset(id)
	return nil
}
