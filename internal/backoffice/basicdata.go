package backoffice

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/refcache"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/cobaltpay/backoffice/internal/user"
	"github.com/google/uuid"
)

// BasicData provides the rarely-changing reference datasets (banks, currencies,
// methods, merchants, users, roles) on top of the shared cache. Every dataset
// is fetched on first use and kept until the cache is invalidated or reset.
// On invalidation every dataset that was in use is refetched right away, so
// open filter widgets do not keep serving stale lists.
type BasicData struct {
	client *Client
	cache  *refcache.Cache

	mtx     sync.Mutex
	loaders map[string]func(ctx context.Context) error
}

// NewBasicData creates a new reference data service backed by the given cache
func NewBasicData(client *Client, cache *refcache.Cache) *BasicData {
	data := &BasicData{
		client:  client,
		cache:   cache,
		loaders: map[string]func(ctx context.Context) error{},
	}
	cache.Subscribe(func() {
		go data.refetch(context.Background())
	})
	return data
}

// Banks retrieves all banks
func (data *BasicData) Banks(ctx context.Context) ([]*refdata.Bank, error) {
	return dataset(ctx, data, "banks", func(ctx context.Context) ([]*refdata.Bank, error) {
		return fetchList[refdata.Bank](ctx, data.client, "/v1/banks")
	})
}

// Currencies retrieves all currencies
func (data *BasicData) Currencies(ctx context.Context) ([]*refdata.Currency, error) {
	return dataset(ctx, data, "currencies", func(ctx context.Context) ([]*refdata.Currency, error) {
		return fetchList[refdata.Currency](ctx, data.client, "/v1/currencies")
	})
}

// Methods retrieves all payment and settlement methods
func (data *BasicData) Methods(ctx context.Context) ([]*refdata.Method, error) {
	return dataset(ctx, data, "methods", func(ctx context.Context) ([]*refdata.Method, error) {
		return fetchList[refdata.Method](ctx, data.client, "/v1/methods")
	})
}

// Merchants retrieves all merchants, walking the paged endpoint until the full
// list is assembled. The filter widgets need the complete list, not one page.
func (data *BasicData) Merchants(ctx context.Context) ([]*merchant.Merchant, error) {
	return dataset(ctx, data, "merchants", func(ctx context.Context) ([]*merchant.Merchant, error) {
		return fetchAllPages[merchant.Merchant](ctx, data.client, "/v1/merchants", "name")
	})
}

// Users retrieves all back office users, walking the paged endpoint until the
// full list is assembled
func (data *BasicData) Users(ctx context.Context) ([]*user.User, error) {
	return dataset(ctx, data, "users", func(ctx context.Context) ([]*user.User, error) {
		return fetchAllPages[user.User](ctx, data.client, "/v1/users", "display_name")
	})
}

// Roles retrieves the built-in permission presets
func (data *BasicData) Roles(ctx context.Context) ([]*user.Role, error) {
	return dataset(ctx, data, "roles", func(ctx context.Context) ([]*user.Role, error) {
		return fetchList[user.Role](ctx, data.client, "/v1/users/roles")
	})
}

// Currency retrieves a single currency by its ID
func (data *BasicData) Currency(ctx context.Context, id uuid.UUID) (*refdata.Currency, error) {
	currencies, err := data.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range currencies {
		if obj.ID == id {
			return obj, nil
		}
	}
	return nil, nil
}

// Method retrieves a single method by its ID
func (data *BasicData) Method(ctx context.Context, id uuid.UUID) (*refdata.Method, error) {
	methods, err := data.Methods(ctx)
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

// refetch reloads every dataset that was in use before the cache was
// invalidated. A failed reload is left to the next on-demand lookup to retry.
func (data *BasicData) refetch(ctx context.Context) {
	data.mtx.Lock()
	loaders := make([]func(ctx context.Context) error, 0, len(data.loaders))
	for _, loader := range data.loaders {
		loaders = append(loaders, loader)
	}
	data.mtx.Unlock()

	for _, loader := range loaders {
		_ = loader(ctx)
	}
}

// dataset serves one reference dataset out of the cache and registers its
// loader so the dataset takes part in invalidation refetches
func dataset[T any](ctx context.Context, data *BasicData, key string, fetch func(ctx context.Context) ([]*T, error)) ([]*T, error) {
	data.mtx.Lock()
	if _, ok := data.loaders[key]; !ok {
		data.loaders[key] = func(ctx context.Context) error {
			_, err := refcache.Get(ctx, data.cache, key, fetch)
			return err
		}
	}
	data.mtx.Unlock()

	return refcache.Get(ctx, data.cache, key, fetch)
}

func fetchList[T any](ctx context.Context, client *Client, path string) ([]*T, error) {
	raw, err := client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var rows []*T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// fetchAllPages drains a paged list endpoint page by page using the largest
// page size the API accepts
func fetchAllPages[T any](ctx context.Context, client *Client, path, orderBy string) ([]*T, error) {
	query := paging.NewQuery(100, orderBy, paging.OrderAscending)
	var rows []*T
	for {
		raw, total, err := client.List(ctx, path, query.Values())
		if err != nil {
			return nil, err
		}
		var page []*T
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if len(page) == 0 || uint64(len(rows)) >= total {
			return rows, nil
		}
		query.Page++
	}
}
