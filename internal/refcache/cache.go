package refcache

import (
	"context"
	"sync"

	"github.com/cobaltpay/backoffice/internal/hashmap"
)

// Cache represents a session-scoped cache for small reference datasets
// (merchants, banks, currencies, methods, users, roles) keyed by name.
// Entries have no lifetime; they live until they are explicitly invalidated
// or the cache is reset on logout.
//
// The cache is handed to its consumers explicitly. Invalidation is delivered
// through the Subscribe observer interface rather than an ambient global event.
type Cache struct {
	entries *hashmap.NormalMap[string, any]

	mtx         sync.Mutex
	subscribers map[uint64]func()
	nextID      uint64
}

// New creates a new empty reference data cache
func New() *Cache {
	return &Cache{
		entries:     hashmap.NewNormal[string, any](),
		subscribers: map[uint64]func(){},
	}
}

// Get returns the cached dataset stored under the given key.
// On a cache miss the given fetch function is called and its result is stored and returned.
func Get[T any](ctx context.Context, cache *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := cache.entries.Lookup(key); ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	cache.entries.Set(key, value)
	return value, nil
}

// Subscribe registers a function that is called whenever the cache is invalidated.
// Consumers are expected to refetch their own reference datasets in response.
// The returned function removes the subscription again.
func (cache *Cache) Subscribe(fn func()) func() {
	cache.mtx.Lock()
	defer cache.mtx.Unlock()

	id := cache.nextID
	cache.nextID++
	cache.subscribers[id] = fn

	return func() {
		cache.mtx.Lock()
		defer cache.mtx.Unlock()
		delete(cache.subscribers, id)
	}
}

// InvalidateAll clears every cached dataset and notifies all subscribers
func (cache *Cache) InvalidateAll() {
	cache.entries.Clear()

	cache.mtx.Lock()
	subscribers := make([]func(), 0, len(cache.subscribers))
	for _, fn := range cache.subscribers {
		subscribers = append(subscribers, fn)
	}
	cache.mtx.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Reset clears every cached dataset without notifying subscribers.
// This is used on logout, where no consumer is left to refetch anything.
func (cache *Cache) Reset() {
	cache.entries.Clear()
}
