package refcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetFetchesOnce(t *testing.T) {
	cache := New()
	calls := 0
	fetch := func(_ context.Context) ([]string, error) {
		calls++
		return []string{"EUR", "USD"}, nil
	}

	first, err := Get(context.Background(), cache, "currencies", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "USD"}, first)

	second, err := Get(context.Background(), cache, "currencies", fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheGetDoesNotStoreErrors(t *testing.T) {
	cache := New()
	failing := func(_ context.Context) ([]string, error) {
		return nil, errors.New("fetch failed")
	}

	_, err := Get(context.Background(), cache, "banks", failing)
	assert.Error(t, err)

	// A failed fetch leaves no entry behind, so the next call retries
	value, err := Get(context.Background(), cache, "banks", func(_ context.Context) ([]string, error) {
		return []string{"First National"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First National"}, value)
}

func TestCacheInvalidateAll(t *testing.T) {
	cache := New()
	calls := 0
	fetch := func(_ context.Context) (int, error) {
		calls++
		return calls, nil
	}

	notified := 0
	unsubscribe := cache.Subscribe(func() {
		notified++
	})

	_, err := Get(context.Background(), cache, "methods", fetch)
	require.NoError(t, err)

	cache.InvalidateAll()
	assert.Equal(t, 1, notified)

	value, err := Get(context.Background(), cache, "methods", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, value)

	unsubscribe()
	cache.InvalidateAll()
	assert.Equal(t, 1, notified)
}

func TestCacheResetDoesNotNotify(t *testing.T) {
	cache := New()
	notified := 0
	cache.Subscribe(func() {
		notified++
	})

	_, err := Get(context.Background(), cache, "roles", func(_ context.Context) (string, error) {
		return "admin", nil
	})
	require.NoError(t, err)

	cache.Reset()
	assert.Equal(t, 0, notified)

	calls := 0
	_, err = Get(context.Background(), cache, "roles", func(_ context.Context) (string, error) {
		calls++
		return "admin", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
