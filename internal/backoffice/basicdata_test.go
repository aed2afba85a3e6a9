package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cobaltpay/backoffice/internal/merchant"
	"github.com/cobaltpay/backoffice/internal/refcache"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicDataMerchantsWalksAllPages(t *testing.T) {
	all := []*merchant.Merchant{
		{ID: uuid.New(), Name: "Acme", Status: merchant.StatusActive},
		{ID: uuid.New(), Name: "Globex", Status: merchant.StatusActive},
		{ID: uuid.New(), Name: "Initech", Status: merchant.StatusSuspended},
	}
	var pages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/merchants", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		// Serve two rows on the first page and the rest on the second,
		// regardless of the requested limit
		rows := all[:2]
		if page != "1" {
			rows = all[2:]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  rows,
			"total": len(all),
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	data := NewBasicData(client, refcache.New())

	merchants, err := data.Merchants(context.Background())
	require.NoError(t, err)
	require.Len(t, merchants, 3)
	assert.Equal(t, []string{"1", "2"}, pages)
	assert.Equal(t, "Initech", merchants[2].Name)

	// The assembled list is cached, so no further page walks happen
	_, err = data.Merchants(context.Background())
	require.NoError(t, err)
	assert.Len(t, pages, 2)
}

func TestBasicDataRefetchesOnInvalidation(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/banks", r.URL.Path)
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]*refdata.Bank{
			{ID: uuid.New(), Name: "First National", Code: "FN"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	cache := refcache.New()
	data := NewBasicData(client, cache)

	_, err = data.Banks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))

	cache.InvalidateAll()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&hits) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// The refetched dataset is served from the cache again
	_, err = data.Banks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestLogoutResetsCache(t *testing.T) {
	var bankHits int
	loggedOut := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/auth/logout":
			loggedOut = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/banks":
			bankHits++
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]*refdata.Bank{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	cache := refcache.New()
	data := NewBasicData(client, cache)

	_, err = data.Banks(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, bankHits)

	require.NoError(t, Logout(context.Background(), client, cache))
	assert.True(t, loggedOut)

	// Reset does not notify, so the next lookup refetches on demand
	assert.Equal(t, 1, bankHits)
	_, err = data.Banks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, bankHits)
}

func TestLogoutToleratesLostSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	require.NoError(t, Logout(context.Background(), client, refcache.New()))
}
