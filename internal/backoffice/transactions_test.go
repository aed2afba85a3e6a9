package backoffice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionsFetchParameters(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/transactions", r.URL.Path)
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []any{},
			"total": 0,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewPayments(client)

	container.Load(context.Background())
	require.NotNil(t, query)
	assert.Equal(t, "payment", query.Get("kind"))
	assert.Equal(t, "1", query.Get("page"))
	assert.Equal(t, "10", query.Get("limit"))
	assert.Equal(t, "createdAt", query.Get("orderBy"))
	assert.Equal(t, "DESC", query.Get("orderDirection"))

	container.SetSearch(context.Background(), "tx-2024-0001")
	assert.Equal(t, "tx-2024-0001", query.Get("reference"))
	assert.Equal(t, "tx-2024-0001", query.Get("q"))

	day := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	container.SetDateRange(context.Background(), day, day)
	assert.Equal(t, "2024-03-10T00:00:00Z", query.Get("start"))
	assert.Equal(t, "2024-03-10T23:59:59.999Z", query.Get("end"))

	container.ClearDateRange(context.Background())
	assert.Empty(t, query.Get("start"))
	assert.Empty(t, query.Get("end"))
}

func TestTransactionsStatusFilter(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []any{},
			"total": 0,
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewRefunds(client)

	container.SetStatus(context.Background(), "pending")
	assert.Equal(t, "refund", query.Get("kind"))
	assert.Equal(t, "pending", query.Get("status"))

	container.SetStatus(context.Background(), "")
	assert.Empty(t, query.Get("status"))
}
