package backoffice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/refcache"
	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettlementTestServer(t *testing.T, method *refdata.Method, agentID uuid.UUID, unsettled int64, submitted *bool) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/methods":
			_ = json.NewEncoder(w).Encode([]*refdata.Method{method})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/commission_logs/unsettled_totals":
			_ = json.NewEncoder(w).Encode(map[uuid.UUID][]commission.CurrencyTotal{
				agentID: {
					{CurrencyID: method.CurrencyID, Amount: unsettled},
				},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/settlements":
			if submitted != nil {
				*submitted = true
			}
			_ = json.NewEncoder(w).Encode(&commission.Settlement{
				ID:         uuid.New(),
				AgentID:    agentID,
				MethodID:   method.ID,
				CurrencyID: method.CurrencyID,
				Amount:     unsettled,
				Status:     commission.SettlementStatusPending,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/settlements":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data":  []any{},
				"total": 0,
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSettlementsSubmitBelowMinimum(t *testing.T) {
	agentID := uuid.New()
	method := &refdata.Method{
		ID:                  uuid.New(),
		Name:                "SEPA",
		CurrencyID:          uuid.New(),
		MinSettlementAmount: 5000,
	}
	submitted := false
	server := newSettlementTestServer(t, method, agentID, 4000, &submitted)
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewSettlements(client, NewBasicData(client, refcache.New()))

	obj, err := container.Submit(context.Background(), agentID, method.ID, method.CurrencyID)
	require.Error(t, err)
	assert.Nil(t, obj)
	assert.False(t, submitted)

	var belowMinimum *commission.BelowMinimumError
	require.True(t, errors.As(err, &belowMinimum))
	assert.Equal(t, int64(4000), belowMinimum.Total)
	assert.Equal(t, int64(5000), belowMinimum.Minimum)
}

func TestSettlementsSubmitCurrencyMismatch(t *testing.T) {
	agentID := uuid.New()
	method := &refdata.Method{
		ID:                  uuid.New(),
		Name:                "SEPA",
		CurrencyID:          uuid.New(),
		MinSettlementAmount: 5000,
	}
	submitted := false
	server := newSettlementTestServer(t, method, agentID, 6000, &submitted)
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewSettlements(client, NewBasicData(client, refcache.New()))

	obj, err := container.Submit(context.Background(), agentID, method.ID, uuid.New())
	assert.ErrorIs(t, err, commission.ErrCurrencyMismatch)
	assert.Nil(t, obj)
	assert.False(t, submitted)

	// Unknown methods are rejected the same way
	obj, err = container.Submit(context.Background(), agentID, uuid.New(), method.CurrencyID)
	assert.ErrorIs(t, err, commission.ErrCurrencyMismatch)
	assert.Nil(t, obj)
	assert.False(t, submitted)
}

func TestSettlementsSubmit(t *testing.T) {
	agentID := uuid.New()
	method := &refdata.Method{
		ID:                  uuid.New(),
		Name:                "SEPA",
		CurrencyID:          uuid.New(),
		MinSettlementAmount: 5000,
	}
	submitted := false
	server := newSettlementTestServer(t, method, agentID, 6000, &submitted)
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewSettlements(client, NewBasicData(client, refcache.New()))

	obj, err := container.Submit(context.Background(), agentID, method.ID, method.CurrencyID)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.True(t, submitted)
	assert.Equal(t, agentID, obj.AgentID)
	assert.Equal(t, int64(6000), obj.Amount)
	assert.Equal(t, commission.SettlementStatusPending, obj.Status)
}

func TestSettlementsUnsettledTotalUnknownCurrency(t *testing.T) {
	agentID := uuid.New()
	method := &refdata.Method{
		ID:                  uuid.New(),
		Name:                "SEPA",
		CurrencyID:          uuid.New(),
		MinSettlementAmount: 5000,
	}
	server := newSettlementTestServer(t, method, agentID, 6000, nil)
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	container := NewSettlements(client, NewBasicData(client, refcache.New()))

	total, err := container.UnsettledTotal(context.Background(), agentID, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, total)
}
