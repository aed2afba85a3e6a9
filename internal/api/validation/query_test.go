package validation

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPageDefaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions", nil)

	page, errs := QueryPage(request, "created_at", paging.OrderDescending)
	require.Empty(t, errs)
	assert.Equal(t, uint64(1), page.Page)
	assert.Equal(t, uint64(10), page.Limit)
	assert.Equal(t, "created_at", page.OrderBy)
	assert.Equal(t, paging.OrderDescending, page.Order)
}

func TestQueryPageExplicit(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?page=3&limit=25&orderBy=amount&orderDirection=ASC", nil)

	page, errs := QueryPage(request, "created_at", paging.OrderDescending)
	require.Empty(t, errs)
	assert.Equal(t, uint64(3), page.Page)
	assert.Equal(t, uint64(25), page.Limit)
	assert.Equal(t, "amount", page.OrderBy)
	assert.Equal(t, paging.OrderAscending, page.Order)
}

func TestQueryPageRejectsInvalidValues(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?page=0&limit=500&orderDirection=sideways", nil)

	_, errs := QueryPage(request, "created_at", paging.OrderDescending)
	assert.Len(t, errs, 3)
}

func TestQueryTime(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?start=2024-03-10T12:00:00%2B02:00", nil)

	value, err := QueryTime(request, "start", false)
	require.Nil(t, err)
	require.NotNil(t, value)
	assert.Equal(t, time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC), *value)

	value, err = QueryTime(request, "end", false)
	require.Nil(t, err)
	assert.Nil(t, value)

	_, err = QueryTime(request, "end", true)
	assert.NotNil(t, err)
}

func TestQueryTimeRejectsInvalidTimestamps(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?start=yesterday", nil)

	_, err := QueryTime(request, "start", false)
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidType", err.Type)
}

func TestQueryUUID(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?merchantId=6ba7b810-9dad-11d1-80b4-00c04fd430c8&agentId=not-a-uuid", nil)

	value, err := QueryUUID(request, "merchantId", false)
	require.Nil(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", value.String())

	_, err = QueryUUID(request, "agentId", false)
	assert.NotNil(t, err)

	value, err = QueryUUID(request, "missing", false)
	require.Nil(t, err)
	assert.Nil(t, value)
}

func TestQueryEnum(t *testing.T) {
	request := httptest.NewRequest("GET", "/v1/transactions?status=pending", nil)

	value, err := QueryEnum(request, "status", false, "", "pending", "completed", "failed")
	require.Nil(t, err)
	assert.Equal(t, "pending", value)

	_, err = QueryEnum(request, "status", false, "", "active", "suspended")
	require.NotNil(t, err)
	assert.Equal(t, "validation.query.parameter.invalidValue", err.Type)
}
