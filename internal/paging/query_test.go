package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalItems uint64
		pageSize   uint64
		expected   uint64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 25, 4},
		{101, 25, 5},
		{5, 0, 0},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, TotalPages(test.totalItems, test.pageSize))
	}
}

func TestQueryClamp(t *testing.T) {
	query := NewQuery(10, "created_at", OrderDescending)

	query.Page = 7
	query.Clamp(45)
	assert.Equal(t, uint64(5), query.Page)

	query.Clamp(45)
	assert.Equal(t, uint64(5), query.Page)

	query.Clamp(0)
	assert.Equal(t, uint64(1), query.Page)

	query.Page = 0
	query.Clamp(45)
	assert.Equal(t, uint64(1), query.Page)
}

func TestQueryToggleSort(t *testing.T) {
	query := NewQuery(10, "created_at", OrderDescending)

	// A different column always resets the order to ascending
	query.ToggleSort("amount")
	assert.Equal(t, "amount", query.SortColumn)
	assert.Equal(t, OrderAscending, query.SortOrder)

	// Re-selecting the active column flips the order
	query.ToggleSort("amount")
	assert.Equal(t, OrderDescending, query.SortOrder)

	// Toggling twice returns the order to its original value
	query.ToggleSort("amount")
	assert.Equal(t, OrderAscending, query.SortOrder)
}

func TestQueryResetsToFirstPage(t *testing.T) {
	query := NewQuery(10, "created_at", OrderDescending)
	query.Page = 4

	query.SetSearch("merchant")
	assert.Equal(t, uint64(1), query.Page)

	query.Page = 4
	query.SetFilter("status", "completed")
	assert.Equal(t, uint64(1), query.Page)

	query.Page = 4
	query.ToggleSort("amount")
	assert.Equal(t, uint64(1), query.Page)

	query.Page = 4
	query.SetPageSize(25)
	assert.Equal(t, uint64(1), query.Page)
	assert.Equal(t, uint64(25), query.PageSize)
}

func TestQuerySetPage(t *testing.T) {
	query := NewQuery(10, "created_at", OrderDescending)

	// Nothing to paginate
	assert.False(t, query.SetPage(1, 1))
	assert.False(t, query.SetPage(2, 0))

	// Out of range
	assert.False(t, query.SetPage(0, 5))
	assert.False(t, query.SetPage(6, 5))
	assert.Equal(t, uint64(1), query.Page)

	assert.True(t, query.SetPage(3, 5))
	assert.Equal(t, uint64(3), query.Page)

	// Same page is a no-op
	assert.False(t, query.SetPage(3, 5))
}

func TestQuerySetFilterRemovesEmptyValues(t *testing.T) {
	query := NewQuery(10, "created_at", OrderDescending)

	query.SetFilter("status", "pending")
	assert.Equal(t, "pending", query.Filters["status"])

	query.SetFilter("status", "")
	_, ok := query.Filters["status"]
	assert.False(t, ok)
}

func TestQueryValues(t *testing.T) {
	query := NewQuery(25, "created_at", OrderDescending)
	query.Page = 3

	values := query.Values()
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "created_at", values.Get("orderBy"))
	assert.Equal(t, "DESC", values.Get("orderDirection"))
}
