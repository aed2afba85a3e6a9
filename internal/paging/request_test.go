package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), Request{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, uint64(0), Request{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, uint64(10), Request{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, uint64(90), Request{Page: 10, Limit: 10}.Offset())
}

func TestRequestOrderClause(t *testing.T) {
	sortable := map[string]string{
		"createdAt": "created_at",
		"amount":    "amount",
	}

	tests := []struct {
		orderBy  string
		order    SortOrder
		expected string
	}{
		{"createdAt", OrderDescending, "created_at DESC"},
		{"amount", OrderAscending, "amount ASC"},
		{"", OrderAscending, "created_at ASC"},
		{"nonexistent; DROP TABLE", OrderAscending, "created_at ASC"},
		{"amount", SortOrder("sideways"), "amount ASC"},
	}
	for _, test := range tests {
		request := Request{OrderBy: test.orderBy, Order: test.order}
		assert.Equal(t, test.expected, request.OrderClause(sortable, "created_at"))
	}
}
