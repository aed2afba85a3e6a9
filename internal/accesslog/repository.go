package accesslog

import (
	"context"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
)

// Repository defines the access log repository API
type Repository interface {
	// Get retrieves multiple access logs following a filter
	Get(ctx context.Context, filter *Filter, page paging.Request) ([]*Log, uint64, error)

	// CreateMany inserts multiple access logs at once
	CreateMany(ctx context.Context, logs []*Log) error
}

// Filter is used to query access logs based on a filter.
// All set fields are combined with logical AND.
type Filter struct {
	UserID *string
	Method *string
	Status *int
	// Search matches case-insensitively against the request path
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
