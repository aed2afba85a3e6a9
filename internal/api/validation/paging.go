package validation

import (
	"net/http"

	"github.com/cobaltpay/backoffice/internal/api/schema"
	"github.com/cobaltpay/backoffice/internal/paging"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// QueryPage extracts the standard paging parameters ('page', 'limit', 'orderBy'
// and 'orderDirection') out of the query parameters of the given request
func QueryPage(request *http.Request, defaultOrderBy string, defaultOrder paging.SortOrder) (paging.Request, []*schema.Error) {
	var errs []*schema.Error

	page, err := QueryNumber(request, "page", false, 1, 1, int64(^uint64(0)>>1))
	if err != nil {
		errs = append(errs, err)
	}
	limit, err := QueryNumber(request, "limit", false, defaultPageLimit, 1, maxPageLimit)
	if err != nil {
		errs = append(errs, err)
	}
	orderBy, err := QueryString(request, "orderBy", false, defaultOrderBy)
	if err != nil {
		errs = append(errs, err)
	}
	order, err := QuerySortOrder(request, "orderDirection", defaultOrder)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return paging.Request{}, errs
	}
	return paging.Request{
		Page:    uint64(page),
		Limit:   uint64(limit),
		OrderBy: orderBy,
		Order:   order,
	}, nil
}
