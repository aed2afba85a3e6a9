package paging

import (
	"net/url"
	"strconv"
)

// SortOrder represents the direction a column is sorted in
type SortOrder string

const (
	// OrderAscending sorts a column in ascending order
	OrderAscending SortOrder = "ASC"
	// OrderDescending sorts a column in descending order
	OrderDescending SortOrder = "DESC"
)

// Flip returns the opposite sort order
func (order SortOrder) Flip() SortOrder {
	if order == OrderAscending {
		return OrderDescending
	}
	return OrderAscending
}

// Query represents the full state of a remote-paginated listing.
// The page number is 1-based.
type Query struct {
	Page       uint64
	PageSize   uint64
	SortColumn string
	SortOrder  SortOrder
	Search     string
	Filters    map[string]string
}

// NewQuery creates a new query with the given defaults, starting at page 1
func NewQuery(pageSize uint64, sortColumn string, sortOrder SortOrder) Query {
	if pageSize == 0 {
		pageSize = 10
	}
	return Query{
		Page:       1,
		PageSize:   pageSize,
		SortColumn: sortColumn,
		SortOrder:  sortOrder,
		Filters:    map[string]string{},
	}
}

// TotalPages calculates the amount of pages needed to display the given amount of items
func TotalPages(totalItems, pageSize uint64) uint64 {
	if pageSize == 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// TotalPages calculates the amount of pages the query spans for the given amount of items
func (query *Query) TotalPages(totalItems uint64) uint64 {
	return TotalPages(totalItems, query.PageSize)
}

// Clamp forces the current page into the range [1, totalPages].
// An empty result set clamps to page 1.
func (query *Query) Clamp(totalItems uint64) {
	totalPages := query.TotalPages(totalItems)
	if totalPages == 0 {
		totalPages = 1
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Page > totalPages {
		query.Page = totalPages
	}
}

// ToggleSort sets the sort column.
// Re-selecting the active sort column flips the sort order; selecting a new one resets it to ascending.
func (query *Query) ToggleSort(column string) {
	if query.SortColumn == column {
		query.SortOrder = query.SortOrder.Flip()
	} else {
		query.SortColumn = column
		query.SortOrder = OrderAscending
	}
	query.Page = 1
}

// SetSearch sets the committed search term and resets the query to page 1
func (query *Query) SetSearch(term string) {
	query.Search = term
	query.Page = 1
}

// SetFilter sets a single filter value and resets the query to page 1.
// An empty value removes the filter.
func (query *Query) SetFilter(name, value string) {
	if query.Filters == nil {
		query.Filters = map[string]string{}
	}
	if value == "" {
		delete(query.Filters, name)
	} else {
		query.Filters[name] = value
	}
	query.Page = 1
}

// SetPageSize sets the page size and resets the query to page 1
func (query *Query) SetPageSize(size uint64) {
	if size == 0 {
		return
	}
	query.PageSize = size
	query.Page = 1
}

// SetPage navigates to the given page.
// Requests outside the range [1, totalPages], or when there is nothing to paginate, are a no-op.
// The returned boolean indicates whether the page actually changed.
func (query *Query) SetPage(page, totalPages uint64) bool {
	if totalPages <= 1 {
		return false
	}
	if page < 1 || page > totalPages {
		return false
	}
	if page == query.Page {
		return false
	}
	query.Page = page
	return true
}

// Values encodes the paging and sorting state into the common list endpoint query parameters
func (query *Query) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.FormatUint(query.Page, 10))
	values.Set("limit", strconv.FormatUint(query.PageSize, 10))
	if query.SortColumn != "" {
		values.Set("orderBy", query.SortColumn)
		values.Set("orderDirection", string(query.SortOrder))
	}
	return values
}
