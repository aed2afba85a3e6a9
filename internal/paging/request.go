package paging

// Request represents the paging and sorting window of a list endpoint request.
// The page number is 1-based.
type Request struct {
	Page    uint64
	Limit   uint64
	OrderBy string
	Order   SortOrder
}

// Offset returns the row offset the request starts at
func (request Request) Offset() uint64 {
	if request.Page <= 1 {
		return 0
	}
	return (request.Page - 1) * request.Limit
}

// OrderClause resolves the requested sort key against a whitelist of sortable
// columns and returns a SQL ORDER BY expression. Unknown or empty keys fall
// back to the given default column. The whitelist maps exposed sort keys to
// the actual column names, so caller input never reaches the SQL string itself.
func (request Request) OrderClause(sortable map[string]string, fallback string) string {
	column, ok := sortable[request.OrderBy]
	if !ok {
		column = fallback
	}
	order := request.Order
	if order != OrderAscending && order != OrderDescending {
		order = OrderAscending
	}
	return column + " " + string(order)
}
