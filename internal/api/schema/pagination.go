package schema

// PagedResponse represents a unified paginated API response
type PagedResponse[T any] struct {
	Data  []T    `json:"data"`
	Total uint64 `json:"total"`
}

// BuildPagedResponse builds a unified paginated API response.
// A nil data slice is replaced by an empty one so that the JSON representation is always an array.
func BuildPagedResponse[T any](data []T, total uint64) *PagedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PagedResponse[T]{
		Data:  data,
		Total: total,
	}
}
