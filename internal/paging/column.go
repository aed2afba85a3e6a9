package paging

// Alignment represents the horizontal alignment of a column
type Alignment string

const (
	// AlignStart aligns cell content to the start of the column
	AlignStart Alignment = "start"
	// AlignCenter aligns cell content to the center of the column
	AlignCenter Alignment = "center"
	// AlignEnd aligns cell content to the end of the column
	AlignEnd Alignment = "end"
)

// Column represents a single column of a paginated listing.
// The key either addresses a field on the row type or is purely decorative
// (an actions column, for example, has no underlying field).
type Column[T any] struct {
	Key      string
	Title    string
	Sortable bool
	Align    Alignment

	// Render maps a raw cell value and its row to the displayed cell content.
	// It has to be a pure function of its arguments.
	// If nil, the consumer displays the raw value.
	Render func(value any, row T) string
}
