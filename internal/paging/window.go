package paging

// windowSize is the maximum amount of numbered page buttons displayed at once
const windowSize = 5

// Window represents the set of page buttons to display for a paginated listing
type Window struct {
	// Pages contains the numbered page buttons, in ascending order
	Pages []uint64
	// FirstShortcut indicates that a shortcut to page 1, preceded by an ellipsis, is displayed before the window
	FirstShortcut bool
	// LastShortcut indicates that a shortcut to the last page, preceded by an ellipsis, is displayed after the window
	LastShortcut bool
}

// NewWindow calculates the page button window for the given current page.
// At most 5 numbered buttons are shown. If everything fits, all pages are shown.
// Otherwise the window is centered on the current page, clamped at the boundaries,
// and shortcuts to the first and/or last page are appended whenever the window
// does not already touch that edge.
func NewWindow(current, totalPages uint64) Window {
	if totalPages == 0 {
		return Window{Pages: []uint64{}}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= windowSize {
		pages := make([]uint64, 0, totalPages)
		for page := uint64(1); page <= totalPages; page++ {
			pages = append(pages, page)
		}
		return Window{Pages: pages}
	}

	low := int64(current) - windowSize/2
	high := int64(current) + windowSize/2
	if low < 1 {
		low = 1
		high = windowSize
	}
	if high > int64(totalPages) {
		high = int64(totalPages)
		low = high - windowSize + 1
	}

	pages := make([]uint64, 0, windowSize)
	for page := low; page <= high; page++ {
		pages = append(pages, uint64(page))
	}
	return Window{
		Pages:         pages,
		FirstShortcut: low > 1,
		LastShortcut:  high < int64(totalPages),
	}
}
