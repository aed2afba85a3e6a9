package collection

import (
	"context"
	"sync"

	"github.com/cobaltpay/backoffice/internal/paging"
)

// State represents the fetch lifecycle state of a collection
type State string

const (
	// StateIdle means no fetch was issued yet
	StateIdle State = "idle"
	// StateLoading means a fetch is in flight
	StateLoading State = "loading"
	// StateSuccess means the latest fetch succeeded
	StateSuccess State = "success"
	// StateError means the latest fetch failed
	StateError State = "error"
)

// Fetcher executes a query against a remote list endpoint and returns the
// rows of the requested page plus the total amount of matching rows
type Fetcher[T any] func(ctx context.Context, query paging.Query) ([]T, uint64, error)

// IDFunc extracts the unique identifier of a row
type IDFunc[T any] func(row T) string

// Collection represents a remote-paginated row collection.
// It owns the query state, translates gestures (search, filter, sort, page)
// into query changes and refetches, and guards against out-of-order responses:
// every issued fetch carries a monotonically increasing sequence number and
// responses that are not the most recently issued one are discarded.
type Collection[T any] struct {
	mtx sync.Mutex

	fetch Fetcher[T]
	rowID IDFunc[T]

	defaults paging.Query
	query    paging.Query

	state      State
	rows       []T
	total      uint64
	errMessage string

	selection *paging.Selection

	searchDebounce *paging.Debouncer
	searchCtx      context.Context

	seq uint64
}

// New creates a new idle collection with the given query defaults
func New[T any](defaults paging.Query, fetch Fetcher[T], rowID IDFunc[T]) *Collection[T] {
	defaultsCopy := defaults
	defaultsCopy.Filters = nil
	return &Collection[T]{
		fetch:     fetch,
		rowID:     rowID,
		defaults:  defaultsCopy,
		query:     defaults,
		state:     StateIdle,
		rows:      []T{},
		selection: paging.NewSelection(),
	}
}

// Load issues the initial fetch or refetches the current query state
func (collection *Collection[T]) Load(ctx context.Context) {
	collection.mtx.Lock()
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// SetSearch commits a new search term, resets to page 1 and refetches
func (collection *Collection[T]) SetSearch(ctx context.Context, term string) {
	collection.mtx.Lock()
	collection.query.SetSearch(term)
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// SearchInput buffers live search box input and commits it through SetSearch
// once no further input arrived for the debounce interval. Committing an
// explicitly cleared box (empty term) bypasses the interval and supersedes any
// still pending input.
func (collection *Collection[T]) SearchInput(ctx context.Context, term string) {
	collection.mtx.Lock()
	collection.searchCtx = ctx
	if collection.searchDebounce == nil {
		collection.searchDebounce = paging.NewDebouncer(0, func(term string) {
			collection.mtx.Lock()
			ctx := collection.searchCtx
			collection.mtx.Unlock()
			collection.SetSearch(ctx, term)
		})
	}
	debouncer := collection.searchDebounce
	collection.mtx.Unlock()

	if term == "" {
		debouncer.Clear()
		return
	}
	debouncer.Input(term)
}

// SetFilter sets a single filter value, resets to page 1 and refetches
func (collection *Collection[T]) SetFilter(ctx context.Context, name, value string) {
	collection.mtx.Lock()
	collection.query.SetFilter(name, value)
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// SetFilters applies several filter changes at once, resets to page 1 and
// issues a single refetch. Empty values remove the named filter.
func (collection *Collection[T]) SetFilters(ctx context.Context, filters map[string]string) {
	collection.mtx.Lock()
	for name, value := range filters {
		collection.query.SetFilter(name, value)
	}
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// ToggleSort toggles the sort column or order, resets to page 1 and refetches
func (collection *Collection[T]) ToggleSort(ctx context.Context, column string) {
	collection.mtx.Lock()
	collection.query.ToggleSort(column)
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// SetPage navigates to the given page and refetches.
// Requests outside the valid page range are a no-op.
func (collection *Collection[T]) SetPage(ctx context.Context, page uint64) {
	collection.mtx.Lock()
	if !collection.query.SetPage(page, collection.query.TotalPages(collection.total)) {
		collection.mtx.Unlock()
		return
	}
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// SetPageSize changes the page size, resets to page 1 and refetches
func (collection *Collection[T]) SetPageSize(ctx context.Context, size uint64) {
	collection.mtx.Lock()
	collection.query.SetPageSize(size)
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// Refresh resets the search term and sort state to their declared defaults,
// returns to page 1 and refetches. Filter values are kept.
func (collection *Collection[T]) Refresh(ctx context.Context) {
	collection.mtx.Lock()
	collection.query.Search = collection.defaults.Search
	collection.query.SortColumn = collection.defaults.SortColumn
	collection.query.SortOrder = collection.defaults.SortOrder
	collection.query.Page = 1
	seq := collection.issueLocked()
	query := collection.query
	collection.mtx.Unlock()

	collection.run(ctx, seq, query)
}

// State returns the current fetch lifecycle state
func (collection *Collection[T]) State() State {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.state
}

// Rows returns the rows of the currently displayed page
func (collection *Collection[T]) Rows() []T {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.rows
}

// Total returns the total amount of rows matching the current filter and search state
func (collection *Collection[T]) Total() uint64 {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.total
}

// TotalPages returns the amount of pages the current result set spans
func (collection *Collection[T]) TotalPages() uint64 {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.query.TotalPages(collection.total)
}

// Error returns the error message of the latest failed fetch, if any
func (collection *Collection[T]) Error() string {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.errMessage
}

// Query returns a copy of the current query state
func (collection *Collection[T]) Query() paging.Query {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	query := collection.query
	query.Filters = map[string]string{}
	for name, value := range collection.query.Filters {
		query.Filters[name] = value
	}
	return query
}

// Window returns the page button window for the current state
func (collection *Collection[T]) Window() paging.Window {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return paging.NewWindow(collection.query.Page, collection.query.TotalPages(collection.total))
}

// SelectRow adds or removes a single row from the selection
func (collection *Collection[T]) SelectRow(id string, checked bool) {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	collection.selection.Select(id, checked)
}

// SelectAll adds or removes every row on the currently displayed page
func (collection *Collection[T]) SelectAll(checked bool) {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	collection.selection.SelectAll(collection.pageIDsLocked(), checked)
}

// AllSelected returns whether every row on the currently displayed page is selected
func (collection *Collection[T]) AllSelected() bool {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.selection.AllSelected(collection.pageIDsLocked())
}

// Indeterminate returns whether the selection is non-empty but does not cover the whole page
func (collection *Collection[T]) Indeterminate() bool {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.selection.Indeterminate(collection.pageIDsLocked())
}

// SelectedIDs returns the IDs of all selected rows
func (collection *Collection[T]) SelectedIDs() []string {
	collection.mtx.Lock()
	defer collection.mtx.Unlock()
	return collection.selection.IDs()
}

// issueLocked reserves the next request sequence number and marks the collection as loading.
// The collection's mutex has to be held by the caller.
func (collection *Collection[T]) issueLocked() uint64 {
	collection.seq++
	collection.state = StateLoading
	return collection.seq
}

// run executes the fetch carrying the given sequence number and applies its outcome.
// Responses that are not the most recently issued request are discarded, so a
// slow stale response can never overwrite the result of a fresher query.
func (collection *Collection[T]) run(ctx context.Context, seq uint64, query paging.Query) {
	rows, total, err := collection.fetch(ctx, query)

	collection.mtx.Lock()

	if seq != collection.seq {
		collection.mtx.Unlock()
		return
	}

	if err != nil {
		collection.state = StateError
		collection.errMessage = err.Error()
		collection.rows = []T{}
		collection.total = 0
		// The selection is kept; it is only cleared when new row data arrives
		collection.mtx.Unlock()
		return
	}

	collection.state = StateSuccess
	collection.errMessage = ""
	if rows == nil {
		rows = []T{}
	}
	collection.rows = rows
	collection.total = total
	collection.selection.Clear()

	// If the result set shrank below the requested page, clamp and fetch the page that is actually there
	collection.query.Clamp(total)
	if collection.query.Page != query.Page {
		reseq := collection.issueLocked()
		requery := collection.query
		collection.mtx.Unlock()
		collection.run(ctx, reseq, requery)
		return
	}

	collection.mtx.Unlock()
}

func (collection *Collection[T]) pageIDsLocked() []string {
	ids := make([]string, 0, len(collection.rows))
	for _, row := range collection.rows {
		ids = append(ids, collection.rowID(row))
	}
	return ids
}
