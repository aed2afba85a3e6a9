package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Amount int64
}

func rowID(r row) string {
	return r.ID
}

func defaults() paging.Query {
	return paging.NewQuery(10, "created_at", paging.OrderDescending)
}

// staticFetcher serves pages out of a fixed row set, honoring page and page size
func staticFetcher(all []row) Fetcher[row] {
	return func(_ context.Context, query paging.Query) ([]row, uint64, error) {
		start := (query.Page - 1) * query.PageSize
		if start >= uint64(len(all)) {
			return []row{}, uint64(len(all)), nil
		}
		end := start + query.PageSize
		if end > uint64(len(all)) {
			end = uint64(len(all))
		}
		return all[start:end], uint64(len(all)), nil
	}
}

func makeRows(n int) []row {
	rows := make([]row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, row{ID: fmt.Sprintf("row-%02d", i), Amount: int64(i) * 100})
	}
	return rows
}

func TestCollectionLoad(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(25)), rowID)
	assert.Equal(t, StateIdle, col.State())

	col.Load(context.Background())

	assert.Equal(t, StateSuccess, col.State())
	assert.Len(t, col.Rows(), 10)
	assert.Equal(t, uint64(25), col.Total())
	assert.Equal(t, uint64(3), col.TotalPages())
}

func TestCollectionRowsNeverExceedPageSize(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(25)), rowID)
	col.Load(context.Background())

	for page := uint64(1); page <= col.TotalPages(); page++ {
		col.SetPage(context.Background(), page)
		assert.LessOrEqual(t, len(col.Rows()), 10)
	}
}

func TestCollectionSetPageValidation(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(25)), rowID)
	col.Load(context.Background())

	col.SetPage(context.Background(), 0)
	assert.Equal(t, uint64(1), col.Query().Page)

	col.SetPage(context.Background(), 4)
	assert.Equal(t, uint64(1), col.Query().Page)

	col.SetPage(context.Background(), 3)
	assert.Equal(t, uint64(3), col.Query().Page)
	assert.Len(t, col.Rows(), 5)
}

func TestCollectionGesturesResetPage(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(50)), rowID)
	col.Load(context.Background())

	col.SetPage(context.Background(), 3)
	col.SetSearch(context.Background(), "abc")
	assert.Equal(t, uint64(1), col.Query().Page)

	col.SetPage(context.Background(), 3)
	col.SetFilter(context.Background(), "status", "completed")
	assert.Equal(t, uint64(1), col.Query().Page)

	col.SetPage(context.Background(), 3)
	col.ToggleSort(context.Background(), "amount")
	assert.Equal(t, uint64(1), col.Query().Page)
}

func TestCollectionErrorSemantics(t *testing.T) {
	failing := false
	fetch := func(ctx context.Context, query paging.Query) ([]row, uint64, error) {
		if failing {
			return nil, 0, errors.New("Failed to fetch access logs")
		}
		return staticFetcher(makeRows(25))(ctx, query)
	}

	col := New(defaults(), fetch, rowID)
	col.Load(context.Background())
	col.SetFilter(context.Background(), "status", "completed")
	col.SelectRow("row-01", true)

	failing = true
	col.Load(context.Background())

	assert.Equal(t, StateError, col.State())
	assert.Empty(t, col.Rows())
	assert.Equal(t, uint64(0), col.Total())
	assert.Equal(t, "Failed to fetch access logs", col.Error())

	// Filter and search state are retained so the user can correct and retry
	assert.Equal(t, "completed", col.Query().Filters["status"])

	// The stale selection survives the failed refresh
	assert.Contains(t, col.SelectedIDs(), "row-01")

	// A successful fetch clears the error and the selection
	failing = false
	col.Load(context.Background())
	assert.Equal(t, StateSuccess, col.State())
	assert.Empty(t, col.Error())
	assert.Empty(t, col.SelectedIDs())
}

func TestCollectionSelection(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(3)), rowID)
	col.Load(context.Background())

	col.SelectAll(true)
	assert.True(t, col.AllSelected())
	assert.False(t, col.Indeterminate())

	col.SelectRow("row-01", false)
	assert.False(t, col.AllSelected())
	assert.True(t, col.Indeterminate())

	// New row data clears the selection
	col.Load(context.Background())
	assert.Empty(t, col.SelectedIDs())
	assert.False(t, col.Indeterminate())
}

func TestCollectionRefresh(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(50)), rowID)
	col.Load(context.Background())

	col.SetSearch(context.Background(), "abc")
	col.ToggleSort(context.Background(), "amount")
	col.SetFilter(context.Background(), "status", "pending")
	col.SetPage(context.Background(), 2)

	col.Refresh(context.Background())

	query := col.Query()
	assert.Equal(t, "", query.Search)
	assert.Equal(t, "created_at", query.SortColumn)
	assert.Equal(t, paging.OrderDescending, query.SortOrder)
	assert.Equal(t, uint64(1), query.Page)

	// Filter values are kept across a refresh
	assert.Equal(t, "pending", query.Filters["status"])
}

func TestCollectionClampsAfterShrinkingResultSet(t *testing.T) {
	all := makeRows(25)
	var mtx sync.Mutex
	fetch := func(ctx context.Context, query paging.Query) ([]row, uint64, error) {
		mtx.Lock()
		current := all
		mtx.Unlock()
		return staticFetcher(current)(ctx, query)
	}

	col := New(defaults(), fetch, rowID)
	col.Load(context.Background())
	col.SetPage(context.Background(), 3)

	// Everything beyond the first page disappears server-side
	mtx.Lock()
	all = makeRows(5)
	mtx.Unlock()

	col.Load(context.Background())
	assert.Equal(t, uint64(1), col.Query().Page)
	assert.Len(t, col.Rows(), 5)
}

func TestCollectionDiscardsStaleResponses(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mtx sync.Mutex

	fetch := func(ctx context.Context, query paging.Query) ([]row, uint64, error) {
		mtx.Lock()
		calls++
		first := calls == 1
		mtx.Unlock()
		if first {
			// The first request is slow and resolves after the second one
			<-release
			return []row{{ID: "stale"}}, 1, nil
		}
		return []row{{ID: "fresh"}}, 1, nil
	}

	col := New(defaults(), fetch, rowID)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		col.SetSearch(context.Background(), "old")
	}()

	// Make sure the slow request is in flight before issuing the fresh one
	for {
		mtx.Lock()
		inFlight := calls >= 1
		mtx.Unlock()
		if inFlight {
			break
		}
	}

	col.SetSearch(context.Background(), "new")
	require.Equal(t, "fresh", col.Rows()[0].ID)

	close(release)
	wg.Wait()

	// The slow response carries a stale sequence number and must not overwrite the fresh rows
	assert.Equal(t, "fresh", col.Rows()[0].ID)
	assert.Equal(t, StateSuccess, col.State())
}

func TestCollectionSearchInputDebounces(t *testing.T) {
	var mtx sync.Mutex
	var committed []string
	fetch := func(ctx context.Context, query paging.Query) ([]row, uint64, error) {
		mtx.Lock()
		committed = append(committed, query.Search)
		mtx.Unlock()
		return []row{}, 0, nil
	}

	col := New(defaults(), fetch, rowID)
	col.SearchInput(context.Background(), "a")
	col.SearchInput(context.Background(), "ab")
	col.SearchInput(context.Background(), "abc")

	// Typing within the quiet window commits only the final term
	assert.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(committed) == 1 && committed[0] == "abc"
	}, 3*time.Second, 25*time.Millisecond)
	assert.Equal(t, "abc", col.Query().Search)
	assert.Equal(t, uint64(1), col.Query().Page)
}

func TestCollectionSearchInputClearsImmediately(t *testing.T) {
	col := New(defaults(), staticFetcher(makeRows(25)), rowID)
	col.SetSearch(context.Background(), "abc")
	require.Equal(t, "abc", col.Query().Search)

	// An empty term bypasses the quiet window entirely
	col.SearchInput(context.Background(), "abc")
	col.SearchInput(context.Background(), "")
	assert.Empty(t, col.Query().Search)
	assert.Equal(t, StateSuccess, col.State())
}
