package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name          string
		current       uint64
		totalPages    uint64
		pages         []uint64
		firstShortcut bool
		lastShortcut  bool
	}{
		{"no pages", 1, 0, []uint64{}, false, false},
		{"single page", 1, 1, []uint64{1}, false, false},
		{"everything fits", 3, 5, []uint64{1, 2, 3, 4, 5}, false, false},
		{"first page of many", 1, 20, []uint64{1, 2, 3, 4, 5}, false, true},
		{"second page of many", 2, 20, []uint64{1, 2, 3, 4, 5}, false, true},
		{"centered", 10, 20, []uint64{8, 9, 10, 11, 12}, true, true},
		{"near the end", 18, 20, []uint64{16, 17, 18, 19, 20}, true, false},
		{"last page of many", 20, 20, []uint64{16, 17, 18, 19, 20}, true, false},
		{"current clamped above total", 25, 20, []uint64{16, 17, 18, 19, 20}, true, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			window := NewWindow(test.current, test.totalPages)
			assert.Equal(t, test.pages, window.Pages)
			assert.Equal(t, test.firstShortcut, window.FirstShortcut)
			assert.Equal(t, test.lastShortcut, window.LastShortcut)
		})
	}
}

func TestNewWindowNeverExceedsFiveButtons(t *testing.T) {
	for totalPages := uint64(1); totalPages <= 30; totalPages++ {
		for current := uint64(1); current <= totalPages; current++ {
			window := NewWindow(current, totalPages)
			assert.LessOrEqual(t, len(window.Pages), 5)

			// The current page is always part of the window
			assert.Contains(t, window.Pages, current)
		}
	}
}
