package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSelectAll(t *testing.T) {
	pageIDs := []string{"a", "b", "c"}
	selection := NewSelection()

	selection.SelectAll(pageIDs, true)
	assert.True(t, selection.AllSelected(pageIDs))
	assert.False(t, selection.Indeterminate(pageIDs))
	assert.Equal(t, 3, selection.Size())

	selection.SelectAll(pageIDs, false)
	assert.False(t, selection.AllSelected(pageIDs))
	assert.False(t, selection.Indeterminate(pageIDs))
	assert.Equal(t, 0, selection.Size())
}

func TestSelectionIndeterminate(t *testing.T) {
	pageIDs := []string{"a", "b", "c"}
	selection := NewSelection()

	selection.Select("a", true)
	assert.True(t, selection.Indeterminate(pageIDs))
	assert.False(t, selection.AllSelected(pageIDs))

	selection.Select("b", true)
	selection.Select("c", true)
	assert.True(t, selection.AllSelected(pageIDs))
	assert.False(t, selection.Indeterminate(pageIDs))

	selection.Select("b", false)
	assert.True(t, selection.Indeterminate(pageIDs))
}

func TestSelectionEmptyPage(t *testing.T) {
	selection := NewSelection()
	assert.False(t, selection.AllSelected(nil))

	selection.Select("stale", true)
	assert.True(t, selection.Indeterminate(nil))
}

func TestSelectionClear(t *testing.T) {
	selection := NewSelection()
	selection.Select("a", true)
	selection.Select("b", true)

	selection.Clear()
	assert.Equal(t, 0, selection.Size())
	assert.False(t, selection.Has("a"))
}
