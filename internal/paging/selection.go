package paging

// Selection represents the set of row IDs selected on the currently displayed page.
// It is only cleared when new row data arrives, so a selection survives a failed refresh.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates a new empty row selection
func NewSelection() *Selection {
	return &Selection{
		ids: map[string]struct{}{},
	}
}

// Select adds or removes a single row from the selection
func (selection *Selection) Select(id string, checked bool) {
	if checked {
		selection.ids[id] = struct{}{}
	} else {
		delete(selection.ids, id)
	}
}

// SelectAll adds or removes every row on the current page
func (selection *Selection) SelectAll(pageIDs []string, checked bool) {
	for _, id := range pageIDs {
		selection.Select(id, checked)
	}
}

// Has returns whether the given row is selected
func (selection *Selection) Has(id string) bool {
	_, ok := selection.ids[id]
	return ok
}

// Size returns the amount of selected rows
func (selection *Selection) Size() int {
	return len(selection.ids)
}

// IDs returns the IDs of all selected rows
func (selection *Selection) IDs() []string {
	ids := make([]string, 0, len(selection.ids))
	for id := range selection.ids {
		ids = append(ids, id)
	}
	return ids
}

// AllSelected returns whether every row on the current page is selected.
// An empty page never counts as fully selected.
func (selection *Selection) AllSelected(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !selection.Has(id) {
			return false
		}
	}
	return true
}

// Indeterminate returns whether the selection is non-empty but does not cover the whole page
func (selection *Selection) Indeterminate(pageIDs []string) bool {
	return len(selection.ids) > 0 && !selection.AllSelected(pageIDs)
}

// Clear empties the selection
func (selection *Selection) Clear() {
	selection.ids = map[string]struct{}{}
}
