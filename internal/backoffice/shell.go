package backoffice

import "sync"

// Tab represents a single open screen in the shell
type Tab struct {
	ID    string
	Title string
}

// DetailNavigator is called when a container asks the shell to open a detail
// view for a specific resource. Containers never navigate themselves.
type DetailNavigator func(feature, id string)

// Shell keeps the registry of open tabs and the currently active one.
// Opening an already open tab only activates it; closing the active tab
// activates its left neighbour.
type Shell struct {
	mtx sync.Mutex

	tabs     []Tab
	active   string
	navigate DetailNavigator
}

// NewShell creates a new empty shell
func NewShell(navigate DetailNavigator) *Shell {
	return &Shell{
		navigate: navigate,
	}
}

// Open opens a new tab or, if a tab with the same ID is already open, activates it
func (shell *Shell) Open(id, title string) {
	shell.mtx.Lock()
	defer shell.mtx.Unlock()

	for _, tab := range shell.tabs {
		if tab.ID == id {
			shell.active = id
			return
		}
	}
	shell.tabs = append(shell.tabs, Tab{ID: id, Title: title})
	shell.active = id
}

// Activate switches to an already open tab; unknown IDs are a no-op
func (shell *Shell) Activate(id string) {
	shell.mtx.Lock()
	defer shell.mtx.Unlock()

	for _, tab := range shell.tabs {
		if tab.ID == id {
			shell.active = id
			return
		}
	}
}

// Close closes a tab. If the closed tab was active, its left neighbour (or the
// first remaining tab) becomes active.
func (shell *Shell) Close(id string) {
	shell.mtx.Lock()
	defer shell.mtx.Unlock()

	index := -1
	for i, tab := range shell.tabs {
		if tab.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}

	shell.tabs = append(shell.tabs[:index], shell.tabs[index+1:]...)
	if shell.active != id {
		return
	}
	if len(shell.tabs) == 0 {
		shell.active = ""
		return
	}
	if index > 0 {
		shell.active = shell.tabs[index-1].ID
	} else {
		shell.active = shell.tabs[0].ID
	}
}

// Tabs returns the open tabs in opening order
func (shell *Shell) Tabs() []Tab {
	shell.mtx.Lock()
	defer shell.mtx.Unlock()

	tabs := make([]Tab, len(shell.tabs))
	copy(tabs, shell.tabs)
	return tabs
}

// ActiveTab returns the ID of the currently active tab, or an empty string when no tab is open
func (shell *Shell) ActiveTab() string {
	shell.mtx.Lock()
	defer shell.mtx.Unlock()
	return shell.active
}

// OpenDetail forwards a detail navigation request to the injected navigator
func (shell *Shell) OpenDetail(feature, id string) {
	if shell.navigate != nil {
		shell.navigate(feature, id)
	}
}
