package paging

import (
	"sync"
	"time"
)

// DefaultDebounceInterval is the quiet window after which buffered search input is committed
const DefaultDebounceInterval = time.Second

// Debouncer buffers search box input and commits it upward once no further
// input arrived for a fixed interval. An explicit clear bypasses the interval
// and commits an empty term immediately, superseding any pending input.
type Debouncer struct {
	mtx sync.Mutex

	interval time.Duration
	commit   func(term string)

	timer *time.Timer
}

// NewDebouncer creates a new search input debouncer.
// If interval <= 0, DefaultDebounceInterval is used.
func NewDebouncer(interval time.Duration, commit func(term string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{
		interval: interval,
		commit:   commit,
	}
}

// Input buffers the current full search box content and (re)starts the quiet window
func (debouncer *Debouncer) Input(term string) {
	debouncer.mtx.Lock()
	defer debouncer.mtx.Unlock()

	if debouncer.timer != nil {
		debouncer.timer.Stop()
	}
	debouncer.timer = time.AfterFunc(debouncer.interval, func() {
		debouncer.commit(term)
	})
}

// Clear cancels any pending input and commits an empty search term immediately
func (debouncer *Debouncer) Clear() {
	debouncer.mtx.Lock()
	if debouncer.timer != nil {
		debouncer.timer.Stop()
		debouncer.timer = nil
	}
	debouncer.mtx.Unlock()

	debouncer.commit("")
}

// Stop cancels any pending input without committing anything
func (debouncer *Debouncer) Stop() {
	debouncer.mtx.Lock()
	defer debouncer.mtx.Unlock()

	if debouncer.timer != nil {
		debouncer.timer.Stop()
		debouncer.timer = nil
	}
}
