package paging

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type commitRecorder struct {
	mtx   sync.Mutex
	terms []string
}

func (recorder *commitRecorder) commit(term string) {
	recorder.mtx.Lock()
	defer recorder.mtx.Unlock()
	recorder.terms = append(recorder.terms, term)
}

func (recorder *commitRecorder) committed() []string {
	recorder.mtx.Lock()
	defer recorder.mtx.Unlock()
	return append([]string{}, recorder.terms...)
}

func TestDebouncerCommitsOnce(t *testing.T) {
	recorder := &commitRecorder{}
	debouncer := NewDebouncer(20*time.Millisecond, recorder.commit)

	// Typing within the quiet window commits exactly one term
	debouncer.Input("a")
	debouncer.Input("ab")
	debouncer.Input("abc")
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"abc"}, recorder.committed())
}

func TestDebouncerCommitsSequentially(t *testing.T) {
	recorder := &commitRecorder{}
	debouncer := NewDebouncer(20*time.Millisecond, recorder.commit)

	debouncer.Input("a")
	time.Sleep(60 * time.Millisecond)
	debouncer.Input("ab")
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"a", "ab"}, recorder.committed())
}

func TestDebouncerClearCommitsImmediately(t *testing.T) {
	recorder := &commitRecorder{}
	debouncer := NewDebouncer(time.Minute, recorder.commit)

	debouncer.Input("pending")
	debouncer.Clear()

	assert.Equal(t, []string{""}, recorder.committed())

	// The pending input must never surface afterwards
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []string{""}, recorder.committed())
}

func TestDebouncerStop(t *testing.T) {
	recorder := &commitRecorder{}
	debouncer := NewDebouncer(10*time.Millisecond, recorder.commit)

	debouncer.Input("dropped")
	debouncer.Stop()
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, recorder.committed())
}
