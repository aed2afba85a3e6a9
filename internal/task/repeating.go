package task

import (
	"sync"
	"time"
)

// RepeatingTask runs a function in a fixed interval on its own goroutine
type RepeatingTask struct {
	mtx sync.Mutex

	run      func()
	interval time.Duration
	stop     chan struct{}
}

// NewRepeating creates a new repeating task; it does not run until Start is called
func NewRepeating(run func(), interval time.Duration) *RepeatingTask {
	return &RepeatingTask{
		run:      run,
		interval: interval,
	}
}

// Start starts the repeating task; a no-op if it is already running
func (task *RepeatingTask) Start() {
	task.mtx.Lock()
	defer task.mtx.Unlock()
	if task.stop != nil {
		return
	}

	stop := make(chan struct{})
	task.stop = stop
	go func() {
		ticker := time.NewTicker(task.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				task.run()
			case <-stop:
				return
			}
		}
	}()
}

// Stop stops the repeating task; a no-op if it is not running.
// If final is set, the function is run one last time before returning, so
// write-behind buffers can flush their remaining state on shutdown.
func (task *RepeatingTask) Stop(final bool) {
	task.mtx.Lock()
	defer task.mtx.Unlock()
	if task.stop == nil {
		return
	}

	close(task.stop)
	task.stop = nil
	if final {
		task.run()
	}
}
