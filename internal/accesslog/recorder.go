package accesslog

import (
	"context"
	"sync"
)

// Recorder buffers access log entries in memory and writes them to the
// repository in batches in order to keep per-request overhead low.
// A repeating task is expected to call Flush in a fixed interval.
type Recorder struct {
	repo Repository

	mtx     sync.Mutex
	pending []*Log
}

// NewRecorder creates a new access log recorder
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{
		repo: repo,
	}
}

// Record buffers a single access log entry
func (recorder *Recorder) Record(log *Log) {
	recorder.mtx.Lock()
	defer recorder.mtx.Unlock()
	recorder.pending = append(recorder.pending, log)
}

// Flush writes all buffered entries to the repository and resets the buffer.
// If the write fails, the entries are kept for the next flush.
func (recorder *Recorder) Flush() (int, error) {
	recorder.mtx.Lock()
	pending := recorder.pending
	recorder.pending = nil
	recorder.mtx.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}

	if err := recorder.repo.CreateMany(context.Background(), pending); err != nil {
		recorder.mtx.Lock()
		recorder.pending = append(pending, recorder.pending...)
		recorder.mtx.Unlock()
		return 0, err
	}
	return len(pending), nil
}
