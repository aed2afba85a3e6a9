package hashmap

import (
	"sync"
	"time"

	"github.com/cobaltpay/backoffice/internal/task"
)

type expiringEntry[V any] struct {
	value   V
	expires time.Time
}

// ExpiringMap is a thread safe hash map whose entries expire after a fixed
// lifetime. Expired entries are never served, even before the cleanup task
// removed them; the cleanup task only reclaims the memory.
type ExpiringMap[K comparable, V any] struct {
	mtx     sync.RWMutex
	entries map[K]expiringEntry[V]

	lifetime    time.Duration
	cleanupTask *task.RepeatingTask
}

// NewExpiring creates a new expiring map with the given entry lifetime
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		entries:  map[K]expiringEntry[V]{},
		lifetime: lifetime,
	}
}

// ScheduleCleanupTask starts the background task that removes expired entries
// in the given interval. Call StopCleanupTask once the map is no longer needed;
// the map is not garbage collected while the task runs.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		now := time.Now()
		obj.mtx.Lock()
		defer obj.mtx.Unlock()
		for key, entry := range obj.entries {
			if now.After(entry.expires) {
				delete(obj.entries, key)
			}
		}
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the background cleanup task
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(false)
	obj.cleanupTask = nil
}

// Lookup returns the value stored under the given key and whether a live
// (non-expired) entry was present
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	entry, ok := obj.entries[key]
	if !ok || time.Now().After(entry.expires) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores a value under the given key and restarts its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.entries[key] = expiringEntry[V]{
		value:   value,
		expires: time.Now().Add(obj.lifetime),
	}
}

// Unset removes the value stored under the given key
func (obj *ExpiringMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.entries, key)
}
