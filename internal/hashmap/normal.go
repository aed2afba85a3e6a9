package hashmap

import "sync"

// NormalMap is a plain thread safe hash map.
// Reads take a shared lock, so concurrent lookups never block each other.
type NormalMap[K comparable, V any] struct {
	mtx     sync.RWMutex
	entries map[K]V
}

// NewNormal creates a new empty thread safe map
func NewNormal[K comparable, V any]() *NormalMap[K, V] {
	return &NormalMap[K, V]{
		entries: map[K]V{},
	}
}

// Lookup returns the value stored under the given key and whether it was present
func (obj *NormalMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	value, ok := obj.entries[key]
	return value, ok
}

// Set stores a value under the given key, replacing any previous one
func (obj *NormalMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.entries[key] = value
}

// Unset removes the value stored under the given key
func (obj *NormalMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.entries, key)
}

// Clear removes every stored entry
func (obj *NormalMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.entries = map[K]V{}
}
