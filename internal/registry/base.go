package registry

import (
	"maps"
	"sync"
)

// BaseRegistry provides common functionality for simple key-value registries
type BaseRegistry[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

// NewBaseRegistry creates a new base registry
func NewBaseRegistry[K comparable, V any]() *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		data: make(map[K]V),
	}
}

// Add stores value under key, replacing any previous value
func (r *BaseRegistry[K, V]) Add(key K, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
}

// Get retrieves an item from the registry
func (r *BaseRegistry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, exists := r.data[key]
	return value, exists
}

// GetAll returns all items (copy to prevent external modification)
func (r *BaseRegistry[K, V]) GetAll() map[K]V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[K]V, len(r.data))
	maps.Copy(result, r.data)
	return result
}

// Count returns the number of stored items
func (r *BaseRegistry[K, V]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Clear removes all items
func (r *BaseRegistry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[K]V)
}
