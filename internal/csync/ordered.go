package csync

import (
	"slices"
	"sync"
)

// OrderedMap is a thread-safe map that remembers insertion order.
// Keys keep their original position when their value is overwritten;
// deleting a key and setting it again moves it to the end.
type OrderedMap[K comparable, V any] struct {
	data  map[K]V
	order []K
	mu    sync.RWMutex
}

// NewOrderedMap creates an empty ordered map
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: make(map[K]V),
	}
}

// Set stores a key-value pair, appending the key if it is new
func (m *OrderedMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = value
}

// Get retrieves a value by key, returns the value and whether it exists
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// Has checks if a key exists in the map
func (m *OrderedMap[K, V]) Has(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.data[key]
	return exists
}

// Update replaces the value stored under key with the result of fn while
// holding the write lock. If fn returns an error nothing is written.
// found reports whether the key existed; fn is not called otherwise.
func (m *OrderedMap[K, V]) Update(key K, fn func(V) (V, error)) (found bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.data[key]
	if !exists {
		return false, nil
	}
	next, err := fn(current)
	if err != nil {
		return true, err
	}
	m.data[key] = next
	return true, nil
}

// Delete removes a key and its position
func (m *OrderedMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists {
		return
	}
	delete(m.data, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Len returns the number of entries
func (m *OrderedMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns the keys in insertion order
func (m *OrderedMap[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Values returns the values in insertion order
func (m *OrderedMap[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]V, 0, len(m.order))
	for _, key := range m.order {
		values = append(values, m.data[key])
	}
	return values
}

// Range iterates in insertion order. If f returns false, iteration stops.
// The read lock is held for the whole iteration, so f must not write to m.
func (m *OrderedMap[K, V]) Range(f func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, key := range m.order {
		if !f(key, m.data[key]) {
			break
		}
	}
}

// Clear removes all entries
func (m *OrderedMap[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[K]V)
	m.order = nil
}

// ReplaceWith swaps the contents of m for a copy of other's contents
func (m *OrderedMap[K, V]) ReplaceWith(other *OrderedMap[K, V]) {
	other.mu.RLock()
	data := make(map[K]V, len(other.data))
	for key, value := range other.data {
		data[key] = value
	}
	order := slices.Clone(other.order)
	other.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.order = order
}
