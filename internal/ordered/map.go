// Package ordered provides a minimal insertion-ordered map, used by
// the collectors in the parent package to preserve JSON object key
// insertion order even when the collector's result type is a hash map.
package ordered

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map is a generic insertion-ordered map: lookups go through the
// backing Go map, iteration follows the order keys were first Set.
type Map[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if i, ok := m.index[key]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Set inserts key/value, appending key to the iteration order if it
// is new, or overwriting the value in place if it already exists.
func (m *Map[K, V]) Set(key K, val V) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice must
// not be mutated by the caller.
func (m *Map[K, V]) Keys() []K { return m.keys }

// Range calls fn for each entry in insertion order, stopping early if
// fn returns false.
func (m *Map[K, V]) Range(fn func(key K, val V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// ToMap copies the entries into a plain Go map, losing order — used
// by collectors whose finished result type is a bare map[K]V.
func (m *Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, len(m.keys))
	for i, k := range m.keys {
		out[k] = m.vals[i]
	}
	return out
}

// Clone returns a deep-enough copy sharing no backing arrays with m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		index: maps.Clone(m.index),
		keys:  slices.Clone(m.keys),
		vals:  slices.Clone(m.vals),
	}
}
