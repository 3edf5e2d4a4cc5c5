package obj

import "slices"

// Map is an insertion-ordered map with string keys. Declaration order is
// significant in several places of the object model (member discovery,
// field registries, declared-attribute maps), so plain Go maps are not
// enough.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{values: make(map[string]V)}
}

// Set inserts or replaces the value under key. Replacing keeps the key's
// original position.
func (m *Map[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *Map[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
