package collection

// Map is an unordered key/value dictionary.
type Map[K comparable, V any] struct {
	m map[K]V
}

// NewMap returns an empty map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Set associates v with k.
func (m *Map[K, V]) Set(k K, v V) {
	m.m[k] = v
}

// Get returns the value for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	if _, ok := m.m[k]; !ok {
		return false
	}
	delete(m.m, k)
	return true
}

// Keys returns the keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, len(m.m))
	for k := range m.m {
		out = append(out, k)
	}
	return out
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.m)
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	clear(m.m)
}
