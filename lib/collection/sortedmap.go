package collection

import (
	"cmp"

	"github.com/google/btree"
)

type entry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

func entryLess[K cmp.Ordered, V any](a, b entry[K, V]) bool {
	return cmp.Less(a.key, b.key)
}

// SortedMap is a dictionary whose entries are kept in ascending key order.
type SortedMap[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

// NewSortedMap returns an empty sorted map.
func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return &SortedMap[K, V]{tree: btree.NewG(btreeDegree, entryLess[K, V])}
}

// Set associates v with k.
func (m *SortedMap[K, V]) Set(k K, v V) {
	m.tree.ReplaceOrInsert(entry[K, V]{key: k, value: v})
}

// Get returns the value for k.
func (m *SortedMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.tree.Get(entry[K, V]{key: k})
	return e.value, ok
}

// Delete removes k and reports whether it was present.
func (m *SortedMap[K, V]) Delete(k K) bool {
	_, ok := m.tree.Delete(entry[K, V]{key: k})
	return ok
}

// Ascend calls fn for each entry in ascending key order until fn returns false.
func (m *SortedMap[K, V]) Ascend(fn func(k K, v V) bool) {
	m.tree.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.value)
	})
}

// Keys returns the keys in ascending order.
func (m *SortedMap[K, V]) Keys() []K {
	out := make([]K, 0, m.tree.Len())
	m.Ascend(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Len returns the number of entries.
func (m *SortedMap[K, V]) Len() int {
	return m.tree.Len()
}

// Clear removes every entry, keeping tree nodes on the freelist.
func (m *SortedMap[K, V]) Clear() {
	m.tree.Clear(true)
}
