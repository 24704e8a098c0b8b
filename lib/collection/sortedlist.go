package collection

import (
	"cmp"
	"slices"
)

// SortedList is a dictionary stored as parallel key and value slices kept in
// ascending key order. Lookups are binary searches; inserts shift elements.
type SortedList[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
}

// NewSortedList returns an empty sorted list.
func NewSortedList[K cmp.Ordered, V any]() *SortedList[K, V] {
	return &SortedList[K, V]{}
}

// Set associates v with k.
func (l *SortedList[K, V]) Set(k K, v V) {
	i, found := slices.BinarySearch(l.keys, k)
	if found {
		l.values[i] = v
		return
	}
	l.keys = slices.Insert(l.keys, i, k)
	l.values = slices.Insert(l.values, i, v)
}

// Get returns the value for k.
func (l *SortedList[K, V]) Get(k K) (V, bool) {
	i, found := slices.BinarySearch(l.keys, k)
	if !found {
		var zero V
		return zero, false
	}
	return l.values[i], true
}

// Delete removes k and reports whether it was present.
func (l *SortedList[K, V]) Delete(k K) bool {
	i, found := slices.BinarySearch(l.keys, k)
	if !found {
		return false
	}
	l.keys = slices.Delete(l.keys, i, i+1)
	l.values = slices.Delete(l.values, i, i+1)
	return true
}

// IndexOfKey returns the position of k, or -1 if absent.
func (l *SortedList[K, V]) IndexOfKey(k K) int {
	i, found := slices.BinarySearch(l.keys, k)
	if !found {
		return -1
	}
	return i
}

// KeyAt returns the key at position i. It panics if i is out of range.
func (l *SortedList[K, V]) KeyAt(i int) K {
	return l.keys[i]
}

// ValueAt returns the value at position i. It panics if i is out of range.
func (l *SortedList[K, V]) ValueAt(i int) V {
	return l.values[i]
}

// Len returns the number of entries.
func (l *SortedList[K, V]) Len() int {
	return len(l.keys)
}

// Clear removes every entry and keeps both backing arrays.
func (l *SortedList[K, V]) Clear() {
	clear(l.keys)
	clear(l.values)
	l.keys = l.keys[:0]
	l.values = l.values[:0]
}
