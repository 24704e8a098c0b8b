package collection

import (
	"cmp"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the B-trees backing sorted containers.
const btreeDegree = 16

// SortedSet is a set whose values are kept in ascending order.
type SortedSet[T cmp.Ordered] struct {
	tree *btree.BTreeG[T]
}

// NewSortedSet returns an empty sorted set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{tree: btree.NewG[T](btreeDegree, cmp.Less[T])}
}

// Add inserts v and reports whether it was not already present.
func (s *SortedSet[T]) Add(v T) bool {
	_, replaced := s.tree.ReplaceOrInsert(v)
	return !replaced
}

// Remove deletes v and reports whether it was present.
func (s *SortedSet[T]) Remove(v T) bool {
	_, ok := s.tree.Delete(v)
	return ok
}

// Contains reports whether v is in the set.
func (s *SortedSet[T]) Contains(v T) bool {
	return s.tree.Has(v)
}

// Min returns the smallest value.
func (s *SortedSet[T]) Min() (T, bool) {
	return s.tree.Min()
}

// Max returns the largest value.
func (s *SortedSet[T]) Max() (T, bool) {
	return s.tree.Max()
}

// Values returns the elements in ascending order.
func (s *SortedSet[T]) Values() []T {
	out := make([]T, 0, s.tree.Len())
	s.tree.Ascend(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Len returns the number of elements.
func (s *SortedSet[T]) Len() int {
	return s.tree.Len()
}

// Clear removes every element, keeping tree nodes on the freelist.
func (s *SortedSet[T]) Clear() {
	s.tree.Clear(true)
}
