package collection

// Set is an unordered collection of distinct values.
type Set[T comparable] struct {
	m map[T]struct{}
}

// NewSet returns an empty set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{m: make(map[T]struct{})}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if _, ok := s.m[v]; !ok {
		return false
	}
	delete(s.m, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.m[v]
	return ok
}

// Values returns the elements in unspecified order.
func (s *Set[T]) Values() []T {
	out := make([]T, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	return out
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.m)
}

// Clear removes every element.
func (s *Set[T]) Clear() {
	clear(s.m)
}
