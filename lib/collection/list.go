package collection

// List is a growable, index-addressable sequence.
type List[T any] struct {
	items []T
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Append adds values to the end of the list.
func (l *List[T]) Append(values ...T) {
	l.items = append(l.items, values...)
}

// At returns the element at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Set replaces the element at index i. It panics if i is out of range.
func (l *List[T]) Set(i int, v T) {
	l.items[i] = v
}

// Items returns the backing slice. It is only valid until the next mutation.
func (l *List[T]) Items() []T {
	return l.items
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Cap returns the capacity retained by the list.
func (l *List[T]) Cap() int {
	return cap(l.items)
}

// Clear removes every element and keeps the backing array.
func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}
