package collection

import "container/list"

// LinkedList is a doubly linked list.
type LinkedList[T any] struct {
	l *list.List
}

// NewLinkedList returns an empty linked list.
func NewLinkedList[T any]() *LinkedList[T] {
	return &LinkedList[T]{l: list.New()}
}

// PushBack appends v.
func (l *LinkedList[T]) PushBack(v T) {
	l.l.PushBack(v)
}

// PushFront prepends v.
func (l *LinkedList[T]) PushFront(v T) {
	l.l.PushFront(v)
}

// PopFront removes and returns the first element.
func (l *LinkedList[T]) PopFront() (T, bool) {
	return l.pop(l.l.Front())
}

// PopBack removes and returns the last element.
func (l *LinkedList[T]) PopBack() (T, bool) {
	return l.pop(l.l.Back())
}

func (l *LinkedList[T]) pop(e *list.Element) (T, bool) {
	if e == nil {
		var zero T
		return zero, false
	}
	return l.l.Remove(e).(T), true
}

// Values returns the elements from front to back.
func (l *LinkedList[T]) Values() []T {
	out := make([]T, 0, l.l.Len())
	for e := l.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(T))
	}
	return out
}

// Len returns the number of elements.
func (l *LinkedList[T]) Len() int {
	return l.l.Len()
}

// Clear removes every element.
func (l *LinkedList[T]) Clear() {
	l.l.Init()
}
