package collection

import "github.com/eapache/queue"

// Queue is a first-in first-out container backed by a ring buffer.
type Queue[T any] struct {
	q *queue.Queue
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{q: queue.New()}
}

// Enqueue adds v to the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.q.Add(v)
}

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, bool) {
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	// A nil interface value comes back untyped; the comma-ok form yields zero.
	v, _ := q.q.Remove().(T)
	return v, true
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	v, _ := q.q.Peek().(T)
	return v, true
}

// Len returns the number of elements.
func (q *Queue[T]) Len() int {
	return q.q.Length()
}

// Clear removes every element.
func (q *Queue[T]) Clear() {
	for q.q.Length() > 0 {
		q.q.Remove()
	}
}
