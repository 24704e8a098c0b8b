// Package collection provides the scratch containers handed out by the
// registry's pools. Every container starts empty, reports its length and
// can be cleared in place so it is accepted back by its pool.
package collection

// Container is the behaviour every pooled container shares.
type Container interface {
	// Len returns the number of elements.
	Len() int
	// Clear removes every element, keeping allocated capacity where possible.
	Clear()
}

// IsEmpty reports whether c holds no elements. It is the validity predicate
// for every built-in pool family.
func IsEmpty[C Container](c C) bool {
	return c.Len() == 0
}
