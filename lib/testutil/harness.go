// Package testutil provides helpers for exercising pools from many
// goroutines at once. It has no dependency on the pool package so that
// package's own tests can use it.
package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc"
)

// CountingFactory wraps a constructor and counts how often it runs.
type CountingFactory[T any] struct {
	calls atomic.Int64
	newFn func() T
}

// NewCountingFactory returns a CountingFactory around newFn.
func NewCountingFactory[T any](newFn func() T) *CountingFactory[T] {
	return &CountingFactory[T]{newFn: newFn}
}

// New constructs an item and records the call. Its signature matches a
// pool factory, so cf.New can be passed directly.
func (cf *CountingFactory[T]) New() T {
	cf.calls.Add(1)
	return cf.newFn()
}

// Calls returns the number of items constructed so far.
func (cf *CountingFactory[T]) Calls() int64 {
	return cf.calls.Load()
}

// Reset zeroes the call count.
func (cf *CountingFactory[T]) Reset() {
	cf.calls.Store(0)
}

// RentConcurrently starts k goroutines that block on a shared barrier, then
// releases them together so every call to rent races the others. It returns
// the k results in goroutine order. A panic in rent is re-raised here.
func RentConcurrently[T any](k int, rent func() T) []T {
	out := make([]T, k)
	start := make(chan struct{})

	var ready sync.WaitGroup
	ready.Add(k)
	var wg conc.WaitGroup
	for i := range k {
		wg.Go(func() {
			ready.Done()
			<-start
			out[i] = rent()
		})
	}

	ready.Wait()
	close(start)
	wg.Wait()
	return out
}

// Hammer runs fn n times on each of workers goroutines and waits for all of
// them. A panic in fn is re-raised here.
func Hammer(workers, n int, fn func(worker int)) {
	var wg conc.WaitGroup
	for w := range workers {
		wg.Go(func() {
			for range n {
				fn(w)
			}
		})
	}
	wg.Wait()
}

// Distinct reports whether every element of items is unique.
func Distinct[T comparable](items []T) bool {
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return false
		}
		seen[item] = struct{}{}
	}
	return true
}
