//go:build !scratchpool_nosortedlist

package registry

import (
	"cmp"

	"github.com/go-i2p/scratchpool/lib/collection"
	"github.com/go-i2p/scratchpool/lib/pool"
)

// SortedList returns the pool of *collection.SortedList[K, V].
// Builds tagged scratchpool_nosortedlist omit this family.
func SortedList[K cmp.Ordered, V any](r *Registry) *pool.Pool[*collection.SortedList[K, V]] {
	return mustPool(r, KindSortedList, poolName(KindSortedList, typeName[K](), typeName[V]()), collection.NewSortedList[K, V])
}
