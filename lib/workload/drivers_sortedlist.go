//go:build !scratchpool_nosortedlist

package workload

import (
	"github.com/go-i2p/scratchpool/lib/collection"
	"github.com/go-i2p/scratchpool/lib/registry"
)

func init() {
	driverFactories[registry.KindSortedList] = func(r *registry.Registry) (driver, error) {
		return newDriver(registry.SortedList[int, int](r), func(l *collection.SortedList[int, int], n int) {
			for i := n; i > 0; i-- {
				l.Set(i, i*i)
			}
		}), nil
	}
}
