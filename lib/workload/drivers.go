package workload

import (
	"strconv"

	"github.com/go-i2p/scratchpool/lib/collection"
	"github.com/go-i2p/scratchpool/lib/pool"
	"github.com/go-i2p/scratchpool/lib/registry"
)

// driver performs one rent/fill/return cycle against a single pool.
type driver struct {
	pool  string
	stats func() pool.Stats
	cycle func(fill int, dirty bool)
}

// newDriver builds a driver that fills a rented container with fill
// elements and clears it before returning unless the cycle is dirty.
func newDriver[C collection.Container](p *pool.Pool[C], fill func(C, int)) driver {
	return driver{
		pool:  p.Name(),
		stats: p.Stats,
		cycle: func(n int, dirty bool) {
			c := p.Rent()
			fill(c, n)
			if !dirty {
				c.Clear()
			}
			p.Return(c)
		},
	}
}

// scratchBuffer is the payload for the custom kind.
type scratchBuffer struct {
	data []byte
}

func (b *scratchBuffer) Len() int { return len(b.data) }
func (b *scratchBuffer) Clear()   { b.data = b.data[:0] }

// driverFactories maps each kind to the driver exercising its pool.
var driverFactories = map[registry.Kind]func(*registry.Registry) (driver, error){
	registry.KindList: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.List[int](r), func(l *collection.List[int], n int) {
			for i := range n {
				l.Append(i)
			}
		}), nil
	},
	registry.KindSet: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.Set[int](r), func(s *collection.Set[int], n int) {
			for i := range n {
				s.Add(i)
			}
		}), nil
	},
	registry.KindSortedSet: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.SortedSet[int](r), func(s *collection.SortedSet[int], n int) {
			for i := n; i > 0; i-- {
				s.Add(i)
			}
		}), nil
	},
	registry.KindLinkedList: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.LinkedList[int](r), func(l *collection.LinkedList[int], n int) {
			for i := range n {
				l.PushBack(i)
			}
		}), nil
	},
	registry.KindQueue: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.Queue[int](r), func(q *collection.Queue[int], n int) {
			for i := range n {
				q.Enqueue(i)
			}
		}), nil
	},
	registry.KindStack: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.Stack[int](r), func(s *collection.Stack[int], n int) {
			for i := range n {
				s.Push(i)
			}
		}), nil
	},
	registry.KindMap: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.Map[string, int](r), func(m *collection.Map[string, int], n int) {
			for i := range n {
				m.Set(strconv.Itoa(i), i)
			}
		}), nil
	},
	registry.KindSortedMap: func(r *registry.Registry) (driver, error) {
		return newDriver(registry.SortedMap[string, int](r), func(m *collection.SortedMap[string, int], n int) {
			for i := range n {
				m.Set(strconv.Itoa(i), i)
			}
		}), nil
	},
	registry.KindCustom: func(r *registry.Registry) (driver, error) {
		p, err := registry.Custom(r,
			func() *scratchBuffer { return &scratchBuffer{data: make([]byte, 0, 256)} },
			collection.IsEmpty[*scratchBuffer])
		if err != nil {
			return driver{}, err
		}
		return newDriver(p, func(b *scratchBuffer, n int) {
			for i := range n {
				b.data = append(b.data, byte(i))
			}
		}), nil
	},
}
