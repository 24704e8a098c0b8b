// Package pool provides a generic reusable-object pool.
// It supports eager pre-population, a retained-count floor and cap,
// return-time validity checks, and metrics for monitoring pool utilization.
package pool

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/go-i2p/scratchpool/lib/errors"
	"github.com/go-i2p/scratchpool/lib/validation"
)

var (
	// ErrNilFactory is returned when a pool is constructed without a factory.
	ErrNilFactory = fmt.Errorf("pool: factory %w", apperrors.ErrInvalidInput)
	// ErrNilValidator is returned when a pool is constructed without a validity predicate.
	ErrNilValidator = fmt.Errorf("pool: validator %w", apperrors.ErrInvalidInput)
	// ErrInvalidConfig is returned when the pool configuration is rejected.
	ErrInvalidConfig = fmt.Errorf("pool: %w", apperrors.ErrConfiguration)
	// ErrInvalidFactory is returned when the factory produces an item its own
	// validator refuses during pre-population.
	ErrInvalidFactory = fmt.Errorf("pool: factory produced an item that fails validation: %w", apperrors.ErrConfiguration)
)

// Factory produces a new, valid, ready-to-use item. It must not return an
// item that fails the pool's validator. A panic raised by the factory is
// propagated to the caller of Rent.
type Factory[T any] func() T

// Validator reports whether a returned item may be stored for reuse.
// It must be a pure, side-effect-free check such as "container is empty".
type Validator[T any] func(T) bool

// Config configures a pool.
type Config struct {
	// Name identifies the pool in logs and metrics.
	// Pools without a name do not publish metrics.
	Name string `toml:"-" yaml:"-"`
	// InitialCount is the number of items created at construction.
	// Default: 0
	InitialCount int `toml:"initial_count" yaml:"initial_count"`
	// MinRetained is the number of idle items the pool tops back up to after
	// a Rent leaves fewer. Zero means items are only created on demand.
	// Default: 0
	MinRetained int `toml:"min_retained" yaml:"min_retained"`
	// MaxRetained caps the number of idle items. Returns beyond the cap are
	// discarded. Zero means unbounded.
	// Default: 0
	MaxRetained int `toml:"max_retained" yaml:"max_retained"`
}

// DefaultConfig returns a Config that creates items on demand only and
// retains every valid returned item.
func DefaultConfig() Config {
	return Config{
		InitialCount: 0,
		MinRetained:  0,
		MaxRetained:  0,
	}
}

// Validate checks the configuration and reports every violation.
func (c Config) Validate() error {
	var errs validation.Errors
	errs.Add(validation.NonNegative("initial_count", c.InitialCount))
	errs.Add(validation.NonNegative("min_retained", c.MinRetained))
	errs.Add(validation.NonNegative("max_retained", c.MaxRetained))
	errs.Add(validation.AtMost("initial_count", c.InitialCount, "max_retained", c.MaxRetained))
	errs.Add(validation.AtMost("min_retained", c.MinRetained, "max_retained", c.MaxRetained))
	return errs.Err()
}

// Pool is a shared store of reusable items of one type.
//
// Rent and Return are safe for concurrent use. The factory and validator
// are never invoked while the pool's lock is held.
type Pool[T any] struct {
	factory Factory[T]
	valid   Validator[T]
	config  Config
	metrics *poolMetrics

	mu   sync.Mutex
	idle []T

	// Stats
	rentCount   uint64
	hitCount    uint64
	missCount   uint64
	replenishes uint64
	returnCount uint64
	acceptCount uint64
	rejectCount uint64
	dropCount   uint64
}

// New creates a pool and pre-populates it with cfg.InitialCount items.
// Configuration errors are reported here rather than on first use.
func New[T any](factory Factory[T], valid Validator[T], cfg Config) (*Pool[T], error) {
	if factory == nil {
		return nil, apperrors.Describe("pool", ErrNilFactory, "name", cfg.Name)
	}
	if valid == nil {
		return nil, apperrors.Describe("pool", ErrNilValidator, "name", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Describe("pool", fmt.Errorf("%w: %w", ErrInvalidConfig, err), "name", cfg.Name)
	}

	capacity := max(cfg.InitialCount, cfg.MinRetained)
	p := &Pool[T]{
		factory: factory,
		valid:   valid,
		config:  cfg,
		idle:    make([]T, 0, capacity),
	}
	if cfg.Name != "" {
		p.metrics = newPoolMetrics(cfg.Name)
	}

	for range cfg.InitialCount {
		item := p.create()
		if !valid(item) {
			return nil, apperrors.Describe("pool", ErrInvalidFactory, "name", cfg.Name)
		}
		p.idle = append(p.idle, item)
	}
	p.metrics.setIdle(len(p.idle))

	log.WithField("name", cfg.Name).
		WithField("initialCount", cfg.InitialCount).
		WithField("minRetained", cfg.MinRetained).
		WithField("maxRetained", cfg.MaxRetained).
		Debug("pool created")
	return p, nil
}

// Rent removes an idle item from the pool and returns it, or creates a new
// one with the factory when the pool is empty. Ownership of the item passes
// to the caller. Rent never blocks beyond a short critical section; a factory
// panic propagates unmodified and leaves the pool unchanged.
func (p *Pool[T]) Rent() T {
	p.mu.Lock()
	item, ok := p.popLocked()
	deficit := p.config.MinRetained - len(p.idle)
	p.mu.Unlock()

	if ok {
		atomic.AddUint64(&p.hitCount, 1)
	} else {
		item = p.create()
		atomic.AddUint64(&p.missCount, 1)
		p.metrics.miss()
	}
	atomic.AddUint64(&p.rentCount, 1)
	p.metrics.rent()

	if deficit > 0 {
		p.replenish(deficit)
	}
	return item
}

// popLocked removes the most recently returned item (caller must hold lock).
func (p *Pool[T]) popLocked() (T, bool) {
	var zero T
	n := len(p.idle)
	if n == 0 {
		return zero, false
	}
	item := p.idle[n-1]
	p.idle[n-1] = zero
	p.idle = p.idle[:n-1]
	p.metrics.setIdle(len(p.idle))
	return item, true
}

// create invokes the factory and records its latency.
func (p *Pool[T]) create() T {
	start := time.Now()
	item := p.factory()
	FactoryLatency.Observe(time.Since(start).Seconds())
	return item
}

// replenish creates up to n items outside the lock, then stores only as many
// as the idle store is still short of MinRetained, within MaxRetained.
// Concurrent renters may each have counted the same deficit.
func (p *Pool[T]) replenish(n int) {
	fresh := make([]T, 0, n)
	for range n {
		item := p.create()
		if !p.valid(item) {
			log.WithField("name", p.config.Name).Warn("factory produced an invalid item, not retaining it")
			continue
		}
		fresh = append(fresh, item)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	stored := 0
	for _, item := range fresh {
		if len(p.idle) >= p.config.MinRetained || !p.hasRoomLocked() {
			break
		}
		p.idle = append(p.idle, item)
		stored++
	}
	p.metrics.setIdle(len(p.idle))
	atomic.AddUint64(&p.replenishes, uint64(stored))
}

// hasRoomLocked reports whether another idle item fits (caller must hold lock).
func (p *Pool[T]) hasRoomLocked() bool {
	return p.config.MaxRetained == 0 || len(p.idle) < p.config.MaxRetained
}

// Return hands item back to the pool. Items that fail the validator are
// discarded without being reset; callers must leave items in a reusable
// state (conventionally empty) before returning them. Valid items are
// stored unless the pool already holds MaxRetained idle items.
//
// Returning an item twice, or using it after it was returned, is a caller
// error the pool does not detect.
func (p *Pool[T]) Return(item T) {
	atomic.AddUint64(&p.returnCount, 1)
	p.metrics.ret()

	if isNil(item) || !p.valid(item) {
		atomic.AddUint64(&p.rejectCount, 1)
		p.metrics.reject()
		log.WithField("name", p.config.Name).Debug("rejected returned item that failed validation")
		return
	}

	p.mu.Lock()
	if !p.hasRoomLocked() {
		p.mu.Unlock()
		atomic.AddUint64(&p.dropCount, 1)
		p.metrics.drop()
		log.WithField("name", p.config.Name).Debug("pool at capacity, dropping returned item")
		return
	}
	p.idle = append(p.idle, item)
	p.metrics.setIdle(len(p.idle))
	p.mu.Unlock()

	atomic.AddUint64(&p.acceptCount, 1)
}

// IdleCount returns the number of items currently stored in the pool.
func (p *Pool[T]) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Name returns the pool's configured name.
func (p *Pool[T]) Name() string {
	return p.config.Name
}

// Config returns the configuration the pool was built with.
func (p *Pool[T]) Config() Config {
	return p.config
}

// isNil reports whether v is a nil pointer, map, slice, channel, function or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// Stats returns pool statistics.
type Stats struct {
	// Name is the pool name.
	Name string `json:"name"`
	// Idle is the current number of idle items.
	Idle int `json:"idle"`
	// InitialCount is the configured pre-population count.
	InitialCount int `json:"initial_count"`
	// MinRetained is the configured idle floor.
	MinRetained int `json:"min_retained"`
	// MaxRetained is the configured idle cap (0 = unbounded).
	MaxRetained int `json:"max_retained"`
	// Rents is the total number of Rent calls.
	Rents uint64 `json:"rents"`
	// Hits is the number of rents served from the idle store.
	Hits uint64 `json:"hits"`
	// Misses is the number of rents that invoked the factory.
	Misses uint64 `json:"misses"`
	// Replenished is the number of items created to restore MinRetained.
	Replenished uint64 `json:"replenished"`
	// Returns is the total number of Return calls.
	Returns uint64 `json:"returns"`
	// Accepted is the number of returned items stored for reuse.
	Accepted uint64 `json:"accepted"`
	// Rejected is the number of returned items that failed validation.
	Rejected uint64 `json:"rejected"`
	// Dropped is the number of valid returned items discarded at the cap.
	Dropped uint64 `json:"dropped"`
}

// Stats returns current pool statistics.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Name:         p.config.Name,
		Idle:         p.IdleCount(),
		InitialCount: p.config.InitialCount,
		MinRetained:  p.config.MinRetained,
		MaxRetained:  p.config.MaxRetained,
		Rents:        atomic.LoadUint64(&p.rentCount),
		Hits:         atomic.LoadUint64(&p.hitCount),
		Misses:       atomic.LoadUint64(&p.missCount),
		Replenished:  atomic.LoadUint64(&p.replenishes),
		Returns:      atomic.LoadUint64(&p.returnCount),
		Accepted:     atomic.LoadUint64(&p.acceptCount),
		Rejected:     atomic.LoadUint64(&p.rejectCount),
		Dropped:      atomic.LoadUint64(&p.dropCount),
	}
}
