// Package registry owns one pool per concrete container type and hands them
// out through typed accessors such as List[int] or Map[string, int].
package registry

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/go-i2p/scratchpool/lib/collection"
	apperrors "github.com/go-i2p/scratchpool/lib/errors"
	"github.com/go-i2p/scratchpool/lib/pool"
)

// Entry describes one pool held by a registry.
type Entry struct {
	Kind  Kind       `json:"kind"`
	Stats pool.Stats `json:"stats"`
}

// family is a pool stored type-erased alongside what the registry needs
// to report on it.
type family struct {
	kind  Kind
	pool  any
	stats func() pool.Stats
}

// Registry is the set of pool families used by one application.
// The zero value is not usable; construct with New.
type Registry struct {
	id  string
	cfg Config

	mu     sync.RWMutex
	byType map[reflect.Type]*family
	byName map[string]*family
}

// New validates cfg and returns an empty registry. Pools are created lazily
// on first access.
func New(cfg Config) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Describe("registry", fmt.Errorf("%w: %w", pool.ErrInvalidConfig, err))
	}

	r := &Registry{
		id:     uuid.NewString(),
		cfg:    cfg,
		byType: make(map[reflect.Type]*family),
		byName: make(map[string]*family),
	}
	log.WithField("registry", r.id).WithField("overrides", len(cfg.Kinds)).Debug("registry created")
	return r, nil
}

// ID returns the random identifier assigned at construction.
func (r *Registry) ID() string {
	return r.id
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() Config {
	return r.cfg
}

// poolFor returns the pool for container type C, creating it with factory
// and valid on first use. The pool is built without holding the registry
// lock, since pre-population runs the factory and the factory may itself use
// the registry. When two callers race, the first pool stored wins and the
// other is discarded.
func poolFor[C any](r *Registry, kind Kind, name string, factory pool.Factory[C], valid pool.Validator[C]) (*pool.Pool[C], error) {
	key := reflect.TypeFor[C]()

	r.mu.RLock()
	f, ok := r.byType[key]
	r.mu.RUnlock()
	if ok {
		return checkKind[C](f, kind, key)
	}

	cfg := r.cfg.For(kind)
	cfg.Name = name
	p, err := pool.New(factory, valid, cfg)
	if err != nil {
		return nil, apperrors.Describe("registry", err, "kind", kind, "type", key.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if f, ok := r.byType[key]; ok {
		return checkKind[C](f, kind, key)
	}

	f = &family{kind: kind, pool: p, stats: p.Stats}
	r.byType[key] = f
	r.byName[name] = f

	log.WithField("registry", r.id).
		WithField("kind", kind).
		WithField("pool", name).
		Debug("created pool")
	return p, nil
}

// checkKind refuses to hand a custom pool out for a built-in kind and the
// reverse, so each type keeps one factory and one predicate.
func checkKind[C any](f *family, kind Kind, key reflect.Type) (*pool.Pool[C], error) {
	if f.kind != kind && (f.kind == KindCustom || kind == KindCustom) {
		return nil, apperrors.Describe("registry",
			fmt.Errorf("type %s already pooled as %s: %w", key, f.kind, apperrors.ErrAlreadyExists),
			"kind", kind)
	}
	return f.pool.(*pool.Pool[C]), nil
}

// mustPool is poolFor for the built-in families, whose factories and
// configuration were validated by New.
func mustPool[C collection.Container](r *Registry, kind Kind, name string, factory pool.Factory[C]) *pool.Pool[C] {
	p, err := poolFor(r, kind, name, factory, collection.IsEmpty[C])
	if err != nil {
		panic(err)
	}
	return p
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func poolName(kind Kind, params ...string) string {
	name := string(kind) + "["
	for i, p := range params {
		if i > 0 {
			name += ","
		}
		name += p
	}
	return name + "]"
}

// List returns the pool of *collection.List[T].
func List[T any](r *Registry) *pool.Pool[*collection.List[T]] {
	return mustPool(r, KindList, poolName(KindList, typeName[T]()), collection.NewList[T])
}

// Set returns the pool of *collection.Set[T].
func Set[T comparable](r *Registry) *pool.Pool[*collection.Set[T]] {
	return mustPool(r, KindSet, poolName(KindSet, typeName[T]()), collection.NewSet[T])
}

// SortedSet returns the pool of *collection.SortedSet[T].
func SortedSet[T cmp.Ordered](r *Registry) *pool.Pool[*collection.SortedSet[T]] {
	return mustPool(r, KindSortedSet, poolName(KindSortedSet, typeName[T]()), collection.NewSortedSet[T])
}

// LinkedList returns the pool of *collection.LinkedList[T].
func LinkedList[T any](r *Registry) *pool.Pool[*collection.LinkedList[T]] {
	return mustPool(r, KindLinkedList, poolName(KindLinkedList, typeName[T]()), collection.NewLinkedList[T])
}

// Queue returns the pool of *collection.Queue[T].
func Queue[T any](r *Registry) *pool.Pool[*collection.Queue[T]] {
	return mustPool(r, KindQueue, poolName(KindQueue, typeName[T]()), collection.NewQueue[T])
}

// Stack returns the pool of *collection.Stack[T].
func Stack[T any](r *Registry) *pool.Pool[*collection.Stack[T]] {
	return mustPool(r, KindStack, poolName(KindStack, typeName[T]()), collection.NewStack[T])
}

// Map returns the pool of *collection.Map[K, V].
func Map[K comparable, V any](r *Registry) *pool.Pool[*collection.Map[K, V]] {
	return mustPool(r, KindMap, poolName(KindMap, typeName[K](), typeName[V]()), collection.NewMap[K, V])
}

// SortedMap returns the pool of *collection.SortedMap[K, V].
func SortedMap[K cmp.Ordered, V any](r *Registry) *pool.Pool[*collection.SortedMap[K, V]] {
	return mustPool(r, KindSortedMap, poolName(KindSortedMap, typeName[K](), typeName[V]()), collection.NewSortedMap[K, V])
}

// Custom returns the pool for an arbitrary type C, creating it with factory
// and valid on first use. Later calls return the existing pool and ignore
// their arguments. It fails if C is already served by a built-in kind.
func Custom[C any](r *Registry, factory pool.Factory[C], valid pool.Validator[C]) (*pool.Pool[C], error) {
	return poolFor(r, KindCustom, poolName(KindCustom, typeName[C]()), factory, valid)
}

// Len returns the number of pools created so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}

// Lookup returns the entry for the pool with the given name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	f, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	return Entry{Kind: f.kind, Stats: f.stats()}, true
}

// Snapshot returns an entry for every pool, sorted by pool name.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	families := make([]*family, 0, len(r.byName))
	for _, f := range r.byName {
		families = append(families, f)
	}
	r.mu.RUnlock()

	entries := make([]Entry, 0, len(families))
	for _, f := range families {
		entries = append(entries, Entry{Kind: f.kind, Stats: f.stats()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Stats.Name < entries[j].Stats.Name
	})
	return entries
}
