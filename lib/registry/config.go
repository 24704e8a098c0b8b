package registry

import (
	"fmt"
	"slices"

	"github.com/go-i2p/scratchpool/lib/pool"
	"github.com/go-i2p/scratchpool/lib/validation"
)

// Kind names a family of pooled containers.
type Kind string

// Container families served by the registry.
const (
	KindList       Kind = "list"
	KindSet        Kind = "set"
	KindSortedSet  Kind = "sorted_set"
	KindLinkedList Kind = "linked_list"
	KindQueue      Kind = "queue"
	KindStack      Kind = "stack"
	KindMap        Kind = "map"
	KindSortedMap  Kind = "sorted_map"
	KindSortedList Kind = "sorted_list"
	KindCustom     Kind = "custom"
)

// Kinds returns every kind this build supports, in declaration order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// Config configures the pools a registry creates.
type Config struct {
	// Defaults applies to every kind without an override.
	Defaults pool.Config `toml:"defaults" yaml:"defaults"`
	// Kinds holds per-kind overrides keyed by kind name. An override
	// replaces Defaults entirely for that kind.
	Kinds map[string]pool.Config `toml:"kinds,omitempty" yaml:"kinds,omitempty"`
}

// DefaultConfig returns a Config with on-demand pools for every kind.
func DefaultConfig() Config {
	return Config{
		Defaults: pool.DefaultConfig(),
	}
}

// For returns the pool configuration used for kind.
func (c Config) For(kind Kind) pool.Config {
	if override, ok := c.Kinds[string(kind)]; ok {
		return override
	}
	return c.Defaults
}

// Validate checks the defaults, every override and every override's kind name.
func (c Config) Validate() error {
	var errs validation.Errors
	if err := c.Defaults.Validate(); err != nil {
		errs.Add(fmt.Errorf("defaults: %w", err))
	}
	for _, name := range sortedNames(c.Kinds) {
		if err := validation.ConfigKey("kind", name); err != nil {
			errs.Add(err)
			continue
		}
		if !slices.Contains(kinds, Kind(name)) {
			errs.Add(validation.NewResult("kind", fmt.Sprintf("unknown kind %q", name), validation.ErrInvalidFormat))
			continue
		}
		if err := c.Kinds[name].Validate(); err != nil {
			errs.Add(fmt.Errorf("kinds.%s: %w", name, err))
		}
	}
	return errs.Err()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
