// Package workload drives synthetic rent/fill/clear/return traffic through a
// registry's pools so their behaviour and metrics can be observed under load.
package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	concpool "github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"

	apperrors "github.com/go-i2p/scratchpool/lib/errors"
	"github.com/go-i2p/scratchpool/lib/pool"
	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/validation"
)

// Default workload values
const (
	DefaultWorkers    = 4
	DefaultIterations = 1000
	DefaultFill       = 16
	DefaultDirtyEvery = 0
)

// ErrInvalidConfig is returned when the workload configuration is rejected.
var ErrInvalidConfig = fmt.Errorf("workload: %w", apperrors.ErrConfiguration)

// Config configures a workload run.
type Config struct {
	// Workers is the number of goroutines per kind.
	Workers int `toml:"workers" yaml:"workers"`
	// Iterations is the number of cycles each worker performs.
	Iterations int `toml:"iterations" yaml:"iterations"`
	// Fill is the number of elements added to each rented container.
	Fill int `toml:"fill" yaml:"fill"`
	// DirtyEvery makes every n-th return skip clearing the container so it is
	// rejected by the pool. Zero disables dirty returns.
	DirtyEvery int `toml:"dirty_every" yaml:"dirty_every"`
	// Rate limits cycles per second across all workers of a kind (0 = unlimited).
	Rate float64 `toml:"rate" yaml:"rate"`
	// Burst is the limiter burst size when Rate is set.
	Burst int `toml:"burst" yaml:"burst"`
	// Kinds selects the pool families to exercise. Empty means all.
	Kinds []string `toml:"kinds,omitempty" yaml:"kinds,omitempty"`
}

// DefaultConfig returns a Config exercising every kind without rate limiting.
func DefaultConfig() Config {
	return Config{
		Workers:    DefaultWorkers,
		Iterations: DefaultIterations,
		Fill:       DefaultFill,
		DirtyEvery: DefaultDirtyEvery,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs validation.Errors
	errs.Add(validation.Positive("workers", c.Workers))
	errs.Add(validation.Positive("iterations", c.Iterations))
	errs.Add(validation.NonNegative("fill", c.Fill))
	errs.Add(validation.NonNegative("dirty_every", c.DirtyEvery))
	errs.Add(validation.NonNegativeFloat("rate", c.Rate))
	if c.Rate > 0 {
		errs.Add(validation.Positive("burst", c.Burst))
	}

	allowed := lo.Map(registry.Kinds(), func(k registry.Kind, _ int) string { return string(k) })
	for _, kind := range c.Kinds {
		errs.Add(validation.OneOf("kinds", kind, allowed...))
	}
	for _, dup := range lo.FindDuplicates(c.Kinds) {
		errs.Add(validation.NewResult("kinds", fmt.Sprintf("duplicate kind %q", dup), validation.ErrInvalidFormat))
	}
	return errs.Err()
}

// kinds returns the kinds to exercise in a stable order.
func (c Config) kinds() []registry.Kind {
	if len(c.Kinds) == 0 {
		return registry.Kinds()
	}
	return lo.Map(c.Kinds, func(k string, _ int) registry.Kind { return registry.Kind(k) })
}

// Result reports one kind's run.
type Result struct {
	Kind       registry.Kind `json:"kind"`
	Pool       string        `json:"pool"`
	Operations uint64        `json:"operations"`
	Duration   time.Duration `json:"duration"`
	Stats      pool.Stats    `json:"stats"`
}

// Throughput returns completed cycles per second.
func (r Result) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Operations) / r.Duration.Seconds()
}

// Run exercises each configured kind in turn. Kinds run one after another so
// their pools are measured in isolation; workers within a kind run
// concurrently. If ctx is cancelled, Run returns the results completed so
// far together with the context error.
func Run(ctx context.Context, reg *registry.Registry, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Describe("workload", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	kinds := cfg.kinds()
	results := make([]Result, 0, len(kinds))
	for _, kind := range kinds {
		res, err := runKind(ctx, reg, kind, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		log.WithField("kind", kind).
			WithField("pool", res.Pool).
			WithField("operations", res.Operations).
			WithField("duration", res.Duration).
			Debug("workload kind finished")
	}
	return results, nil
}

func runKind(ctx context.Context, reg *registry.Registry, kind registry.Kind, cfg Config) (Result, error) {
	build, ok := driverFactories[kind]
	if !ok {
		return Result{}, apperrors.Describe("workload",
			fmt.Errorf("kind %q: %w", kind, apperrors.ErrUnsupported))
	}
	d, err := build(reg)
	if err != nil {
		return Result{}, err
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, cfg.Burst)

	var ops atomic.Uint64
	start := time.Now()

	workers := concpool.New().
		WithContext(ctx).
		WithMaxGoroutines(cfg.Workers).
		WithCancelOnError().
		WithFirstError()
	for range cfg.Workers {
		workers.Go(func(ctx context.Context) error {
			for range cfg.Iterations {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				n := ops.Add(1)
				dirty := cfg.DirtyEvery > 0 && n%uint64(cfg.DirtyEvery) == 0
				d.cycle(cfg.Fill, dirty)
			}
			return nil
		})
	}
	err = workers.Wait()

	res := Result{
		Kind:       kind,
		Pool:       d.pool,
		Operations: ops.Load(),
		Duration:   time.Since(start),
		Stats:      d.stats(),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		log.WithField("kind", kind).WithError(err).Warn("workload interrupted")
		return res, err
	}
	return res, nil
}

// Summary aggregates a set of results.
type Summary struct {
	Kinds      int           `json:"kinds"`
	Operations uint64        `json:"operations"`
	Misses     uint64        `json:"misses"`
	Rejected   uint64        `json:"rejected"`
	Dropped    uint64        `json:"dropped"`
	Duration   time.Duration `json:"duration"`
}

// Summarize totals results.
func Summarize(results []Result) Summary {
	return Summary{
		Kinds:      len(results),
		Operations: lo.SumBy(results, func(r Result) uint64 { return r.Operations }),
		Misses:     lo.SumBy(results, func(r Result) uint64 { return r.Stats.Misses }),
		Rejected:   lo.SumBy(results, func(r Result) uint64 { return r.Stats.Rejected }),
		Dropped:    lo.SumBy(results, func(r Result) uint64 { return r.Stats.Dropped }),
		Duration:   lo.SumBy(results, func(r Result) time.Duration { return r.Duration }),
	}
}

// IsInterrupted reports whether err came from a cancelled or expired context.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// SortByThroughput orders results from fastest to slowest.
func SortByThroughput(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Throughput() > b.Throughput():
			return -1
		case a.Throughput() < b.Throughput():
			return 1
		default:
			return 0
		}
	})
}
