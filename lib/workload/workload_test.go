package workload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/validation"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(registry.DefaultConfig())
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	return r
}

func TestDefaultConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"zero workers", func(c *Config) { c.Workers = 0 }, validation.ErrOutOfRange},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, validation.ErrOutOfRange},
		{"negative fill", func(c *Config) { c.Fill = -1 }, validation.ErrOutOfRange},
		{"negative rate", func(c *Config) { c.Rate = -1 }, validation.ErrOutOfRange},
		{"rate without burst", func(c *Config) { c.Rate = 10 }, validation.ErrOutOfRange},
		{"rate with burst", func(c *Config) { c.Rate = 10; c.Burst = 1 }, nil},
		{"unknown kind", func(c *Config) { c.Kinds = []string{"heap"} }, validation.ErrInvalidFormat},
		{"duplicate kind", func(c *Config) { c.Kinds = []string{"list", "list"} }, validation.ErrInvalidFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRunAllKinds(t *testing.T) {
	r := newTestRegistry(t)
	cfg := Config{Workers: 3, Iterations: 50, Fill: 4}

	results, err := Run(context.Background(), r, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != len(registry.Kinds()) {
		t.Fatalf("Expected %d results, got %d", len(registry.Kinds()), len(results))
	}

	for _, res := range results {
		t.Run(string(res.Kind), func(t *testing.T) {
			if res.Operations != 150 {
				t.Errorf("Expected 150 operations, got %d", res.Operations)
			}
			if res.Stats.Rents != 150 || res.Stats.Returns != 150 {
				t.Errorf("Expected 150 rents and returns, got %+v", res.Stats)
			}
			if res.Stats.Rejected != 0 {
				t.Errorf("Expected no rejections, got %d", res.Stats.Rejected)
			}
			if res.Stats.Misses > 3 {
				t.Errorf("Expected at most one miss per worker, got %d", res.Stats.Misses)
			}
			if res.Stats.Idle != int(res.Stats.Misses) {
				t.Errorf("Expected every created item back in the pool, got %d idle for %d misses",
					res.Stats.Idle, res.Stats.Misses)
			}
		})
	}

	if r.Len() != len(registry.Kinds()) {
		t.Errorf("Expected one pool per kind, got %d", r.Len())
	}
}

func TestRunDirtyReturns(t *testing.T) {
	r := newTestRegistry(t)
	cfg := Config{Workers: 1, Iterations: 20, Fill: 2, DirtyEvery: 4, Kinds: []string{"list"}}

	results, err := Run(context.Background(), r, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	stats := results[0].Stats
	if stats.Rejected != 5 {
		t.Errorf("Expected 5 rejected returns, got %d", stats.Rejected)
	}
	if stats.Accepted != 15 {
		t.Errorf("Expected 15 accepted returns, got %d", stats.Accepted)
	}
	if results[0].Pool != "list[int]" {
		t.Errorf("Unexpected pool %q", results[0].Pool)
	}
}

func TestRunCustomKind(t *testing.T) {
	r := newTestRegistry(t)
	cfg := Config{Workers: 2, Iterations: 10, Fill: 8, Kinds: []string{"custom"}}

	results, err := Run(context.Background(), r, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Pool != "custom[*workload.scratchBuffer]" {
		t.Errorf("Unexpected pool %q", results[0].Pool)
	}
}

func TestRunRateLimited(t *testing.T) {
	r := newTestRegistry(t)
	cfg := Config{Workers: 2, Iterations: 5, Rate: 100, Burst: 1, Kinds: []string{"stack"}}

	start := time.Now()
	results, err := Run(context.Background(), r, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Operations != 10 {
		t.Errorf("Expected 10 operations, got %d", results[0].Operations)
	}
	// 10 cycles at 100/s with burst 1 take at least ~90ms
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Expected rate limiting to slow the run, took %v", elapsed)
	}
}

func TestRunCancelled(t *testing.T) {
	r := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, r, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if !IsInterrupted(err) {
		t.Error("Expected IsInterrupted to report true")
	}
	if len(results) != 0 {
		t.Errorf("Expected no completed kinds, got %d", len(results))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	r := newTestRegistry(t)

	_, err := Run(context.Background(), r, Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Kind: registry.KindList, Operations: 10, Duration: time.Second},
		{Kind: registry.KindSet, Operations: 30, Duration: time.Second},
	}
	results[0].Stats.Misses = 2
	results[1].Stats.Rejected = 3

	s := Summarize(results)
	if s.Kinds != 2 || s.Operations != 40 || s.Misses != 2 || s.Rejected != 3 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.Duration != 2*time.Second {
		t.Errorf("Expected 2s total, got %v", s.Duration)
	}

	SortByThroughput(results)
	if results[0].Kind != registry.KindSet {
		t.Errorf("Expected set first, got %s", results[0].Kind)
	}
	if results[0].Throughput() != 30 {
		t.Errorf("Expected throughput 30, got %v", results[0].Throughput())
	}
}
