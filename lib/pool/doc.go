// Package pool provides a generic pool of reusable items, typically scratch
// containers that a caller fills, drains and hands back.
//
// The pool supports:
//   - Eager pre-population with InitialCount items
//   - Topping idle items back up to MinRetained after a Rent
//   - Capping idle items at MaxRetained
//   - Return-time validity checks that discard dirty items
//   - Metrics for pool utilization
//
// # Basic Usage
//
//	factory := func() *[]byte { b := make([]byte, 0, 4096); return &b }
//	valid := func(b *[]byte) bool { return len(*b) == 0 }
//
//	cfg := pool.DefaultConfig()
//	cfg.Name = "buffers"
//	cfg.InitialCount = 8
//
//	p, err := pool.New(factory, valid, cfg)
//	if err != nil {
//	    return err
//	}
//
//	buf := p.Rent()
//	*buf = append(*buf, payload...)
//	// Use buffer...
//	*buf = (*buf)[:0]
//	p.Return(buf)
//
// The pool never resets items. A returned item that fails the validator is
// simply not retained, so callers must clear items before returning them.
//
// # Metrics
//
// Named pools publish metrics labeled with the pool name:
//   - scratchpool_pool_idle: Current idle items
//   - scratchpool_pool_rents_total: Total rents
//   - scratchpool_pool_misses_total: Rents served by the factory
//   - scratchpool_pool_returns_total: Total returns
//   - scratchpool_pool_rejected_total: Returns that failed validation
//   - scratchpool_pool_dropped_total: Returns discarded at MaxRetained
//   - scratchpool_pool_factory_duration_seconds: Factory latency
package pool
