package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	apimetric "go.opentelemetry.io/otel/metric"

	"github.com/go-i2p/scratchpool/lib/registry"
)

// Instrument names published by ObserveRegistry.
const (
	InstrumentIdle     = "scratchpool.pool.idle"
	InstrumentRents    = "scratchpool.pool.rents"
	InstrumentMisses   = "scratchpool.pool.misses"
	InstrumentReturns  = "scratchpool.pool.returns"
	InstrumentRejected = "scratchpool.pool.rejected"
	InstrumentDropped  = "scratchpool.pool.dropped"
)

// ObserveRegistry registers observable instruments that report every pool in
// reg each time the meter's readers collect. Unregister the returned
// registration to stop reporting.
func ObserveRegistry(meter apimetric.Meter, reg *registry.Registry) (apimetric.Registration, error) {
	idle, err := meter.Int64ObservableGauge(InstrumentIdle,
		apimetric.WithDescription("Current number of idle items in the pool"),
		apimetric.WithUnit("{item}"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", InstrumentIdle, err)
	}

	counters := make(map[string]apimetric.Int64ObservableCounter, 5)
	for name, desc := range map[string]string{
		InstrumentRents:    "Items rented from the pool",
		InstrumentMisses:   "Rents served by the factory",
		InstrumentReturns:  "Items returned to the pool",
		InstrumentRejected: "Returned items that failed validation",
		InstrumentDropped:  "Returned items discarded at capacity",
	} {
		c, err := meter.Int64ObservableCounter(name,
			apimetric.WithDescription(desc),
			apimetric.WithUnit("{item}"))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		counters[name] = c
	}

	instruments := []apimetric.Observable{idle}
	for _, c := range counters {
		instruments = append(instruments, c)
	}

	registryID := attribute.String("registry_id", reg.ID())
	return meter.RegisterCallback(func(_ context.Context, o apimetric.Observer) error {
		for _, e := range reg.Snapshot() {
			attrs := apimetric.WithAttributes(
				attribute.String("pool", e.Stats.Name),
				attribute.String("kind", string(e.Kind)),
				registryID,
			)
			o.ObserveInt64(idle, int64(e.Stats.Idle), attrs)
			o.ObserveInt64(counters[InstrumentRents], int64(e.Stats.Rents), attrs)
			o.ObserveInt64(counters[InstrumentMisses], int64(e.Stats.Misses), attrs)
			o.ObserveInt64(counters[InstrumentReturns], int64(e.Stats.Returns), attrs)
			o.ObserveInt64(counters[InstrumentRejected], int64(e.Stats.Rejected), attrs)
			o.ObserveInt64(counters[InstrumentDropped], int64(e.Stats.Dropped), attrs)
		}
		return nil
	}, instruments...)
}
