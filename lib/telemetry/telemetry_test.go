package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/go-i2p/scratchpool/lib/config"
	"github.com/go-i2p/scratchpool/lib/registry"
)

func TestInitNoop(t *testing.T) {
	mp, shutdown, err := Init(context.Background(), config.TelemetryConfig{})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if mp == nil {
		t.Fatal("Expected a meter provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown should not fail: %v", err)
	}
}

func TestInitExporter(t *testing.T) {
	cfg := config.TelemetryConfig{
		Endpoint: "127.0.0.1:4318",
		Insecure: true,
		Interval: "1h",
	}

	mp, shutdown, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, ok := mp.(*sdkmetric.MeterProvider); !ok {
		t.Errorf("Expected an SDK meter provider, got %T", mp)
	}

	// No collector is listening; only check shutdown returns.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

// collect gathers one round of metrics from reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func pointFor(t *testing.T, points []metricdata.DataPoint[int64], pool string) metricdata.DataPoint[int64] {
	t.Helper()
	for _, dp := range points {
		if v, ok := dp.Attributes.Value(attribute.Key("pool")); ok && v.AsString() == pool {
			return dp
		}
	}
	t.Fatalf("no data point for pool %q", pool)
	return metricdata.DataPoint[int64]{}
}

func TestObserveRegistry(t *testing.T) {
	reg, err := registry.New(registry.DefaultConfig())
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	registration, err := ObserveRegistry(provider.Meter("test"), reg)
	if err != nil {
		t.Fatalf("ObserveRegistry failed: %v", err)
	}
	defer registration.Unregister()

	p := registry.List[int](reg)
	l := p.Rent()
	l.Append(1)
	p.Return(l)
	p.Return(p.Rent())

	data := collect(t, reader)

	rents, ok := data[InstrumentRents].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("Expected %s to be an int64 sum, got %T", InstrumentRents, data[InstrumentRents])
	}
	dp := pointFor(t, rents.DataPoints, "list[int]")
	if dp.Value != 2 {
		t.Errorf("Expected 2 rents, got %d", dp.Value)
	}
	if v, _ := dp.Attributes.Value("kind"); v.AsString() != "list" {
		t.Errorf("Expected kind attribute list, got %q", v.AsString())
	}
	if v, _ := dp.Attributes.Value("registry_id"); v.AsString() != reg.ID() {
		t.Errorf("Expected registry_id %q, got %q", reg.ID(), v.AsString())
	}

	rejected := data[InstrumentRejected].(metricdata.Sum[int64])
	if got := pointFor(t, rejected.DataPoints, "list[int]").Value; got != 1 {
		t.Errorf("Expected 1 rejected, got %d", got)
	}

	idle, ok := data[InstrumentIdle].(metricdata.Gauge[int64])
	if !ok {
		t.Fatalf("Expected %s to be an int64 gauge, got %T", InstrumentIdle, data[InstrumentIdle])
	}
	if got := pointFor(t, idle.DataPoints, "list[int]").Value; got != 1 {
		t.Errorf("Expected 1 idle, got %d", got)
	}
}

func TestObserveRegistryUnregister(t *testing.T) {
	reg, err := registry.New(registry.DefaultConfig())
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	registry.Stack[int](reg)

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	registration, err := ObserveRegistry(provider.Meter("test"), reg)
	if err != nil {
		t.Fatalf("ObserveRegistry failed: %v", err)
	}
	if err := registration.Unregister(); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}

	data := collect(t, reader)
	if sum, ok := data[InstrumentRents].(metricdata.Sum[int64]); ok && len(sum.DataPoints) > 0 {
		t.Errorf("Expected no data points after Unregister, got %d", len(sum.DataPoints))
	}
}
