// Package telemetry configures OpenTelemetry metric export for scratchpool
// and publishes registry pool statistics as observable instruments.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	apimetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/go-i2p/scratchpool/lib/config"
)

// ShutdownFunc flushes and stops the configured providers.
type ShutdownFunc func(context.Context) error

// Init configures the global meter provider from cfg. An empty endpoint
// installs a no-op provider so instrumented code runs unchanged.
func Init(ctx context.Context, cfg config.TelemetryConfig) (apimetric.MeterProvider, ShutdownFunc, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = config.DefaultServiceName
	}

	if endpoint == "" {
		mp := noop.NewMeterProvider()
		otel.SetMeterProvider(mp)
		log.Debug("telemetry endpoint not configured, using no-op meter provider")
		return mp, func(context.Context) error { return nil }, nil
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(service)))
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.ExportInterval()))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	log.WithField("endpoint", endpoint).
		WithField("service", service).
		WithField("interval", cfg.ExportInterval()).
		Info("exporting metrics over OTLP")
	return mp, mp.Shutdown, nil
}
