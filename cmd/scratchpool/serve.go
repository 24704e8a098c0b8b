package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/go-i2p/scratchpool/lib/config"
	"github.com/go-i2p/scratchpool/lib/metrics"
	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/telemetry"
	"github.com/go-i2p/scratchpool/lib/workload"
	"github.com/go-i2p/scratchpool/version"
)

// shutdownTimeout bounds the HTTP server and exporter shutdown.
const shutdownTimeout = 10 * time.Second

// meterName is the instrumentation scope for pool instruments.
const meterName = "github.com/go-i2p/scratchpool"

// handleServe handles the "serve" subcommand. It runs until ctx is cancelled.
func handleServe(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg *config.Config, pause time.Duration) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics.RecordStartTime()

	mp, shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fail(logger, "failed to initialize telemetry", err)
	}
	registration, err := telemetry.ObserveRegistry(mp.Meter(meterName), reg)
	if err != nil {
		return fail(logger, "failed to register pool instruments", err)
	}

	var srv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		srv = &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	var wg conc.WaitGroup
	if srv != nil {
		wg.Go(func() {
			logger.Info("serving metrics", "addr", srv.Addr, "path", cfg.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", errorAttrs(err)...)
				cancel()
			}
		})
	}
	wg.Go(func() {
		runWorkloadLoop(ctx, logger, reg, cfg.Workload, pause)
	})

	logger.Info("scratchpool started", "registry", reg.ID(), "version", version.Full())
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	exitCode := 0
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", errorAttrs(err)...)
			exitCode = 1
		}
	}
	wg.Wait()

	if err := registration.Unregister(); err != nil {
		logger.Warn("failed to unregister pool instruments", errorAttrs(err)...)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", errorAttrs(err)...)
		exitCode = 1
	}

	logger.Info("scratchpool stopped")
	return exitCode
}

// runWorkloadLoop runs the workload until ctx is cancelled, pausing between runs.
func runWorkloadLoop(ctx context.Context, logger *slog.Logger, reg *registry.Registry, cfg workload.Config, pause time.Duration) {
	for run := 1; ; run++ {
		results, err := workload.Run(ctx, reg, cfg)
		if err != nil {
			if !workload.IsInterrupted(err) {
				logger.Error("workload failed", append([]any{"run", run}, errorAttrs(err)...)...)
			}
			return
		}

		s := workload.Summarize(results)
		logger.Debug("workload run finished",
			"run", run,
			"operations", s.Operations,
			"misses", s.Misses,
			"rejected", s.Rejected,
			"dropped", s.Dropped,
			"duration", s.Duration)

		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}
