package main

import (
	"context"
	"errors"

	"mortgage-calculator/internal/config"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/repayment"
)

// initMetrics initialises the OTLP meter provider, if enabled, and the
// repayment instruments. The instruments are created either way so handlers
// can record against the no-op provider.
func initMetrics(ctx context.Context, enabled bool) (func(context.Context) error, error) {
	shutdown := func(context.Context) error { return nil }

	if enabled {
		var err error
		shutdown, err = observability.InitMetrics(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := repayment.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry starts each enabled OTLP pipeline and returns one function
// that shuts all of them down.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdownAll := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.Tracing {
		traceShutdown, err := observability.InitTracing(ctx)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)
	}

	metricShutdown, err := initMetrics(ctx, cfg.Metrics)
	if err != nil {
		shutdownAll(ctx)
		return nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	if cfg.Logs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			shutdownAll(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	return shutdownAll, nil
}
