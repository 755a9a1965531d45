package repayment

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	calcCounter   metric.Int64Counter
	calcHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	monthlyGauge  metric.Float64Gauge
)

// InitMetrics registers the repayment instruments. Call this once at startup
// after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("repayment")

	var err error

	calcCounter, err = meter.Int64Counter("repayment.calculations.total",
		metric.WithDescription("Total number of repayment calculations performed"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculation counter: %w", err)
	}

	calcHistogram, err = meter.Float64Histogram("repayment.calculation.duration",
		metric.WithDescription("Duration of repayment calculations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating calculation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("repayment.errors.total",
		metric.WithDescription("Total number of rejected repayment requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	monthlyGauge, err = meter.Float64Gauge("repayment.last_monthly_amount",
		metric.WithDescription("Monthly amount of the last successful calculation"),
		metric.WithUnit("GBP"),
	)
	if err != nil {
		return fmt.Errorf("creating monthly gauge: %w", err)
	}

	return nil
}
