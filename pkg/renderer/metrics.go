package renderer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/df07/go-weekend-raytracer/pkg/renderer"

type renderMetrics struct {
	samples  metric.Int64Counter
	paths    metric.Int64Counter
	bounces  metric.Int64Counter
	duration metric.Float64Histogram
}

// newRenderMetrics creates instruments on the global provider (no-op if not configured)
func newRenderMetrics() (*renderMetrics, error) {
	m := otel.Meter(instrumentationName)
	rm := &renderMetrics{}

	var err error

	rm.samples, err = m.Int64Counter(
		"render.samples",
		metric.WithDescription("Camera rays traced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples counter: %w", err)
	}

	rm.paths, err = m.Int64Counter(
		"render.paths",
		metric.WithDescription("Finished paths by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating paths counter: %w", err)
	}

	rm.bounces, err = m.Int64Counter(
		"render.bounces",
		metric.WithDescription("Scatter events across all paths"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bounces counter: %w", err)
	}

	rm.duration, err = m.Float64Histogram(
		"render.duration",
		metric.WithDescription("Wall time of a full render"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return rm, nil
}

func (rm *renderMetrics) record(ctx context.Context, stats RenderStats) {
	rm.samples.Add(ctx, int64(stats.TotalSamples))
	rm.bounces.Add(ctx, int64(stats.TotalBounces))

	outcomes := map[PathOutcome]int{
		PathEscaped:   stats.EscapedPaths,
		PathAbsorbed:  stats.AbsorbedPaths,
		PathExhausted: stats.ExhaustedPaths,
	}
	for outcome, count := range outcomes {
		rm.paths.Add(ctx, int64(count), metric.WithAttributes(attribute.String("outcome", outcome.String())))
	}

	rm.duration.Record(ctx, stats.Duration.Seconds())
}
