package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "arrowswarm/game"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// worldMetrics are the per-frame instruments of a World.
// They are no-ops unless a meter provider is installed.
type worldMetrics struct {
	frames      metric.Int64Counter
	substeps    metric.Int64Counter
	speedClamps metric.Int64Counter
	frameTime   metric.Float64Histogram
}

func newWorldMetrics() (*worldMetrics, error) {
	m := meter()
	wm := &worldMetrics{}

	var err error
	wm.frames, err = m.Int64Counter(
		"arrowswarm.frames",
		metric.WithDescription("Frames advanced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	wm.substeps, err = m.Int64Counter(
		"arrowswarm.substeps",
		metric.WithDescription("Physics sub-steps taken"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating substeps counter: %w", err)
	}

	wm.speedClamps, err = m.Int64Counter(
		"arrowswarm.speed_clamps",
		metric.WithDescription("Sub-steps where an agent hit the speed cap"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speed clamp counter: %w", err)
	}

	wm.frameTime, err = m.Float64Histogram(
		"arrowswarm.frame.duration",
		metric.WithDescription("Wall time spent advancing one frame"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}

	return wm, nil
}

func (wm *worldMetrics) recordFrame(subSteps int, ms float64) {
	ctx := context.Background()
	wm.frames.Add(ctx, 1)
	wm.substeps.Add(ctx, int64(subSteps))
	wm.frameTime.Record(ctx, ms)
}

func (wm *worldMetrics) recordClamp(float64) {
	wm.speedClamps.Add(context.Background(), 1)
}
