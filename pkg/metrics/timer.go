package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

// Float64Timer records durations in milliseconds.
type Float64Timer struct {
	measureMs *stats.Float64Measure
	view      *view.View
}

// NewTimerMs creates a Float64Timer that records in milliseconds, with a
// distribution suited to calls in the microsecond to second range.
func NewTimerMs(name, desc string) *Float64Timer {
	fMeasure := stats.Float64(name, desc, stats.UnitMilliseconds)
	fView := &view.View{
		Name:        name,
		Measure:     fMeasure,
		Description: desc,
		Aggregation: view.Distribution(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000),
	}
	if err := view.Register(fView); err != nil {
		// same contract as NewInt64Counter
		panic(err)
	}

	return &Float64Timer{
		measureMs: fMeasure,
		view:      fView,
	}
}

// Start starts a stopwatch for the timer.
func (t *Float64Timer) Start(ctx context.Context) *Stopwatch {
	return &Stopwatch{
		ctx:      ctx,
		start:    time.Now(),
		recorder: t.measureMs.M,
	}
}

// Stopwatch measures a single duration for a Float64Timer.
type Stopwatch struct {
	ctx      context.Context
	start    time.Time
	recorder func(v float64) stats.Measurement
}

// Stop records the time elapsed since Start and returns it.
func (sw *Stopwatch) Stop(ctx context.Context) time.Duration {
	elapsed := time.Since(sw.start)
	stats.Record(ctx, sw.recorder(float64(elapsed)/float64(time.Millisecond)))
	return elapsed
}
