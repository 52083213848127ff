package rolling

import (
	"context"
	"errors"
	"math"

	"github.com/davidvella/dayroll/monitoring"
	"github.com/davidvella/dayroll/window"
)

// Rolling reduces values over the windows produced by an indexer.
// It holds no per-call state and is safe for concurrent use.
type Rolling struct {
	indexer window.Indexer
	opts    options
}

// New creates a rolling engine over the given indexer.
func New(indexer window.Indexer, opts ...Option) (*Rolling, error) {
	// Apply default options
	o := defaultOptions()

	// Apply user options
	for _, opt := range opts {
		opt(&o)
	}

	if indexer == nil {
		return nil, errors.New("rolling: indexer is required")
	}
	if o.closure == "" {
		o.closure = window.DefaultClosure
	}
	if err := o.closure.Validate(); err != nil {
		return nil, err
	}
	if o.minPeriods < 0 {
		return nil, window.Invalid("min periods must not be negative, got %d", o.minPeriods)
	}
	if o.concurrency <= 0 {
		return nil, window.Invalid("concurrency must be positive, got %d", o.concurrency)
	}

	return &Rolling{
		indexer: indexer,
		opts:    o,
	}, nil
}

// Closure returns the resolved closure.
func (r *Rolling) Closure() window.Closure {
	return r.opts.closure
}

// Bounds returns the raw window bounds for the timestamps.
func (r *Rolling) Bounds(timestamps []int64) (window.Bounds, error) {
	return r.indexer.GetWindowBounds(timestamps, r.params(len(timestamps)))
}

// Apply reduces values over each row's window with reducer.
func (r *Rolling) Apply(ctx context.Context, timestamps []int64, values []float64, reducer Reducer) ([]float64, error) {
	return r.run(ctx, "apply", timestamps, values, reducer)
}

// Sum is Apply with the Sum reducer.
func (r *Rolling) Sum(ctx context.Context, timestamps []int64, values []float64) ([]float64, error) {
	return r.run(ctx, "sum", timestamps, values, Sum)
}

// Mean is Apply with the Mean reducer.
func (r *Rolling) Mean(ctx context.Context, timestamps []int64, values []float64) ([]float64, error) {
	return r.run(ctx, "mean", timestamps, values, Mean)
}

// Count is Apply with the Count reducer.
func (r *Rolling) Count(ctx context.Context, timestamps []int64, values []float64) ([]float64, error) {
	return r.run(ctx, "count", timestamps, values, Count)
}

// Min is Apply with the Min reducer.
func (r *Rolling) Min(ctx context.Context, timestamps []int64, values []float64) ([]float64, error) {
	return r.run(ctx, "min", timestamps, values, Min)
}

// Max is Apply with the Max reducer.
func (r *Rolling) Max(ctx context.Context, timestamps []int64, values []float64) ([]float64, error) {
	return r.run(ctx, "max", timestamps, values, Max)
}

func (r *Rolling) run(ctx context.Context, op string, timestamps []int64, values []float64, reducer Reducer) ([]float64, error) {
	log := monitoring.FromContext(ctx).With("operation", op)

	out, err := r.reduce(op, timestamps, values, reducer)
	if err != nil {
		recordError(op, err)
		log.Debugw("Rolling failed", "rows", len(timestamps), "error", err)
		return nil, err
	}

	log.Debugw("Rolling done", "rows", len(out), "closure", r.opts.closure)
	return out, nil
}

func (r *Rolling) params(n int) window.Params {
	return window.Params{
		NumValues:  n,
		MinPeriods: r.opts.minPeriods,
		Center:     r.opts.center,
		Closure:    r.opts.closure,
	}
}

func (r *Rolling) reduce(op string, timestamps []int64, values []float64, reducer Reducer) ([]float64, error) {
	if reducer == nil {
		return nil, window.Invalid("reducer is required")
	}
	if len(values) != len(timestamps) {
		return nil, window.Invalid("%d values for %d timestamps", len(values), len(timestamps))
	}

	b, err := r.indexer.GetWindowBounds(timestamps, r.params(len(timestamps)))
	if err != nil {
		return nil, err
	}
	if b.Len() != len(timestamps) {
		return nil, window.Invalid("indexer returned %d bounds for %d rows", b.Len(), len(timestamps))
	}

	sizes := monitoring.WindowSize.WithLabelValues(op)
	out := make([]float64, len(values))
	emitted := 0
	for i := range out {
		w := values[b.Start[i]:b.End[i]]
		sizes.Observe(float64(len(w)))
		if observations(w) < r.opts.minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = reducer.Reduce(w)
		emitted++
	}

	monitoring.RowsProcessed.WithLabelValues(op).Add(float64(len(out)))
	monitoring.WindowsEmitted.WithLabelValues(op).Add(float64(emitted))

	return out, nil
}

func recordError(op string, err error) {
	reason := "other"
	switch {
	case errors.Is(err, window.ErrInvalidInput):
		reason = "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		reason = "canceled"
	}
	monitoring.Errors.WithLabelValues(op, reason).Inc()
}
