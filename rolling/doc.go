// Package rolling is a small rolling-aggregation engine driven by a
// window.Indexer. The indexer decides which rows belong to each window;
// the engine reduces the values of those rows.
//
// Key features:
//   - Any window.Indexer: start of day, fixed duration, row count, composite
//   - Built-in reducers (sum, mean, count, min, max) and custom ones via ReducerFunc
//   - Min periods: windows with too few non-NaN observations yield NaN
//   - Grouped rolling that computes each key independently and keeps row order
//
// Basic usage:
//
//	r, err := rolling.New(
//	    startofday.New(24*time.Hour),
//	    rolling.WithClosure(window.Both),
//	)
//	if err != nil {
//	    return err
//	}
//
//	sums, err := r.Sum(ctx, timestamps, values)
//
// Missing values are represented as NaN and are skipped by every built-in
// reducer.
package rolling
