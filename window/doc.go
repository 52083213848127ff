// Package window defines the vocabulary shared by every window bounds
// strategy: the closure of a window, the parameters a rolling engine hands
// to a strategy and the bounds a strategy hands back.
//
// A strategy answers a single question: for each position i of a
// non-decreasing timestamp sequence, which contiguous range of positions
// [Start[i], End[i]) belongs to the window ending at i. Strategies never
// aggregate values; that is left to the caller (see package rolling).
//
// Key features:
//   - One-method Indexer interface, so strategies compose and swap freely
//   - Four closure modes (left, right, both, neither)
//   - A single sentinel, ErrInvalidInput, for every rejected input
//
// Basic usage:
//
//	idx := startofday.New(24 * time.Hour)
//
//	b, err := idx.GetWindowBounds(timestamps, window.Params{Closure: window.Left})
//	if err != nil {
//	    return err
//	}
//
//	for i := range b.Len() {
//	    fmt.Println(i, b.Start[i], b.End[i])
//	}
package window
