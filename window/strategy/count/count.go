// Package count computes fixed row-count window bounds. Timestamps only
// supply the number of rows; their values are ignored.
package count

import (
	"github.com/davidvella/dayroll/window"
)

var _ window.Indexer = &Indexer{}

type Indexer struct {
	Size int
}

func New(size int) *Indexer {
	return &Indexer{
		Size: size,
	}
}

// GetWindowBounds places the window of row i over the Size rows ending at
// i, or centred on i when p.Center is set. Left closure pulls one extra
// row in at the bottom; left and neither drop the current row.
func (s *Indexer) GetWindowBounds(timestamps []int64, p window.Params) (window.Bounds, error) {
	if s.Size <= 0 {
		return window.Bounds{}, window.Invalid("window size must be positive, got %d", s.Size)
	}
	if err := p.Closure.Validate(); err != nil {
		return window.Bounds{}, err
	}
	n, err := window.ResolveNumValues(timestamps, p)
	if err != nil {
		return window.Bounds{}, err
	}

	offset := 0
	if p.Center {
		offset = (s.Size - 1) / 2
	}
	dropCurrent := p.Closure == window.Left || p.Closure == window.Neither

	b := window.NewBounds(n)
	for i := 0; i < n; i++ {
		end := i + 1 + offset
		start := end - s.Size - p.Closure.LeftClosed()
		if dropCurrent {
			end--
		}
		b.Start[i] = clamp(start, 0, n)
		b.End[i] = clamp(end, 0, n)
	}

	return b, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
