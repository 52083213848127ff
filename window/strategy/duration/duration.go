// Package duration computes classic fixed-duration rolling window bounds:
// the window of row i covers (timestamps[i]-size, timestamps[i]] with the
// edges opened or closed according to the closure.
package duration

import (
	"time"

	"github.com/davidvella/dayroll/window"
)

var _ window.Indexer = &Indexer{}

type Indexer struct {
	size int64
}

func New(size time.Duration) *Indexer {
	return &Indexer{
		size: int64(size),
	}
}

// NewUnits creates an Indexer whose size is a raw count of timestamp units.
func NewUnits(size int64) *Indexer {
	return &Indexer{
		size: size,
	}
}

func (s *Indexer) GetWindowBounds(timestamps []int64, p window.Params) (window.Bounds, error) {
	if s.size <= 0 {
		return window.Bounds{}, window.Invalid("window size must be positive, got %d", s.size)
	}
	if p.Center {
		return window.Bounds{}, window.Invalid("centered windows are not supported by the duration indexer")
	}
	if err := p.Closure.Validate(); err != nil {
		return window.Bounds{}, err
	}
	n, err := window.ResolveNumValues(timestamps, p)
	if err != nil {
		return window.Bounds{}, err
	}
	if err := window.CheckMonotonic(timestamps); err != nil {
		return window.Bounds{}, err
	}

	leftClosed := int64(p.Closure.LeftClosed())
	rightClosed := p.Closure.RightClosed()

	b := window.NewBounds(n)
	b.End[0] = rightClosed

	for i := 1; i < n; i++ {
		startBound := timestamps[i] - s.size - leftClosed

		b.Start[i] = i
		for j := b.Start[i-1]; j < i; j++ {
			if timestamps[j] > startBound {
				b.Start[i] = j
				break
			}
		}

		b.End[i] = i + rightClosed
	}

	return b, nil
}
