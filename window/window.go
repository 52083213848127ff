package window

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned, wrapped with detail, whenever a strategy
// refuses its input. No partial bounds accompany it.
var ErrInvalidInput = errors.New("window: invalid input")

// Indexer computes window bounds over a timestamp sequence.
type Indexer interface {
	// GetWindowBounds returns, for every position of timestamps, the range
	// of positions that belong to the window ending there.
	GetWindowBounds(timestamps []int64, p Params) (Bounds, error)
}

// IndexerFunc is a function type that implements Indexer.
type IndexerFunc func(timestamps []int64, p Params) (Bounds, error)

// GetWindowBounds calls the function.
func (f IndexerFunc) GetWindowBounds(timestamps []int64, p Params) (Bounds, error) {
	return f(timestamps, p)
}

// Params are the arguments a rolling engine passes along with the
// timestamps.
type Params struct {
	// NumValues is the number of rows. Zero means len(timestamps).
	NumValues int
	// MinPeriods is accepted for the engine's benefit; strategies ignore it.
	MinPeriods int
	// Center requests a window centred on the row instead of ending at it.
	Center bool
	// Closure selects which window edges are included.
	Closure Closure
}

// Bounds holds the half-open ranges [Start[i], End[i]) for each row.
type Bounds struct {
	Start []int
	End   []int
}

// Len returns the number of rows covered.
func (b Bounds) Len() int {
	return len(b.Start)
}

// Size returns the number of rows in the window of row i.
func (b Bounds) Size(i int) int {
	return b.End[i] - b.Start[i]
}

// NewBounds allocates bounds for n rows.
func NewBounds(n int) Bounds {
	return Bounds{
		Start: make([]int, n),
		End:   make([]int, n),
	}
}

// Invalid wraps ErrInvalidInput with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ResolveNumValues checks p.NumValues against the timestamps and returns
// the row count to use.
func ResolveNumValues(timestamps []int64, p Params) (int, error) {
	n := p.NumValues
	if n == 0 {
		n = len(timestamps)
	}
	if n != len(timestamps) {
		return 0, Invalid("num values %d does not match %d timestamps", n, len(timestamps))
	}
	if n == 0 {
		return 0, Invalid("timestamps must not be empty")
	}
	return n, nil
}

// CheckMonotonic reports the first position at which timestamps decrease.
func CheckMonotonic(timestamps []int64) error {
	for i := 1; i < len(timestamps); i++ {
		if timestamps[i] < timestamps[i-1] {
			return Invalid("timestamps not monotonic at position %d (%d < %d)",
				i, timestamps[i], timestamps[i-1])
		}
	}
	return nil
}
