// Package startofday computes rolling window bounds anchored to the start
// of the day containing (current timestamp - offset).
//
// Unlike a fixed-duration window, the lower edge does not creep forward by
// a constant amount: it jumps a whole day at a time as the current
// timestamp crosses a day boundary. With a one day offset every row sees
// the whole of the previous day plus the part of its own day before it.
//
// Days have a fixed length; there is no calendar or timezone handling.
package startofday

import (
	"time"

	"github.com/davidvella/dayroll/window"
)

// DefaultDayLength is one day in nanoseconds.
const DefaultDayLength = int64(24 * time.Hour)

var _ window.Indexer = &Indexer{}

type Indexer struct {
	offset    int64
	dayLength int64
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithDayLength overrides the length of a day, in the same unit as the
// timestamps. Use it when timestamps are not nanoseconds.
func WithDayLength(d int64) Option {
	return func(i *Indexer) {
		i.dayLength = d
	}
}

// WithOffsetUnits sets the offset as a raw count of timestamp units,
// replacing the duration given to New.
func WithOffsetUnits(offset int64) Option {
	return func(i *Indexer) {
		i.offset = offset
	}
}

func New(offset time.Duration, opts ...Option) *Indexer {
	idx := &Indexer{
		offset:    int64(offset),
		dayLength: DefaultDayLength,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

func (s *Indexer) Offset() int64 {
	return s.offset
}

func (s *Indexer) DayLength() int64 {
	return s.dayLength
}

// GetWindowBounds implements window.Indexer.
//
// For row i the window holds every earlier row whose timestamp is at or
// after (left, both) or strictly after (right, neither) the start of the
// day containing timestamps[i]-offset. Row i itself is included only for
// right and both closures.
func (s *Indexer) GetWindowBounds(timestamps []int64, p window.Params) (window.Bounds, error) {
	n, err := s.validate(timestamps, p)
	if err != nil {
		return window.Bounds{}, err
	}

	leftClosed := int64(p.Closure.LeftClosed())
	rightClosed := p.Closure.RightClosed()

	b := window.NewBounds(n)
	b.Start[0] = 0
	b.End[0] = rightClosed

	for i := 1; i < n; i++ {
		startBound := s.floorToDay(timestamps[i]-s.offset) - leftClosed

		// start never moves backwards, so resume from the previous row.
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

func (s *Indexer) validate(timestamps []int64, p window.Params) (int, error) {
	if s.dayLength <= 0 {
		return 0, window.Invalid("day length must be positive, got %d", s.dayLength)
	}
	if s.offset < 0 {
		return 0, window.Invalid("offset must not be negative, got %d", s.offset)
	}
	if p.Center {
		return 0, window.Invalid("centered windows are not supported by the start of day indexer")
	}
	if err := p.Closure.Validate(); err != nil {
		return 0, err
	}
	n, err := window.ResolveNumValues(timestamps, p)
	if err != nil {
		return 0, err
	}
	if err := window.CheckMonotonic(timestamps); err != nil {
		return 0, err
	}
	return n, nil
}

// floorToDay rounds t down to the first instant of its day. Division
// floors rather than truncates so instants before the epoch land on the
// right day.
func (s *Indexer) floorToDay(t int64) int64 {
	q := t / s.dayLength
	if t%s.dayLength != 0 && t < 0 {
		q--
	}
	return q * s.dayLength
}
