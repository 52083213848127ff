package startofday

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidvella/dayroll/window"
)

var closures = []window.Closure{window.Left, window.Right, window.Both, window.Neither}

func halfDays(t *testing.T) []int64 {
	t.Helper()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]int64, 6)
	for i := range ts {
		ts[i] = base.Add(time.Duration(i) * 12 * time.Hour).UnixNano()
	}
	return ts
}

func TestIndexer_GetWindowBounds(t *testing.T) {
	tests := []struct {
		name      string
		closure   window.Closure
		wantStart []int
		wantEnd   []int
	}{
		{
			name:      "left closed",
			closure:   window.Left,
			wantStart: []int{0, 0, 0, 0, 2, 2},
			wantEnd:   []int{0, 1, 2, 3, 4, 5},
		},
		{
			name:      "both closed",
			closure:   window.Both,
			wantStart: []int{0, 0, 0, 0, 2, 2},
			wantEnd:   []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:      "right closed drops the row at midnight",
			closure:   window.Right,
			wantStart: []int{0, 0, 1, 1, 3, 3},
			wantEnd:   []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:      "neither",
			closure:   window.Neither,
			wantStart: []int{0, 0, 1, 1, 3, 3},
			wantEnd:   []int{0, 1, 2, 3, 4, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := New(24 * time.Hour)

			b, err := idx.GetWindowBounds(halfDays(t), window.Params{Closure: tt.closure})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, b.Start)
			assert.Equal(t, tt.wantEnd, b.End)
		})
	}
}

func TestIndexer_WindowCounts(t *testing.T) {
	idx := New(24 * time.Hour)
	ts := halfDays(t)

	left, err := idx.GetWindowBounds(ts, window.Params{Closure: window.Left})
	require.NoError(t, err)
	both, err := idx.GetWindowBounds(ts, window.Params{Closure: window.Both})
	require.NoError(t, err)

	var gotLeft, gotBoth []int
	for i := 3; i < 6; i++ {
		gotLeft = append(gotLeft, left.Size(i))
		gotBoth = append(gotBoth, both.Size(i))
	}
	assert.Equal(t, []int{3, 2, 3}, gotLeft)
	assert.Equal(t, []int{4, 3, 4}, gotBoth)
}

func TestIndexer_Errors(t *testing.T) {
	tests := []struct {
		name   string
		idx    *Indexer
		ts     []int64
		params window.Params
	}{
		{
			name:   "empty timestamps",
			idx:    New(time.Hour),
			ts:     nil,
			params: window.Params{Closure: window.Left},
		},
		{
			name:   "non monotonic",
			idx:    New(time.Hour),
			ts:     []int64{1, 3, 2},
			params: window.Params{Closure: window.Left},
		},
		{
			name:   "zero day length",
			idx:    New(time.Hour, WithDayLength(0)),
			ts:     []int64{1, 2},
			params: window.Params{Closure: window.Left},
		},
		{
			name:   "negative offset",
			idx:    New(-time.Hour),
			ts:     []int64{1, 2},
			params: window.Params{Closure: window.Left},
		},
		{
			name:   "center",
			idx:    New(time.Hour),
			ts:     []int64{1, 2},
			params: window.Params{Closure: window.Left, Center: true},
		},
		{
			name:   "unknown closure",
			idx:    New(time.Hour),
			ts:     []int64{1, 2},
			params: window.Params{Closure: "middle"},
		},
		{
			name:   "num values mismatch",
			idx:    New(time.Hour),
			ts:     []int64{1, 2},
			params: window.Params{Closure: window.Left, NumValues: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.idx.GetWindowBounds(tt.ts, tt.params)
			require.ErrorIs(t, err, window.ErrInvalidInput)
			assert.Zero(t, b.Len())
		})
	}
}

func TestIndexer_SingleRow(t *testing.T) {
	idx := New(24 * time.Hour)

	for _, c := range closures {
		b, err := idx.GetWindowBounds([]int64{42}, window.Params{Closure: c})
		require.NoError(t, err)
		assert.Equal(t, []int{0}, b.Start)
		assert.Equal(t, []int{c.RightClosed()}, b.End)
	}
}

func TestIndexer_NegativeTimestamps(t *testing.T) {
	const day = 10
	idx := New(0, WithDayLength(day))

	// -15 belongs to the day starting at -20, -5 to the day starting at -10.
	ts := []int64{-25, -20, -15, -10, -5}

	b, err := idx.GetWindowBounds(ts, window.Params{Closure: window.Both})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 3, 3}, b.Start)
}

func TestIndexer_NonNanosecondUnits(t *testing.T) {
	// Seconds since midnight, one day offset.
	idx := New(0, WithDayLength(86400), WithOffsetUnits(86400))
	ts := []int64{0, 43200, 86400, 129600, 172800, 216000}

	b, err := idx.GetWindowBounds(ts, window.Params{Closure: window.Left})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 2, 2}, b.Start)
}

func TestIndexer_DuplicateTimestamps(t *testing.T) {
	idx := New(0, WithDayLength(10))
	ts := []int64{10, 10, 10, 15, 20, 20}

	b, err := idx.GetWindowBounds(ts, window.Params{Closure: window.Left})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 4, 4}, b.Start)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, b.End)
}

func TestIndexer_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const day = 100

	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(40)
		ts := make([]int64, n)
		cur := int64(rng.Intn(1000)) - 500
		for i := range ts {
			cur += int64(rng.Intn(60))
			ts[i] = cur
		}
		offset := int64(rng.Intn(3 * day))
		idx := New(0, WithDayLength(day), WithOffsetUnits(offset))

		sizes := map[window.Closure][]int{}
		for _, c := range closures {
			p := window.Params{Closure: c}
			b, err := idx.GetWindowBounds(ts, p)
			require.NoError(t, err)

			again, err := idx.GetWindowBounds(ts, p)
			require.NoError(t, err)
			require.Equal(t, b, again, "idempotence")

			require.Equal(t, 0, b.Start[0])
			require.Equal(t, c.RightClosed(), b.End[0])

			for i := 0; i < n; i++ {
				if i > 0 {
					require.LessOrEqual(t, b.Start[i-1], b.Start[i], "start monotonic")
				}
				require.GreaterOrEqual(t, b.Start[i], 0)
				require.LessOrEqual(t, b.Start[i], i)
				require.GreaterOrEqual(t, b.End[i], i)
				require.LessOrEqual(t, b.End[i], i+1)

				if i == 0 {
					continue
				}
				floor := floorDiv(ts[i]-offset, day) * day
				for j := 0; j <= i; j++ {
					var want bool
					switch {
					case j == i:
						want = c.RightClosed() == 1
					case c.LeftClosed() == 1:
						want = ts[j] >= floor
					default:
						want = ts[j] > floor
					}
					got := j >= b.Start[i] && j < b.End[i]
					require.Equal(t, want, got, "closure %s row %d member %d", c, i, j)
				}
			}
			sizes[c] = sizesOf(b)
		}

		for i := 0; i < n; i++ {
			assert.GreaterOrEqual(t, sizes[window.Both][i], sizes[window.Left][i])
			assert.LessOrEqual(t, sizes[window.Neither][i], sizes[window.Both][i])
		}
	}
}

func sizesOf(b window.Bounds) []int {
	out := make([]int, b.Len())
	for i := range out {
		out[i] = b.Size(i)
	}
	return out
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func BenchmarkIndexer_GetWindowBounds(b *testing.B) {
	ts := make([]int64, 100_000)
	for i := range ts {
		ts[i] = int64(i) * int64(time.Minute)
	}
	idx := New(24 * time.Hour)
	p := window.Params{Closure: window.Both}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := idx.GetWindowBounds(ts, p); err != nil {
			b.Fatal(err)
		}
	}
}
