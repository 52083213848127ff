package count

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidvella/dayroll/window"
)

func TestIndexer_GetWindowBounds(t *testing.T) {
	ts := []int64{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		size      int
		params    window.Params
		wantStart []int
		wantEnd   []int
	}{
		{
			name:      "right closed trailing window",
			size:      2,
			params:    window.Params{Closure: window.Right},
			wantStart: []int{0, 0, 1, 2, 3},
			wantEnd:   []int{1, 2, 3, 4, 5},
		},
		{
			name:      "left closed shifts back one row",
			size:      2,
			params:    window.Params{Closure: window.Left},
			wantStart: []int{0, 0, 0, 1, 2},
			wantEnd:   []int{0, 1, 2, 3, 4},
		},
		{
			name:      "both",
			size:      2,
			params:    window.Params{Closure: window.Both},
			wantStart: []int{0, 0, 0, 1, 2},
			wantEnd:   []int{1, 2, 3, 4, 5},
		},
		{
			name:      "neither",
			size:      2,
			params:    window.Params{Closure: window.Neither},
			wantStart: []int{0, 0, 1, 2, 3},
			wantEnd:   []int{0, 1, 2, 3, 4},
		},
		{
			name:      "centered",
			size:      3,
			params:    window.Params{Closure: window.Right, Center: true},
			wantStart: []int{0, 0, 1, 2, 3},
			wantEnd:   []int{2, 3, 4, 5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.size).GetWindowBounds(ts, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, b.Start)
			assert.Equal(t, tt.wantEnd, b.End)
		})
	}
}

func TestIndexer_InvalidSize(t *testing.T) {
	_, err := New(0).GetWindowBounds([]int64{1}, window.Params{Closure: window.Right})
	assert.ErrorIs(t, err, window.ErrInvalidInput)
}
