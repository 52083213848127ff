// Package composite combines several indexers into one whose window for
// each row is the intersection of theirs.
package composite

import (
	"fmt"

	"github.com/davidvella/dayroll/window"
)

var _ window.Indexer = &Indexer{}

type Indexer struct {
	indexers []window.Indexer
}

func New(indexers ...window.Indexer) *Indexer {
	return &Indexer{indexers: indexers}
}

func (c *Indexer) GetWindowBounds(timestamps []int64, p window.Params) (window.Bounds, error) {
	if len(c.indexers) == 0 {
		return window.Bounds{}, window.Invalid("composite indexer has no members")
	}

	var out window.Bounds
	for k, idx := range c.indexers {
		b, err := idx.GetWindowBounds(timestamps, p)
		if err != nil {
			return window.Bounds{}, fmt.Errorf("composite member %d: %w", k, err)
		}
		if k == 0 {
			out = b
			continue
		}
		if b.Len() != out.Len() {
			return window.Bounds{}, window.Invalid("composite member %d returned %d rows, want %d", k, b.Len(), out.Len())
		}
		for i := range out.Start {
			out.Start[i] = max(out.Start[i], b.Start[i])
			out.End[i] = min(out.End[i], b.End[i])
		}
	}

	for i := range out.End {
		out.End[i] = max(out.End[i], out.Start[i])
	}

	return out, nil
}
