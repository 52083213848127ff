package rolling

import (
	"context"
	"fmt"

	"github.com/google/btree"
	"golang.org/x/sync/errgroup"

	"github.com/davidvella/dayroll/monitoring"
	"github.com/davidvella/dayroll/window"
)

// group holds the row positions that share a key, in input order.
type group struct {
	key  string
	rows []int
}

func lessGroup(a, b *group) bool {
	return a.key < b.key
}

// GroupBy applies reducer over each key's rows on their own, as if every
// group were a separate series, and returns results in the input row
// order. Rows of a group must have non-decreasing timestamps; rows of
// different groups may interleave freely.
func (r *Rolling) GroupBy(ctx context.Context, keys []string, timestamps []int64, values []float64, reducer Reducer) ([]float64, error) {
	const op = "groupby"
	log := monitoring.FromContext(ctx).With("operation", op)

	if len(keys) != len(timestamps) || len(values) != len(timestamps) {
		err := window.Invalid("%d keys and %d values for %d timestamps", len(keys), len(values), len(timestamps))
		recordError(op, err)
		return nil, err
	}
	if len(keys) == 0 {
		err := window.Invalid("no rows to group")
		recordError(op, err)
		return nil, err
	}

	groups := partitionRows(keys)
	out := make([]float64, len(keys))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.concurrency)

	groups.Ascend(func(g *group) bool {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gts := make([]int64, len(g.rows))
			gvs := make([]float64, len(g.rows))
			for j, row := range g.rows {
				gts[j] = timestamps[row]
				gvs[j] = values[row]
			}

			res, err := r.reduce(op, gts, gvs, reducer)
			if err != nil {
				return fmt.Errorf("group %q: %w", g.key, err)
			}
			// Groups own disjoint rows, so no locking is needed.
			for j, row := range g.rows {
				out[row] = res[j]
			}
			monitoring.GroupsProcessed.WithLabelValues(op).Inc()
			return nil
		})
		return true
	})

	if err := eg.Wait(); err != nil {
		recordError(op, err)
		log.Debugw("Grouped rolling failed", "rows", len(keys), "error", err)
		return nil, err
	}

	log.Debugw("Grouped rolling done", "rows", len(keys), "groups", groups.Len())
	return out, nil
}

// partitionRows indexes row positions by key, ordered by key.
func partitionRows(keys []string) *btree.BTreeG[*group] {
	tree := btree.NewG[*group](2, lessGroup)
	for i, k := range keys {
		g, ok := tree.Get(&group{key: k})
		if !ok {
			g = &group{key: k}
			tree.ReplaceOrInsert(g)
		}
		g.rows = append(g.rows, i)
	}
	return tree
}

// Keys returns the distinct keys in ascending order.
func Keys(keys []string) []string {
	tree := partitionRows(keys)
	out := make([]string, 0, tree.Len())
	tree.Ascend(func(g *group) bool {
		out = append(out, g.key)
		return true
	})
	return out
}
