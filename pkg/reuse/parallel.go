package reuse

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ExtendParallel is the concurrent counterpart of Extend: each document
// pair's reduction is independent, so pairs are reduced on a bounded
// worker pool instead of sequentially. Semantics match Extend exactly;
// only wall-clock time differs.
func (g *Graph) ExtendParallel(ctx context.Context, e Extender) (*Graph, error) {
	byPair := make(map[[2]string][]Match)
	var order [][2]string
	for _, m := range g.edges {
		key := pairKey(m.UID, m.VID)
		if _, seen := byPair[key]; !seen {
			order = append(order, key)
		}
		byPair[key] = append(byPair[key], m)
	}

	results := make([][]Match, len(order))
	eg, ctx := errgroup.WithContext(ctx)
	for idx, key := range order {
		idx, key := idx, key
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[idx] = Reduce(byPair[key], e)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := g.clone()
	for _, r := range results {
		out.edges = append(out.edges, r...)
	}
	return out, nil
}

// AlignParallel is the concurrent counterpart of Align: each match's
// alignment is independent.
func (g *Graph) AlignParallel(ctx context.Context, a Aligner) (*Graph, error) {
	results := make([]Match, len(g.edges))
	eg, ctx := errgroup.WithContext(ctx)
	for i, m := range g.edges {
		i, m := i, m
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = a.Align(m)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := g.clone()
	out.edges = results
	return out, nil
}
