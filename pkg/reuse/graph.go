package reuse

import (
	"context"

	"github.com/temporal-IPA/dphon/pkg/corpus"
)

// Graph is an undirected multigraph over documents: nodes are documents
// keyed by id, edges are Matches between two distinct documents. Each
// stage method builds a new Graph from the prior one's edges —
// replacement, not mutation — grounded on
// original_source/dphon/reuse.py:MatchGraph, whose extend/align/filter
// build `create_empty_copy(self._G)` and repopulate it.
type Graph struct {
	nodes map[string]*corpus.Document
	edges []Match
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*corpus.Document)}
}

// AddDoc registers a document as a node.
func (g *Graph) AddDoc(doc *corpus.Document) {
	g.nodes[doc.ID] = doc
}

// AddMatch adds an edge. Same-document matches are rejected by the
// seeder upstream, never reaching here; a match naming an unregistered
// document id is a programmer error and returns ErrUnknownDoc.
func (g *Graph) AddMatch(m Match) error {
	if _, ok := g.nodes[m.UID]; !ok {
		return ErrUnknownDoc
	}
	if _, ok := g.nodes[m.VID]; !ok {
		return ErrUnknownDoc
	}
	g.edges = append(g.edges, m)
	return nil
}

// Matches returns the graph's current edge set.
func (g *Graph) Matches() []Match {
	out := make([]Match, len(g.edges))
	copy(out, g.edges)
	return out
}

func pairKey(a, b string) [2]string {
	if a <= b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// clone returns a new Graph sharing this graph's nodes but with an empty
// edge set, the Go analogue of create_empty_copy.
func (g *Graph) clone() *Graph {
	return &Graph{nodes: g.nodes}
}

// Extend gathers the edges between each ordered document pair, reduces
// them with C8 using e, and replaces the edge set. ctx gives a
// cancellation point at each pair boundary.
func (g *Graph) Extend(ctx context.Context, e Extender) *Graph {
	byPair := make(map[[2]string][]Match)
	var order [][2]string
	for _, m := range g.edges {
		key := pairKey(m.UID, m.VID)
		if _, seen := byPair[key]; !seen {
			order = append(order, key)
		}
		byPair[key] = append(byPair[key], m)
	}

	out := g.clone()
	for _, key := range order {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		out.edges = append(out.edges, Reduce(byPair[key], e)...)
	}
	return out
}

// Align applies a to each edge independently and replaces the edge set.
func (g *Graph) Align(ctx context.Context, a Aligner) *Graph {
	out := g.clone()
	for _, m := range g.edges {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		out.edges = append(out.edges, a.Align(m))
	}
	return out
}

// Filter keeps edges for which pred holds.
func (g *Graph) Filter(pred func(Match) bool) *Graph {
	out := g.clone()
	for _, m := range g.edges {
		if pred(m) {
			out.edges = append(out.edges, m)
		}
	}
	return out
}
