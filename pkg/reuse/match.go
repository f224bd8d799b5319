// Package reuse implements the reuse-discovery pipeline: seeding,
// extension, reduction, alignment, the match graph, and grouping.
package reuse

import (
	"errors"

	"github.com/temporal-IPA/dphon/pkg/corpus"
)

// ErrUnknownDoc is returned by Graph.AddMatch when a match names a
// document id that hasn't been registered with AddDoc.
var ErrUnknownDoc = errors.New("reuse: match references an unknown document")

// Match pairs two spans from distinct documents. UAligned/VAligned are
// equal-length token-text-or-gap sequences once aligned, nil before
// alignment. Score starts at 1.0 for seeds, is overwritten by the
// extender, and again by the aligner (length-normalized). A Match does
// not own its spans — the documents do.
type Match struct {
	UID, VID string
	USpan    corpus.Span
	VSpan    corpus.Span
	Score    float64
	UAligned []string
	VAligned []string
}

// Len returns max(|USpan|, |VSpan|).
func (m Match) Len() int {
	ul, vl := m.USpan.Len(), m.VSpan.Len()
	if ul > vl {
		return ul
	}
	return vl
}

// Extender grows a Match outward under a phonetic edit-distance
// threshold. Input and output spans must have equal length on entry (a
// seed or an already-extended match); a Match is always returned, never
// an error, since "no growth possible" is an expected outcome.
type Extender interface {
	Extend(m Match) Match
}

// Aligner produces a pairwise local alignment of a Match's spans,
// returning a new Match with adjusted bounds, aligned sequences, and a
// length-normalized score. It never mutates its input.
type Aligner interface {
	Align(m Match) Match
}
