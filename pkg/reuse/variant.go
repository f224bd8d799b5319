package reuse

import "github.com/temporal-IPA/dphon/pkg/g2p"

// VariantFilter returns a predicate suitable for Graph.Filter (or plain
// slice filtering of seeds) that keeps only matches containing at least
// one graphic variant, per g2p.Table.HasVariant. It is designed to run on
// unextended seeds; a length mismatch (a programmer error on extended
// input) is treated as "no variant" rather than panicking.
func VariantFilter(table *g2p.Table) func(Match) bool {
	return func(m Match) bool {
		hasVariant, err := table.HasVariant(m.USpan, m.VSpan)
		if err != nil {
			return false
		}
		return hasVariant
	}
}
