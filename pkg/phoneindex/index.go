// Package phoneindex maps phoneme-string keys to the span locations where
// that key occurs across all indexed documents, the phonetic collapsing
// step that lets an exact-match index find candidate graphic-variant
// reuse that a grapheme index would miss.
package phoneindex

import (
	"iter"

	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/g2p"
	"github.com/temporal-IPA/dphon/pkg/ngram"
)

// Index maps a phonetic n-gram key to the ordered list of spans where it
// occurs. Bucket order follows insertion order, which is what gives the
// pipeline reproducible seed enumeration.
type Index struct {
	buckets map[string][]corpus.Span
	order   []string
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[string][]corpus.Span)}
}

// Add indexes every length-n window of doc: windows with a non-alphabetic
// or OOV token are rejected; surviving windows are keyed by the
// concatenation of their tokens' phoneme strings and appended to that
// key's bucket.
func (ix *Index) Add(doc *corpus.Document, n int, table *g2p.Table) {
	for span := range ngram.Windows(doc, n) {
		key, ok := phoneticKey(span)
		if !ok {
			continue
		}
		if _, exists := ix.buckets[key]; !exists {
			ix.order = append(ix.order, key)
		}
		ix.buckets[key] = append(ix.buckets[key], span)
	}
}

func phoneticKey(span corpus.Span) (string, bool) {
	var key string
	for _, tok := range span.Tokens() {
		if !tok.IsAlpha || tok.IsOOV {
			return "", false
		}
		key += tok.Phonemes.Join()
	}
	return key, true
}

// Filter yields (key, spans) for every bucket satisfying pred, in
// insertion order.
func (ix *Index) Filter(pred func(key string, spans []corpus.Span) bool) iter.Seq2[string, []corpus.Span] {
	return func(yield func(string, []corpus.Span) bool) {
		for _, key := range ix.order {
			spans := ix.buckets[key]
			if !pred(key, spans) {
				continue
			}
			if !yield(key, spans) {
				return
			}
		}
	}
}

// Prune yields buckets with at least minOccurrences spans, in insertion
// order; it is a convenience wrapper over Filter, and with
// minOccurrences=2 is the typical input to the seeder.
func (ix *Index) Prune(minOccurrences int) iter.Seq2[string, []corpus.Span] {
	return ix.Filter(func(_ string, spans []corpus.Span) bool {
		return len(spans) >= minOccurrences
	})
}

// Len returns the number of distinct keys currently indexed.
func (ix *Index) Len() int {
	return len(ix.order)
}
