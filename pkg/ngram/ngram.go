// Package ngram produces the lazy sequence of length-n contiguous token
// windows over a document.
package ngram

import (
	"iter"

	"github.com/temporal-IPA/dphon/pkg/corpus"
)

// Windows yields doc[i:i+n] for i in [0, max(0, len(doc)-n+1)), a Go
// range-over-func iterator in the teacher's streaming idiom. An empty
// document yields nothing; a document shorter than n yields exactly one
// window spanning the whole document.
func Windows(doc *corpus.Document, n int) iter.Seq[corpus.Span] {
	return func(yield func(corpus.Span) bool) {
		length := doc.Len()
		if length == 0 {
			return
		}
		if n <= 0 {
			n = 1
		}
		last := length - n + 1
		if last < 1 {
			last = 1
		}
		for i := 0; i < last; i++ {
			end := i + n
			if end > length {
				end = length
			}
			if !yield(corpus.NewSpan(doc, i, end)) {
				return
			}
		}
	}
}
