package reuse

import (
	"iter"

	"github.com/temporal-IPA/dphon/pkg/corpus"
)

// Seed emits one Match per unordered pair of spans drawn from distinct
// documents within each bucket, score 1.0. Same-document pairs are
// dropped. Output ordering is deterministic: bucket iteration order times
// combination order within each bucket.
func Seed(buckets iter.Seq2[string, []corpus.Span]) []Match {
	var out []Match
	for _, spans := range buckets {
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				u, v := spans[i], spans[j]
				if u.Doc == v.Doc {
					continue
				}
				out = append(out, Match{
					UID:   u.Doc.ID,
					VID:   v.Doc.ID,
					USpan: u,
					VSpan: v,
					Score: 1.0,
				})
			}
		}
	}
	return out
}
