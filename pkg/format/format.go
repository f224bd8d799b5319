// Package format serializes reuse matches and groups to the output
// formats spec.md §6 names: txt, jsonl, csv, html.
package format

import (
	"strings"

	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/reuse"
)

// Record is the flat, serializable view of one Match, field order
// matching spec.md §6's jsonl/csv field list. UContext/VContext hold the
// -c/--context tokens of surrounding text on either side of the match,
// the same context window original_source/dphon/fmt.py's RichFormatter
// dims around a match's aligned text.
type Record struct {
	UID, VID                             string
	UText, VText                         string
	UTextAligned, VTextAligned           string
	UContextBefore, UContextAfter        string
	VContextBefore, VContextAfter        string
	UStart, UEnd, VStart, VEnd           int
	PhoneticSimilarity, GraphicSimilarity float64
}

// FromMatches converts matches to their flat Record view. context is the
// number of tokens of surrounding text to capture on either side of each
// span, per the -c/--context flag.
func FromMatches(matches []reuse.Match, context int) []Record {
	out := make([]Record, len(matches))
	for i, m := range matches {
		out[i] = fromMatch(m, context)
	}
	return out
}

func fromMatch(m reuse.Match, context int) Record {
	uAligned := join(m.UAligned)
	vAligned := join(m.VAligned)
	uBefore, uAfter := contextAround(m.USpan, context)
	vBefore, vAfter := contextAround(m.VSpan, context)
	return Record{
		UID:                m.UID,
		VID:                m.VID,
		UText:              m.USpan.Text(),
		VText:              m.VSpan.Text(),
		UTextAligned:       uAligned,
		VTextAligned:       vAligned,
		UContextBefore:     uBefore,
		UContextAfter:      uAfter,
		VContextBefore:     vBefore,
		VContextAfter:      vAfter,
		UStart:             m.USpan.Start,
		UEnd:               m.USpan.End,
		VStart:             m.VSpan.Start,
		VEnd:               m.VSpan.End,
		PhoneticSimilarity: m.Score,
		GraphicSimilarity:  reuse.GraphicSimilarity(m),
	}
}

// contextAround returns the surface text of up to context tokens
// immediately before and after span, clamped to the document's bounds.
func contextAround(span corpus.Span, context int) (before, after string) {
	if span.Doc == nil || context <= 0 {
		return "", ""
	}
	toks := span.Doc.Tokens
	start := span.Start - context
	if start < 0 {
		start = 0
	}
	end := span.End + context
	if end > len(toks) {
		end = len(toks)
	}
	return tokenText(toks[start:span.Start]), tokenText(toks[span.End:end])
}

func tokenText(toks []corpus.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

func join(ss []string) string {
	out := ""
	for _, s := range ss {
		out += s
	}
	return out
}

// FromGroups flattens groups into Records, one per member, in group then
// member order; callers that need group boundaries use WriteGroupsTxt.
func FromGroups(groups []reuse.Group, context int) []Record {
	var out []Record
	for _, g := range groups {
		out = append(out, FromMatches(g.Members, context)...)
	}
	return out
}
