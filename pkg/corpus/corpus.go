// Package corpus holds the immutable document model: tokens, documents,
// and borrowed spans over a document's token sequence.
package corpus

import (
	"fmt"
	"strings"

	"github.com/temporal-IPA/dphon/pkg/phoneme"
)

// Token is an immutable record for one character position in a Document.
type Token struct {
	Text     string
	Offset   int
	IsAlpha  bool
	IsOOV    bool
	Phonemes phoneme.Tuple
}

// Document is an immutable ordered sequence of tokens, built once by a
// corpusio loader plus a G2P tagging pass, never mutated afterward.
type Document struct {
	ID     string
	Tokens []Token
}

// Len returns the number of tokens in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Tokens)
}

// Text reassembles the document's surface text from its tokens.
func (d *Document) Text() string {
	var b strings.Builder
	for _, t := range d.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Span is a half-open interval [Start, End) into Doc's token sequence. It
// carries no copy of token data; Doc must outlive any Span referencing it.
type Span struct {
	Doc        *Document
	Start, End int
}

// NewSpan constructs a Span, it is the caller's responsibility to keep
// 0 <= start < end <= doc.Len().
func NewSpan(doc *Document, start, end int) Span {
	return Span{Doc: doc, Start: start, End: end}
}

// Len returns the number of tokens the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Valid reports whether the span's bounds are well-formed against its
// document.
func (s Span) Valid() bool {
	return s.Doc != nil && s.Start >= 0 && s.Start < s.End && s.End <= s.Doc.Len()
}

// Tokens returns the token slice the span covers, a borrowed view.
func (s Span) Tokens() []Token {
	if s.Doc == nil {
		return nil
	}
	return s.Doc.Tokens[s.Start:s.End]
}

// Text concatenates the surface text of the span's tokens.
func (s Span) Text() string {
	var b strings.Builder
	for _, t := range s.Tokens() {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Phonemes concatenates, per token, the non-empty phoneme slots joined by
// nothing, producing the phonetic key used by the index and the aligner.
func (s Span) Phonemes() string {
	var b strings.Builder
	for _, t := range s.Tokens() {
		b.WriteString(t.Phonemes.Join())
	}
	return b.String()
}

// String renders the span as "id[start:end]" for diagnostics.
func (s Span) String() string {
	id := "<nil>"
	if s.Doc != nil {
		id = s.Doc.ID
	}
	return fmt.Sprintf("%s[%d:%d]", id, s.Start, s.End)
}

// Resize grows or shrinks a span and returns a new one; it performs no
// bounds validation, callers are expected to validate against Doc.Len().
func (s Span) Resize(start, end int) Span {
	return Span{Doc: s.Doc, Start: start, End: end}
}
