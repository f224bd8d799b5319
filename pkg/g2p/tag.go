package g2p

import (
	"unicode"
	"unicode/utf8"

	"github.com/temporal-IPA/dphon/pkg/corpus"
)

// Tag builds a Document's immutable token sequence from raw text, one
// token per Unicode code point (matching the original pipeline's blank
// Chinese tokenizer configured for character-level segmentation, not
// word segmentation). This is the one pass that mutates token state;
// once built, the Document is never mutated again.
func Tag(id string, text string, t *Table) *corpus.Document {
	tokens := make([]corpus.Token, 0, utf8.RuneCountInString(text))
	offset := 0
	for _, r := range text {
		s := string(r)
		alpha := unicode.IsLetter(r) || unicode.IsDigit(r)
		tok := corpus.Token{
			Text:    s,
			Offset:  offset,
			IsAlpha: alpha,
		}
		if alpha {
			tok.Phonemes = t.Phonemes(s)
			tok.IsOOV = tok.Phonemes.IsOOV()
		} else {
			tok.Phonemes = t.Phonemes(s)
		}
		tokens = append(tokens, tok)
		offset++
	}
	return &corpus.Document{ID: id, Tokens: tokens}
}
