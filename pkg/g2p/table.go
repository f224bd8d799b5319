// Package g2p loads the grapheme-to-phoneme table and exposes the
// OOV/graphic-variant predicates the rest of the pipeline consumes. The
// table is read-only after Load and is passed explicitly to every stage
// that needs it — never stashed in a package-level variable.
package g2p

import (
	"encoding/json"
	"errors"
	"io"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/phoneme"
)

// ErrSpanLengthMismatch is returned by HasVariant when its two spans don't
// have equal length; it only ever runs on unextended seeds, so this
// signals a caller defect, not a normal-path condition.
var ErrSpanLengthMismatch = errors.New("g2p: span length mismatch")

// metadataSlots is the number of trailing source-metadata slots every
// reading carries, dropped on load (see original_source/dphon/g2p.py's
// "*reading, _src, _src2 = readings[0]").
const metadataSlots = 2

// Table is the read-only character -> phoneme-tuple mapping.
type Table struct {
	arity     int
	entries   map[string]phoneme.Tuple
	warnedKey map[string]struct{}
}

// Load parses the JSON G2P table format: an object mapping each character
// to a list of readings, each reading an ordered sequence of phoneme slot
// values terminated by metadataSlots ignored slots. Only the first reading
// per character is used. Arity is inferred from the first well-formed
// entry seen; entries whose first reading doesn't match that arity are
// malformed and are skipped with a single warning, their character
// becoming OOV.
func Load(r io.Reader) (*Table, error) {
	var raw map[string][][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	t := &Table{
		entries:   make(map[string]phoneme.Tuple, len(raw)),
		warnedKey: make(map[string]struct{}),
	}

	for char, readings := range raw {
		if len(readings) == 0 {
			t.warnMalformed(char)
			continue
		}
		first := readings[0]
		if len(first) <= metadataSlots {
			t.warnMalformed(char)
			continue
		}
		slots := first[:len(first)-metadataSlots]
		if t.arity == 0 {
			t.arity = len(slots)
		}
		if len(slots) != t.arity {
			t.warnMalformed(char)
			continue
		}
		tuple := make(phoneme.Tuple, len(slots))
		copy(tuple, slots)
		t.entries[char] = tuple
	}

	return t, nil
}

func (t *Table) warnMalformed(char string) {
	if _, seen := t.warnedKey[char]; seen {
		return
	}
	t.warnedKey[char] = struct{}{}
	log.Warn().Str("char", char).Msg("g2p: malformed table entry, character becomes OOV")
}

// Arity returns the uniform phoneme-slot count inferred at load.
func (t *Table) Arity() int {
	return t.arity
}

func isVoiced(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Phonemes returns the empty tuple for non-alphanumeric text, the OOV
// sentinel tuple for alphanumeric text with no table entry, and the
// stored tuple otherwise.
func (t *Table) Phonemes(text string) phoneme.Tuple {
	if !isVoiced(text) {
		return phoneme.Tuple{}
	}
	if tuple, ok := t.entries[text]; ok {
		return tuple
	}
	return phoneme.Tuple{phoneme.OOV}
}

// IsOOV reports whether text has no table entry despite being voiced.
func (t *Table) IsOOV(text string) bool {
	if !isVoiced(text) {
		return false
	}
	_, ok := t.entries[text]
	return !ok
}

// AreGraphicVariants reports whether every token has a table entry (none
// OOV, none non-voiced), all share one phoneme tuple, and their surface
// texts are not all identical.
func (t *Table) AreGraphicVariants(tokens ...corpus.Token) bool {
	if len(tokens) < 2 {
		return false
	}
	first := tokens[0]
	if first.IsOOV || !first.IsAlpha {
		return false
	}
	allSame := true
	for _, tok := range tokens[1:] {
		if tok.IsOOV || !tok.IsAlpha {
			return false
		}
		if !tok.Phonemes.Equal(first.Phonemes) {
			return false
		}
		if tok.Text != first.Text {
			allSame = false
		}
	}
	return !allSame
}

// HasVariant reports whether some index i satisfies
// AreGraphicVariants(u[i], v[i]) for equal-length spans u and v. It
// requires u.Len() == v.Len() and is designed to run on unextended seeds.
func (t *Table) HasVariant(u, v corpus.Span) (bool, error) {
	if u.Len() != v.Len() {
		return false, ErrSpanLengthMismatch
	}
	uToks, vToks := u.Tokens(), v.Tokens()
	for i := range uToks {
		if t.AreGraphicVariants(uToks[i], vToks[i]) {
			return true, nil
		}
	}
	return false, nil
}
