// Package phoneme defines the fixed-arity phoneme tuple shared by the G2P
// table and the document model, factored out so corpus doesn't need to
// import g2p.
package phoneme

import "strings"

// OOV is the sentinel symbol standing in for "no table entry", distinct
// from any real phoneme slot value.
const OOV = "\x00OOV"

// Tuple is a fixed-arity sequence of phoneme slot values for one token.
// A non-voiced token (punctuation) is the empty tuple. An OOV token is
// a single-element tuple holding OOV.
type Tuple []string

// IsOOV reports whether t is the OOV sentinel tuple.
func (t Tuple) IsOOV() bool {
	return len(t) == 1 && t[0] == OOV
}

// IsEmpty reports whether t carries no phoneme slots (non-voiced token).
func (t Tuple) IsEmpty() bool {
	return len(t) == 0
}

// Join concatenates the non-empty slots of t, the unit index.Add and the
// aligner use to build phoneme-string keys.
func (t Tuple) Join() string {
	var b strings.Builder
	for _, s := range t {
		if s == "" {
			continue
		}
		b.WriteString(s)
	}
	return b.String()
}

// Equal reports whether t and other hold the same slot values.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}
