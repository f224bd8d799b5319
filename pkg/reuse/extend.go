package reuse

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/g2p"
)

// LevenshteinPhoneticExtender grows a seed outward in both directions
// while the phonetic Levenshtein similarity ratio of the scored window
// stays at or above Threshold, trimming the trailing decline on
// termination. Ported from original_source/dphon/extend.py's
// LevenshteinPhoneticExtender (_extend_fwd/_extend_rev).
type LevenshteinPhoneticExtender struct {
	Threshold float64
	LenLimit  int
	Table     *g2p.Table
}

// Extend implements Extender.
func (e LevenshteinPhoneticExtender) Extend(m Match) Match {
	u, v := m.USpan, m.VSpan
	u, v = e.pass(u, v, true)
	u, v = e.pass(u, v, false)

	out := m
	out.USpan = u
	out.VSpan = v
	out.Score = e.ratio(u, v, true)
	return out
}

// pass runs one directional growth pass (forward when fwd, backward
// otherwise) and returns the trimmed, grown spans.
func (e LevenshteinPhoneticExtender) pass(u, v corpus.Span, fwd bool) (corpus.Span, corpus.Span) {
	s := e.ratio(u, v, fwd)
	trail := 0

	for s >= e.Threshold && hasRoom(u, v, fwd) {
		u, v = grow(u, v, fwd)
		next := e.ratio(u, v, fwd)
		if next < s {
			trail++
		} else {
			trail = 0
		}
		s = next
	}

	if trail > 0 {
		u, v = trim(u, v, fwd, trail)
	}
	return u, v
}

func hasRoom(u, v corpus.Span, fwd bool) bool {
	if fwd {
		return u.End < u.Doc.Len() && v.End < v.Doc.Len()
	}
	return u.Start > 0 && v.Start > 0
}

func grow(u, v corpus.Span, fwd bool) (corpus.Span, corpus.Span) {
	if fwd {
		return u.Resize(u.Start, u.End+1), v.Resize(v.Start, v.End+1)
	}
	return u.Resize(u.Start-1, u.End), v.Resize(v.Start-1, v.End)
}

func trim(u, v corpus.Span, fwd bool, trail int) (corpus.Span, corpus.Span) {
	if fwd {
		return u.Resize(u.Start, u.End-trail), v.Resize(v.Start, v.End-trail)
	}
	return u.Resize(u.Start+trail, u.End), v.Resize(v.Start+trail, v.End)
}

// ratio computes the Levenshtein similarity ratio over the concatenated
// non-empty phonemes of u and v, each joined in full and then limited to
// the last (fwd) or first (!fwd) LenLimit characters — matching
// original_source/dphon/extend.py:124-143's text1[-len_limit:]/text1[:len_limit]
// slicing of "".join(phonemes), character-based rather than token-based
// since phoneme symbols are routinely multi-character. An OOV token
// contributing any character to that window forces ratio to -1, cleanly
// terminating extension at that boundary.
func (e LevenshteinPhoneticExtender) ratio(u, v corpus.Span, fwd bool) float64 {
	uWin, uOOV := scoredWindow(u, e.LenLimit, fwd)
	vWin, vOOV := scoredWindow(v, e.LenLimit, fwd)
	if uOOV || vOOV {
		return -1
	}
	if uWin == "" && vWin == "" {
		return 1
	}
	similarity, err := edlib.StringsSimilarity(uWin, vWin, edlib.Levenshtein)
	if err != nil {
		return -1
	}
	return float64(similarity)
}

// scoredWindow joins s's token phonemes into one string, slices it to the
// last/first limit characters, and reports whether any token contributing
// a character to that slice is OOV.
func scoredWindow(s corpus.Span, limit int, fwd bool) (string, bool) {
	toks := s.Tokens()
	full := phonemeString(toks)
	win := full
	if runes := []rune(full); limit > 0 && len(runes) > limit {
		if fwd {
			win = string(runes[len(runes)-limit:])
		} else {
			win = string(runes[:limit])
		}
	}
	return win, windowOOV(toks, limit, fwd)
}

// windowOOV walks toks from the scored edge inward, accumulating each
// token's phoneme character count, and reports whether an OOV token is
// reached before the accumulated count covers limit characters.
func windowOOV(toks []corpus.Token, limit int, fwd bool) bool {
	count := 0
	check := func(t corpus.Token) bool {
		if limit > 0 && count >= limit {
			return false
		}
		if t.IsOOV {
			return true
		}
		count += utf8.RuneCountInString(t.Phonemes.Join())
		return false
	}
	if fwd {
		for i := len(toks) - 1; i >= 0; i-- {
			if check(toks[i]) {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(toks); i++ {
		if check(toks[i]) {
			return true
		}
	}
	return false
}

func phonemeString(toks []corpus.Token) string {
	s := ""
	for _, t := range toks {
		s += t.Phonemes.Join()
	}
	return s
}
