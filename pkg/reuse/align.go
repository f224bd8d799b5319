package reuse

import "github.com/temporal-IPA/dphon/pkg/corpus"

// Scorer is an optional caller-supplied scoring matrix keyed by ordered
// symbol pairs; absence of a cell pair is treated as mismatch, mirroring
// lingpy's scoring-matrix convention that
// original_source/dphon/align.py's SmithWatermanPhoneticAligner relies on.
type Scorer map[[2]string]float64

const (
	matchScore    = 1.0
	mismatchScore = -1.0
	gapPenalty    = -1.0
)

func (s Scorer) score(a, b string) float64 {
	if a == b {
		return matchScore
	}
	if s != nil {
		if v, ok := s[[2]string{a, b}]; ok {
			return v
		}
		if v, ok := s[[2]string{b, a}]; ok {
			return v
		}
	}
	return mismatchScore
}

// SmithWatermanAligner performs a hand-written Smith-Waterman local
// alignment over per-token phoneme symbols (the token text when a token
// carries no phonemes). Ported from original_source/dphon/align.py's
// SmithWatermanAligner/SmithWatermanPhoneticAligner, which delegates the
// same algorithm to lingpy's sw_align; no suitable alignment library is
// represented anywhere in the retrieved corpus, so this is a direct port
// rather than a dependency.
type SmithWatermanAligner struct {
	Scorer    Scorer
	GapSymbol string
}

func symbol(t corpus.Token) string {
	if ph := t.Phonemes.Join(); ph != "" {
		return ph
	}
	return t.Text
}

// column is one position of the alignment: UIdx/VIdx are token indices
// into the respective (local, 0-based) token slices, or -1 for a gap.
type column struct {
	UIdx, VIdx int
}

// Align implements Aligner. It never mutates m.
func (a SmithWatermanAligner) Align(m Match) Match {
	uToks := m.USpan.Tokens()
	vToks := m.VSpan.Tokens()
	nu, nv := len(uToks), len(vToks)

	h := make([][]float64, nu+1)
	dir := make([][]byte, nu+1) // 0=none, 1=diag, 2=up, 3=left
	for i := range h {
		h[i] = make([]float64, nv+1)
		dir[i] = make([]byte, nv+1)
	}

	maxI, maxJ, maxScore := 0, 0, 0.0
	for i := 1; i <= nu; i++ {
		for j := 1; j <= nv; j++ {
			diag := h[i-1][j-1] + a.Scorer.score(symbol(uToks[i-1]), symbol(vToks[j-1]))
			up := h[i-1][j] + gapPenalty
			left := h[i][j-1] + gapPenalty
			best, bestDir := 0.0, byte(0)
			if diag > best {
				best, bestDir = diag, 1
			}
			if up > best {
				best, bestDir = up, 2
			}
			if left > best {
				best, bestDir = left, 3
			}
			h[i][j] = best
			dir[i][j] = bestDir
			if best > maxScore {
				maxScore, maxI, maxJ = best, i, j
			}
		}
	}

	var cols []column
	i, j := maxI, maxJ
	for i > 0 && j > 0 && dir[i][j] != 0 {
		switch dir[i][j] {
		case 1:
			cols = append(cols, column{i - 1, j - 1})
			i--
			j--
		case 2:
			cols = append(cols, column{i - 1, -1})
			i--
		case 3:
			cols = append(cols, column{-1, j - 1})
			j--
		}
	}
	for l, r := 0, len(cols)-1; l < r; l, r = l+1, r-1 {
		cols[l], cols[r] = cols[r], cols[l]
	}

	cols = trimNonAlphanumeric(cols, uToks, vToks)

	gap := a.GapSymbol
	if gap == "" {
		gap = "-"
	}

	out := m
	if len(cols) == 0 {
		out.USpan = m.USpan.Resize(m.USpan.Start, m.USpan.Start)
		out.VSpan = m.VSpan.Resize(m.VSpan.Start, m.VSpan.Start)
		out.UAligned = nil
		out.VAligned = nil
		out.Score = 0
		return out
	}

	uMin, uMax, vMin, vMax := -1, -1, -1, -1
	au := make([]string, len(cols))
	av := make([]string, len(cols))
	for k, c := range cols {
		if c.UIdx >= 0 {
			au[k] = uToks[c.UIdx].Text
			if uMin == -1 || c.UIdx < uMin {
				uMin = c.UIdx
			}
			if c.UIdx > uMax {
				uMax = c.UIdx
			}
		} else {
			au[k] = gap
		}
		if c.VIdx >= 0 {
			av[k] = vToks[c.VIdx].Text
			if vMin == -1 || c.VIdx < vMin {
				vMin = c.VIdx
			}
			if c.VIdx > vMax {
				vMax = c.VIdx
			}
		} else {
			av[k] = gap
		}
	}

	out.USpan = corpus.NewSpan(m.USpan.Doc, m.USpan.Start+uMin, m.USpan.Start+uMax+1)
	out.VSpan = corpus.NewSpan(m.VSpan.Doc, m.VSpan.Start+vMin, m.VSpan.Start+vMax+1)
	out.UAligned = au
	out.VAligned = av

	length := len(au)
	if len(av) > length {
		length = len(av)
	}
	out.Score = maxScore / float64(length)
	return out
}

// trimNonAlphanumeric drops leading/trailing columns where either side is
// a gap or a non-alphanumeric token, keeping both sequences the same
// length throughout.
func trimNonAlphanumeric(cols []column, uToks, vToks []corpus.Token) []column {
	alpha := func(c column) bool {
		if c.UIdx < 0 || c.VIdx < 0 {
			return false
		}
		return uToks[c.UIdx].IsAlpha && vToks[c.VIdx].IsAlpha
	}
	start, end := 0, len(cols)
	for start < end && !alpha(cols[start]) {
		start++
	}
	for end > start && !alpha(cols[end-1]) {
		end--
	}
	return cols[start:end]
}
