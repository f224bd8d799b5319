package reuse

import "github.com/hbollon/go-edlib"

// GraphicSimilarity is the Levenshtein similarity ratio between a match's
// aligned surface text, the same measure pkg/format reports per-record and
// cmd/dphon filters on via --min/max-graphic-similarity.
func GraphicSimilarity(m Match) float64 {
	u, v := joinAligned(m.UAligned), joinAligned(m.VAligned)
	if u == "" && v == "" {
		return 1
	}
	similarity, err := edlib.StringsSimilarity(u, v, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(similarity)
}

func joinAligned(ss []string) string {
	out := ""
	for _, s := range ss {
		out += s
	}
	return out
}
