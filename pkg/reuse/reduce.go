package reuse

import "sort"

// Reduce implements the match-list reducer (C8): given all matches
// produced by seeds from a single document pair, it produces the set of
// maximal extended matches, grounded on
// original_source/dphon/extend.py:extend_matches, generalized per the
// fuller flush/extend/skip-if-contained description this package
// implements.
//
// Matches are sorted by (u.start, u.end, v.start, v.end). A queue of
// active extended matches, all currently overlapping in u, is
// maintained: a seed starting at or after the queue's rightmost u-end
// flushes the queue and reseeds it; a seed whose v-range is fully
// contained in an active match's v-range is skipped as internal to an
// already-captured maximal match; otherwise the seed is extended and
// appended to the queue as a distinct maximal match through the same
// u-region. Reduce is idempotent: feeding it its own output again
// produces the same output, since every match in the queue already
// satisfies the flush/skip conditions against itself.
func Reduce(matches []Match, extend Extender) []Match {
	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.USpan.Start != b.USpan.Start {
			return a.USpan.Start < b.USpan.Start
		}
		if a.USpan.End != b.USpan.End {
			return a.USpan.End < b.USpan.End
		}
		if a.VSpan.Start != b.VSpan.Start {
			return a.VSpan.Start < b.VSpan.Start
		}
		return a.VSpan.End < b.VSpan.End
	})

	var out []Match
	var queue []Match

	rightmostU := func() int {
		max := -1
		for _, m := range queue {
			if m.USpan.End > max {
				max = m.USpan.End
			}
		}
		return max
	}

	containedInQueue := func(seed Match) bool {
		for _, m := range queue {
			if seed.VSpan.Start >= m.VSpan.Start && seed.VSpan.End <= m.VSpan.End {
				return true
			}
		}
		return false
	}

	for _, seed := range sorted {
		switch {
		case len(queue) == 0 || seed.USpan.Start >= rightmostU():
			out = append(out, queue...)
			queue = []Match{extend.Extend(seed)}
		case containedInQueue(seed):
			// internal to an active maximal match, skip
		default:
			queue = append(queue, extend.Extend(seed))
		}
	}
	out = append(out, queue...)

	return out
}
