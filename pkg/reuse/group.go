package reuse

import (
	"sort"
	"strings"
)

// Group is a bucket of matches sharing a common anchor endpoint,
// presenting many-to-one reuse.
type Group struct {
	AnchorDoc              string
	AnchorStart, AnchorEnd int
	Members                []Match
}

type endpointKey struct {
	docID      string
	start, end int
}

func (k endpointKey) less(o endpointKey) bool {
	if k.docID != o.docID {
		return k.docID < o.docID
	}
	if k.start != o.start {
		return k.start < o.start
	}
	return k.end < o.end
}

func endpointU(m Match) endpointKey {
	return endpointKey{m.UID, m.USpan.Start, m.USpan.End}
}

func endpointV(m Match) endpointKey {
	return endpointKey{m.VID, m.VSpan.Start, m.VSpan.End}
}

func alignedText(aligned []string) string {
	return strings.Join(aligned, "")
}

func matchKey(m Match) string {
	var b strings.Builder
	b.WriteString(m.UID)
	b.WriteString(m.VID)
	b.WriteString(alignedText(m.UAligned))
	b.WriteString(alignedText(m.VAligned))
	return b.String()
}

// Group implements the grouper (C11). A MatchGroup's invariant is that
// every member has one endpoint equal to the group's anchor, so a group
// can only ever be formed around a true dominating endpoint. Group
// repeatedly scans the pool of not-yet-grouped matches for the endpoint
// key touched by the most of them (ties broken lexicographically by
// endpoint key), claims every match touching it into one Group, and
// removes those matches from the pool before the next pass. A star-
// shaped set of matches — one document quoted by many others at the
// same span, the common case — collapses to a single group in one pass,
// since its shared endpoint already touches every match. A component
// with no single dominating endpoint (three documents that pairwise
// match each other, none of them common to all three matches) is split
// across more than one group instead of forcing a false anchor onto it.
// Generalizes original_source/dphon/lib.py:group_matches (which groups
// by one fixed side of a single document pair) to both endpoints and
// multi-document graphs.
func (g *Graph) Group() []Group {
	remaining := make([]int, len(g.edges))
	for i := range remaining {
		remaining[i] = i
	}

	var groups []Group
	for len(remaining) > 0 {
		counts := make(map[endpointKey]int)
		for _, i := range remaining {
			m := g.edges[i]
			counts[endpointU(m)]++
			counts[endpointV(m)]++
		}

		keys := make([]endpointKey, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(a, b int) bool {
			if counts[keys[a]] != counts[keys[b]] {
				return counts[keys[a]] > counts[keys[b]]
			}
			return keys[a].less(keys[b])
		})
		anchor := keys[0]

		var claimed, rest []int
		for _, i := range remaining {
			m := g.edges[i]
			if endpointU(m) == anchor || endpointV(m) == anchor {
				claimed = append(claimed, i)
			} else {
				rest = append(rest, i)
			}
		}
		remaining = rest

		seen := make(map[string]bool)
		var members []Match
		for _, i := range claimed {
			m := g.edges[i]
			mk := matchKey(m)
			if seen[mk] {
				continue
			}
			seen[mk] = true
			members = append(members, m)
		}
		sort.Slice(members, func(a, b int) bool {
			return nonAnchorText(members[a], anchor) < nonAnchorText(members[b], anchor)
		})

		groups = append(groups, Group{
			AnchorDoc:   anchor.docID,
			AnchorStart: anchor.start,
			AnchorEnd:   anchor.end,
			Members:     members,
		})
	}

	return groups
}

func nonAnchorText(m Match, anchor endpointKey) string {
	if endpointU(m) == anchor {
		return alignedText(m.VAligned)
	}
	return alignedText(m.UAligned)
}
