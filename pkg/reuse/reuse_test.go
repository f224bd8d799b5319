package reuse

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/g2p"
	"github.com/temporal-IPA/dphon/pkg/ngram"
	"github.com/temporal-IPA/dphon/pkg/phoneindex"
)

// identityTable builds a G2P table where every distinct rune across texts
// maps to a single-slot phoneme equal to itself, so phonetic similarity
// tracks graphic similarity exactly unless a variant pair is added.
func identityTable(t *testing.T, variants map[rune]rune, texts ...string) *g2p.Table {
	t.Helper()
	seen := make(map[rune]bool)
	var b strings.Builder
	b.WriteString("{")
	first := true
	write := func(r rune, phoneme string) {
		if seen[r] {
			return
		}
		seen[r] = true
		if !first {
			b.WriteString(",")
		}
		first = false
		fmt.Fprintf(&b, "%q:[[%q,%q,%q]]", string(r), phoneme, "src", "src2")
	}
	for _, text := range texts {
		for _, r := range text {
			phoneme := string(r)
			if canon, ok := variants[r]; ok {
				phoneme = string(canon)
			}
			write(r, phoneme)
		}
	}
	b.WriteString("}")
	tbl, err := g2p.Load(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func TestS1IdenticalNoExtensionNeeded(t *testing.T) {
	text := "千室之邑百乘之家"
	tbl := identityTable(t, nil, text)
	u := g2p.Tag("u", text, tbl)
	v := g2p.Tag("v", text, tbl)

	seed := Match{UID: "u", VID: "v", USpan: corpus.NewSpan(u, 0, 8), VSpan: corpus.NewSpan(v, 0, 8), Score: 1.0}
	ext := LevenshteinPhoneticExtender{Threshold: 0.7, LenLimit: 50, Table: tbl}
	out := ext.Extend(seed)

	if out.USpan.Start != 0 || out.USpan.End != 8 || out.VSpan.Start != 0 || out.VSpan.End != 8 {
		t.Fatalf("spans changed: u=%v v=%v", out.USpan, out.VSpan)
	}
	if out.Score != 1.0 {
		t.Fatalf("Score = %v, want 1.0", out.Score)
	}

	aligner := SmithWatermanAligner{}
	aligned := aligner.Align(out)
	if len(aligned.UAligned) != utf8.RuneCountInString(text) {
		t.Fatalf("aligned length = %d, want %d", len(aligned.UAligned), utf8.RuneCountInString(text))
	}
	if strings.Join(aligned.UAligned, "") != text || strings.Join(aligned.VAligned, "") != text {
		t.Fatalf("aligned text mismatch: au=%v av=%v", aligned.UAligned, aligned.VAligned)
	}
	if aligned.Score != 1.0 {
		t.Fatalf("normalized score = %v, want 1.0", aligned.Score)
	}
}

// TestCutoffAtSimilarityDrop exercises the shape of spec.md §8 S3 (two
// documents sharing a prefix, diverging afterward): growth must stop
// strictly before the documents' full length once the trailing
// similarity falls below threshold, and the resulting span must never
// exceed the full, fully-matching prefix. The exact cutoff position spec.md's
// S3 example reports depends on real Old Chinese phonetic reconstructions
// this test has no access to, so it checks the invariant S3 demonstrates
// rather than S3's literal bound.
func TestCutoffAtSimilarityDrop(t *testing.T) {
	u := "行有餘力則以學文"
	v := "行有餘力博學覽古"
	tbl := identityTable(t, nil, u, v)
	ud := g2p.Tag("u", u, tbl)
	vd := g2p.Tag("v", v, tbl)

	seed := Match{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 0, 2), VSpan: corpus.NewSpan(vd, 0, 2), Score: 1.0}
	ext := LevenshteinPhoneticExtender{Threshold: 0.75, LenLimit: 100, Table: tbl}
	out := ext.Extend(seed)

	if out.USpan.Start != 0 || out.VSpan.Start != 0 {
		t.Fatalf("extension must not move the start of a forward-only growth: u=%v v=%v", out.USpan, out.VSpan)
	}
	if out.USpan.End > 4 || out.VSpan.End > 4 {
		t.Fatalf("extension ran past the documents' shared prefix into fully divergent text: u=%v v=%v", out.USpan, out.VSpan)
	}
	if out.USpan.End < 2 || out.VSpan.End < 2 {
		t.Fatalf("extension shrank below the seed: u=%v v=%v", out.USpan, out.VSpan)
	}
	if out.Score < ext.Threshold {
		t.Fatalf("final score %v fell below threshold %v after trimming", out.Score, ext.Threshold)
	}
}

func TestS4DedupOfSubMatches(t *testing.T) {
	uText := "侯王若能守之萬物將自化化而欲作吾將闐之以無名之樸"
	vText := "侯王若能守之萬物將自化化而欲作吾將鎮之以無名之樸"
	variants := map[rune]rune{'鎮': '闐'} // share one canonical phoneme
	tbl := identityTable(t, variants, uText, vText)
	ud := g2p.Tag("u", uText, tbl)
	vd := g2p.Tag("v", vText, tbl)

	seeds := []Match{
		{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 3, 6), VSpan: corpus.NewSpan(vd, 3, 6), Score: 1.0},
		{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 12, 15), VSpan: corpus.NewSpan(vd, 12, 15), Score: 1.0},
		{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 20, 23), VSpan: corpus.NewSpan(vd, 20, 23), Score: 1.0},
	}

	ext := LevenshteinPhoneticExtender{Threshold: 0.7, LenLimit: 100, Table: tbl}
	reduced := Reduce(seeds, ext)

	if len(reduced) != 1 {
		t.Fatalf("Reduce produced %d matches, want 1; got %+v", len(reduced), reduced)
	}
	want := utf8.RuneCountInString(uText)
	if reduced[0].USpan.Len() != want || reduced[0].VSpan.Len() != want {
		t.Fatalf("match does not span both full documents: %v", reduced[0])
	}
}

func TestReduceIdempotent(t *testing.T) {
	uText := "侯王若能守之萬物將自化化而欲作吾將闐之以無名之樸"
	vText := "侯王若能守之萬物將自化化而欲作吾將鎮之以無名之樸"
	variants := map[rune]rune{'鎮': '闐'}
	tbl := identityTable(t, variants, uText, vText)
	ud := g2p.Tag("u", uText, tbl)
	vd := g2p.Tag("v", vText, tbl)

	seeds := []Match{
		{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 3, 6), VSpan: corpus.NewSpan(vd, 3, 6), Score: 1.0},
		{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 20, 23), VSpan: corpus.NewSpan(vd, 20, 23), Score: 1.0},
	}
	ext := LevenshteinPhoneticExtender{Threshold: 0.7, LenLimit: 100, Table: tbl}

	once := Reduce(seeds, ext)
	twice := Reduce(once, ext)

	if len(once) != len(twice) {
		t.Fatalf("Reduce not idempotent: once=%d twice=%d", len(once), len(twice))
	}
	for i := range once {
		if once[i].USpan != twice[i].USpan || once[i].VSpan != twice[i].VSpan {
			t.Fatalf("Reduce not idempotent at %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

// TestS6Grouping exercises spec.md §8 S6's star case (one document
// anchors every other match at the same span) and additionally checks
// the non-star case spec.md §3's MatchGroup invariant must also hold
// for: three documents that pairwise match each other (a triangle) has
// no single endpoint touched by all three matches, so it must split
// across more than one group rather than violate closure.
func TestS6Grouping(t *testing.T) {
	text := "與朋友交言而有信"
	tbl := identityTable(t, nil, text)
	n := utf8.RuneCountInString(text)
	must := func(err error) {
		if err != nil {
			t.Fatalf("AddMatch: %v", err)
		}
	}
	aligner := SmithWatermanAligner{}

	checkClosure := func(t *testing.T, groups []Group) {
		t.Helper()
		for _, grp := range groups {
			anchor := endpointKey{grp.AnchorDoc, grp.AnchorStart, grp.AnchorEnd}
			for _, m := range grp.Members {
				u, v := endpointU(m), endpointV(m)
				if u != anchor && v != anchor {
					t.Fatalf("member %v has no endpoint matching anchor %v", m, anchor)
				}
			}
		}
	}

	t.Run("star", func(t *testing.T) {
		d1 := g2p.Tag("d1", text, tbl)
		d2 := g2p.Tag("d2", text, tbl)
		d3 := g2p.Tag("d3", text, tbl)

		g := NewGraph()
		g.AddDoc(d1)
		g.AddDoc(d2)
		g.AddDoc(d3)
		must(g.AddMatch(Match{UID: "d1", VID: "d2", USpan: corpus.NewSpan(d1, 0, n), VSpan: corpus.NewSpan(d2, 0, n), Score: 1.0}))
		must(g.AddMatch(Match{UID: "d1", VID: "d3", USpan: corpus.NewSpan(d1, 0, n), VSpan: corpus.NewSpan(d3, 0, n), Score: 1.0}))

		aligned := g.Align(context.Background(), aligner)
		groups := aligned.Group()
		if len(groups) != 1 {
			t.Fatalf("Group() produced %d groups, want 1", len(groups))
		}
		if len(groups[0].Members) != 2 {
			t.Fatalf("group has %d members, want 2", len(groups[0].Members))
		}
		checkClosure(t, groups)
	})

	t.Run("triangle", func(t *testing.T) {
		d1 := g2p.Tag("d1", text, tbl)
		d2 := g2p.Tag("d2", text, tbl)
		d3 := g2p.Tag("d3", text, tbl)

		g := NewGraph()
		g.AddDoc(d1)
		g.AddDoc(d2)
		g.AddDoc(d3)
		must(g.AddMatch(Match{UID: "d1", VID: "d2", USpan: corpus.NewSpan(d1, 0, n), VSpan: corpus.NewSpan(d2, 0, n), Score: 1.0}))
		must(g.AddMatch(Match{UID: "d1", VID: "d3", USpan: corpus.NewSpan(d1, 0, n), VSpan: corpus.NewSpan(d3, 0, n), Score: 1.0}))
		must(g.AddMatch(Match{UID: "d2", VID: "d3", USpan: corpus.NewSpan(d2, 0, n), VSpan: corpus.NewSpan(d3, 0, n), Score: 1.0}))

		aligned := g.Align(context.Background(), aligner)
		groups := aligned.Group()

		// no single endpoint touches all 3 matches, so closure forces a
		// split; every original match must still appear exactly once.
		checkClosure(t, groups)
		total := 0
		for _, grp := range groups {
			total += len(grp.Members)
		}
		if total != 3 {
			t.Fatalf("groups cover %d matches in total, want 3", total)
		}
		if len(groups) < 2 {
			t.Fatalf("Group() produced %d groups for a non-star triangle, want at least 2", len(groups))
		}
	})
}

func TestInvariantNoSelfMatches(t *testing.T) {
	text := "千室之邑"
	tbl := identityTable(t, nil, text)
	d := g2p.Tag("d1", text, tbl)
	ix := phoneindex.New()
	ix.Add(d, 4, tbl)
	matches := Seed(ix.Prune(1))
	for _, m := range matches {
		if m.UID == m.VID {
			t.Fatalf("self-match produced: %v", m)
		}
	}
	if len(matches) != 0 {
		t.Fatalf("expected no cross-document seeds from a single document, got %d", len(matches))
	}
}

func TestAlignmentTrimKeepsEqualLength(t *testing.T) {
	uText := "千室之邑。"
	vText := "千室之邑！"
	tbl := identityTable(t, nil, uText, vText)
	ud := g2p.Tag("u", uText, tbl)
	vd := g2p.Tag("v", vText, tbl)

	m := Match{UID: "u", VID: "v", USpan: corpus.NewSpan(ud, 0, 5), VSpan: corpus.NewSpan(vd, 0, 5), Score: 1.0}
	aligner := SmithWatermanAligner{}
	out := aligner.Align(m)

	if len(out.UAligned) != len(out.VAligned) {
		t.Fatalf("aligned lengths differ: %d vs %d", len(out.UAligned), len(out.VAligned))
	}
	for _, s := range out.UAligned {
		if s == "。" || s == "！" {
			t.Fatalf("trailing punctuation survived trimming: %v", out.UAligned)
		}
	}
}

func TestNgramWindowsShortDocument(t *testing.T) {
	tbl := identityTable(t, nil, "千")
	d := g2p.Tag("d1", "千", tbl)
	var count int
	for range ngram.Windows(d, 4) {
		count++
	}
	if count != 1 {
		t.Fatalf("Windows on a 1-token doc with n=4 yielded %d windows, want 1", count)
	}
}
