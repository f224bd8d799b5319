package phoneindex

import (
	"strings"
	"testing"

	"github.com/temporal-IPA/dphon/pkg/g2p"
)

const tableJSON = `{
	"千": [["tsʰ", "ian", "a", "b"]],
	"室": [["ɕ", "it", "a", "b"]],
	"之": [["tɕ", "i", "a", "b"]],
	"邑": [["ʔ", "ip", "a", "b"]]
}`

func loadTable(t *testing.T) *g2p.Table {
	t.Helper()
	tbl, err := g2p.Load(strings.NewReader(tableJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func TestAddAndPrune(t *testing.T) {
	tbl := loadTable(t)
	d1 := g2p.Tag("d1", "千室之邑", tbl)
	d2 := g2p.Tag("d2", "千室之邑", tbl)

	ix := New()
	ix.Add(d1, 4, tbl)
	ix.Add(d2, 4, tbl)

	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (both docs share the only 4-gram)", ix.Len())
	}

	count := 0
	for _, spans := range ix.Prune(2) {
		count++
		if len(spans) != 2 {
			t.Fatalf("bucket size = %d, want 2", len(spans))
		}
	}
	if count != 1 {
		t.Fatalf("Prune(2) yielded %d buckets, want 1", count)
	}
}

func TestAddSkipsOOVWindows(t *testing.T) {
	tbl := loadTable(t)
	doc := g2p.Tag("d1", "千室ZZ", tbl)
	ix := New()
	ix.Add(doc, 4, tbl)
	if ix.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 (only window contains OOV tokens)", ix.Len())
	}
}
