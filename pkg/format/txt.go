package format

import (
	"fmt"
	"io"

	"github.com/temporal-IPA/dphon/pkg/reuse"
)

// WriteTxt writes one match per record: document ids, bounds, the aligned
// surface text (with gap symbols for alignment gaps) between its context
// tokens, and the phonetic and graphic similarity scores. No phonemic
// transcription is written.
func WriteTxt(w io.Writer, records []Record) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w,
			"%s[%d:%d] <-> %s[%d:%d]\n  u: %s⟦%s⟧%s\n  v: %s⟦%s⟧%s\n  phonetic=%.3f graphic=%.3f\n",
			r.UID, r.UStart, r.UEnd,
			r.VID, r.VStart, r.VEnd,
			r.UContextBefore, r.UTextAligned, r.UContextAfter,
			r.VContextBefore, r.VTextAligned, r.VContextAfter,
			r.PhoneticSimilarity, r.GraphicSimilarity,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteGroupsTxt writes one block per group: the anchor identification
// followed by every member indented beneath it.
func WriteGroupsTxt(w io.Writer, groups []reuse.Group, context int) error {
	for i, g := range groups {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "anchor: %s[%d:%d] (%d members)\n", g.AnchorDoc, g.AnchorStart, g.AnchorEnd, len(g.Members)); err != nil {
			return err
		}
		for _, r := range FromMatches(g.Members, context) {
			_, err := fmt.Fprintf(w, "  %s⟦%s⟧%s[%d:%d] <-> %s⟦%s⟧%s[%d:%d] phonetic=%.3f graphic=%.3f\n",
				r.UContextBefore, r.UTextAligned, r.UContextAfter, r.UStart, r.UEnd,
				r.VContextBefore, r.VTextAligned, r.VContextAfter, r.VStart, r.VEnd,
				r.PhoneticSimilarity, r.GraphicSimilarity)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
