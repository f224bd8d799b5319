package format

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"u_id", "v_id", "u_text", "v_text", "u_text_aligned", "v_text_aligned",
	"u_context_before", "u_context_after", "v_context_before", "v_context_after",
	"u_start", "u_end", "v_start", "v_end",
	"phonetic_similarity", "graphic_similarity",
}

// WriteCSV writes the flat tabular view spec.md §6 describes.
// encoding/csv is stdlib: no third-party CSV library is exercised
// anywhere in the retrieved corpus, so this writer stays on the standard
// library (see DESIGN.md).
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.UID, r.VID, r.UText, r.VText, r.UTextAligned, r.VTextAligned,
			r.UContextBefore, r.UContextAfter, r.VContextBefore, r.VContextAfter,
			strconv.Itoa(r.UStart), strconv.Itoa(r.UEnd), strconv.Itoa(r.VStart), strconv.Itoa(r.VEnd),
			strconv.FormatFloat(r.PhoneticSimilarity, 'f', -1, 64),
			strconv.FormatFloat(r.GraphicSimilarity, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
