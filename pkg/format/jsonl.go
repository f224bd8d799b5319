package format

import (
	"io"

	"github.com/bytedance/sonic"
)

type jsonlRecord struct {
	UID                string  `json:"u_id"`
	VID                string  `json:"v_id"`
	UText              string  `json:"u_text"`
	VText              string  `json:"v_text"`
	UTextAligned       string  `json:"u_text_aligned"`
	VTextAligned       string  `json:"v_text_aligned"`
	UContextBefore     string  `json:"u_context_before"`
	UContextAfter      string  `json:"u_context_after"`
	VContextBefore     string  `json:"v_context_before"`
	VContextAfter      string  `json:"v_context_after"`
	UStart             int     `json:"u_start"`
	UEnd               int     `json:"u_end"`
	VStart             int     `json:"v_start"`
	VEnd               int     `json:"v_end"`
	PhoneticSimilarity float64 `json:"phonetic_similarity"`
	GraphicSimilarity  float64 `json:"graphic_similarity"`
}

// WriteJSONL writes one JSON object per line, fields per spec.md §6,
// encoded with sonic for consistency with the corpusio decode path.
func WriteJSONL(w io.Writer, records []Record) error {
	for _, r := range records {
		line, err := sonic.Marshal(jsonlRecord{
			UID: r.UID, VID: r.VID,
			UText: r.UText, VText: r.VText,
			UTextAligned: r.UTextAligned, VTextAligned: r.VTextAligned,
			UContextBefore: r.UContextBefore, UContextAfter: r.UContextAfter,
			VContextBefore: r.VContextBefore, VContextAfter: r.VContextAfter,
			UStart: r.UStart, UEnd: r.UEnd, VStart: r.VStart, VEnd: r.VEnd,
			PhoneticSimilarity: r.PhoneticSimilarity, GraphicSimilarity: r.GraphicSimilarity,
		})
		if err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}
