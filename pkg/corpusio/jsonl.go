package corpusio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// JSONLinesLoader reads one JSON object per line, each with at minimum
// id and text string fields; other keys pass through as metadata. Uses
// sonic for the line-oriented high-volume decode path rather than
// encoding/json, grounded on czcorpus-vert-tagextract's use of sonic for
// JSON-heavy corpus loading.
type JSONLinesLoader struct{}

func (JSONLinesLoader) Kind() string { return "jsonl" }

func (JSONLinesLoader) Accepts(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}

func (JSONLinesLoader) Load(path string) ([]RawDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []RawDoc
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record map[string]any
		if err := sonic.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		id, _ := record["id"].(string)
		text, _ := record["text"].(string)
		if id == "" || text == "" {
			return nil, fmt.Errorf("%s:%d: missing required id/text field", path, lineNo)
		}
		delete(record, "id")
		delete(record, "text")
		if len(record) == 0 {
			record = nil
		}
		out = append(out, RawDoc{ID: id, Text: text, Metadata: record})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
