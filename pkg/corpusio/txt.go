package corpusio

import (
	"os"
	"path/filepath"
	"strings"
)

// TextLoader reads one plaintext document per file; the filename stem
// is the document id. All ASCII whitespace is stripped; every other
// character is preserved, matching original_source/dphon/io.py's
// PlaintextCorpusLoader / OC_TEXT translation table.
type TextLoader struct{}

func (TextLoader) Kind() string { return "txt" }

func (TextLoader) Accepts(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

func (TextLoader) Load(path string) ([]RawDoc, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return []RawDoc{{ID: stem, Text: stripASCIIWhitespace(string(raw))}}, nil
}

func stripASCIIWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
