package corpusio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTextLoaderStripsWhitespaceAndUsesStem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ode-1.txt")
	if err := os.WriteFile(path, []byte("千室 之邑\n百乘\t之家"), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	if docs[0].ID != "ode-1" {
		t.Fatalf("ID = %q, want ode-1", docs[0].ID)
	}
	if docs[0].Text != "千室之邑百乘之家" {
		t.Fatalf("Text = %q, want whitespace stripped", docs[0].Text)
	}
}

func TestJSONLinesLoaderParsesAndKeepsMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.jsonl")
	content := `{"id":"a","text":"千室之邑","title":"Analects"}
{"id":"b","text":"百乘之家"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].ID != "a" || docs[0].Text != "千室之邑" {
		t.Fatalf("unexpected first doc: %+v", docs[0])
	}
	if docs[0].Metadata["title"] != "Analects" {
		t.Fatalf("metadata not preserved: %+v", docs[0].Metadata)
	}
	if docs[1].Metadata != nil {
		t.Fatalf("expected no extra metadata for second doc, got %+v", docs[1].Metadata)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.xml")
	if err := os.WriteFile(path, []byte("<doc/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, ""); err != ErrNoLoader {
		t.Fatalf("err = %v, want ErrNoLoader", err)
	}
}

func TestLoadForcedFormatOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.dat")
	if err := os.WriteFile(path, []byte(`{"id":"a","text":"千室之邑"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err := Load(path, "jsonl")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "a" {
		t.Fatalf("forced jsonl load = %+v, want one doc with id a", docs)
	}
}

func TestLoadForcedFormatUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ode-1.txt")
	if err := os.WriteFile(path, []byte("千室"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, "xml"); err != ErrNoLoader {
		t.Fatalf("err = %v, want ErrNoLoader", err)
	}
}
