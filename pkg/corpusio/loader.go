// Package corpusio loads corpus documents from disk. The Loader registry
// is adapted from the teacher's pluggable phono.Loader interface (sniffed
// by content, dispatched to the first match), retargeted here to
// dispatch by file extension across plaintext and JSON-Lines corpora.
package corpusio

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrNoLoader is returned by Load when no registered Loader claims a
// path's extension.
var ErrNoLoader = errors.New("corpusio: no loader registered for this extension")

// RawDoc is an untagged document as read from disk: a surface text plus
// whatever pass-through metadata the loader captured (jsonl keys other
// than id/text).
type RawDoc struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Loader reads zero or more RawDocs from a single path.
type Loader interface {
	// Kind names the loader, used in diagnostics.
	Kind() string
	// Accepts reports whether this loader claims the given path,
	// typically by extension.
	Accepts(path string) bool
	// Load reads every document out of path.
	Load(path string) ([]RawDoc, error)
}

var builtinLoaders = []Loader{
	TextLoader{},
	JSONLinesLoader{},
}

// Load dispatches path to a Loader. When format is empty, the first
// registered Loader that Accepts path by extension is used. Otherwise
// format names a Loader's Kind directly (the -i/--input-format flag,
// spec.md §6's "input format in {txt, jsonl}") and that Loader alone is
// used regardless of extension, letting a caller force jsonl parsing of
// a file that doesn't end in .jsonl or vice versa. A path with no
// matching loader is a skip-with-warning input error per spec.md §7,
// surfaced to the caller as ErrNoLoader so cmd/dphon can count it
// toward "zero valid inputs".
func Load(path string, format string) ([]RawDoc, error) {
	if format != "" {
		for _, l := range builtinLoaders {
			if l.Kind() == format {
				return l.Load(path)
			}
		}
		log.Warn().Str("path", path).Str("format", format).Msg("corpusio: no loader registered for the requested input format, skipping")
		return nil, ErrNoLoader
	}
	for _, l := range builtinLoaders {
		if l.Accepts(path) {
			return l.Load(path)
		}
	}
	log.Warn().Str("path", path).Msg("corpusio: no loader accepts this file, skipping")
	return nil, ErrNoLoader
}

// LoadAll loads every path, collecting valid documents and skipping
// invalid ones with a warning (logged by Load for a path no loader
// claims, and here for a loader's own read or parse error). It never
// returns an error itself; callers check whether the result is empty.
func LoadAll(paths []string, format string) []RawDoc {
	var out []RawDoc
	for _, p := range paths {
		docs, err := Load(p, format)
		if err != nil {
			if err != ErrNoLoader {
				log.Warn().Str("path", p).Err(err).Msg("corpusio: failed to load input, skipping")
			}
			continue
		}
		out = append(out, docs...)
	}
	return out
}
