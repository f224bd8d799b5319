// Package config holds the CLI flag struct, its defaults, and the input
// validation spec.md §6/§7 describe.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrNoValidInputs is returned when every path argument failed to
// resolve to an existing non-directory path; cmd/dphon maps this to exit
// code 1.
var ErrNoValidInputs = errors.New("config: no valid input files found")

// Config is the fully-parsed CLI configuration.
type Config struct {
	NgramOrder    int
	Threshold     float64
	LenLimit      int
	ContextTokens int
	AllMatches    bool

	MinLength, MaxLength                         int
	MinGraphicSimilarity, MaxGraphicSimilarity   float64
	MinPhoneticSimilarity, MaxPhoneticSimilarity float64

	Group bool

	InputFormat  string
	OutputFormat string
	OutputPath   string

	Verbosity int

	Paths []string
}

// Default returns the flag defaults from spec.md §6.
func Default() Config {
	return Config{
		NgramOrder:    4,
		Threshold:     0.7,
		LenLimit:      50,
		ContextTokens: 4,
		AllMatches:    false,

		MinLength: 8,
		MaxLength: 64,

		MinGraphicSimilarity: 0,
		MaxGraphicSimilarity: 0.9,

		MinPhoneticSimilarity: 0.7,
		MaxPhoneticSimilarity: 1.0,

		InputFormat:  "",
		OutputFormat: "txt",
	}
}

// ResolvePaths expands glob patterns in c.Paths and keeps only entries
// that exist and are not directories; missing paths and directories are
// logged and dropped. Readability and file extension are not checked
// here. ErrNoValidInputs is returned if nothing survives.
func (c Config) ResolvePaths() ([]string, error) {
	var out []string
	for _, pattern := range c.Paths {
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				log.Warn().Str("path", m).Err(err).Msg("config: input does not exist, skipping")
				continue
			}
			if info.IsDir() {
				log.Warn().Str("path", m).Msg("config: input is a directory, skipping")
				continue
			}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoValidInputs
	}
	return out, nil
}
