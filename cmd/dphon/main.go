// Command dphon discovers phonetic textual reuse across a corpus of Old
// Chinese documents.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/temporal-IPA/dphon/internal/config"
	"github.com/temporal-IPA/dphon/pkg/corpus"
	"github.com/temporal-IPA/dphon/pkg/corpusio"
	"github.com/temporal-IPA/dphon/pkg/format"
	"github.com/temporal-IPA/dphon/pkg/g2p"
	"github.com/temporal-IPA/dphon/pkg/phoneindex"
	"github.com/temporal-IPA/dphon/pkg/reuse"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Default()
	var tablePath string

	root := &cobra.Command{
		Use:   "dphon <path>...",
		Short: "discover phonetic textual reuse across Old Chinese documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg.Paths = positional
			return execute(cfg, tablePath)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.Flags()
	flags.IntVarP(&cfg.NgramOrder, "ngram-order", "n", cfg.NgramOrder, "n-gram order")
	flags.Float64VarP(&cfg.Threshold, "threshold", "k", cfg.Threshold, "extension threshold")
	flags.IntVarP(&cfg.LenLimit, "length-limit", "l", cfg.LenLimit, "extension length limit, in phoneme characters of the scored window")
	flags.IntVarP(&cfg.ContextTokens, "context", "c", cfg.ContextTokens, "context tokens displayed around each match")
	flags.BoolVarP(&cfg.AllMatches, "all", "a", cfg.AllMatches, "include matches without graphic variation")
	flags.IntVar(&cfg.MinLength, "min-length", cfg.MinLength, "minimum match length")
	flags.IntVar(&cfg.MaxLength, "max-length", cfg.MaxLength, "maximum match length")
	flags.Float64Var(&cfg.MinGraphicSimilarity, "min-graphic-similarity", cfg.MinGraphicSimilarity, "minimum surface similarity")
	flags.Float64Var(&cfg.MaxGraphicSimilarity, "max-graphic-similarity", cfg.MaxGraphicSimilarity, "maximum surface similarity")
	flags.Float64Var(&cfg.MinPhoneticSimilarity, "min-phonetic-similarity", cfg.MinPhoneticSimilarity, "minimum normalized alignment score")
	flags.Float64Var(&cfg.MaxPhoneticSimilarity, "max-phonetic-similarity", cfg.MaxPhoneticSimilarity, "maximum normalized alignment score")
	flags.BoolVarP(&cfg.Group, "group", "g", cfg.Group, "group output by shared anchor")
	flags.StringVarP(&cfg.InputFormat, "input-format", "i", cfg.InputFormat, "force input format (txt or jsonl); default detects by file extension")
	flags.StringVarP(&cfg.OutputFormat, "output-format", "o", cfg.OutputFormat, "output format: txt, jsonl, csv, or html")
	flags.StringVar(&tablePath, "table", "", "path to the G2P table JSON file")
	flags.StringVar(&cfg.OutputPath, "out", "", "output file path (stdout if empty)")

	var veryVerbose bool
	flags.CountVarP(&cfg.Verbosity, "verbose", "v", "increase logging verbosity (-vv for maximum)")
	flags.BoolVar(&veryVerbose, "vv", false, "maximum logging verbosity")

	root.SetArgs(args)

	cobra.OnInitialize(func() {
		setupLogging(cfg.Verbosity >= 1, veryVerbose || cfg.Verbosity >= 2)
	})

	if err := root.Execute(); err != nil {
		if err == config.ErrNoValidInputs {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}

func setupLogging(verbose, veryVerbose bool) {
	level := zerolog.InfoLevel
	switch {
	case veryVerbose:
		level = zerolog.TraceLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := os.Stderr
	var writer zerolog.ConsoleWriter
	if isatty.IsTerminal(out.Fd()) {
		writer = zerolog.ConsoleWriter{Out: colorable.NewColorable(out), TimeFormat: time.Kitchen}
	} else {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

func execute(cfg config.Config, tablePath string) error {
	if tablePath == "" {
		return fmt.Errorf("--table is required")
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return err
	}

	tableFile, err := os.Open(tablePath)
	if err != nil {
		return fmt.Errorf("opening G2P table: %w", err)
	}
	defer tableFile.Close()
	table, err := g2p.Load(tableFile)
	if err != nil {
		return fmt.Errorf("loading G2P table: %w", err)
	}

	raws := corpusio.LoadAll(paths, cfg.InputFormat)
	if len(raws) == 0 {
		return config.ErrNoValidInputs
	}

	graph := reuse.NewGraph()
	docs := make(map[string]*corpus.Document, len(raws))
	var ids []string
	for _, raw := range raws {
		doc := g2p.Tag(raw.ID, raw.Text, table)
		if _, dup := docs[doc.ID]; !dup {
			ids = append(ids, doc.ID)
		}
		docs[doc.ID] = doc
		graph.AddDoc(doc)
	}
	log.Info().Int("documents", len(docs)).Msg("tagged corpus")

	index := phoneindex.New()
	for _, id := range ids {
		index.Add(docs[id], cfg.NgramOrder, table)
	}
	log.Info().Int("keys", index.Len()).Msg("indexed n-grams")

	seeds := reuse.Seed(index.Prune(2))
	log.Info().Int("seeds", len(seeds)).Msg("generated seeds")

	if !cfg.AllMatches {
		variantOnly := reuse.VariantFilter(table)
		filtered := seeds[:0]
		for _, s := range seeds {
			if variantOnly(s) {
				filtered = append(filtered, s)
			}
		}
		seeds = filtered
	}

	for _, s := range seeds {
		if err := graph.AddMatch(s); err != nil {
			return err
		}
	}

	ctx := context.Background()
	extender := reuse.LevenshteinPhoneticExtender{Threshold: cfg.Threshold, LenLimit: cfg.LenLimit, Table: table}
	graph = graph.Extend(ctx, extender)

	aligner := reuse.SmithWatermanAligner{}
	graph = graph.Align(ctx, aligner)

	graph = graph.Filter(func(m reuse.Match) bool {
		length := m.Len()
		if length < cfg.MinLength || length > cfg.MaxLength {
			return false
		}
		if m.Score < cfg.MinPhoneticSimilarity || m.Score > cfg.MaxPhoneticSimilarity {
			return false
		}
		graphic := reuse.GraphicSimilarity(m)
		if graphic < cfg.MinGraphicSimilarity || graphic > cfg.MaxGraphicSimilarity {
			return false
		}
		return true
	})

	var buf bytes.Buffer
	if cfg.Group {
		groups := graph.Group()
		if err := writeGroups(&buf, cfg.OutputFormat, groups, cfg.ContextTokens); err != nil {
			return err
		}
	} else {
		records := format.FromMatches(graph.Matches(), cfg.ContextTokens)
		if err := writeRecords(&buf, cfg.OutputFormat, records); err != nil {
			return err
		}
	}

	dest := os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	}
	_, err = dest.Write(buf.Bytes())
	return err
}

func writeRecords(buf *bytes.Buffer, outputFormat string, records []format.Record) error {
	switch outputFormat {
	case "txt":
		return format.WriteTxt(buf, records)
	case "jsonl":
		return format.WriteJSONL(buf, records)
	case "csv":
		return format.WriteCSV(buf, records)
	case "html":
		return format.WriteHTML(buf, records)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func writeGroups(buf *bytes.Buffer, outputFormat string, groups []reuse.Group, context int) error {
	switch outputFormat {
	case "txt":
		return format.WriteGroupsTxt(buf, groups, context)
	case "jsonl":
		return format.WriteJSONL(buf, format.FromGroups(groups, context))
	case "csv":
		return format.WriteCSV(buf, format.FromGroups(groups, context))
	case "html":
		return format.WriteHTML(buf, format.FromGroups(groups, context))
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
