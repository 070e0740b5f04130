package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/l"

	stdlogger "github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/adapters/source"
	"github.com/baditaflorin/go_azstemmer/internal/config"
	"github.com/baditaflorin/go_azstemmer/pkg/stemmer"
)

// Command-line flags
var (
	configPath    string
	wordsPath     string
	suffixesPath  string
	snapshotPath  string
	inputPath     string
	outputFormat  string
	explain       bool
	writeSnapshot string
	parallelism   int
	legacyFilter  bool
	verbose       bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")

	// Lexicon inputs
	flag.StringVar(&wordsPath, "words", "", "Path to the root word list (overrides config)")
	flag.StringVar(&suffixesPath, "suffixes", "", "Path to the suffix list (overrides config)")
	flag.StringVar(&snapshotPath, "snapshot", "", "Path to a lexicon snapshot (overrides config)")

	// Text input
	flag.StringVar(&inputPath, "input", "-", "Path to the input text, '-' for stdin")

	// Output options
	flag.StringVar(&outputFormat, "output", "text", "Output format: 'text', 'json' or 'yaml'")
	flag.BoolVar(&explain, "explain", false, "Report candidates for every token")
	flag.StringVar(&writeSnapshot, "write-snapshot", "", "Write the loaded lexicon as a snapshot to this path and exit")

	// Processing options
	flag.IntVar(&parallelism, "parallel", 0, "Number of stemming workers (0 = config)")
	flag.BoolVar(&legacyFilter, "legacy-filter", false, "Use the combining-dot character filter")
	flag.BoolVar(&verbose, "verbose", false, "Log to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -words=words.txt -suffixes=suffix.txt -input=test1.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  echo \"Kitablar masadadır\" | %s -explain -output=yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -words=words.txt -suffixes=suffix.txt -write-snapshot=lexicon.snap\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := createLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Close()

	src := source.NewFileSource(nil, source.WithLogger(stdlogger.FromExisting(logger)))

	lx, err := src.Lexicon(cfg.Lexicon.SnapshotPath, cfg.Lexicon.WordsPath, cfg.Lexicon.SuffixesPath)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}
	logger.Info("Lexicon loaded", "roots", lx.RootCount(), "suffixes", lx.SuffixCount())

	if writeSnapshot != "" {
		if err := src.SaveSnapshot(lx, writeSnapshot); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote snapshot with %d roots and %d suffixes to %s\n",
			lx.RootCount(), lx.SuffixCount(), writeSnapshot)
		return nil
	}

	opts := []stemmer.Option{
		stemmer.WithLexicon(lx),
		stemmer.WithLogger(logger),
		stemmer.WithParallelism(cfg.Stemmer.Parallelism),
		stemmer.WithBatchSize(cfg.Stemmer.BatchSize),
		stemmer.WithRecursiveConversion(cfg.Stemmer.RecursiveConversion),
	}
	if cfg.Stemmer.LegacyFilter {
		opts = append(opts, stemmer.WithLegacyFilter())
	}

	s, err := stemmer.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create stemmer: %w", err)
	}

	text, err := readInput(src, stdin)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	tokens := s.Normalize(text)
	if explain {
		results := make([]stemmer.Result, len(tokens))
		for i, tok := range tokens {
			results[i] = s.Analyze(tok)
		}
		return writeResults(stdout, results)
	}

	stems, err := s.StemAll(ctx, tokens)
	if err != nil {
		return fmt.Errorf("failed to stem input: %w", err)
	}
	return writeStems(stdout, stems)
}

// loadConfig reads the config file or environment and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	if wordsPath != "" {
		cfg.Lexicon.WordsPath = wordsPath
	}
	if suffixesPath != "" {
		cfg.Lexicon.SuffixesPath = suffixesPath
	}
	if snapshotPath != "" {
		cfg.Lexicon.SnapshotPath = snapshotPath
	}
	if parallelism > 0 {
		cfg.Stemmer.Parallelism = parallelism
	}
	if legacyFilter {
		cfg.Stemmer.LegacyFilter = true
	}

	switch outputFormat {
	case "text", "json", "yaml":
	default:
		return cfg, fmt.Errorf("unknown output format %q", outputFormat)
	}

	return cfg, cfg.Validate()
}

func readInput(src *source.FileSource, stdin io.Reader) (string, error) {
	if inputPath == "" || inputPath == "-" {
		return source.ReadText(stdin)
	}
	return src.ReadText(inputPath)
}

func writeStems(w io.Writer, stems []string) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"stems": stems})
	case "yaml":
		return writeYAML(w, map[string][]string{"stems": stems})
	default:
		_, err := fmt.Fprintln(w, strings.Join(stems, " "))
		return err
	}
}

func writeResults(w io.Writer, results []stemmer.Result) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		return writeYAML(w, results)
	default:
		for _, r := range results {
			status := "matched"
			if !r.Matched {
				status = "fallback"
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t[%s]\n",
				r.Token, r.Stem, status, strings.Join(r.Candidates, ", ")); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// createLogger logs to stderr when verbose and discards output otherwise,
// so stdout carries only results.
func createLogger(verbose bool) (l.Logger, error) {
	var output io.Writer = io.Discard
	if verbose {
		output = os.Stderr
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  false,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
