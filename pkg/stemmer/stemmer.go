// Package stemmer is the public API of the rule-based stemmer: load a
// lexicon, normalize raw text into tokens and reduce each token to its stem.
package stemmer

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/baditaflorin/l"
	"github.com/spf13/afero"

	"github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_azstemmer/internal/core/domain"
	"github.com/baditaflorin/go_azstemmer/internal/core/lexicon"
	"github.com/baditaflorin/go_azstemmer/internal/core/stem"
	"github.com/baditaflorin/go_azstemmer/internal/ports"
	"github.com/baditaflorin/go_azstemmer/internal/warmup"
)

type (
	// Lexicon is the immutable root and suffix dictionary.
	Lexicon = lexicon.Lexicon
	// LoadError reports which lexicon source failed to load.
	LoadError = lexicon.LoadError
	// Result is the explained outcome of stemming one token.
	Result = domain.Result
)

var (
	// ErrInvalidEncoding is wrapped by LoadError when a source is not UTF-8.
	ErrInvalidEncoding = lexicon.ErrInvalidEncoding
	// ErrNoLexicon is returned by New when no lexicon option was given.
	ErrNoLexicon = errors.New("stemmer: a lexicon is required, use WithLexicon")
)

// NewLexicon builds a lexicon from in-memory lists.
func NewLexicon(roots, suffixes []string) *Lexicon {
	return lexicon.New(roots, suffixes)
}

// LoadLexicon loads line-delimited root and suffix files from fs.
// A nil fs means the OS filesystem.
func LoadLexicon(fs afero.Fs, wordsPath, suffixesPath string) (*Lexicon, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return lexicon.LoadFiles(fs, wordsPath, suffixesPath)
}

// LoadLexiconFrom loads a lexicon from two line-delimited readers.
func LoadLexiconFrom(words, suffixes io.Reader) (*Lexicon, error) {
	return lexicon.Load(words, suffixes)
}

// LoadSnapshot loads a lexicon snapshot from fs. A nil fs means the OS filesystem.
func LoadSnapshot(fs afero.Fs, path string) (*Lexicon, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return lexicon.LoadSnapshotFile(fs, path)
}

// Stemmer normalizes text and stems tokens against a lexicon.
// It is safe for concurrent use.
type Stemmer struct {
	core       *stem.Stemmer
	lexicon    *Lexicon
	normalizer ports.Normalizer
	logger     ports.Logger
	warmOnce   sync.Once
}

// Option defines a functional option for configuring Stemmer.
type Option func(*stemmerConfig)

type stemmerConfig struct {
	Lexicon             *Lexicon
	Logger              ports.Logger
	Normalizer          ports.Normalizer
	Parallelism         int
	BatchSize           int
	RecursiveConversion bool
	WarmUp              bool
	WarmUpConfig        warmup.WarmupConfig
}

// WithLexicon sets the lexicon to stem against. Required.
func WithLexicon(lx *Lexicon) Option {
	return func(cfg *stemmerConfig) {
		cfg.Lexicon = lx
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *stemmerConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithSilentLogger discards all log output.
func WithSilentLogger() Option {
	return func(cfg *stemmerConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *stemmerConfig) {
		cfg.Normalizer = n
	}
}

// WithLegacyFilter selects the combining-dot character filter.
func WithLegacyFilter() Option {
	return func(cfg *stemmerConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.LegacyNormalizerType)
	}
}

// WithParallelism sets how many workers StemAll may use.
func WithParallelism(workers int) Option {
	return func(cfg *stemmerConfig) {
		cfg.Parallelism = workers
	}
}

// WithBatchSize sets how many tokens a worker stems per job.
func WithBatchSize(size int) Option {
	return func(cfg *stemmerConfig) {
		cfg.BatchSize = size
	}
}

// WithRecursiveConversion re-applies the alternation rules to every
// intermediate form during suffix stripping.
func WithRecursiveConversion(enable bool) Option {
	return func(cfg *stemmerConfig) {
		cfg.RecursiveConversion = enable
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *stemmerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *stemmerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Stemmer instance.
func New(opts ...Option) (*Stemmer, error) {
	defaultConfig := stem.DefaultConfig()

	config := &stemmerConfig{
		Parallelism:  defaultConfig.Parallelism,
		BatchSize:    defaultConfig.BatchSize,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Lexicon == nil {
		return nil, ErrNoLexicon
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	core, err := stem.NewStemmer(stem.Config{
		Parallelism:         config.Parallelism,
		BatchSize:           config.BatchSize,
		RecursiveConversion: config.RecursiveConversion,
	}, config.Lexicon, config.Logger)
	if err != nil {
		return nil, err
	}

	s := &Stemmer{
		core:       core,
		lexicon:    config.Lexicon,
		normalizer: config.Normalizer,
		logger:     config.Logger,
	}

	config.Logger.Debug("Stemmer initialized",
		"roots", config.Lexicon.RootCount(),
		"suffixes", config.Lexicon.SuffixCount(),
		"parallelism", config.Parallelism,
	)

	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return s, nil
}

// Lexicon returns the lexicon the stemmer works against.
func (s *Stemmer) Lexicon() *Lexicon {
	return s.lexicon
}

// Normalize turns raw text into tokens.
func (s *Stemmer) Normalize(text string) []string {
	return s.normalizer.Normalize(text)
}

// Convert applies the consonant alternation rules to a single word.
func (s *Stemmer) Convert(word string) string {
	return s.core.Convert(word)
}

// Stem returns the stem of a single token.
func (s *Stemmer) Stem(word string) string {
	return s.core.Stem(word)
}

// Analyze stems a token and reports the candidates considered.
func (s *Stemmer) Analyze(word string) Result {
	return s.core.Analyze(word)
}

// AnalyzeContext is Analyze that gives up with ctx.Err() when ctx is done.
func (s *Stemmer) AnalyzeContext(ctx context.Context, word string) (Result, error) {
	return s.core.AnalyzeContext(ctx, word)
}

// StemAll stems tokens, one stem per token in input order.
func (s *Stemmer) StemAll(ctx context.Context, tokens []string) ([]string, error) {
	return s.core.StemAll(ctx, tokens)
}

// StemText normalizes text and stems the resulting tokens.
func (s *Stemmer) StemText(ctx context.Context, text string) ([]string, error) {
	return s.core.StemAll(ctx, s.normalizer.Normalize(text))
}

// WarmUp performs system warm-up to optimize performance.
// Only the first call does any work.
func (s *Stemmer) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	ran := false
	s.warmOnce.Do(func() {
		ran = true

		warmupMgr := warmup.NewManager(s.logger, config)
		warmupMgr.RegisterStemmer(s.core)
		warmupMgr.RegisterNormalizer(s.normalizer)

		warmupMgr.WarmUp(ctx)
	})

	if !ran {
		s.logger.Debug("System already warmed up, skipping")
	}
}

// Close releases the logger.
func (s *Stemmer) Close() error {
	return s.logger.Close()
}
