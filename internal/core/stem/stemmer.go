// Package stem implements recursive suffix stripping and best-stem selection.
package stem

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_azstemmer/internal/core/domain"
	"github.com/baditaflorin/go_azstemmer/internal/core/lexicon"
	"github.com/baditaflorin/go_azstemmer/internal/core/morph"
	"github.com/baditaflorin/go_azstemmer/internal/pool"
	"github.com/baditaflorin/go_azstemmer/internal/ports"
)

const (
	// DefaultBatchSize defines how many tokens a worker stems per job
	DefaultBatchSize = 256

	// CollectCheckFrequency defines how often candidate collection checks for cancellation
	CollectCheckFrequency = 256 // expanded forms

	initialCandidates = 8
)

// ErrNilLexicon is returned when a stemmer is built without a lexicon.
var ErrNilLexicon = errors.New("lexicon is required")

// Config holds stemmer configuration.
type Config struct {
	// Parallelism is the number of workers StemAll may use. 0 and 1 mean sequential.
	Parallelism int
	// BatchSize is the number of tokens handed to a worker at a time.
	BatchSize int
	// RecursiveConversion re-applies the converter to every intermediate form.
	RecursiveConversion bool
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Parallelism: 1,
		BatchSize:   DefaultBatchSize,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Parallelism < 0 {
		return errors.New("parallelism must not be negative")
	}
	if c.BatchSize < 0 {
		return errors.New("batch size must not be negative")
	}
	return nil
}

// Stemmer reduces tokens to the longest lexicon root reachable by suffix removal.
// It holds no per-call state and is safe for concurrent use.
type Stemmer struct {
	config     Config
	lexicon    *lexicon.Lexicon
	converter  *morph.Converter
	logger     ports.Logger
	candidates *pool.CandidatePool
	visited    *pool.SetPool
}

// NewStemmer creates a new stemmer over lx.
func NewStemmer(config Config, lx *lexicon.Lexicon, logger ports.Logger) (*Stemmer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if lx == nil {
		return nil, ErrNilLexicon
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = discardLogger{}
	}

	s := &Stemmer{
		config:     config,
		lexicon:    lx,
		logger:     logger,
		candidates: pool.NewCandidatePool(initialCandidates),
		visited:    pool.NewSetPool(),
	}
	s.converter = morph.NewConverter(s)
	return s, nil
}

// Convert applies the alternation rules to word.
func (s *Stemmer) Convert(word string) string {
	return s.converter.Convert(word)
}

// StripOne removes the longest suffix whose remainder is a root.
// Only one suffix is removed; word is returned unchanged when none qualifies.
func (s *Stemmer) StripOne(word string) string {
	out := word
	s.lexicon.EachSuffix(func(suffix string) bool {
		if !strings.HasSuffix(word, suffix) {
			return true
		}
		rest := word[:strings.LastIndex(word, suffix)]
		if s.lexicon.Contains(rest) {
			out = rest
			return false
		}
		return true
	})
	return out
}

// Collect appends to dst every form reachable from word by removing zero or
// more suffixes that is either a root or all digits. Every removal path is
// explored; forms are appended in depth-first pre-order with suffixes tried
// longest first. A form reached again by another path is neither appended
// nor expanded a second time.
func (s *Stemmer) Collect(word string, dst []string) []string {
	dst, _ = s.collect(context.Background(), word, dst)
	return dst
}

// collect is Collect with cancellation checked every CollectCheckFrequency expansions.
func (s *Stemmer) collect(ctx context.Context, word string, dst []string) ([]string, error) {
	visited := s.visited.Get()
	defer s.visited.Put(visited)

	stack := []string{word}
	var children []string

	for steps := 0; len(stack) > 0; steps++ {
		if steps%CollectCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				return dst, err
			}
		}

		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[w]; seen {
			continue
		}
		visited[w] = struct{}{}

		if isNumeric(w) || s.lexicon.Contains(w) {
			dst = append(dst, w)
		}

		children = children[:0]
		s.lexicon.EachSuffix(func(suffix string) bool {
			if strings.HasSuffix(w, suffix) {
				child := w[:strings.LastIndex(w, suffix)]
				if s.config.RecursiveConversion {
					child = s.converter.Convert(child)
				}
				children = append(children, child)
			}
			return true
		})

		// push in reverse so the longest-suffix branch is visited first
		for i := len(children) - 1; i >= 0; i-- {
			if _, seen := visited[children[i]]; !seen {
				stack = append(stack, children[i])
			}
		}
	}
	return dst, nil
}

// Stem returns the best stem for word.
func (s *Stemmer) Stem(word string) string {
	stem, _ := s.stem(context.Background(), word)
	return stem
}

func (s *Stemmer) stem(ctx context.Context, word string) (string, error) {
	converted := s.converter.Convert(word)

	buf := s.candidates.Get()
	defer s.candidates.Put(buf)

	var err error
	*buf, err = s.collect(ctx, converted, *buf)
	if err != nil {
		return "", err
	}

	best, ok := selectLongest(*buf)
	if !ok {
		return converted, nil
	}
	return best, nil
}

// Analyze stems word and reports every distinct candidate that was considered.
func (s *Stemmer) Analyze(word string) domain.Result {
	res, _ := s.AnalyzeContext(context.Background(), word)
	return res
}

// AnalyzeContext is Analyze that gives up when ctx is done.
func (s *Stemmer) AnalyzeContext(ctx context.Context, word string) (domain.Result, error) {
	converted := s.converter.Convert(word)
	candidates, err := s.collect(ctx, converted, nil)
	if err != nil {
		return domain.Result{}, err
	}

	best, ok := selectLongest(candidates)
	if !ok {
		best = converted
	}
	if candidates == nil {
		candidates = []string{}
	}

	return domain.Result{
		Token:      word,
		Converted:  converted,
		Stem:       best,
		Candidates: candidates,
		Matched:    ok,
	}, nil
}

// StemAll stems every token and returns the stems in input order.
// Cancellation is observed between tokens and inside long tokens.
func (s *Stemmer) StemAll(ctx context.Context, tokens []string) ([]string, error) {
	out := make([]string, len(tokens))
	if len(tokens) == 0 {
		return out, nil
	}

	workers := s.config.Parallelism
	if workers > 1 && len(tokens) > s.config.BatchSize {
		s.logger.Debug("Stemming tokens in parallel",
			"tokens", len(tokens),
			"workers", workers,
			"batch_size", s.config.BatchSize,
		)
		return s.stemAllParallel(ctx, tokens, out, workers)
	}

	s.logger.Debug("Stemming tokens", "tokens", len(tokens))
	for i, tok := range tokens {
		stem, err := s.stem(ctx, tok)
		if err != nil {
			s.logger.Warn("Stemming cancelled by context", "error", err, "done", i)
			return nil, err
		}
		out[i] = stem
	}
	return out, nil
}

// selectLongest returns the first candidate with the greatest character count.
func selectLongest(candidates []string) (string, bool) {
	best, bestLen, found := "", 0, false
	for _, c := range candidates {
		if n := utf8.RuneCountInString(c); n > bestLen {
			best, bestLen, found = c, n, true
		}
	}
	return best, found
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}
func (discardLogger) Close() error                 { return nil }
