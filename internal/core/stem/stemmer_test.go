package stem

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_azstemmer/internal/core/lexicon"
)

func newTestStemmer(t *testing.T, roots, suffixes []string, cfg Config) *Stemmer {
	t.Helper()
	s, err := NewStemmer(cfg, lexicon.New(roots, suffixes), nil)
	require.NoError(t, err)
	return s
}

func TestStem(t *testing.T) {
	s := newTestStemmer(t,
		[]string{"kitab", "ev", "evler", "kopek", "gel"},
		[]string{"ar", "lar", "ler", "de", "in", "iy", "ci", "lıq"},
		DefaultConfig(),
	)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plural stripped", "kitablar", "kitab"},
		{"root is its own stem", "kitab", "kitab"},
		{"longest candidate wins", "evlerde", "evler"},
		{"chain of suffixes", "evlerin", "evler"},
		{"unknown word falls back", "xqzvbn", "xqzvbn"},
		{"numeric passthrough", "123", "123"},
		{"numeric with suffix", "2020ci", "2020"},
		{"empty token", "", ""},
		{"q conversion before stripping", "kitablıg", "kitab"},
		{"k conversion restores root", "kopey", "kopek"},
		{"k rule skipped when suffix strips to root", "geliy", "gel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Stem(tt.input))
		})
	}
}

func TestStemFallsBackToConvertedToken(t *testing.T) {
	s := newTestStemmer(t, nil, []string{"lar"}, DefaultConfig())

	// no root matches, so the converted form is returned
	assert.Equal(t, "yarat", s.Stem("yarad"))
	assert.Equal(t, "dostluq", s.Stem("dostlug"))
}

func TestLongestSuffixFirstOrdering(t *testing.T) {
	// suffixes deliberately given shortest first
	s := newTestStemmer(t, []string{"kitab"}, []string{"ar", "lar"}, DefaultConfig())

	res := s.Analyze("kitablar")
	assert.Equal(t, "kitab", res.Stem)
	assert.Equal(t, []string{"kitab"}, res.Candidates)
	assert.True(t, res.Matched)
}

func TestCollectPreOrder(t *testing.T) {
	s := newTestStemmer(t,
		[]string{"ev", "evler", "evlerde"},
		[]string{"ler", "de", "e"},
		DefaultConfig(),
	)

	// evlerde -> [itself] -> "de" -> evler -> "ler" -> ev
	//                     -> "e"  -> evlerd (not a root, no suffix)
	got := s.Collect("evlerde", nil)
	assert.Equal(t, []string{"evlerde", "evler", "ev"}, got)
}

func TestCollectAppendsToDst(t *testing.T) {
	s := newTestStemmer(t, []string{"ev"}, []string{"de"}, DefaultConfig())

	got := s.Collect("evde", []string{"seed"})
	assert.Equal(t, []string{"seed", "ev"}, got)
}

func TestAnalyzeNoMatch(t *testing.T) {
	s := newTestStemmer(t, []string{"kitab"}, []string{"lar"}, DefaultConfig())

	res := s.Analyze("masa")
	assert.Equal(t, "masa", res.Token)
	assert.Equal(t, "masa", res.Stem)
	assert.False(t, res.Matched)
	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Candidates)
}

func TestStripOne(t *testing.T) {
	s := newTestStemmer(t, []string{"ev", "evler"}, []string{"ler", "de"}, DefaultConfig())

	assert.Equal(t, "evler", s.StripOne("evlerde"))
	// only one suffix removed even though "ev" is also reachable
	assert.NotEqual(t, "ev", s.StripOne("evlerde"))
	assert.Equal(t, "ev", s.StripOne("evler"))
	assert.Equal(t, "masalar", s.StripOne("masalar"))
}

func TestRecursiveConversion(t *testing.T) {
	roots := []string{"yarat"}
	suffixes := []string{"dim"}

	plain := newTestStemmer(t, roots, suffixes, DefaultConfig())
	assert.Equal(t, "yaraddim", plain.Stem("yaraddim"))

	cfg := DefaultConfig()
	cfg.RecursiveConversion = true
	recursive := newTestStemmer(t, roots, suffixes, cfg)
	assert.Equal(t, "yarat", recursive.Stem("yaraddim"))
}

func TestStemAllPreservesOrder(t *testing.T) {
	s := newTestStemmer(t, []string{"kitab", "ev"}, []string{"lar", "ler", "de"}, DefaultConfig())

	got, err := s.StemAll(context.Background(), []string{"kitablar", "", "evde", "123", "qeyri"})
	require.NoError(t, err)
	assert.Equal(t, []string{"kitab", "", "ev", "123", "qeyri"}, got)
}

func TestStemAllParallelMatchesSequential(t *testing.T) {
	roots := []string{"kitab", "ev", "gel"}
	suffixes := []string{"lar", "ler", "de", "da", "in", "dim"}

	var tokens []string
	for i := 0; i < 5000; i++ {
		switch i % 5 {
		case 0:
			tokens = append(tokens, "kitablarda")
		case 1:
			tokens = append(tokens, "evlerin")
		case 2:
			tokens = append(tokens, fmt.Sprintf("%d", i))
		case 3:
			tokens = append(tokens, "geldim")
		default:
			tokens = append(tokens, "bilinmeyen")
		}
	}

	seq := newTestStemmer(t, roots, suffixes, DefaultConfig())
	want, err := seq.StemAll(context.Background(), tokens)
	require.NoError(t, err)

	par := newTestStemmer(t, roots, suffixes, Config{Parallelism: 4, BatchSize: 64})
	got, err := par.StemAll(context.Background(), tokens)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestStemAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestStemmer(t, []string{"ev"}, []string{"de"}, DefaultConfig())
	_, err := s.StemAll(ctx, []string{"evde"})
	assert.ErrorIs(t, err, context.Canceled)

	par := newTestStemmer(t, []string{"ev"}, []string{"de"}, Config{Parallelism: 2, BatchSize: 1})
	_, err = par.StemAll(ctx, []string{"evde", "evde", "evde"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStemAllEmpty(t *testing.T) {
	s := newTestStemmer(t, nil, nil, DefaultConfig())

	got, err := s.StemAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewStemmerValidation(t *testing.T) {
	_, err := NewStemmer(DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrNilLexicon)

	_, err = NewStemmer(Config{Parallelism: -1}, lexicon.New(nil, nil), nil)
	assert.Error(t, err)

	_, err = NewStemmer(Config{BatchSize: -5}, lexicon.New(nil, nil), nil)
	assert.Error(t, err)
}

func TestStemConcurrentUse(t *testing.T) {
	s := newTestStemmer(t, []string{"kitab", "ev"}, []string{"lar", "de"}, DefaultConfig())

	done := make(chan string, 64)
	for i := 0; i < 64; i++ {
		go func(i int) {
			if i%2 == 0 {
				done <- s.Stem("kitablar")
			} else {
				done <- s.Stem("evde")
			}
		}(i)
	}
	counts := map[string]int{}
	for i := 0; i < 64; i++ {
		counts[<-done]++
	}
	assert.Equal(t, map[string]int{"kitab": 32, "ev": 32}, counts)
}

func TestCollectOverlappingSuffixesIsBounded(t *testing.T) {
	s := newTestStemmer(t, []string{"a"}, []string{"a", "aa", "aaa"}, DefaultConfig())
	word := strings.Repeat("a", 200)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	got, err := s.StemAll(ctx, []string{word})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
	assert.Less(t, time.Since(start), time.Second)

	res := s.Analyze(word)
	assert.Equal(t, []string{"a"}, res.Candidates, "each form is listed once")
}

func TestCollectListsSharedFormsOnce(t *testing.T) {
	// evlerde reaches "ev" through "ler"+"de" and through "lerde"
	s := newTestStemmer(t,
		[]string{"ev", "evler"},
		[]string{"lerde", "ler", "de"},
		DefaultConfig(),
	)

	assert.Equal(t, []string{"ev", "evler"}, s.Collect("evlerde", nil))
	assert.Equal(t, "evler", s.Stem("evlerde"))
}

func TestAnalyzeContextCancelledInsideToken(t *testing.T) {
	s := newTestStemmer(t, []string{"a"}, []string{"a", "aa", "aaa"}, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AnalyzeContext(ctx, strings.Repeat("a", 500))
	assert.ErrorIs(t, err, context.Canceled)
}
