package warmup

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/core/domain"
)

type countingStemmer struct {
	calls atomic.Int64
}

func (c *countingStemmer) Stem(word string) string {
	c.calls.Add(1)
	return word
}

func (c *countingStemmer) Analyze(word string) domain.Result {
	return domain.Result{Token: word, Stem: word}
}

func (c *countingStemmer) StemAll(_ context.Context, tokens []string) ([]string, error) {
	return tokens, nil
}

type countingNormalizer struct {
	calls atomic.Int64
}

func (c *countingNormalizer) Normalize(text string) []string {
	c.calls.Add(1)
	return strings.Fields(text)
}

func TestWarmUpRunsRegisteredComponents(t *testing.T) {
	cfg := WarmupConfig{Concurrency: 2, Iterations: 3, SampleTextSize: 50}
	mgr := NewManager(logger.NewNopLogger(), cfg)

	s := &countingStemmer{}
	n := &countingNormalizer{}
	mgr.RegisterStemmer(s)
	mgr.RegisterNormalizer(n)

	mgr.WarmUp(context.Background())

	if got := n.calls.Load(); got != 6 {
		t.Errorf("normalizer calls = %d, want 6", got)
	}
	tokens := int64(len(strings.Fields(generateSampleText(50))))
	if got := s.calls.Load(); got != 6*tokens {
		t.Errorf("stemmer calls = %d, want %d", got, 6*tokens)
	}
}

func TestWarmUpStopsOnCancelledContext(t *testing.T) {
	cfg := WarmupConfig{Concurrency: 1, Iterations: 1000, SampleTextSize: 50, Duration: time.Minute}
	mgr := NewManager(logger.NewNopLogger(), cfg)
	s := &countingStemmer{}
	mgr.RegisterStemmer(s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mgr.WarmUp(ctx)

	if got := s.calls.Load(); got != 0 {
		t.Errorf("stemmer should not run after cancellation, got %d calls", got)
	}
}

func TestGenerateSampleText(t *testing.T) {
	text := generateSampleText(100)
	if len(text) < 100 {
		t.Errorf("sample text too short: %d bytes", len(text))
	}
}
