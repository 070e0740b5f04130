package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_azstemmer/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 1000,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	stemmers    []ports.Stemmer
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterStemmer adds a stemmer to be warmed up
func (wm *Manager) RegisterStemmer(s ports.Stemmer) {
	wm.stemmers = append(wm.stemmers, s)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.stemmers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := generateSampleText(wm.config.SampleTextSize)

	wm.run(warmupCtx, len(wm.normalizers), func() {
		for _, n := range wm.normalizers {
			_ = n.Normalize(sample)
		}
	})

	tokens := strings.Fields(sample)
	wm.run(warmupCtx, len(wm.stemmers), func() {
		for _, s := range wm.stemmers {
			for _, tok := range tokens {
				_ = s.Stem(tok)
			}
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// run executes iteration on every routine until the iteration budget or the context runs out
func (wm *Manager) run(ctx context.Context, components int, iteration func()) {
	if components == 0 {
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				iteration()
			}
		}()
	}
	wg.Wait()
}

// generateSampleText creates inflected sample text of roughly the specified size
func generateSampleText(size int) string {
	words := []string{
		"kitablar", "evlərdə", "məktəbə", "uşaqlar", "gəldilər", "şəhərimizin",
		"dostluq", "yazıçının", "Bakıda", "günəşli", "2024-cü", "ilində",
		"böyük", "yeniliklər", "oxuyuram", "dənizdən",
	}

	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}
