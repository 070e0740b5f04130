package stem

import (
	"context"
	"sync"
)

// MaxJobQueueSize limits the number of pending batches
const MaxJobQueueSize = 32

// stemJob is a contiguous range of tokens handed to one worker
type stemJob struct {
	start, end int
}

// stemAllParallel splits tokens into batches and stems them with a worker pool.
// Each worker writes only to its own index range of out, so order is preserved
// without further synchronization.
func (s *Stemmer) stemAllParallel(ctx context.Context, tokens, out []string, workers int) ([]string, error) {
	jobs := make(chan stemJob, MaxJobQueueSize)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					// drain remaining jobs without doing work
					continue
				default:
				}
				for j := job.start; j < job.end; j++ {
					stem, err := s.stem(ctx, tokens[j])
					if err != nil {
						break
					}
					out[j] = stem
				}
			}
		}()
	}

	batch := s.config.BatchSize
dispatch:
	for start := 0; start < len(tokens); start += batch {
		end := start + batch
		if end > len(tokens) {
			end = len(tokens)
		}
		select {
		case jobs <- stemJob{start: start, end: end}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Warn("Parallel stemming cancelled by context", "error", err)
		return nil, err
	}
	return out, nil
}
