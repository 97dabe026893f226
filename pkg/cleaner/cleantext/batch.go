package cleantext

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/cleantext/internal/logger"
)

// numCPU is swapped in tests.
var numCPU = runtime.NumCPU

// ResolveJobs turns a jobs setting into a worker count for items texts.
//
//	 1      sequential
//	-1      one worker per CPU
//	-N      max(1, CPUs-N+1)
//	 N > 1  N workers
//	 0      ErrInvalidJobs
//
// The result is never more than items, nor less than 1.
func ResolveJobs(jobs, items int) (int, error) {
	var workers int
	switch {
	case jobs == 0:
		return 0, fmt.Errorf("%w (use 1 for sequential, -1 for one worker per CPU)", ErrInvalidJobs)
	case jobs < 0:
		workers = max(1, numCPU()+jobs+1)
	default:
		workers = jobs
	}
	return max(1, min(workers, items)), nil
}

// CleanTexts cleans every text with the pipeline built from cfg. The
// result has the same length and order as texts and is identical for any
// valid jobs value.
func CleanTexts(ctx context.Context, texts []string, jobs int, cfg *Config) ([]string, error) {
	if _, err := ResolveJobs(jobs, len(texts)); err != nil {
		return nil, err
	}
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.CleanTexts(ctx, texts, jobs)
}

// CleanValues is CleanTexts for arbitrary values, converted as CleanValue
// does. A nil value cleans to "".
func CleanValues(ctx context.Context, values []any, jobs int, cfg *Config) ([]string, error) {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = toText(v)
	}
	return CleanTexts(ctx, texts, jobs, cfg)
}

// CleanTexts cleans texts on a pool of workers sized by ResolveJobs.
// The first failure cancels the batch and no output is returned.
func (c *Cleaner) CleanTexts(ctx context.Context, texts []string, jobs int) ([]string, error) {
	workers, err := ResolveJobs(jobs, len(texts))
	if err != nil {
		return nil, err
	}
	out := make([]string, len(texts))
	if len(texts) == 0 {
		return out, nil
	}
	logger.DebugContext(ctx, "cleantext: batch", "texts", len(texts), "jobs", jobs, "workers", workers)

	if workers == 1 {
		for i, text := range texts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cleaned, err := c.Clean(text)
			if err != nil {
				return nil, fmt.Errorf("text %d: %w", i, err)
			}
			out[i] = cleaned
		}
		return out, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	indices := make(chan int)

	g.Go(func() error {
		defer close(indices)
		for i := range texts {
			select {
			case indices <- i:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range indices {
				cleaned, err := c.Clean(texts[i])
				if err != nil {
					return fmt.Errorf("text %d: %w", i, err)
				}
				out[i] = cleaned
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
