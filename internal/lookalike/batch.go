package lookalike

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abhisek/vocabdrill/internal/store"
)

// BatchOptions bounds a GenerateAll run.
type BatchOptions struct {
	// Concurrency is the number of requests in flight. Minimum 1.
	Concurrency int

	// RatePerSecond caps request starts. Zero or less disables the limit.
	RatePerSecond float64

	// Burst is the limiter burst. Minimum 1.
	Burst int
}

// DefaultBatchOptions returns conservative limits for free-tier API keys.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Concurrency: 4, RatePerSecond: 2, Burst: 2}
}

// Result is one word's outcome in a batch.
type Result struct {
	Word  string
	Forms []string
	Err   error
}

// GenerateAll generates sets for every word with bounded concurrency and a
// request rate limit. Per-word failures are reported in the results and do
// not stop the batch; only context cancellation does. Results keep the
// order of words.
func (g *Generator) GenerateAll(ctx context.Context, words []string, opts BatchOptions) ([]Result, error) {
	results := make([]Result, len(words))

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	limiter := rate.NewLimiter(limit, max(1, opts.Burst))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, opts.Concurrency))

	for i, word := range words {
		results[i].Word = word
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				results[i].Err = err
				return err
			}
			forms, err := g.Generate(egCtx, word)
			results[i].Forms, results[i].Err = forms, err
			if err != nil {
				g.log.Warn("lookalike generation failed", zap.String("word", word), zap.Error(err))
			}
			if ctxErr := egCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, fmt.Errorf("generate lookalikes: %w", err)
	}
	return results, nil
}

// Save stores the successful results and adds them to the catalog. Returns
// the number of sets saved.
func Save(ctx context.Context, repo store.LookalikeRepo, cat *Catalog, results []Result) (int, error) {
	saved := 0
	now := time.Now()
	for _, r := range results {
		if r.Err != nil || len(r.Forms) == 0 {
			continue
		}
		if err := repo.Put(ctx, store.LookalikeSet{
			Word:      r.Word,
			Forms:     r.Forms,
			Origin:    OriginLLM,
			UpdatedAt: now,
		}); err != nil {
			return saved, err
		}
		if cat != nil {
			cat.Set(r.Word, r.Forms, OriginLLM)
		}
		saved++
	}
	return saved, nil
}
