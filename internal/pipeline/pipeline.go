// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"alienness/internal/alien"
	"alienness/internal/blast"
)

// Scorer reduces one query's hits to a score. alien.Scorer satisfies it.
type Scorer interface {
	Score(hits []blast.Hit) alien.Score
}

// Config controls the scoring pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ScoreAll scores every query in t and calls emit once per query, in the
// order queries were first seen. With Threads > 1 scoring is fanned out and
// results are re-ordered before emit, so output does not depend on Threads.
// It returns the first error from emit or the context.
func ScoreAll(ctx context.Context, cfg Config, t *blast.Table, sc Scorer, emit func(alien.Result) error) error {
	queries := t.Queries()
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Threads == 1 || len(queries) < 2 {
		for _, q := range queries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(alien.Result{Query: q, Score: sc.Score(t.Hits(q))}); err != nil {
				return err
			}
		}
		return nil
	}

	// Each worker owns disjoint slots, so no locking is needed.
	scores := make([]alien.Score, len(queries))
	jobs := make(chan int, cfg.Threads*2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range queries {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < cfg.Threads; w++ {
		g.Go(func() error {
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[i] = sc.Score(t.Hits(queries[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(alien.Result{Query: q, Score: scores[i]}); err != nil {
			return err
		}
	}
	return nil
}
