// apps/go-scorer/internal/runner/runner.go
//
// Execution strategies that drive the Scorer over the whole corpus.
//
//   - RunResumable: single goroutine, corpus order, one durable append per
//     guess. Restarting picks up after the last stored record.
//   - RunParallel: one task per guess on a bounded worker pool, a join, a
//     stable sort by score and a single bulk write.
//
// Both produce identical per-word scores. Progress is an optional observer;
// it never affects what gets written.

package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-scorer/internal/results"
	"github.com/robalobadob/wordle/apps/go-scorer/internal/score"
)

// Progress observes a run. *progressbar.ProgressBar satisfies it.
type Progress interface {
	Set(n int) error
	Add(n int) error
}

type noProgress struct{}

func (noProgress) Set(int) error { return nil }
func (noProgress) Add(int) error { return nil }

func orNoop(p Progress) Progress {
	if p == nil {
		return noProgress{}
	}
	return p
}

// RunResumable scores every corpus word not yet in sink, in corpus order,
// appending each record before moving on. It returns how many words were
// scored by this call.
//
// The resume point is checked before any scoring starts; an incompatible
// sink fails with ErrIncompatible. Cancelling ctx stops between guesses.
func RunResumable(ctx context.Context, sc *score.Scorer, sink results.Appender, p Progress) (int, error) {
	p = orNoop(p)
	corpus := sc.Corpus()

	stored, err := sink.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("read existing results: %w", err)
	}
	start, err := ResumePoint(corpus, stored)
	if err != nil {
		return 0, err
	}
	log.Info().Int("start", start).Int("total", corpus.Len()).Msg("resuming")
	_ = p.Set(start)

	done := 0
	for i := start; i < corpus.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		w := corpus.At(i)
		r := results.Record{Word: w, Score: sc.Score(w)}
		if err := sink.Append(ctx, r); err != nil {
			return done, fmt.Errorf("append %s: %w", w, err)
		}
		done++
		_ = p.Add(1)
	}
	log.Info().Int("scored", done).Msg("resumable run finished")
	return done, nil
}

// DefaultWorkers is the pool size used when workers <= 0.
func DefaultWorkers() int { return runtime.NumCPU() }

// RunParallel scores the whole corpus on up to workers goroutines, sorts the
// results by ascending score (corpus order breaks ties) and hands them to
// sink in a single WriteAll. Nothing is written if any task fails or ctx is
// cancelled.
func RunParallel(ctx context.Context, sc *score.Scorer, sink results.BulkWriter, workers int, p Progress) ([]results.Record, error) {
	p = orNoop(p)
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	corpus := sc.Corpus()
	recs := make([]results.Record, corpus.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < corpus.Len(); i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := corpus.At(i)
			recs[i] = results.Record{Word: w, Score: sc.Score(w)}
			_ = p.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results.SortByScore(recs)
	if err := sink.WriteAll(ctx, recs); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}
	log.Info().Int("scored", len(recs)).Int("workers", workers).Msg("parallel run finished")
	return recs, nil
}
