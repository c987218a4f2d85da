// Package batch produces puzzle corpora by fanning generation jobs out
// across workers. Each worker writes its own shard file; shards are merged
// sequentially once every worker has finished, so no two goroutines ever
// share a writer.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heydenberk/arithmatrix/internal/corpus"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/generator"
)

// Options configures a batch run.
type Options struct {
	Size    int
	Count   int
	Target  *difficulty.Level // nil generates across the natural spread
	Seed    int64             // 0 seeds from the clock
	Workers int               // 0 means one per CPU
	Output  string
	Version string
}

// Summary reports what a batch run produced.
type Summary struct {
	Requested int
	Generated int
	Failed    int
	Levels    map[string]int
	Elapsed   time.Duration
}

type job struct {
	index int
	seed  int64
}

// Run generates opts.Count puzzles and merges them into opts.Output.
// Failed jobs are logged and skipped; they never abort sibling jobs.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (*Summary, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("batch: count must be positive, got %d", opts.Count)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Count {
		workers = opts.Count
	}

	baseSeed := opts.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	start := time.Now()
	scores := difficulty.NewScoreClassifier()

	jobs := make(chan job)
	partials := make([]Summary, workers)
	shards := make([]string, workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		seeds := rand.New(rand.NewSource(baseSeed))
		for i := 0; i < opts.Count; i++ {
			j := job{index: i, seed: seeds.Int63()}
			select {
			case jobs <- j:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		shards[w] = fmt.Sprintf("%s.shard-%d", opts.Output, w)
		g.Go(func() error {
			return runWorker(gctx, opts, shards[w], scores, jobs, &partials[w], logger)
		})
	}

	if err := g.Wait(); err != nil {
		removeShards(shards)
		return nil, err
	}

	if err := corpus.Merge(opts.Output, shards); err != nil {
		removeShards(shards)
		return nil, err
	}
	removeShards(shards)

	summary := &Summary{
		Requested: opts.Count,
		Levels:    make(map[string]int),
		Elapsed:   time.Since(start),
	}
	for _, p := range partials {
		summary.Generated += p.Generated
		summary.Failed += p.Failed
		for level, n := range p.Levels {
			summary.Levels[level] += n
		}
	}

	return summary, nil
}

// runWorker drains the job channel into one shard file.
func runWorker(ctx context.Context, opts Options, shard string, scores *difficulty.Classifier, jobs <-chan job, partial *Summary, logger *slog.Logger) error {
	w, err := corpus.NewWriter(shard)
	if err != nil {
		return err
	}
	partial.Levels = make(map[string]int)

	for j := range jobs {
		genOpts := generator.DefaultOptions(opts.Size)
		genOpts.Seed = j.seed
		genOpts.Target = opts.Target

		gen, err := generator.New(genOpts)
		if err != nil {
			w.Close()
			return err
		}

		res, err := gen.Generate(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.Close()
				return err
			}
			partial.Failed++
			logger.Warn("generation failed, skipping job",
				slog.Int("job", j.index),
				slog.Int("size", opts.Size),
				slog.String("error", err.Error()))
			continue
		}

		rec := corpus.NewRecord(res, scores, opts.Version)
		if err := w.Append(rec); err != nil {
			w.Close()
			return err
		}

		partial.Generated++
		partial.Levels[rec.Metadata.ActualDifficulty]++
		logger.Debug("puzzle generated",
			slog.Int("job", j.index),
			slog.String("difficulty", rec.Metadata.ActualDifficulty),
			slog.Uint64("operations", res.Operations),
			slog.Bool("target_miss", res.TargetMiss))
	}

	return w.Close()
}

func removeShards(shards []string) {
	for _, shard := range shards {
		os.Remove(shard)
	}
}
