package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/carve"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

var (
	ErrGenerationFailed = errors.New("failed to generate valid puzzle")
	ErrTargetingFailed  = errors.New("failed to generate puzzle in difficulty band")
)

// Generator creates arithmetic puzzles.
type Generator struct {
	options    *Options
	rng        *rand.Rand
	classifier *difficulty.Classifier
}

// Result is a generated puzzle together with its solution and ratings.
type Result struct {
	Puzzle   *board.Puzzle
	Solution *board.Grid
	Metrics  difficulty.Metrics
	Analysis difficulty.HumanAnalysis

	// Operations is the solver work performed by the uniqueness check.
	Operations uint64

	// TargetRange is the operation-count band for the requested difficulty,
	// or the band of the classified difficulty when none was requested.
	TargetRange [2]int

	// TargetMiss reports that targeting exhausted its attempts and the
	// closest candidate outside the band was returned instead.
	TargetMiss bool

	GenerationTime time.Duration
}

// New creates a puzzle generator with the given options.
func New(options *Options) (*Generator, error) {
	if options == nil {
		return nil, fmt.Errorf("generator: nil options")
	}
	if options.Size < board.MinSize || options.Size > board.MaxSize {
		return nil, fmt.Errorf("generator: size %d: %w", options.Size, board.ErrInvalidSize)
	}
	if options.Target != nil && !options.Target.Valid() {
		return nil, fmt.Errorf("generator: %w", difficulty.ErrUnknownLevel)
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options:    options,
		rng:        rand.New(rand.NewSource(seed)),
		classifier: difficulty.NewOperationsClassifier(),
	}, nil
}

// Generate creates a new puzzle with a unique solution, retrying from fresh
// Latin squares as needed. When a target difficulty is set, candidates are
// drawn until one lands in the target operation-count band; if the attempt
// attempts run out the closest candidate is returned with TargetMiss set.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()

	if g.options.Target == nil {
		result, err := g.generateUnique(ctx)
		if err != nil {
			return nil, err
		}
		level := g.classifier.Classify(g.options.Size, float64(result.Operations))
		lo, hi := g.classifier.Band(g.options.Size, level)
		result.TargetRange = [2]int{int(lo), int(hi)}
		result.GenerationTime = time.Since(start)
		return result, nil
	}

	target := *g.options.Target
	lo, hi := g.classifier.Band(g.options.Size, target)

	var closest *Result
	for attempt := 0; attempt < g.options.MaxDifficultyAttempts; attempt++ {
		result, err := g.generateUnique(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			continue
		}

		result.TargetRange = [2]int{int(lo), int(hi)}
		ops := float64(result.Operations)
		if ops >= lo && ops < hi {
			result.GenerationTime = time.Since(start)
			return result, nil
		}
		if closest == nil || bandDistance(ops, lo, hi) < bandDistance(float64(closest.Operations), lo, hi) {
			closest = result
		}
	}

	if closest == nil {
		return nil, fmt.Errorf("%w: size %d level %s", ErrTargetingFailed, g.options.Size, target)
	}
	closest.TargetMiss = true
	closest.GenerationTime = time.Since(start)
	return closest, nil
}

// generateUnique produces one puzzle with a verified unique solution.
func (g *Generator) generateUnique(ctx context.Context) (*Result, error) {
	size := g.options.Size

	for attempt := 0; attempt < g.options.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		solution, err := board.GenerateLatin(size, g.rng)
		if err != nil {
			return nil, err
		}

		cages, err := carve.Carve(size, g.rng, g.options.CageBias, g.options.MaxCarveAttempts)
		if err != nil {
			continue
		}

		puzzle := &board.Puzzle{
			Size:  size,
			Cages: assignConstraints(cages, solution, g.rng),
		}

		s, err := solver.New(puzzle, g.options.Solver)
		if err != nil {
			return nil, err
		}

		res, err := s.Solve(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// Non-unique or intractable; start over from a new square.
			continue
		}

		return &Result{
			Puzzle:     puzzle,
			Solution:   res.Solution,
			Metrics:    difficulty.Score(puzzle, &res.Stats),
			Analysis:   difficulty.Analyze(puzzle),
			Operations: res.Stats.Operations(),
		}, nil
	}

	return nil, fmt.Errorf("%w: size %d after %d attempts", ErrGenerationFailed, size, g.options.MaxAttempts)
}

// bandDistance measures how far an operation count falls outside [lo, hi).
func bandDistance(ops, lo, hi float64) float64 {
	switch {
	case ops < lo:
		return lo - ops
	case ops >= hi:
		return ops - hi
	default:
		return 0
	}
}
