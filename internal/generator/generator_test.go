package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

func TestGenerateProducesValidUniquePuzzles(t *testing.T) {
	for _, size := range []int{3, 4, 5} {
		opts := DefaultOptions(size)
		opts.Seed = 7

		gen, err := New(opts)
		require.NoError(t, err)

		res, err := gen.Generate(context.Background())
		require.NoError(t, err, "size %d", size)

		require.NoError(t, res.Puzzle.Validate())
		require.NoError(t, res.Puzzle.VerifySolution(res.Solution))
		assert.Greater(t, res.Operations, uint64(0))
		assert.Greater(t, res.Metrics.Score, 0.0)
		assert.Greater(t, res.Analysis.EstimatedSeconds, 0.0)
		assert.GreaterOrEqual(t, res.GenerationTime.Nanoseconds(), int64(0))

		// Re-solving from the cages alone must reproduce the stored
		// solution exactly.
		s, err := solver.New(res.Puzzle, nil)
		require.NoError(t, err)
		solved, err := s.Solve(context.Background())
		require.NoError(t, err)
		assert.True(t, solved.Solution.Equal(res.Solution))
	}
}

func TestGenerateIsSeedDeterministic(t *testing.T) {
	run := func() *Result {
		opts := DefaultOptions(4)
		opts.Seed = 12345
		gen, err := New(opts)
		require.NoError(t, err)
		res, err := gen.Generate(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Puzzle, b.Puzzle)
	assert.True(t, a.Solution.Equal(b.Solution))
	assert.Equal(t, a.Operations, b.Operations)
}

func TestGenerateWithTarget(t *testing.T) {
	target := difficulty.Easy
	opts := DefaultOptions(4)
	opts.Seed = 99
	opts.Target = &target

	gen, err := New(opts)
	require.NoError(t, err)

	res, err := gen.Generate(context.Background())
	require.NoError(t, err)

	lo, hi := difficulty.NewOperationsClassifier().Band(4, target)
	assert.Equal(t, [2]int{int(lo), int(hi)}, res.TargetRange)

	if !res.TargetMiss {
		ops := float64(res.Operations)
		assert.GreaterOrEqual(t, ops, lo)
		assert.Less(t, ops, hi)
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	opts := DefaultOptions(4)
	opts.Seed = 1

	gen, err := New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(DefaultOptions(2))
	assert.ErrorIs(t, err, board.ErrInvalidSize)

	bad := difficulty.Level(9)
	opts := DefaultOptions(4)
	opts.Target = &bad
	_, err = New(opts)
	assert.ErrorIs(t, err, difficulty.ErrUnknownLevel)
}

func TestPairConstraintExactness(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 100; trial++ {
		op, target := pairConstraint(2, 4, rng)
		switch op {
		case board.OpAdd:
			assert.Equal(t, 6, target)
		case board.OpSub:
			assert.Equal(t, 2, target)
		case board.OpMul:
			assert.Equal(t, 8, target)
		case board.OpDiv:
			// Always the integer quotient of larger by smaller.
			assert.Equal(t, 2, target)
		default:
			t.Fatalf("unexpected operation %q", op)
		}
	}

	// No exact quotient exists for {3, 4}, so division must never appear.
	for trial := 0; trial < 100; trial++ {
		op, _ := pairConstraint(3, 4, rng)
		assert.NotEqual(t, board.OpDiv, op)
	}
}

func TestAssignConstraintsMatchesSolution(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 20; trial++ {
		solution, err := board.GenerateLatin(6, rng)
		require.NoError(t, err)

		cells := make([]int, 36)
		for i := range cells {
			cells[i] = i
		}
		// One big row cage plus singles keeps the check simple.
		cages := [][]int{cells[:6]}
		for _, pos := range cells[6:] {
			cages = append(cages, []int{pos})
		}

		assigned := assignConstraints(cages, solution, rng)
		p := &board.Puzzle{Size: 6, Cages: assigned}
		require.NoError(t, p.VerifySolution(solution), "trial %d", trial)

		// Givens must read the value at their own cell, not a neighbor's.
		for _, cage := range assigned {
			if cage.Op == board.OpGiven {
				assert.Equal(t, solution.At(cage.Cells[0]), cage.Target)
			}
		}
	}
}
