package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heydenberk/arithmatrix/internal/board"
)

// uniquePuzzle pins every cell of a 4x4 grid with a given, so exactly one
// solution exists by construction.
func uniquePuzzle(t *testing.T) (*board.Puzzle, *board.Grid) {
	t.Helper()

	solution, err := board.FromRows([][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{4, 1, 2, 3},
	})
	require.NoError(t, err)

	cages := make([]board.Cage, 0, 16)
	for pos := 0; pos < 16; pos++ {
		cages = append(cages, board.Cage{
			Cells:  []int{pos},
			Op:     board.OpGiven,
			Target: solution.At(pos),
		})
	}
	return &board.Puzzle{Size: 4, Cages: cages}, solution
}

func TestSolveAllGivens(t *testing.T) {
	p, solution := uniquePuzzle(t)

	s, err := New(p, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Solution.Equal(solution))
	assert.True(t, res.Solution.IsLatin())
	assert.Greater(t, res.Stats.Operations(), uint64(0))
}

func TestSolveConstrainedCages(t *testing.T) {
	// The cages pin down the same square as uniquePuzzle without giving
	// every cell away.
	p := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0}, Op: board.OpGiven, Target: 1},
			{Cells: []int{1, 2}, Op: board.OpMul, Target: 6},
			{Cells: []int{3, 7}, Op: board.OpDiv, Target: 4},
			{Cells: []int{4, 5}, Op: board.OpSub, Target: 1},
			{Cells: []int{6, 10}, Op: board.OpMul, Target: 4},
			{Cells: []int{8, 9}, Op: board.OpAdd, Target: 7},
			{Cells: []int{11, 15}, Op: board.OpAdd, Target: 5},
			{Cells: []int{12, 13}, Op: board.OpMul, Target: 4},
			{Cells: []int{14}, Op: board.OpGiven, Target: 2},
		},
	}

	want, err := board.FromRows([][]int{
		{1, 2, 3, 4},
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{4, 1, 2, 3},
	})
	require.NoError(t, err)
	require.NoError(t, p.VerifySolution(want))

	s, err := New(p, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Solution.Equal(want), "got:\n%s", res.Solution.Format())
}

func TestSolveRejectsMultipleSolutions(t *testing.T) {
	// Row-sum cages constrain nothing beyond the Latin property, which many
	// squares of order 4 satisfy.
	p := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0, 1, 2, 3}, Op: board.OpAdd, Target: 10},
			{Cells: []int{4, 5, 6, 7}, Op: board.OpAdd, Target: 10},
			{Cells: []int{8, 9, 10, 11}, Op: board.OpAdd, Target: 10},
			{Cells: []int{12, 13, 14, 15}, Op: board.OpAdd, Target: 10},
		},
	}

	s, err := New(p, nil)
	require.NoError(t, err)

	_, err = s.Solve(context.Background())
	assert.ErrorIs(t, err, ErrMultipleSolutions)
}

func TestSolveRejectsNoSolution(t *testing.T) {
	p, _ := uniquePuzzle(t)
	// Contradict the given at cell 0: its row already needs a 1 elsewhere.
	p.Cages[0].Target = 2
	p.Cages[1].Target = 2

	s, err := New(p, nil)
	require.NoError(t, err)

	_, err = s.Solve(context.Background())
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveHonorsOperationLimit(t *testing.T) {
	p := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0, 1, 2, 3}, Op: board.OpAdd, Target: 10},
			{Cells: []int{4, 5, 6, 7}, Op: board.OpAdd, Target: 10},
			{Cells: []int{8, 9, 10, 11}, Op: board.OpAdd, Target: 10},
			{Cells: []int{12, 13, 14, 15}, Op: board.OpAdd, Target: 10},
		},
	}

	s, err := New(p, &Options{MaxOperations: 5})
	require.NoError(t, err)

	_, err = s.Solve(context.Background())
	assert.ErrorIs(t, err, ErrOperationLimit)
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	p := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0, 1, 2, 3}, Op: board.OpAdd, Target: 10},
			{Cells: []int{4, 5, 6, 7}, Op: board.OpAdd, Target: 10},
			{Cells: []int{8, 9, 10, 11}, Op: board.OpAdd, Target: 10},
			{Cells: []int{12, 13, 14, 15}, Op: board.OpAdd, Target: 10},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(p, nil)
	require.NoError(t, err)

	_, err = s.Solve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsInvalidPuzzle(t *testing.T) {
	p := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0, 1}, Op: board.OpAdd, Target: 3},
		},
	}
	_, err := New(p, nil)
	assert.ErrorIs(t, err, ErrInvalidPuzzle)
}
