package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

func TestLevelRoundTrip(t *testing.T) {
	for _, l := range Levels() {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
		assert.True(t, l.Valid())
	}

	_, err := ParseLevel("impossible")
	assert.ErrorIs(t, err, ErrUnknownLevel)
	assert.False(t, Level(-1).Valid())
	assert.False(t, Level(5).Valid())
}

func TestTableLevelBuckets(t *testing.T) {
	table := Table{Bounds: [6]float64{38, 47, 50, 52, 55, 65}}

	tests := []struct {
		score float64
		want  Level
	}{
		{10, Easiest},
		{38, Easiest},
		{46.9, Easiest},
		{47, Easy}, // boundary ties resolve to the lower bucket's upper edge
		{49, Easy},
		{50, Medium},
		{51.9, Medium},
		{52, Hard},
		{55, Expert},
		{64, Expert},
		{65, Expert},
		{1000, Expert},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Level(tt.score), "score %v", tt.score)
	}

	lo, hi := table.Band(Medium)
	assert.Equal(t, 50.0, lo)
	assert.Equal(t, 52.0, hi)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewOperationsClassifier()
	for i := 0; i < 10; i++ {
		assert.Equal(t, Medium, c.Classify(7, 51))
	}

	lo, hi := c.Band(7, Medium)
	assert.Equal(t, 50.0, lo)
	assert.Equal(t, 52.0, hi)
}

func TestExtrapolatedTablesAreOrdered(t *testing.T) {
	for _, c := range []*Classifier{NewOperationsClassifier(), NewScoreClassifier()} {
		for _, size := range []int{3, 8, 9} {
			table := c.Table(size)
			for i := 0; i < 5; i++ {
				assert.Less(t, table.Bounds[i], table.Bounds[i+1],
					"%s size %d bounds %v", table.Version, size, table.Bounds)
			}
		}
	}
}

func TestExtrapolationOnlyCoversMissingSizes(t *testing.T) {
	c := NewOperationsClassifier()
	assert.Equal(t, OperationsTableVersion, c.Table(7).Version)
	assert.Contains(t, c.Table(8).Version, "extrapolated")
}

func scoredPuzzle() *board.Puzzle {
	return &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0}, Op: board.OpGiven, Target: 1},
			{Cells: []int{1, 2, 3}, Op: board.OpAdd, Target: 9},
			{Cells: []int{4, 5}, Op: board.OpSub, Target: 1},
			{Cells: []int{6, 7}, Op: board.OpMul, Target: 4},
			{Cells: []int{8, 12}, Op: board.OpDiv, Target: 2},
			{Cells: []int{9, 10, 13, 14}, Op: board.OpAdd, Target: 8},
			{Cells: []int{11, 15}, Op: board.OpAdd, Target: 5},
		},
	}
}

func TestScoreComponents(t *testing.T) {
	p := scoredPuzzle()
	m := Score(p, nil)

	assert.Greater(t, m.CageComplexity, 0.0)
	assert.Greater(t, m.ConstraintDensity, 0.0)
	assert.Greater(t, m.ArithmeticDifficulty, 0.0)
	assert.GreaterOrEqual(t, m.StructuralComplexity, 0.0)
	assert.Greater(t, m.LogicalComplexity, 0.0)
	assert.Greater(t, m.Raw, 0.0)
	assert.Equal(t, m.Raw, m.Score, "size 4 has no size adjustment")
}

func TestScoreSizeAdjustment(t *testing.T) {
	// The same cage structure shifted to a 5x5 grid must score higher than
	// its raw value by the linear size boost.
	p := &board.Puzzle{
		Size: 5,
		Cages: []board.Cage{
			{Cells: []int{0, 1, 2, 3, 4}, Op: board.OpAdd, Target: 15},
			{Cells: []int{5, 6, 7, 8, 9}, Op: board.OpAdd, Target: 15},
			{Cells: []int{10, 11, 12, 13, 14}, Op: board.OpAdd, Target: 15},
			{Cells: []int{15, 16, 17, 18, 19}, Op: board.OpAdd, Target: 15},
			{Cells: []int{20, 21, 22, 23, 24}, Op: board.OpAdd, Target: 15},
		},
	}
	m := Score(p, nil)
	assert.InDelta(t, m.Raw*1.1, m.Score, 1e-9)
}

func TestScoreUsesSolverStats(t *testing.T) {
	p := scoredPuzzle()

	guessy := Score(p, &solver.Stats{Assignments: 10, Backtracks: 8, CandidateTests: 50})
	clean := Score(p, &solver.Stats{Assignments: 10, Backtracks: 0, CandidateTests: 20})

	assert.Greater(t, guessy.LogicalComplexity, clean.LogicalComplexity)
	assert.Equal(t, guessy.CageComplexity, clean.CageComplexity)
}

func TestAnalyze(t *testing.T) {
	p := scoredPuzzle()
	a := Analyze(p)

	assert.Equal(t, 35.0, a.BaseSeconds)
	assert.GreaterOrEqual(t, a.Multiplier, 1.0)
	assert.InDelta(t, a.BaseSeconds*a.Multiplier, a.EstimatedSeconds, 1e-9)
	assert.Equal(t, a.EstimatedSeconds, a.Score)
	assert.NotEmpty(t, a.SizeCategory)
	assert.NotEmpty(t, a.Recommendations)
}

func TestHarderStructuresScoreAndLabelHigher(t *testing.T) {
	// Three 4x4 structures of increasing difficulty: all givens, a mixed
	// partition, and large multiplication cages.
	easy := &board.Puzzle{Size: 4}
	for pos := 0; pos < 16; pos++ {
		easy.Cages = append(easy.Cages, board.Cage{Cells: []int{pos}, Op: board.OpGiven, Target: 1 + pos%4})
	}

	medium := scoredPuzzle()

	hard := &board.Puzzle{
		Size: 4,
		Cages: []board.Cage{
			{Cells: []int{0, 1, 2, 3}, Op: board.OpMul, Target: 24},
			{Cells: []int{4, 5, 6, 7}, Op: board.OpMul, Target: 24},
			{Cells: []int{8, 9, 10, 11}, Op: board.OpMul, Target: 24},
			{Cells: []int{12, 13, 14, 15}, Op: board.OpMul, Target: 24},
		},
	}

	eScore, mScore, hScore := Score(easy, nil), Score(medium, nil), Score(hard, nil)
	assert.Less(t, eScore.Score, mScore.Score)
	assert.Less(t, mScore.Score, hScore.Score)

	eHuman, mHuman, hHuman := Analyze(easy), Analyze(medium), Analyze(hard)
	assert.LessOrEqual(t, eHuman.Score, mHuman.Score)
	assert.LessOrEqual(t, mHuman.Score, hHuman.Score)

	c := NewScoreClassifier()
	assert.LessOrEqual(t, c.Classify(4, eScore.Score), c.Classify(4, mScore.Score))
	assert.LessOrEqual(t, c.Classify(4, mScore.Score), c.Classify(4, hScore.Score))
}

func TestAnalyzeBaseTimesBySize(t *testing.T) {
	assert.Equal(t, 62.5, baseSeconds(5))
	assert.Equal(t, 416.0, baseSeconds(7))
	// Sizes beyond the measured set fall back to a quadratic rule.
	assert.Equal(t, 640.0, baseSeconds(8))
}
