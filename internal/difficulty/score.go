package difficulty

import (
	"math"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

// Metrics holds the five component scores, their weighted combination, and
// the size-adjusted final score the classifier consumes.
type Metrics struct {
	CageComplexity       float64 `json:"cage_complexity"`
	ConstraintDensity    float64 `json:"constraint_density"`
	ArithmeticDifficulty float64 `json:"arithmetic_difficulty"`
	StructuralComplexity float64 `json:"structural_complexity"`
	LogicalComplexity    float64 `json:"logical_complexity"`
	Raw                  float64 `json:"raw_score"`
	Score                float64 `json:"score"`
}

// Component weights of the combined score.
const (
	weightCage       = 0.30
	weightDensity    = 0.20
	weightArithmetic = 0.20
	weightStructural = 0.10
	weightLogical    = 0.20
)

// operationWeights rank operations by mental-math load.
var operationWeights = map[board.Operation]float64{
	board.OpGiven: 1.0,
	board.OpAdd:   2.0,
	board.OpSub:   3.5,
	board.OpMul:   4.0,
	board.OpDiv:   5.5,
}

// cageSizeWeights grow super-linearly: large cages push past human working
// memory.  Sizes beyond the table fall back to len*2.
var cageSizeWeights = map[int]float64{
	1: 0.5,
	2: 1.0,
	3: 1.8,
	4: 3.2,
	5: 5.0,
	6: 8.0,
}

// Score computes the five component metrics for a puzzle and combines them.
// stats may be nil; when present, the solver's backtrack/assignment ratio
// drives the logical-complexity component instead of the structural
// estimate.
func Score(p *board.Puzzle, stats *solver.Stats) Metrics {
	m := Metrics{
		CageComplexity:       cageComplexity(p),
		ConstraintDensity:    constraintDensity(p),
		ArithmeticDifficulty: arithmeticDifficulty(p),
		StructuralComplexity: structuralComplexity(p),
		LogicalComplexity:    logicalComplexity(p, stats),
	}
	m.Raw = weightCage*m.CageComplexity +
		weightDensity*m.ConstraintDensity +
		weightArithmetic*m.ArithmeticDifficulty +
		weightStructural*m.StructuralComplexity +
		weightLogical*m.LogicalComplexity
	m.Score = m.Raw * sizeAdjustment(p.Size)
	return m
}

// sizeAdjustment is a modest linear boost for larger grids on top of what
// the component metrics already capture: 4→1.0, 5→1.1, 6→1.2, ...
func sizeAdjustment(size int) float64 {
	return 1.0 + float64(size-4)*0.1
}

// cageComplexity averages opWeight × cageSizeWeight over all cages, with an
// extra factor for large multiplication cages.
func cageComplexity(p *board.Puzzle) float64 {
	total := 0.0
	for _, cage := range p.Cages {
		c := operationWeights[cage.Op] * sizeWeight(len(cage.Cells))
		if cage.Op == board.OpMul && len(cage.Cells) > 3 {
			c *= 1.3
		}
		total += c
	}
	return total / float64(len(p.Cages))
}

func sizeWeight(n int) float64 {
	if w, ok := cageSizeWeights[n]; ok {
		return w
	}
	return float64(n) * 2
}

// constraintDensity averages, over cells, the strength of constraints
// touching each cell: the owning cage's weighted strength plus a flat
// row/column term, normalized by size^1.5 so sizes stay comparable.
func constraintDensity(p *board.Puzzle) float64 {
	totalCells := p.Size * p.Size
	perCell := make([]float64, totalCells)

	for _, cage := range p.Cages {
		strength := operationWeights[cage.Op] * math.Log(float64(len(cage.Cells))+1)
		for _, pos := range cage.Cells {
			perCell[pos] += strength
		}
	}

	rowCol := float64(p.Size) * 0.5
	sum := 0.0
	for _, v := range perCell {
		sum += v + rowCol
	}
	avg := sum / float64(totalCells)
	return avg / math.Pow(float64(p.Size), 1.5)
}

// arithmeticDifficulty averages the mental-math cost of the cage targets:
// factor-heavy products, non-obvious quotients, and oversized sums.
func arithmeticDifficulty(p *board.Puzzle) float64 {
	total := 0.0
	for _, cage := range p.Cages {
		if cage.Op == board.OpGiven {
			continue
		}
		base := operationWeights[cage.Op] - 1

		switch cage.Op {
		case board.OpMul:
			total += base * float64(countFactors(cage.Target)) * 0.3
		case board.OpDiv:
			if cage.Target <= len(cage.Cells) {
				total += base * 0.8
			} else {
				total += base * 1.5
			}
		default: // OpAdd, OpSub
			expected := float64(len(cage.Cells)*(len(cage.Cells)+1)) / 2
			if float64(cage.Target) > expected*1.5 {
				total += base * 1.3
			} else {
				total += base
			}
		}
	}
	return total / float64(len(p.Cages))
}

// countFactors returns the number of positive divisors of n.
func countFactors(n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for d := 1; d*d <= n; d++ {
		if n%d == 0 {
			count += 2
			if d*d == n {
				count--
			}
		}
	}
	return count
}

// structuralComplexity captures how the cage layout itself affects solving:
// uneven cage sizes, skewed operation mix, and the free hints that
// single-cell cages provide.
func structuralComplexity(p *board.Puzzle) float64 {
	numCages := len(p.Cages)

	variance := cageSizeVariance(p.Cages)

	opKinds := make(map[board.Operation]bool, 5)
	singles := 0
	for _, cage := range p.Cages {
		opKinds[cage.Op] = true
		if len(cage.Cells) == 1 {
			singles++
		}
	}
	balance := 1.0 / float64(len(opKinds))

	spatial := float64(numCages) / float64(p.Size*p.Size) * 10

	singleRatio := float64(singles) / float64(numCages)
	penalty := math.Max(0, singleRatio-0.3) * 5

	return math.Max(0, variance+(1-balance)*3+spatial-penalty)
}

// cageSizeVariance is the sample variance of the cage-size distribution.
func cageSizeVariance(cages []board.Cage) float64 {
	if len(cages) < 2 {
		return 0
	}
	mean := 0.0
	for _, cage := range cages {
		mean += float64(len(cage.Cells))
	}
	mean /= float64(len(cages))

	sum := 0.0
	for _, cage := range cages {
		d := float64(len(cage.Cells)) - mean
		sum += d * d
	}
	return sum / float64(len(cages)-1)
}

// logicalComplexity estimates how much the puzzle depends on guessing
// rather than pure propagation.  With solver stats the backtrack-per-
// assignment ratio is rescaled into [0, 10], never the raw operation
// count.  Without stats, a structural estimate stands in.
func logicalComplexity(p *board.Puzzle, stats *solver.Stats) float64 {
	if stats != nil && stats.Assignments > 0 {
		ratio := float64(stats.Backtracks) / float64(stats.Assignments)
		return math.Min(10, ratio*10)
	}
	return logicalEstimate(p)
}

func logicalEstimate(p *board.Puzzle) float64 {
	numCages := len(p.Cages)
	score := 0.0

	totalSize := 0
	large := 0
	complexOps := 0
	singles := 0
	div := 0
	mul := 0
	for _, cage := range p.Cages {
		n := len(cage.Cells)
		totalSize += n
		if n > 4 {
			large++
		}
		switch cage.Op {
		case board.OpMul:
			mul++
			complexOps++
		case board.OpDiv:
			div++
			complexOps++
		}
		if n == 1 {
			singles++
		}
	}

	avgSize := float64(totalSize) / float64(numCages)
	if avgSize > 3 {
		score += 3
	} else if avgSize > 2 {
		score += 1.5
	}

	if large > 0 && complexOps > p.Size/2 {
		score += 5
	} else if large > 0 || complexOps > p.Size {
		score += 2
	}

	if singles < p.Size/3 {
		score += 2
	}

	score += (float64(div)*1.5 + float64(mul)) / float64(numCages) * 5
	return score
}
