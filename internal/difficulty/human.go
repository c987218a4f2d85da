package difficulty

import (
	"fmt"

	"github.com/heydenberk/arithmatrix/internal/board"
)

// Factors are the per-cage-structure complexity factors behind the solve
// time estimate.  Each captures excess difficulty over a plain puzzle of
// the same size; their sum drives the complexity multiplier.
type Factors struct {
	Operation   float64 `json:"operation_complexity"`
	CageSize    float64 `json:"cage_size_complexity"`
	LargeNumber float64 `json:"large_number_complexity"`
	Arithmetic  float64 `json:"arithmetic_complexity"`
	Visual      float64 `json:"visual_complexity"`
}

// Total is the summed excess complexity.
func (f Factors) Total() float64 {
	return f.Operation + f.CageSize + f.LargeNumber + f.Arithmetic + f.Visual
}

// HumanAnalysis is the human-facing difficulty estimate: a size-indexed
// base median solve time scaled by the puzzle's structural complexity.
type HumanAnalysis struct {
	BaseSeconds      float64  `json:"base_difficulty_seconds"`
	Multiplier       float64  `json:"complexity_multiplier"`
	Factors          Factors  `json:"complexity_factors"`
	Score            float64  `json:"human_difficulty_score"`
	EstimatedSeconds float64  `json:"estimated_solve_time_seconds"`
	SizeCategory     string   `json:"size_category"`
	Recommendations  []string `json:"recommendations"`
}

// baseSolveTimes are median real-world solve times in seconds by grid size.
var baseSolveTimes = map[int]float64{
	4: 35,
	5: 62.5,
	6: 159,
	7: 416,
}

// humanOperationCost multiplies solve time per operation kind.
var humanOperationCost = map[board.Operation]float64{
	board.OpGiven: 1.0,
	board.OpAdd:   1.1,
	board.OpSub:   1.3,
	board.OpMul:   2.0,
	board.OpDiv:   2.5,
}

// humanCageSizeCost multiplies solve time per cage size; larger cages fall
// back to 4.0.
var humanCageSizeCost = map[int]float64{
	1: 1.0,
	2: 1.2,
	3: 1.5,
	4: 2.0,
	5: 3.0,
}

// Analyze estimates human solve time for a puzzle.  The base median time
// for the grid size is multiplied by one plus the summed excess complexity
// factors.
func Analyze(p *board.Puzzle) HumanAnalysis {
	base := baseSeconds(p.Size)
	factors := complexityFactors(p)
	multiplier := 1.0 + factors.Total()
	estimate := base * multiplier

	return HumanAnalysis{
		BaseSeconds:      base,
		Multiplier:       multiplier,
		Factors:          factors,
		Score:            estimate,
		EstimatedSeconds: estimate,
		SizeCategory:     sizeCategory(p.Size),
		Recommendations:  recommendations(factors, p.Size),
	}
}

func baseSeconds(size int) float64 {
	if base, ok := baseSolveTimes[size]; ok {
		return base
	}
	return float64(size*size) * 10
}

func complexityFactors(p *board.Puzzle) Factors {
	numCages := float64(len(p.Cages))
	var f Factors

	for _, cage := range p.Cages {
		f.Operation += humanOperationCost[cage.Op] - 1.0

		sizeCost, ok := humanCageSizeCost[len(cage.Cells)]
		if !ok {
			sizeCost = 4.0
		}
		f.CageSize += sizeCost - 1.0
	}
	f.Operation /= numCages
	f.CageSize /= numCages

	// Targets far above the grid size tax mental arithmetic.
	largeTargets := 0
	for _, cage := range p.Cages {
		if cage.Target > p.Size*2 {
			largeTargets++
		}
	}
	f.LargeNumber = float64(largeTargets) / numCages * 0.3

	// Division demands factorization; big products are hard to factor too.
	arithmetic := 0.0
	for _, cage := range p.Cages {
		switch cage.Op {
		case board.OpDiv:
			arithmetic += 0.5
		case board.OpMul:
			if cage.Target > 20 {
				arithmetic += 0.3
			}
		}
	}
	f.Arithmetic = arithmetic / numCages

	f.Visual = visualComplexity(p)
	return f
}

// visualComplexity penalizes layouts that read badly: a grid dominated by
// single-cell cages, or wildly uneven cage sizes.
func visualComplexity(p *board.Puzzle) float64 {
	singles := 0
	for _, cage := range p.Cages {
		if len(cage.Cells) == 1 {
			singles++
		}
	}

	visual := 0.0
	if singles > p.Size/2 {
		visual += 0.2
	}
	if cageSizeVariance(p.Cages) > 2.0 {
		visual += 0.1
	}
	return visual
}

func sizeCategory(size int) string {
	switch {
	case size <= 4:
		return "Small (beginner-friendly)"
	case size == 5:
		return "Medium (standard)"
	case size == 6:
		return "Large (challenging)"
	default:
		return "Extra Large (expert level)"
	}
}

// recommendations flags the complexity factors that dominate this puzzle.
func recommendations(f Factors, size int) []string {
	var recs []string
	if f.Operation > 0.5 {
		recs = append(recs, "High operation complexity - consider reducing multiplication/division cages")
	}
	if f.CageSize > 0.8 {
		recs = append(recs, "Large cages present - humans struggle with 4+ cell cages")
	}
	if f.Arithmetic > 0.4 {
		recs = append(recs, "Complex arithmetic - large multiplication/division values")
	}
	if f.Visual > 0.2 {
		recs = append(recs, "Visual complexity detected - uneven cage distribution")
	}
	if size >= 7 {
		recs = append(recs, fmt.Sprintf("Large puzzle size (%d×%d) - expect significant solve time variance", size, size))
	}
	if len(recs) == 0 {
		recs = append(recs, "Well-balanced puzzle complexity for human solvers")
	}
	return recs
}
