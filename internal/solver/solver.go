// Package solver determines whether an arithmetic Latin-square puzzle has
// exactly one solution, and reports how much search that determination cost.
//
// The search is backtracking over an explicit frame stack (one frame per
// tentative assignment, depth bounded by size²) with most-constrained-variable
// ordering and cage-aware pruning.  It reads only the puzzle definition,
// never a stored solution.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/heydenberk/arithmatrix/internal/board"
)

var (
	ErrNoSolution        = errors.New("puzzle has no solution")
	ErrMultipleSolutions = errors.New("puzzle has multiple solutions")
	ErrInvalidPuzzle     = errors.New("puzzle definition is invalid")
	ErrOperationLimit    = errors.New("solver operation limit exceeded")
)

// Stats counts the elementary search steps of one solve.  The total is a
// raw, implementation-sensitive difficulty proxy: useful as diagnostics and
// as scorer input, never shown to players directly.
type Stats struct {
	CandidateTests uint64
	Assignments    uint64
	Backtracks     uint64
}

// Operations returns the total elementary step count.
func (s Stats) Operations() uint64 {
	return s.CandidateTests + s.Assignments + s.Backtracks
}

// Options configures solver resource limits.
type Options struct {
	// MaxOperations aborts the search once Stats.Operations exceeds it.
	// Zero means unlimited.
	MaxOperations uint64
	// Timeout limits wall-clock solve time.  Zero means no timeout.
	Timeout time.Duration
}

// DefaultOptions returns unlimited solver options.
func DefaultOptions() *Options {
	return &Options{}
}

// Result carries the unique solution and the search cost.
type Result struct {
	Solution *board.Grid
	Stats    Stats
}

// Solver holds the search state for one puzzle.
type Solver struct {
	puzzle  *board.Puzzle
	options *Options

	size     int
	total    int
	full     uint  // bitmask with the low `size` bits set
	cellCage []int // cell position -> cage index

	values  []int // current assignment, board.EmptyCell when open
	rowMask []uint
	colMask []uint
	open    int // unassigned cell count

	stats Stats
}

// New creates a solver for the given puzzle.
// The puzzle must be a valid cage partition.
func New(p *board.Puzzle, options *Options) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}
	if options == nil {
		options = DefaultOptions()
	}
	cellCage, err := p.CellToCage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	total := p.Size * p.Size
	return &Solver{
		puzzle:   p,
		options:  options,
		size:     p.Size,
		total:    total,
		full:     uint(1<<p.Size) - 1,
		cellCage: cellCage,
		values:   make([]int, total),
		rowMask:  make([]uint, p.Size),
		colMask:  make([]uint, p.Size),
		open:     total,
	}, nil
}

// frame is one level of the explicit search stack: the cell being branched
// on, its candidate values (ascending, fixed at push time), a cursor, and
// whether the cell currently holds a tried candidate.
type frame struct {
	pos        int
	candidates []int
	next       int
	assigned   bool
}

// Solve runs the full search.  It does not stop at the first solution: the
// search continues until the space is exhausted (zero or one solutions) or a
// second solution appears, which is reported immediately as
// ErrMultipleSolutions.  Stats are valid on every return path.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	var first *board.Grid

	stack := make([]frame, 0, s.total)
	stack = append(stack, s.selectCell())

	iter := 0
	for len(stack) > 0 {
		if iter&0x3ff == 0 {
			if err := ctx.Err(); err != nil {
				return &Result{Stats: s.stats}, fmt.Errorf("solver interrupted: %w", err)
			}
		}
		iter++
		if s.options.MaxOperations > 0 && s.stats.Operations() > s.options.MaxOperations {
			return &Result{Stats: s.stats}, ErrOperationLimit
		}

		f := &stack[len(stack)-1]

		// Undo this frame's previous candidate before moving on.
		if f.assigned {
			s.unassign(f.pos)
			f.assigned = false
			s.stats.Backtracks++
		}

		if f.next >= len(f.candidates) {
			stack = stack[:len(stack)-1]
			continue
		}

		val := f.candidates[f.next]
		f.next++
		s.stats.CandidateTests++

		if !s.feasible(f.pos, val) {
			continue
		}

		s.assign(f.pos, val)
		f.assigned = true
		s.stats.Assignments++

		if s.open == 0 {
			// Every cage was validated exactly as its last cell was
			// assigned, so a full grid is a full solution.
			if first != nil {
				return &Result{Stats: s.stats}, ErrMultipleSolutions
			}
			first = s.snapshot()
			continue
		}

		stack = append(stack, s.selectCell())
	}

	if first == nil {
		return &Result{Stats: s.stats}, ErrNoSolution
	}
	return &Result{Solution: first, Stats: s.stats}, nil
}

// selectCell picks the open cell with the fewest remaining candidates
// (most-constrained-variable).  Scanning ascending with a strict comparison
// breaks ties toward the lowest cell index, keeping the search deterministic.
func (s *Solver) selectCell() frame {
	bestPos := -1
	bestCount := s.size + 1
	var bestMask uint

	for pos := 0; pos < s.total; pos++ {
		if s.values[pos] != board.EmptyCell {
			continue
		}
		mask := s.candidateMask(pos)
		count := bits.OnesCount(mask)
		if count < bestCount {
			bestCount = count
			bestPos = pos
			bestMask = mask
			if count <= 1 {
				break
			}
		}
	}

	candidates := make([]int, 0, bestCount)
	for v := 1; v <= s.size; v++ {
		if bestMask&(1<<(v-1)) != 0 {
			candidates = append(candidates, v)
		}
	}
	return frame{pos: bestPos, candidates: candidates}
}

// candidateMask returns the bitmask of values legal for pos under the
// Latin-square row/column rule.  Bit i represents value i+1.
func (s *Solver) candidateMask(pos int) uint {
	row, col := pos/s.size, pos%s.size
	return s.full &^ s.rowMask[row] &^ s.colMask[col]
}

func (s *Solver) assign(pos, val int) {
	row, col := pos/s.size, pos%s.size
	mask := uint(1 << (val - 1))
	s.values[pos] = val
	s.rowMask[row] |= mask
	s.colMask[col] |= mask
	s.open--
}

func (s *Solver) unassign(pos int) {
	val := s.values[pos]
	row, col := pos/s.size, pos%s.size
	mask := uint(1 << (val - 1))
	s.values[pos] = board.EmptyCell
	s.rowMask[row] &^= mask
	s.colMask[col] &^= mask
	s.open++
}

// snapshot copies the current (complete) assignment into a Grid.
func (s *Solver) snapshot() *board.Grid {
	g, err := board.New(s.size)
	if err != nil {
		panic("solver: snapshot of invalid size")
	}
	for pos, val := range s.values {
		g.SetForce(pos, val)
	}
	return g
}

// feasible reports whether tentatively placing val at pos keeps the cell's
// cage satisfiable.  A fully assigned cage must match its target exactly;
// a partial cage is pruned when no completion could reach the target.
func (s *Solver) feasible(pos, val int) bool {
	cage := s.puzzle.Cages[s.cellCage[pos]]

	assigned := make([]int, 0, len(cage.Cells))
	unfilled := 0
	for _, cell := range cage.Cells {
		v := s.values[cell]
		if cell == pos {
			v = val
		}
		if v == board.EmptyCell {
			unfilled++
		} else {
			assigned = append(assigned, v)
		}
	}

	if unfilled == 0 {
		return cage.Check(assigned) == nil
	}
	return s.partialFeasible(cage, assigned, unfilled)
}

// partialFeasible applies per-operation bounds to a partially assigned cage.
func (s *Solver) partialFeasible(cage board.Cage, assigned []int, unfilled int) bool {
	switch cage.Op {
	case board.OpGiven:
		// Single-cell cages are complete as soon as their cell is assigned;
		// a partial OpGiven cage never reaches this path.
		return true

	case board.OpAdd:
		sum := 0
		for _, v := range assigned {
			sum += v
		}
		// Every open cell contributes at least 1 and at most size.
		if sum+unfilled > cage.Target {
			return false
		}
		if sum+unfilled*s.size < cage.Target {
			return false
		}
		return true

	case board.OpMul:
		prod := 1
		for _, v := range assigned {
			prod *= v
		}
		if prod > cage.Target || cage.Target%prod != 0 {
			return false
		}
		// Remaining cells multiply by at least 1 and at most size each.
		limit := prod
		for i := 0; i < unfilled; i++ {
			limit *= s.size
		}
		return limit >= cage.Target

	case board.OpSub:
		if len(assigned) != 1 {
			return true // both cells open: nothing to prune yet
		}
		v := assigned[0]
		lo, hi := v-cage.Target, v+cage.Target
		return (lo >= 1 && lo <= s.size) || (hi >= 1 && hi <= s.size)

	case board.OpDiv:
		if len(assigned) != 1 {
			return true
		}
		v := assigned[0]
		if prod := v * cage.Target; prod >= 1 && prod <= s.size && prod != v {
			return true
		}
		if cage.Target != 0 && v%cage.Target == 0 {
			if quot := v / cage.Target; quot >= 1 && quot <= s.size && quot != v {
				return true
			}
		}
		return false
	}
	return false
}
