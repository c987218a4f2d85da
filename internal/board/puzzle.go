package board

import "fmt"

// Puzzle is the solver-facing definition of an arithmetic Latin-square
// puzzle: the grid size and the cage partition with constraints. It carries
// no solution.
//
// A Puzzle is immutable after construction; it is safe to share the same
// pointer across solver runs and workers.
type Puzzle struct {
	Size  int    `json:"size"`
	Cages []Cage `json:"cages"`
}

// Validate checks the structural invariants: every cage is non-empty with a
// valid operation, the cages cover all size² cells exactly once, and each
// cage's cells form a single 4-connected region.
func (p *Puzzle) Validate() error {
	if p.Size < MinSize || p.Size > MaxSize {
		return fmt.Errorf("%w: size %d", ErrInvalidSize, p.Size)
	}
	total := p.Size * p.Size

	seen := make([]bool, total)
	covered := 0
	for i, cage := range p.Cages {
		if len(cage.Cells) == 0 {
			return fmt.Errorf("%w: cage %d is empty", ErrBadPartition, i)
		}
		if !cage.Op.Valid() {
			return fmt.Errorf("cage %d has unknown operation %q", i, cage.Op)
		}
		if cage.Op == OpGiven && len(cage.Cells) != 1 {
			return fmt.Errorf("%w: %q over %d cells in cage %d", ErrAmbiguousConstraint, cage.Op, len(cage.Cells), i)
		}
		if (cage.Op == OpSub || cage.Op == OpDiv) && len(cage.Cells) != 2 {
			return fmt.Errorf("%w: %q over %d cells in cage %d", ErrAmbiguousConstraint, cage.Op, len(cage.Cells), i)
		}
		for _, pos := range cage.Cells {
			if pos < 0 || pos >= total {
				return fmt.Errorf("%w: cage %d references cell %d", ErrInvalidPosition, i, pos)
			}
			if seen[pos] {
				return fmt.Errorf("%w: cell %d claimed twice", ErrBadPartition, pos)
			}
			seen[pos] = true
			covered++
		}
		if !connected(p.Size, cage.Cells) {
			return fmt.Errorf("%w: cage %d", ErrDisconnectedCage, i)
		}
	}
	if covered != total {
		return fmt.Errorf("%w: %d of %d cells covered", ErrBadPartition, covered, total)
	}
	return nil
}

// CellToCage returns a lookup table mapping each cell position to the index
// of the cage that owns it. The puzzle must be a valid partition.
func (p *Puzzle) CellToCage() ([]int, error) {
	total := p.Size * p.Size
	owner := make([]int, total)
	for i := range owner {
		owner[i] = -1
	}
	for i, cage := range p.Cages {
		for _, pos := range cage.Cells {
			if pos < 0 || pos >= total || owner[pos] != -1 {
				return nil, fmt.Errorf("%w: cell %d", ErrBadPartition, pos)
			}
			owner[pos] = i
		}
	}
	for pos, c := range owner {
		if c == -1 {
			return nil, fmt.Errorf("%w: cell %d unclaimed", ErrBadPartition, pos)
		}
	}
	return owner, nil
}

// VerifySolution checks that the grid is a valid Latin square of the
// puzzle's size and that every cage evaluates to its stated target.
func (p *Puzzle) VerifySolution(g *Grid) error {
	if g.Size() != p.Size {
		return fmt.Errorf("%w: solution is %d×%d, puzzle is %d×%d", ErrInvalidSize, g.Size(), g.Size(), p.Size, p.Size)
	}
	if !g.IsLatin() {
		return ErrNotLatin
	}
	for i, cage := range p.Cages {
		if err := cage.Check(cage.Values(g)); err != nil {
			return fmt.Errorf("cage %d: %w", i, err)
		}
	}
	return nil
}

// connected reports whether the cells form a single 4-connected region.
func connected(size int, cells []int) bool {
	if len(cells) <= 1 {
		return true
	}
	inCage := make(map[int]bool, len(cells))
	for _, pos := range cells {
		inCage[pos] = true
	}

	visited := make(map[int]bool, len(cells))
	queue := []int{cells[0]}
	visited[cells[0]] = true

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		row, col := pos/size, pos%size

		var neighbors [4]int
		n := 0
		if row > 0 {
			neighbors[n] = pos - size
			n++
		}
		if row < size-1 {
			neighbors[n] = pos + size
			n++
		}
		if col > 0 {
			neighbors[n] = pos - 1
			n++
		}
		if col < size-1 {
			neighbors[n] = pos + 1
			n++
		}
		for _, nb := range neighbors[:n] {
			if inCage[nb] && !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return len(visited) == len(cells)
}
