package board

import "fmt"

// Operation is the arithmetic constraint bound to a cage.
type Operation string

const (
	OpGiven Operation = "=" // single-cell cage, target is the cell value
	OpAdd   Operation = "+"
	OpSub   Operation = "-"
	OpMul   Operation = "*"
	OpDiv   Operation = "/"
)

// Valid reports whether op is one of the five supported operations.
func (op Operation) Valid() bool {
	switch op {
	case OpGiven, OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Cage is a group of cells bound by one arithmetic constraint.
// Cells are linear positions (row*size+col), kept sorted ascending.
type Cage struct {
	Cells  []int     `json:"cells"`
	Op     Operation `json:"operation"`
	Target int       `json:"value"`
}

// Eval applies the cage's operation to the given values and returns the
// result. The operand count must match the operation's arity: OpGiven takes
// exactly one value; OpSub and OpDiv take exactly two (subtraction is the
// absolute difference, division the exact quotient of larger by smaller).
func (c Cage) Eval(values []int) (int, error) {
	switch c.Op {
	case OpGiven:
		if len(values) != 1 {
			return 0, fmt.Errorf("%w: %q over %d cells", ErrAmbiguousConstraint, c.Op, len(values))
		}
		return values[0], nil

	case OpAdd:
		sum := 0
		for _, v := range values {
			sum += v
		}
		return sum, nil

	case OpMul:
		prod := 1
		for _, v := range values {
			prod *= v
		}
		return prod, nil

	case OpSub:
		if len(values) != 2 {
			return 0, fmt.Errorf("%w: %q over %d cells", ErrAmbiguousConstraint, c.Op, len(values))
		}
		d := values[0] - values[1]
		if d < 0 {
			d = -d
		}
		return d, nil

	case OpDiv:
		if len(values) != 2 {
			return 0, fmt.Errorf("%w: %q over %d cells", ErrAmbiguousConstraint, c.Op, len(values))
		}
		hi, lo := values[0], values[1]
		if hi < lo {
			hi, lo = lo, hi
		}
		if lo == 0 || hi%lo != 0 {
			return 0, fmt.Errorf("%w: %d/%d", ErrInexactQuotient, hi, lo)
		}
		return hi / lo, nil
	}
	return 0, fmt.Errorf("unknown operation %q", c.Op)
}

// Check verifies that the given values produce exactly the cage's target.
func (c Cage) Check(values []int) error {
	got, err := c.Eval(values)
	if err != nil {
		return err
	}
	if got != c.Target {
		return fmt.Errorf("%w: %q over %v gives %d, want %d", ErrTargetMismatch, c.Op, values, got, c.Target)
	}
	return nil
}

// Values extracts the cage's cell values from a grid.
func (c Cage) Values(g *Grid) []int {
	values := make([]int, len(c.Cells))
	for i, pos := range c.Cells {
		values[i] = g.At(pos)
	}
	return values
}
