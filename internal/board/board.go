package board

import (
	"fmt"
	"strings"
)

const (
	// EmptyCell marks an unassigned cell.
	EmptyCell = 0

	// MinSize and MaxSize bound the supported grid sizes. The lower bound
	// keeps puzzles nontrivial; the upper bound keeps solver candidate
	// bitmasks comfortably inside a machine word.
	MinSize = 3
	MaxSize = 9
)

// Grid represents an N×N arithmetic Latin-square grid.
// Cells are addressed by linear position row*size+col and hold a value in
// 1..size, or EmptyCell when unassigned.
type Grid struct {
	size  int
	cells []int
}

// New creates an empty Grid of the given size.
func New(size int) (*Grid, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: size %d must be in range [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return &Grid{
		size:  size,
		cells: make([]int, size*size),
	}, nil
}

// FromRows creates a Grid from a row-major matrix.
func FromRows(rows [][]int) (*Grid, error) {
	g, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidSize, r, len(row), g.size)
		}
		for c, val := range row {
			if val != EmptyCell && (val < 1 || val > g.size) {
				return nil, fmt.Errorf("%w: value %d at (%d,%d) must be in 1..%d", ErrInvalidValue, val, r, c, g.size)
			}
			g.cells[r*g.size+c] = val
		}
	}
	return g, nil
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

// CellCount returns the total number of cells.
func (g *Grid) CellCount() int {
	return g.size * g.size
}

// Index transforms a row and column into a linear position.
func (g *Grid) Index(row, col int) int {
	return row*g.size + col
}

// RowCol transforms a linear position into a row and column.
func (g *Grid) RowCol(pos int) (row, col int) {
	return pos / g.size, pos % g.size
}

// At returns the value at the given position.
// Returns EmptyCell for out-of-range positions.
func (g *Grid) At(pos int) int {
	if pos < 0 || pos >= len(g.cells) {
		return EmptyCell
	}
	return g.cells[pos]
}

// Set places a value at the given position.
// Returns an error if the position or value is out of range; Latin-square
// legality is the caller's concern.
func (g *Grid) Set(pos, val int) error {
	if pos < 0 || pos >= len(g.cells) {
		return fmt.Errorf("%w: position %d must be in range [0, %d)", ErrInvalidPosition, pos, len(g.cells))
	}
	if val != EmptyCell && (val < 1 || val > g.size) {
		return fmt.Errorf("%w: got %d for size %d", ErrInvalidValue, val, g.size)
	}
	g.cells[pos] = val
	return nil
}

// SetForce places a value without range checks.
// Use only when certain the position and value are valid.
func (g *Grid) SetForce(pos, val int) {
	g.cells[pos] = val
}

// Clone creates an independent copy of the Grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := &Grid{
		size:  g.size,
		cells: make([]int, len(g.cells)),
	}
	copy(clone.cells, g.cells)
	return clone
}

// Rows returns the grid as a row-major matrix. The result is a copy.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for r := range rows {
		rows[r] = make([]int, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// Equal reports whether two grids have the same size and cell values.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.size != other.size {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// String returns a compact single-line representation, rows separated by '/'.
// Empty cells are represented as '.'.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < g.size; c++ {
			val := g.cells[r*g.size+c]
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(val))
			}
		}
	}
	return sb.String()
}

// Format returns a human-readable multi-line grid.
func (g *Grid) Format() string {
	var sb strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			val := g.cells[r*g.size+c]
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(val))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
