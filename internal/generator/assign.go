package generator

import (
	"math/rand"

	"github.com/heydenberk/arithmatrix/internal/board"
)

// maxProductTarget caps multiplication targets for cages of three or more
// cells; larger products fall back to addition.
const maxProductTarget = 50

var pairOperations = []board.Operation{board.OpAdd, board.OpSub, board.OpMul, board.OpDiv}

// assignConstraints derives an operation and target for each cage from the
// solution values it covers. Single cells become givens. Pairs draw from all
// four operations in random order, keeping the first that yields an exact
// integer target. Larger cages multiply when the product stays small and
// add otherwise.
func assignConstraints(cages [][]int, solution *board.Grid, rng *rand.Rand) []board.Cage {
	assigned := make([]board.Cage, 0, len(cages))

	for _, cells := range cages {
		values := make([]int, len(cells))
		for i, pos := range cells {
			values[i] = solution.At(pos)
		}

		cage := board.Cage{Cells: cells}

		switch len(cells) {
		case 1:
			cage.Op = board.OpGiven
			cage.Target = values[0]
		case 2:
			cage.Op, cage.Target = pairConstraint(values[0], values[1], rng)
		default:
			product := 1
			for _, v := range values {
				product *= v
			}
			if product <= maxProductTarget {
				cage.Op = board.OpMul
				cage.Target = product
			} else {
				cage.Op = board.OpAdd
				cage.Target = values[0]
				for _, v := range values[1:] {
					cage.Target += v
				}
			}
		}

		assigned = append(assigned, cage)
	}

	return assigned
}

// pairConstraint picks an operation for a two-cell cage. Division is only
// eligible when the quotient is exact; subtraction and addition always are.
func pairConstraint(a, b int, rng *rand.Rand) (board.Operation, int) {
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}

	order := rng.Perm(len(pairOperations))
	for _, i := range order {
		switch pairOperations[i] {
		case board.OpAdd:
			return board.OpAdd, a + b
		case board.OpSub:
			return board.OpSub, hi - lo
		case board.OpMul:
			return board.OpMul, a * b
		case board.OpDiv:
			if hi%lo == 0 {
				return board.OpDiv, hi / lo
			}
		}
	}

	return board.OpAdd, a + b
}
