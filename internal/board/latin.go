package board

import "math/rand"

// GenerateLatin builds a random valid size×size Latin square.
//
// Construction starts from the cyclic base square (the addition table of
// ℤ_size, values shifted to 1..size) and applies size² random isotopy moves.
// Each move (swapping two rows, two columns, or two symbols) maps a Latin
// square to a Latin square, so the result never needs re-validation.
func GenerateLatin(size int, rng *rand.Rand) (*Grid, error) {
	g, err := New(size)
	if err != nil {
		return nil, err
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g.cells[r*size+c] = (r+c)%size + 1
		}
	}

	steps := size * size
	for i := 0; i < steps; i++ {
		isotopyMove(g, rng)
	}
	return g, nil
}

// isotopyMove applies one random legality-preserving transformation.
func isotopyMove(g *Grid, rng *rand.Rand) {
	n := g.size
	a := rng.Intn(n)
	b := rng.Intn(n - 1)
	if b >= a {
		b++
	}

	switch rng.Intn(3) {
	case 0: // row swap
		ra, rb := g.cells[a*n:(a+1)*n], g.cells[b*n:(b+1)*n]
		for i := 0; i < n; i++ {
			ra[i], rb[i] = rb[i], ra[i]
		}
	case 1: // column swap
		for r := 0; r < n; r++ {
			g.cells[r*n+a], g.cells[r*n+b] = g.cells[r*n+b], g.cells[r*n+a]
		}
	default: // symbol swap
		sa, sb := a+1, b+1
		for i, v := range g.cells {
			if v == sa {
				g.cells[i] = sb
			} else if v == sb {
				g.cells[i] = sa
			}
		}
	}
}
