package board

// IsLatin reports whether every row and column is a permutation of 1..size.
// A grid containing empty cells is never a valid Latin square.
func (g *Grid) IsLatin() bool {
	n := g.size
	for i := 0; i < n; i++ {
		var rowMask, colMask uint
		for j := 0; j < n; j++ {
			rv := g.cells[i*n+j]
			cv := g.cells[j*n+i]
			if rv == EmptyCell || cv == EmptyCell {
				return false
			}
			rowMask |= 1 << (rv - 1)
			colMask |= 1 << (cv - 1)
		}
		full := uint(1<<n) - 1
		if rowMask != full || colMask != full {
			return false
		}
	}
	return true
}
