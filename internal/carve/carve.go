// Package carve implements randomized cage partitioning for arithmetic
// Latin-square puzzles.  It has no knowledge of the board or solver packages
// so that it can be imported without creating an import cycle; cages are
// plain slices of linear cell positions.
package carve

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

const (
	// MaxCageSize caps how many cells a single cage may span.  Larger cages
	// overwhelm human working memory and rarely admit unique puzzles.
	MaxCageSize = 5

	// DefaultMaxAttempts bounds full carve restarts before giving up.
	DefaultMaxAttempts = 500

	// maxPartitionDraws bounds the weighted size sampling.
	maxPartitionDraws = 10000
)

var (
	ErrCarveFailed = errors.New("could not carve grid into contiguous cages")
	ErrBadBias     = errors.New("cage size bias weights must not all be zero")
)

// Bias holds relative sampling weights for cage sizes 1..MaxCageSize.
type Bias [MaxCageSize]float64

// DefaultBias favors 2-cell cages with a sprinkling of singles and larger
// regions.
var DefaultBias = Bias{5, 20, 5, 7, 1}

// Carve partitions a size×size grid into contiguous cages.
//
// It first draws a multiset of cage sizes whose sum is size² (weighted by
// bias), then places cages largest-first: pick a random unclaimed cell and
// grow the cage by absorbing 4-connected unclaimed neighbors, preferring
// candidates that keep the most room around them so the leftover area does
// not fragment.  A placement that stalls fails the whole attempt; up to
// maxAttempts attempts are made before ErrCarveFailed is returned (pass 0
// for DefaultMaxAttempts).
//
// On success every cell belongs to exactly one cage and every cage is a
// single 4-connected region of 1..MaxCageSize cells.
func Carve(size int, rng *rand.Rand, bias Bias, maxAttempts int) ([][]int, error) {
	if size < 2 {
		return nil, fmt.Errorf("carve: size %d too small", size)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	total := size * size
	for attempt := 0; attempt < maxAttempts; attempt++ {
		sizes, err := samplePartition(rng, bias, total)
		if err != nil {
			return nil, err
		}
		if cages, ok := tryCarve(size, rng, sizes); ok {
			return cages, nil
		}
	}
	return nil, fmt.Errorf("%w: size %d after %d attempts", ErrCarveFailed, size, maxAttempts)
}

// samplePartition draws cage sizes in 1..MaxCageSize, weighted by bias, until
// they sum exactly to total.  Overshooting is impossible because only sizes
// that fit the remainder are sampled; the retry loop exists for the rare
// dead-end where no allowed size has weight.
func samplePartition(rng *rand.Rand, bias Bias, total int) ([]int, error) {
	weightSum := 0.0
	for _, w := range bias {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v", ErrBadBias, w)
		}
		weightSum += w
	}
	if weightSum == 0 {
		return nil, ErrBadBias
	}

	for draw := 0; draw < maxPartitionDraws; draw++ {
		sizes := make([]int, 0, total)
		remaining := total
		stuck := false
		for remaining > 0 {
			s := sampleSize(rng, bias, remaining)
			if s == 0 {
				stuck = true
				break
			}
			sizes = append(sizes, s)
			remaining -= s
		}
		if !stuck {
			return sizes, nil
		}
	}
	return nil, fmt.Errorf("%w: no partition of %d cells", ErrBadBias, total)
}

// sampleSize draws one cage size ≤ limit according to bias, or 0 if no
// allowed size carries weight.
func sampleSize(rng *rand.Rand, bias Bias, limit int) int {
	if limit > MaxCageSize {
		limit = MaxCageSize
	}
	sum := 0.0
	for i := 0; i < limit; i++ {
		sum += bias[i]
	}
	if sum == 0 {
		return 0
	}
	r := rng.Float64() * sum
	for i := 0; i < limit; i++ {
		r -= bias[i]
		if r < 0 {
			return i + 1
		}
	}
	return limit
}

// tryCarve runs one placement attempt over a fixed size multiset.
func tryCarve(size int, rng *rand.Rand, cageSizes []int) ([][]int, bool) {
	// Largest first: big cages need the most contiguous room.
	ordered := make([]int, len(cageSizes))
	copy(ordered, cageSizes)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	total := size * size
	used := make([]bool, total)
	cages := make([][]int, 0, len(ordered))

	starts := make([]int, total)
	for i := range starts {
		starts[i] = i
	}

	for _, target := range ordered {
		rng.Shuffle(len(starts), func(i, j int) {
			starts[i], starts[j] = starts[j], starts[i]
		})

		placed := false
		for _, start := range starts {
			if used[start] {
				continue
			}
			if cells, ok := growCage(size, used, start, target, rng); ok {
				sort.Ints(cells)
				cages = append(cages, cells)
				placed = true
				break
			}
		}
		if !placed {
			return nil, false
		}
	}
	return cages, true
}

// growCage grows a cage from start to exactly target cells by absorbing
// 4-connected unclaimed neighbors.  Candidates with the most unclaimed
// neighbors of their own are preferred (random tie-breaking) so growth does
// not strand isolated cells.  On failure the used markers are rolled back.
func growCage(size int, used []bool, start, target int, rng *rand.Rand) ([]int, bool) {
	cells := make([]int, 0, target)
	cells = append(cells, start)
	used[start] = true

	for len(cells) < target {
		bestPos := -1
		bestFree := -1
		seen := make(map[int]bool)

		for _, pos := range cells {
			for _, nb := range neighbors(size, pos) {
				if used[nb] || seen[nb] {
					continue
				}
				seen[nb] = true
				free := 0
				for _, nn := range neighbors(size, nb) {
					if !used[nn] {
						free++
					}
				}
				if free > bestFree || (free == bestFree && rng.Intn(2) == 0) {
					bestFree = free
					bestPos = nb
				}
			}
		}

		if bestPos == -1 {
			for _, pos := range cells {
				used[pos] = false
			}
			return nil, false
		}
		cells = append(cells, bestPos)
		used[bestPos] = true
	}
	return cells, true
}

// neighbors returns the in-bounds orthogonal neighbors of pos.
func neighbors(size, pos int) []int {
	row, col := pos/size, pos%size
	var buf [4]int
	n := 0
	if row > 0 {
		buf[n] = pos - size
		n++
	}
	if row < size-1 {
		buf[n] = pos + size
		n++
	}
	if col > 0 {
		buf[n] = pos - 1
		n++
	}
	if col < size-1 {
		buf[n] = pos + 1
		n++
	}
	return buf[:n]
}
