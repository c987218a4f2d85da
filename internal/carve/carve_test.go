package carve

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarvePartitionsTheGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for size := 3; size <= 7; size++ {
		for trial := 0; trial < 10; trial++ {
			cages, err := Carve(size, rng, DefaultBias, DefaultMaxAttempts)
			require.NoError(t, err, "size %d trial %d", size, trial)

			seen := make([]bool, size*size)
			for _, cage := range cages {
				require.NotEmpty(t, cage)
				assert.LessOrEqual(t, len(cage), MaxCageSize)
				assert.True(t, isConnected(size, cage), "size %d cage %v", size, cage)
				for _, pos := range cage {
					require.False(t, seen[pos], "cell %d claimed twice", pos)
					seen[pos] = true
				}
			}
			for pos, ok := range seen {
				assert.True(t, ok, "cell %d uncovered", pos)
			}
		}
	}
}

func TestCarveIsSeedDeterministic(t *testing.T) {
	a, err := Carve(5, rand.New(rand.NewSource(99)), DefaultBias, DefaultMaxAttempts)
	require.NoError(t, err)
	b, err := Carve(5, rand.New(rand.NewSource(99)), DefaultBias, DefaultMaxAttempts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCarveRejectsBadBias(t *testing.T) {
	_, err := Carve(4, rand.New(rand.NewSource(1)), Bias{0, 0, 0, 0, 0}, DefaultMaxAttempts)
	assert.ErrorIs(t, err, ErrBadBias)

	_, err = Carve(4, rand.New(rand.NewSource(1)), Bias{-1, 2, 0, 0, 0}, DefaultMaxAttempts)
	assert.ErrorIs(t, err, ErrBadBias)
}

func TestSamplePartitionSumsToTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		sizes, err := samplePartition(rng, DefaultBias, 36)
		require.NoError(t, err)

		sum := 0
		for _, s := range sizes {
			require.GreaterOrEqual(t, s, 1)
			require.LessOrEqual(t, s, MaxCageSize)
			sum += s
		}
		assert.Equal(t, 36, sum)
	}
}

func TestNeighbors(t *testing.T) {
	// Corner, edge, interior of a 4x4 grid.
	assert.ElementsMatch(t, []int{1, 4}, neighbors(4, 0))
	assert.ElementsMatch(t, []int{0, 2, 5}, neighbors(4, 1))
	assert.ElementsMatch(t, []int{1, 4, 6, 9}, neighbors(4, 5))
	assert.ElementsMatch(t, []int{11, 14}, neighbors(4, 15))
}

func isConnected(size int, cells []int) bool {
	inCage := make(map[int]bool, len(cells))
	for _, pos := range cells {
		inCage[pos] = true
	}

	visited := map[int]bool{cells[0]: true}
	queue := []int{cells[0]}
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		for _, nb := range neighbors(size, pos) {
			if inCage[nb] && !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return len(visited) == len(cells)
}
