package batch

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/corpus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunProducesMergedCorpus(t *testing.T) {
	output := filepath.Join(t.TempDir(), "puzzles.jsonl")

	summary, err := Run(context.Background(), Options{
		Size:    4,
		Count:   6,
		Seed:    42,
		Workers: 3,
		Output:  output,
		Version: "test",
	}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Requested)
	assert.Equal(t, 6, summary.Generated+summary.Failed)

	records, err := corpus.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, records, summary.Generated)

	for _, rec := range records {
		p, err := rec.BoardPuzzle()
		require.NoError(t, err)

		solution, err := board.FromRows(rec.Puzzle.Solution)
		require.NoError(t, err)
		require.NoError(t, p.VerifySolution(solution))

		assert.Equal(t, "test", rec.Metadata.GeneratorVersion)
		assert.Contains(t, summary.Levels, rec.Metadata.ActualDifficulty)
	}

	total := 0
	for _, n := range summary.Levels {
		total += n
	}
	assert.Equal(t, summary.Generated, total)

	// No shard files left behind.
	leftovers, err := filepath.Glob(output + ".shard-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRunRejectsBadCount(t *testing.T) {
	_, err := Run(context.Background(), Options{Size: 4, Count: 0}, discardLogger())
	assert.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output := filepath.Join(t.TempDir(), "puzzles.jsonl")
	_, err := Run(ctx, Options{
		Size:   4,
		Count:  4,
		Seed:   1,
		Output: output,
	}, discardLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
