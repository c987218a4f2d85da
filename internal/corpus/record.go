// Package corpus persists generated puzzles as JSON lines and serves the
// queries the game client makes against them.
package corpus

import (
	"time"

	"github.com/google/uuid"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/generator"
)

// PuzzleRecord is the playable portion of a corpus entry.
type PuzzleRecord struct {
	Size                 int          `json:"size"`
	Cages                []board.Cage `json:"cages"`
	Solution             [][]int      `json:"solution"`
	DifficultyOperations uint64       `json:"difficulty_operations"`
	TargetRange          [2]int       `json:"target_difficulty_range"`
}

// Metadata carries the ratings and provenance of a corpus entry.
type Metadata struct {
	Size             int                      `json:"size"`
	ActualDifficulty string                   `json:"actual_difficulty"`
	OperationCount   uint64                   `json:"operation_count"`
	GenerationTime   float64                  `json:"generation_time"`
	GeneratedAt      time.Time                `json:"generated_at"`
	GeneratorVersion string                   `json:"generator_version"`
	HumanAnalysis    difficulty.HumanAnalysis `json:"human_analysis"`
}

// Record is one corpus line.
type Record struct {
	ID       string       `json:"record_id"`
	Puzzle   PuzzleRecord `json:"puzzle"`
	Metadata Metadata     `json:"metadata"`
}

// NewRecord converts a generation result into a corpus record, labeling it
// with the given score classifier.
func NewRecord(res *generator.Result, scores *difficulty.Classifier, version string) Record {
	size := res.Puzzle.Size
	level := scores.Classify(size, res.Metrics.Score)

	return Record{
		ID: uuid.NewString(),
		Puzzle: PuzzleRecord{
			Size:                 size,
			Cages:                res.Puzzle.Cages,
			Solution:             res.Solution.Rows(),
			DifficultyOperations: res.Operations,
			TargetRange:          res.TargetRange,
		},
		Metadata: Metadata{
			Size:             size,
			ActualDifficulty: level.String(),
			OperationCount:   res.Operations,
			GenerationTime:   res.GenerationTime.Seconds(),
			GeneratedAt:      time.Now().UTC(),
			GeneratorVersion: version,
			HumanAnalysis:    res.Analysis,
		},
	}
}

// BoardPuzzle rebuilds the validated puzzle held by a record.
func (r Record) BoardPuzzle() (*board.Puzzle, error) {
	p := &board.Puzzle{Size: r.Puzzle.Size, Cages: r.Puzzle.Cages}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
