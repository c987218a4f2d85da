package corpus

import (
	"fmt"

	"github.com/heydenberk/arithmatrix/internal/difficulty"
)

// Recalibrate relabels every record against a new score classifier and
// writes the result to a new file. Labels and human analysis are recomputed
// from the stored puzzle; operation counts are preserved untouched for
// audit. The input corpus is never edited in place.
func Recalibrate(inPath, outPath string, scores *difficulty.Classifier, version string) (int, error) {
	records, err := ReadFile(inPath)
	if err != nil {
		return 0, err
	}

	w, err := NewWriter(outPath)
	if err != nil {
		return 0, err
	}

	relabeled := 0
	for _, rec := range records {
		p, err := rec.BoardPuzzle()
		if err != nil {
			continue
		}

		metrics := difficulty.Score(p, nil)
		level := scores.Classify(p.Size, metrics.Score)

		if rec.Metadata.ActualDifficulty != level.String() {
			relabeled++
		}
		rec.Metadata.ActualDifficulty = level.String()
		rec.Metadata.HumanAnalysis = difficulty.Analyze(p)
		rec.Metadata.GeneratorVersion = version

		if err := w.Append(rec); err != nil {
			w.Close()
			return relabeled, err
		}
	}

	if err := w.Close(); err != nil {
		return relabeled, fmt.Errorf("corpus: recalibrate %s: %w", outPath, err)
	}
	return relabeled, nil
}
