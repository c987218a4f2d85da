package difficulty

import "math"

// Shipped calibration versions.  Recalibration produces a new version and a
// new table set; existing versions are never edited.
const (
	OperationsTableVersion = "ops_v1"
	ScoreTableVersion      = "score_v2"
)

// defaultOperationTables hold empirical solver operation-count percentiles
// per grid size, built from the reference corpus.  They drive generation
// band targeting and the persisted target_difficulty_range.
var defaultOperationTables = map[int]Table{
	4: {Version: OperationsTableVersion, Bounds: [6]float64{10, 16, 18, 20, 22, 29}},
	5: {Version: OperationsTableVersion, Bounds: [6]float64{16, 24, 26, 28, 30, 40}},
	6: {Version: OperationsTableVersion, Bounds: [6]float64{28, 35, 37, 39, 42, 55}},
	7: {Version: OperationsTableVersion, Bounds: [6]float64{38, 47, 50, 52, 55, 65}},
}

// defaultScoreTables hold combined-score percentiles per grid size,
// calibrated against the same reference corpus.  They label
// actual_difficulty in persisted records.
var defaultScoreTables = map[int]Table{
	4: {Version: ScoreTableVersion, Bounds: [6]float64{2.2, 3.1, 3.6, 4.1, 4.7, 6.5}},
	5: {Version: ScoreTableVersion, Bounds: [6]float64{2.9, 3.9, 4.5, 5.1, 5.8, 8.0}},
	6: {Version: ScoreTableVersion, Bounds: [6]float64{3.6, 4.8, 5.5, 6.2, 7.1, 9.8}},
	7: {Version: ScoreTableVersion, Bounds: [6]float64{4.4, 5.8, 6.6, 7.4, 8.5, 11.6}},
}

// NewOperationsClassifier returns the classifier over solver operation
// counts used for generation targeting.
func NewOperationsClassifier() *Classifier {
	return NewClassifier(OperationsTableVersion, defaultOperationTables, extrapolatedOperationTable)
}

// NewScoreClassifier returns the classifier over combined difficulty
// scores used to label records.
func NewScoreClassifier() *Classifier {
	return NewClassifier(ScoreTableVersion, defaultScoreTables, extrapolatedScoreTable)
}

// extrapolatedOperationTable estimates operation-count boundaries for sizes
// outside the empirical tables.  The median follows the observed
// exponential growth of search cost with size; the spread grows with size
// under a log-normal-ish shape.  Extrapolated tables are deterministic and
// replaced by empirical ones once enough same-size puzzles exist.
func extrapolatedOperationTable(size int) Table {
	median := 0.007 * math.Pow(10.73, float64(size))
	spread := 4 * math.Pow(1.8, float64(size-4))

	lo := math.Max(1, median/spread)
	hi := median * spread

	return Table{
		Version: OperationsTableVersion + "-extrapolated",
		Bounds: [6]float64{
			lo,
			lo + (median-lo)*0.3,
			lo + (median-lo)*0.7,
			median + (hi-median)*0.2,
			median + (hi-median)*0.6,
			hi,
		},
	}
}

// extrapolatedScoreTable scales the nearest calibrated score table by the
// same linear size adjustment the scorer applies, keeping labels coherent
// with how scores themselves grow.
func extrapolatedScoreTable(size int) Table {
	ref := 7
	if size < 4 {
		ref = 4
	}
	base := defaultScoreTables[ref]
	factor := sizeAdjustment(size) / sizeAdjustment(ref)

	t := Table{Version: ScoreTableVersion + "-extrapolated"}
	for i, b := range base.Bounds {
		t.Bounds[i] = b * factor
	}
	return t
}
