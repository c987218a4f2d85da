package difficulty

// Table is an immutable per-size percentile table: six score boundaries at
// the 0th/20th/40th/60th/80th/100th percentiles of a reference corpus.
// Bucket k covers the half-open range [Bounds[k], Bounds[k+1]); a score
// below Bounds[0] classifies as easiest and a score at or above Bounds[5]
// as expert, so classification never fails.
type Table struct {
	Version string
	Bounds  [6]float64
}

// Level locates the bucket containing score.  Classification is pure and
// deterministic: the same table and score always give the same label.
func (t Table) Level(score float64) Level {
	for l := Expert; l > Easiest; l-- {
		if score >= t.Bounds[l] {
			return l
		}
	}
	return Easiest
}

// Band returns the half-open [lo, hi) score range of a level.
func (t Table) Band(l Level) (lo, hi float64) {
	return t.Bounds[l], t.Bounds[l+1]
}

// Classifier maps scores to labels using per-size tables.  Tables are
// loaded once at construction and never mutated, so concurrent workers can
// classify without locking; recalibration builds a new Classifier under a
// new version rather than editing one in use.
type Classifier struct {
	version     string
	tables      map[int]Table
	extrapolate func(size int) Table
}

// NewClassifier builds a classifier over a fixed table set.  Sizes without
// a table are served by the extrapolate function (required).
func NewClassifier(version string, tables map[int]Table, extrapolate func(size int) Table) *Classifier {
	copied := make(map[int]Table, len(tables))
	for size, t := range tables {
		copied[size] = t
	}
	return &Classifier{
		version:     version,
		tables:      copied,
		extrapolate: extrapolate,
	}
}

// Version identifies the calibration this classifier was built from.
func (c *Classifier) Version() string {
	return c.version
}

// Table returns the boundary table for a size, extrapolating when no
// precomputed table exists.
func (c *Classifier) Table(size int) Table {
	if t, ok := c.tables[size]; ok {
		return t
	}
	return c.extrapolate(size)
}

// Classify maps a score to its percentile label for the given size.
func (c *Classifier) Classify(size int, score float64) Level {
	return c.Table(size).Level(score)
}

// Band returns the half-open [lo, hi) score range of a level for a size.
func (c *Classifier) Band(size int, l Level) (lo, hi float64) {
	return c.Table(size).Band(l)
}
