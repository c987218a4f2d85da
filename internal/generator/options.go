package generator

import (
	"github.com/heydenberk/arithmatrix/internal/carve"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

const (
	DefaultMaxAttempts           = 100
	DefaultMaxDifficultyAttempts = 20
)

// Options configures puzzle generation behavior.
type Options struct {
	Size int   // Grid dimension
	Seed int64 // Seed for reproducible puzzles (0 = random)

	// Target restricts generation to puzzles whose solver operation count
	// falls inside the band for this difficulty level. nil disables targeting.
	Target *difficulty.Level

	// MaxAttempts bounds full restarts from a fresh Latin square.
	MaxAttempts int

	// MaxDifficultyAttempts bounds candidate puzzles drawn while targeting
	// a difficulty band. When exhausted the closest candidate is returned.
	MaxDifficultyAttempts int

	// MaxCarveAttempts bounds cage-carving retries per Latin square.
	MaxCarveAttempts int

	// CageBias weights cage sizes 1 through 5 during carving.
	CageBias carve.Bias

	// Solver configures the uniqueness check. nil means solver defaults.
	Solver *solver.Options
}

// DefaultOptions returns standard generator options for the given size.
func DefaultOptions(size int) *Options {
	return &Options{
		Size:                  size,
		Seed:                  0,
		Target:                nil,
		MaxAttempts:           DefaultMaxAttempts,
		MaxDifficultyAttempts: DefaultMaxDifficultyAttempts,
		MaxCarveAttempts:      carve.DefaultMaxAttempts,
		CageBias:              carve.DefaultBias,
		Solver:                nil,
	}
}
