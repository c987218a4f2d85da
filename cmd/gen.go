package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heydenberk/arithmatrix/internal/batch"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
	"github.com/heydenberk/arithmatrix/internal/generator"
)

var (
	numPuzzles int
	gridSize   int
	level      string
	outputFile string
	workers    int
	seed       int64
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate puzzles",
		Long: `Generate one or more puzzles with a unique solution, optionally targeting
a difficulty level.

Examples:
  arithmatrix gen -s 6
  arithmatrix gen -s 4 -n 100 -d medium -o puzzles.jsonl
  arithmatrix gen -s 7 --seed 42`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&numPuzzles, "number", "n", 1, "Number of puzzles to generate")
	genCmd.Flags().IntVarP(&gridSize, "size", "s", 0, "Grid size 3-9 (default from config)")
	genCmd.Flags().StringVarP(&level, "difficulty", "d", "", "Target difficulty: easiest, easy, medium, hard, expert")
	genCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Corpus output file (JSONL); omit to print to console")
	genCmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers for corpus output (0 = one per CPU)")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = from clock)")

	rootCmd.AddCommand(genCmd)
}

func parseTarget(s string) (*difficulty.Level, error) {
	if s == "" {
		return nil, nil
	}
	l, err := difficulty.ParseLevel(s)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func runGen(cmd *cobra.Command, args []string) error {
	size := gridSize
	if size == 0 {
		size = cfg.Generator.Size
	}

	target, err := parseTarget(level)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if workers == 0 {
			workers = cfg.Batch.Workers
		}
		summary, err := batch.Run(cmd.Context(), batch.Options{
			Size:    size,
			Count:   numPuzzles,
			Target:  target,
			Seed:    seed,
			Workers: workers,
			Output:  outputFile,
			Version: fmt.Sprintf("arithmatrix/1.0 %s", difficulty.ScoreTableVersion),
		}, logger)
		if err != nil {
			return err
		}
		logger.Info("batch complete",
			slog.Int("requested", summary.Requested),
			slog.Int("generated", summary.Generated),
			slog.Int("failed", summary.Failed),
			slog.Duration("elapsed", summary.Elapsed))
		fmt.Printf("Generated %d/%d puzzle(s) in %s\n", summary.Generated, summary.Requested, outputFile)
		for _, l := range difficulty.Levels() {
			if n := summary.Levels[l.String()]; n > 0 {
				fmt.Printf("  %-8s %d\n", l.String(), n)
			}
		}
		return nil
	}

	opts := generator.DefaultOptions(size)
	opts.Seed = seed
	opts.Target = target
	opts.MaxAttempts = cfg.Generator.MaxAttempts
	opts.MaxDifficultyAttempts = cfg.Generator.MaxDifficultyAttempts
	opts.MaxCarveAttempts = cfg.Generator.MaxCarveAttempts

	gen, err := generator.New(opts)
	if err != nil {
		return err
	}

	for i := 0; i < numPuzzles; i++ {
		res, err := gen.Generate(cmd.Context())
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		printResult(i+1, res)
	}

	return nil
}

func printResult(n int, res *generator.Result) {
	fmt.Printf("Puzzle #%d (%dx%d):\n", n, res.Puzzle.Size, res.Puzzle.Size)

	for _, cage := range res.Puzzle.Cages {
		cells := make([]string, len(cage.Cells))
		for i, pos := range cage.Cells {
			cells[i] = fmt.Sprintf("(%d,%d)", pos/res.Puzzle.Size, pos%res.Puzzle.Size)
		}
		fmt.Printf("  %3d%s  %s\n", cage.Target, cage.Op, strings.Join(cells, " "))
	}

	fmt.Println("\nSolution:")
	fmt.Println(res.Solution.Format())
	fmt.Printf("Score: %.2f  Operations: %d  Estimated solve time: %.0fs\n\n",
		res.Metrics.Score, res.Operations, res.Analysis.EstimatedSeconds)
}
