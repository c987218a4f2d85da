package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heydenberk/arithmatrix/internal/board"
	"github.com/heydenberk/arithmatrix/internal/corpus"
	"github.com/heydenberk/arithmatrix/internal/solver"
)

var resolve bool

func init() {
	verifyCmd := &cobra.Command{
		Use:   "verify <corpus.jsonl>",
		Short: "Verify a puzzle corpus",
		Long: `Verify that every record in a corpus file holds a well-formed puzzle whose
stored solution satisfies all cages. With --resolve, each puzzle is also
re-solved to confirm the solution is unique.`,
		Args: cobra.ExactArgs(1),
		RunE: runVerify,
	}

	verifyCmd.Flags().BoolVar(&resolve, "resolve", false, "Re-solve each puzzle to confirm uniqueness")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	records, err := corpus.ReadFile(args[0])
	if err != nil {
		return err
	}

	bad := 0
	for _, rec := range records {
		if err := verifyRecord(cmd, rec); err != nil {
			bad++
			logger.Warn("invalid record",
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()))
		}
	}

	fmt.Printf("Verified %d record(s): %d valid, %d invalid\n", len(records), len(records)-bad, bad)
	if bad > 0 {
		return fmt.Errorf("%d invalid record(s)", bad)
	}
	return nil
}

func verifyRecord(cmd *cobra.Command, rec corpus.Record) error {
	p, err := rec.BoardPuzzle()
	if err != nil {
		return err
	}

	solution, err := board.FromRows(rec.Puzzle.Solution)
	if err != nil {
		return err
	}
	if err := p.VerifySolution(solution); err != nil {
		return err
	}

	if resolve {
		s, err := solver.New(p, nil)
		if err != nil {
			return err
		}
		res, err := s.Solve(cmd.Context())
		if err != nil {
			return err
		}
		if !res.Solution.Equal(solution) {
			return fmt.Errorf("solver solution differs from stored solution")
		}
	}

	return nil
}
