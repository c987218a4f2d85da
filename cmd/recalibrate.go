package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heydenberk/arithmatrix/internal/corpus"
	"github.com/heydenberk/arithmatrix/internal/difficulty"
)

var recalibrateOut string

func init() {
	recalibrateCmd := &cobra.Command{
		Use:   "recalibrate <corpus.jsonl>",
		Short: "Relabel a corpus against the current difficulty tables",
		Long: `Recalibrate rewrites a corpus with difficulty labels recomputed from the
current score classifier. The input file is left untouched; a relabeled copy
is written to --output. Operation counts are preserved for audit.`,
		Args: cobra.ExactArgs(1),
		RunE: runRecalibrate,
	}

	recalibrateCmd.Flags().StringVarP(&recalibrateOut, "output", "o", "", "Output file for the relabeled corpus (required)")
	recalibrateCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(recalibrateCmd)
}

func runRecalibrate(cmd *cobra.Command, args []string) error {
	if recalibrateOut == args[0] {
		return fmt.Errorf("output must differ from input, recalibration never edits in place")
	}

	scores := difficulty.NewScoreClassifier()
	version := fmt.Sprintf("arithmatrix/1.0 %s", scores.Version())

	relabeled, err := corpus.Recalibrate(args[0], recalibrateOut, scores, version)
	if err != nil {
		return err
	}

	fmt.Printf("Recalibrated corpus written to %s (%d record(s) relabeled)\n", recalibrateOut, relabeled)
	return nil
}
