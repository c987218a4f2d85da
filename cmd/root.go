package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heydenberk/arithmatrix/internal/config"
	"github.com/heydenberk/arithmatrix/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arithmatrix",
	Short: "Generate and rate arithmetic grid puzzles",
	Long: `Arithmatrix generates Latin-square arithmetic puzzles, verifies that
each has a unique solution, and rates its difficulty for human solvers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger = logging.Setup(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default searches for arithmatrix.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
