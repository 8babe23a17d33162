// Package cli implements the boardscan command tree.
package cli

import (
	"fmt"
	"os"

	"boardscan/internal/config"
	"boardscan/internal/logger"
	"boardscan/internal/version"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "boardscan",
	Short: "Reconstruct a circuit model from a board photo",
	Long: `Detects components and traces in a raster image of a circuit board,
infers their connections, classifies what the circuit probably does and
draws a schematic. Every number it reports is a coarse estimate.

Examples:
  boardscan analyze board.png                 # Print a summary
  boardscan analyze board.png --json          # Full result as JSON
  boardscan export board.png -o board.svg     # Write the schematic
  boardscan watch ./scans                     # Analyze images as they arrive`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetOutput(cmd.ErrOrStderr())
	},
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML parameter file")
}

// loadParams returns the defaults, or the --config file over them.
func loadParams() (config.Params, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	p, err := config.Load(configPath)
	if err != nil {
		return p, err
	}
	logger.Info("config: loaded %s", configPath)
	return p, nil
}
