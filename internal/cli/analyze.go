package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"boardscan/internal/config"
	"boardscan/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	analyzeJSON bool
	analyzeOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a board image and print a summary",
	Long: `Runs the full pipeline on one image: shape extraction, component
classification, connectivity, netlist, behavior, power and signal flow.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "output", "o", "", "also write the full JSON result to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}

	res, err := analyzeFile(args[0], params)
	if err != nil {
		return err
	}

	if analyzeOut != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(analyzeOut, data, 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(filepath.Base(args[0]), res))
	return nil
}

// analyzeFile decodes and analyzes one image.
func analyzeFile(path string, params config.Params) (*pipeline.Result, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}
	res, err := pipeline.AnalyzeImage(img, params)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", filepath.Base(path), err)
	}
	return res, nil
}
