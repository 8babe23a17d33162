package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"boardscan/internal/schematic"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	exportScale  float64
)

var exportCmd = &cobra.Command{
	Use:   "export <image>",
	Short: "Write the synthesized schematic as SVG or PNG",
	Long: `Analyzes an image and writes its schematic. SVG output is a standalone
document on the canonical 1000x800 sheet; PNG output is a raster preview of
the same drawing.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "svg", "output format: svg or png")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default: <image>.schematic.<format>)")
	exportCmd.Flags().Float64Var(&exportScale, "scale", 1, "PNG pixels per sheet unit")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "svg" && format != "png" {
		return fmt.Errorf("unknown format %q (want svg or png)", exportFormat)
	}

	params, err := loadParams()
	if err != nil {
		return err
	}
	res, err := analyzeFile(args[0], params)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = replaceExt(args[0], schematicSuffix+"."+format)
	}
	if filepath.Clean(out) == filepath.Clean(args[0]) {
		return fmt.Errorf("output %s would overwrite the input image", out)
	}
	if err := writeSchematic(out, format, res.Schematic, exportScale); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+out))
	return nil
}

// writeSchematic renders m to path in the given format.
func writeSchematic(path, format string, m schematic.Model, scale float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if format == "png" {
		err = schematic.WritePNG(f, m, scale)
	} else {
		err = schematic.WriteSVG(f, m)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
