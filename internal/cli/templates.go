package cli

import (
	"fmt"
	"strings"

	"boardscan/internal/component"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the component classification templates",
	Long: `Prints the acceptance ranges used to classify blobs, in evaluation
order. The first template whose area, aspect ratio and circularity ranges
all contain a blob's metrics decides its type.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTemplates(params.Templates))
	return nil
}

func renderTemplates(templates []component.Template) string {
	cell := lipgloss.NewStyle().Width(16)
	header := cell.Foreground(muted)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		header.Width(4).Render("#"),
		header.Render("Type"),
		header.Render("Area"),
		header.Render("Aspect ratio"),
		header.Render("Circularity"),
	))
	for i, t := range templates {
		b.WriteByte('\n')
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			cell.Width(4).Render(fmt.Sprintf("%d", i+1)),
			cell.Bold(true).Render(string(t.Type)),
			cell.Render(formatRange(t.Area)),
			cell.Render(formatRange(t.AspectRatio)),
			cell.Render(formatRange(t.Circularity)),
		))
	}
	return b.String()
}

func formatRange(r component.Range) string {
	return fmt.Sprintf("%g - %g", r.Min, r.Max)
}
