package cli

import (
	"fmt"
	"strings"

	"boardscan/internal/pipeline"
	"boardscan/internal/power"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#7C3AED")
	muted  = lipgloss.Color("#6C7086")
	good   = lipgloss.Color("#059669")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	keyStyle   = lipgloss.NewStyle().Foreground(muted).Width(16)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	okStyle = lipgloss.NewStyle().Foreground(good)
)

func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value))
}

// renderSummary formats the headline numbers of a run.
func renderSummary(title string, res *pipeline.Result) string {
	s := res.Summary

	var counts []string
	for _, tc := range s.ByType {
		counts = append(counts, fmt.Sprintf("%s %d", tc.Type, tc.Count))
	}
	if len(counts) == 0 {
		counts = []string{"none"}
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		row("Components", fmt.Sprintf("%d (%d types)", s.ComponentCount, s.TypeCount)),
		row("By type", strings.Join(counts, ", ")),
		row("Traces", fmt.Sprintf("%d", s.TraceCount)),
		row("Connections", fmt.Sprintf("%d", len(res.Analysis.Connections))),
		row("Nets", fmt.Sprintf("%d", len(res.Analysis.Netlist.Nets))),
		row("Circuit type", s.CircuitType),
		row("Functions", strings.Join(s.Functions, ", ")),
		row("Power", fmt.Sprintf("%g mW (estimate)", s.TotalPowerMW)),
		row("Power rails", sectionText(res.Analysis.Power.PowerRails)),
		row("Feedback", sectionText(res.Analysis.SignalFlow.FeedbackPaths)),
		row("Schematic", res.Schematic.Title),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// sectionText reports a section's item count, or why it was skipped.
func sectionText[T any](sec power.Section[T]) string {
	if !sec.IsComputed() {
		return "not computed"
	}
	return fmt.Sprintf("%d", len(sec.Items))
}
