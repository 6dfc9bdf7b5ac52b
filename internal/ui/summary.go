package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cigate/internal/tools"
)

// Status labels for a single tool.
const (
	LabelOK      = "OK"
	LabelFail    = "FAIL"
	LabelTimeout = "TIMEOUT"
	LabelMissing = "MISSING"
)

// excerptLines bounds the output shown under a failed tool.
const excerptLines = 8

// StatusLabel classifies a result for display.
func StatusLabel(res tools.ToolResult) string {
	switch {
	case !res.Available:
		return LabelMissing
	case res.ExitCode == tools.ExitTimeout && res.Error != "":
		return LabelTimeout
	case res.ExitCode != 0:
		return LabelFail
	}
	return LabelOK
}

func labelStyle(res tools.ToolResult) lipgloss.Style {
	switch StatusLabel(res) {
	case LabelOK:
		return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
	case LabelFail:
		if !res.Critical {
			return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Yellow)
		}
	}
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Red)
}

// ProgressLine renders the one-line status printed as each tool finishes,
// e.g. "  ruff-lint: FAIL".
func ProgressLine(res tools.ToolResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s: %s", res.Tool, labelStyle(res).Render(StatusLabel(res))))
	if res.ExitCode != 0 && !res.Critical {
		b.WriteString(MutedStyle().Render(" (advisory)"))
	}
	if res.Fixed {
		b.WriteString(MutedStyle().Render(" (fixed)"))
	}
	if res.Error != "" {
		b.WriteString(MutedStyle().Render(" · " + res.Error))
	}
	return b.String()
}

// SummaryOptions tunes WriteSummary.
type SummaryOptions struct {
	// ShowOutput prints an excerpt of each failed tool's output.
	ShowOutput bool
	Width      int
}

// WriteSummary prints the closing block of a human run: failure excerpts
// (optional), then status and duration.
func WriteSummary(w io.Writer, rep tools.Report, opt SummaryOptions) {
	width := opt.Width
	if width <= 0 {
		width = 100
	}
	if opt.ShowOutput {
		for _, res := range rep.Results {
			if res.ExitCode == 0 || !res.Available {
				continue
			}
			lines := Excerpt(failureOutput(res.Stdout, res.Stderr), excerptLines, width-4)
			if len(lines) == 0 {
				continue
			}
			fmt.Fprintf(w, "\n%s\n", AccentBold().Render(res.Tool))
			for _, ln := range lines {
				fmt.Fprintf(w, "    %s\n", MutedStyle().Render(ln))
			}
		}
	}

	chip := ChipStyle(Vitesse.Primary)
	if !rep.Passed() {
		chip = ChipStyle(Vitesse.Red)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Status: %s\n", chip.Render(rep.Summary.OverallStatus))
	if rep.Summary.CriticalFailures > 0 {
		fmt.Fprintf(w, "Critical failures: %d of %d\n", rep.Summary.CriticalFailures, rep.Summary.TotalToolsRun)
	}
	fmt.Fprintf(w, "Duration: %.2fs\n", rep.Summary.ExecutionTime)
}
