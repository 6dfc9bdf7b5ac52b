package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"cigate/internal/tools"
)

// Markdown renders the report as a GitHub-flavored summary suitable for CI
// job summaries.
func Markdown(rep tools.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## cigate: %s\n\n", rep.Summary.OverallStatus)
	b.WriteString("| Tool | Status | Exit | Critical | Time |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, res := range rep.Results {
		crit := "no"
		if res.Critical {
			crit = "yes"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %d | %s | %.2fs |\n",
			res.Tool, StatusLabel(res), res.ExitCode, crit, float64(res.DurationMS)/1000)
	}
	fmt.Fprintf(&b, "\n%d tool(s), %d critical failure(s), %.2fs\n",
		rep.Summary.TotalToolsRun, rep.Summary.CriticalFailures, rep.Summary.ExecutionTime)

	for _, res := range rep.Results {
		if res.ExitCode == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", res.Tool)
		if res.Error != "" {
			fmt.Fprintf(&b, "%s\n\n", res.Error)
		}
		if lines := Excerpt(failureOutput(res.Stdout, res.Stderr), 20, 0); len(lines) > 0 {
			b.WriteString("```text\n")
			b.WriteString(strings.Join(lines, "\n"))
			b.WriteString("\n```\n")
		}
	}
	return b.String()
}

// RenderMarkdown styles markdown for a terminal of the given width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
