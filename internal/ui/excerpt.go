package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"
)

// Excerpt returns the last maxLines non-blank lines of tool output with ANSI
// sequences removed, each truncated to width display cells.
func Excerpt(s string, maxLines, width int) []string {
	s = xansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var lines []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimRight(ln, " \t\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	if width > 0 {
		for i, ln := range lines {
			// tabs count as one cell in runewidth; expand first
			ln = strings.ReplaceAll(ln, "\t", "    ")
			if runewidth.StringWidth(ln) > width {
				ln = runewidth.Truncate(ln, width, "…")
			}
			lines[i] = ln
		}
	}
	return lines
}

// failureOutput joins both streams; ruff and mypy report on stdout while
// cargo writes diagnostics to stderr.
func failureOutput(stdout, stderr string) string {
	switch {
	case strings.TrimSpace(stderr) == "":
		return stdout
	case strings.TrimSpace(stdout) == "":
		return stderr
	}
	return strings.TrimRight(stdout, "\n") + "\n" + stderr
}
