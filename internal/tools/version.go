package tools

import (
	"regexp"
	"strings"
)

// matches "0.6.9", "v1.2.3", "1.80.0-nightly"
var verRe = regexp.MustCompile(`(?i)\bv?(\d+\.\d+(?:\.\d+)?(?:-[\w\.]+)?)\b`)

// ParseVersion extracts the first version number from tool output, e.g.
// "ruff 0.6.9", "mypy 1.11.2 (compiled: yes)" or "cargo 1.80.0 (376290515 2024-07-16)".
// Lines before the version (python warnings) are skipped.
func ParseVersion(s string) string {
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if m := verRe.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
