// Package targets resolves the paths handed to path-aware tools.
package targets

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve picks the effective target paths. Requested paths must exist;
// missing ones are reported through warn and dropped, and duplicates are
// removed keeping first occurrence. When nothing usable was requested the
// defaults are used as-is, since tools tolerate missing default dirs.
func Resolve(requested, defaults []string, warn func(path string)) []string {
	if len(requested) == 0 {
		return dedupe(defaults)
	}
	out := make([]string, 0, len(requested))
	for _, p := range dedupe(requested) {
		if _, err := os.Stat(p); err != nil {
			if warn != nil {
				warn(p)
			}
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return dedupe(defaults)
	}
	return out
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
