package tools

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// registry is the closed set of supported tools. It is never mutated;
// accessors hand out copies.
var registry = [...]ToolConfig{
	{
		ID:          RuffFormat,
		Profile:     ProfilePython,
		Stage:       StageFormat,
		Description: "Code formatter (ruff)",
		Module:      "ruff",
		Args:        []string{"format", "--check"},
		FixArgs:     []string{"format"},
		CanFix:      true,
		Critical:    false,
	},
	{
		ID:          RuffLint,
		Profile:     ProfilePython,
		Stage:       StageLint,
		Description: "Linter (ruff)",
		Module:      "ruff",
		Args:        []string{"check"},
		FixArgs:     []string{"check", "--fix"},
		CanFix:      true,
		Critical:    true,
	},
	{
		ID:          Mypy,
		Profile:     ProfilePython,
		Stage:       StageTypeCheck,
		Description: "Type checker (mypy)",
		Module:      "mypy",
		Critical:    true,
	},
	{
		ID:          Pytest,
		Profile:     ProfilePython,
		Stage:       StageTest,
		Description: "Test runner (pytest)",
		Module:      "pytest",
		Args:        []string{"-q", "--tb=short"},
		Critical:    true,
		IgnorePaths: true,
	},
	{
		ID:          CargoFmt,
		Profile:     ProfileRust,
		Stage:       StageFormat,
		Description: "Formatter (cargo fmt)",
		Executable:  "cargo",
		Args:        []string{"fmt", "--all", "--", "--check"},
		FixArgs:     []string{"fmt", "--all"},
		CanFix:      true,
		Critical:    true,
		IgnorePaths: true,
	},
	{
		ID:          CargoClippy,
		Profile:     ProfileRust,
		Stage:       StageLint,
		Description: "Linter (cargo clippy)",
		Executable:  "cargo",
		Args:        []string{"clippy", "--all-targets", "--all-features", "--", "-D", "warnings"},
		Critical:    true,
		IgnorePaths: true,
	},
	{
		ID:          CargoTest,
		Profile:     ProfileRust,
		Stage:       StageTest,
		Description: "Test runner (cargo test)",
		Executable:  "cargo",
		Args:        []string{"test", "--all-features"},
		Critical:    true,
		IgnorePaths: true,
	},
}

// PreferredOrder is the fixed run sequence: formatters, then linters,
// type checkers and test runners.
var PreferredOrder = []ToolID{
	RuffFormat, CargoFmt,
	RuffLint, CargoClippy,
	Mypy,
	Pytest, CargoTest,
}

// DefaultTargetDirs are scanned when no paths are configured.
var DefaultTargetDirs = []string{"src", "tests"}

func (c ToolConfig) clone() ToolConfig {
	c.Args = slices.Clone(c.Args)
	c.FixArgs = slices.Clone(c.FixArgs)
	return c
}

// Lookup returns the configuration registered under name.
func Lookup(name string) (ToolConfig, bool) {
	name = strings.TrimSpace(name)
	for _, c := range registry {
		if string(c.ID) == name {
			return c.clone(), true
		}
	}
	return ToolConfig{}, false
}

// All returns every registered tool in preferred order.
func All() []ToolConfig {
	out := make([]ToolConfig, 0, len(registry))
	for _, c := range registry {
		out = append(out, c.clone())
	}
	SortPreferred(out)
	return out
}

// ForProfile returns the tools of one family in preferred order.
func ForProfile(p Profile) []ToolConfig {
	var out []ToolConfig
	for _, c := range registry {
		if c.Profile == p {
			out = append(out, c.clone())
		}
	}
	SortPreferred(out)
	return out
}

// Names returns the registered tool names in preferred order.
func Names() []string {
	all := All()
	out := make([]string, 0, len(all))
	for _, c := range all {
		out = append(out, string(c.ID))
	}
	return out
}

// ParseProfile maps a user string to a Profile.
func ParseProfile(s string) (Profile, bool) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfilePython:
		return ProfilePython, true
	case ProfileRust:
		return ProfileRust, true
	case ProfileAuto, "":
		return ProfileAuto, true
	}
	return "", false
}

func orderIndex(id ToolID) int {
	if i := slices.Index(PreferredOrder, id); i >= 0 {
		return i
	}
	return len(PreferredOrder)
}

// SortPreferred orders configs by PreferredOrder in place.
func SortPreferred(cfgs []ToolConfig) {
	slices.SortStableFunc(cfgs, func(a, b ToolConfig) int {
		return orderIndex(a.ID) - orderIndex(b.ID)
	})
}

// Suggest returns registered names that fuzzily match name, best first.
func Suggest(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	names := Names()
	matches := fuzzy.Find(name, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	if len(out) == 0 {
		// fall back to shared prefix, e.g. "ruff" -> ruff-format, ruff-lint
		for _, n := range names {
			if strings.HasPrefix(n, strings.SplitN(name, "-", 2)[0]) {
				out = append(out, n)
			}
		}
	}
	return out
}
