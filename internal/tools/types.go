package tools

// Tool identifiers and metadata
type ToolID string

const (
	RuffFormat  ToolID = "ruff-format"
	RuffLint    ToolID = "ruff-lint"
	Mypy        ToolID = "mypy"
	Pytest      ToolID = "pytest"
	CargoFmt    ToolID = "cargo-fmt"
	CargoClippy ToolID = "cargo-clippy"
	CargoTest   ToolID = "cargo-test"
)

// Stage orders tools so that fixers run before verifiers.
type Stage int

const (
	StageFormat Stage = iota
	StageLint
	StageTypeCheck
	StageTest
)

func (s Stage) String() string {
	switch s {
	case StageFormat:
		return "format"
	case StageLint:
		return "lint"
	case StageTypeCheck:
		return "type-check"
	case StageTest:
		return "test"
	}
	return "unknown"
}

// Profile names a tool family.
type Profile string

const (
	ProfilePython Profile = "python"
	ProfileRust   Profile = "rust"
	ProfileAuto   Profile = "auto"
)

type ToolConfig struct {
	ID          ToolID
	Profile     Profile
	Stage       Stage
	Description string
	Executable  string // binary name; ignored when Module is set
	Module      string // python module, launched as `<python> -m <Module>`
	Args        []string
	FixArgs     []string
	CanFix      bool
	Critical    bool
	IgnorePaths bool // scope comes from project config (pytest, cargo)
}

// Exit codes used for invocation faults, following shell convention.
const (
	ExitCannotExecute = 126
	ExitTimeout       = 124
	ExitNotFound      = 127
	ExitCanceled      = 130
)

// ToolResult is the outcome of one tool invocation.
type ToolResult struct {
	Tool        string   `json:"tool"`
	Description string   `json:"description,omitempty"`
	Available   bool     `json:"available"`
	ExitCode    int      `json:"exit_code"`
	Stdout      string   `json:"stdout"`
	Stderr      string   `json:"stderr"`
	Critical    bool     `json:"critical"`
	CanFix      bool     `json:"can_fix"`
	Fixed       bool     `json:"fixed"`
	Error       string   `json:"error,omitempty"`
	DurationMS  int64    `json:"duration_ms"`
	Command     []string `json:"command,omitempty"`
}

// Passed reports whether the tool exited cleanly.
func (r ToolResult) Passed() bool { return r.ExitCode == 0 }

// CriticalFailure reports whether the result flips the overall status.
func (r ToolResult) CriticalFailure() bool { return r.Critical && r.ExitCode != 0 }

// Overall status strings.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

type Summary struct {
	TotalToolsRun    int     `json:"total_tools_run"`
	CriticalFailures int     `json:"critical_failures"`
	OverallStatus    string  `json:"overall_status"`
	ExecutionTime    float64 `json:"execution_time"` // seconds, two decimals
}

// Report holds results in run order plus the derived summary.
type Report struct {
	Results []ToolResult
	Summary Summary
}

// Passed reports whether the overall status is PASS.
func (r Report) Passed() bool { return r.Summary.OverallStatus == StatusPass }

// Result returns the result for tool, if it ran.
func (r Report) Result(tool string) (ToolResult, bool) {
	for _, res := range r.Results {
		if res.Tool == tool {
			return res, true
		}
	}
	return ToolResult{}, false
}
