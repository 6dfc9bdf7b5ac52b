package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CheckResult tells whether a tool's launcher is installed.
type CheckResult struct {
	Installed bool
	Version   string
	Source    string // command that produced the version
	Err       string
}

// CheckTool probes the tool's launcher: the binary must resolve in PATH and,
// for python modules, `<python> -m <module> --version` must succeed.
func (r *Runner) CheckTool(ctx context.Context, cfg ToolConfig) CheckResult {
	argv := []string{cfg.Executable, "--version"}
	if cfg.Module != "" {
		argv = []string{r.python(), "-m", cfg.Module, "--version"}
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return CheckResult{Err: fmt.Sprintf("%s not in PATH", argv[0])}
	}
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	out, err := r.exec().Exec(cctx, argv)
	src := strings.Join(argv, " ")
	if err != nil {
		return CheckResult{Err: err.Error(), Source: src}
	}
	text := out.Stdout
	if strings.TrimSpace(text) == "" {
		text = out.Stderr
	}
	if out.ExitCode != 0 {
		if cfg.Module != "" {
			// python present but module missing
			return CheckResult{Err: firstLine(text), Source: src}
		}
		// Found binary but no usable version output; still consider installed
		return CheckResult{Installed: true, Source: argv[0]}
	}
	ver := ParseVersion(text)
	if ver == "" {
		ver = firstLine(text)
	}
	return CheckResult{Installed: true, Version: ver, Source: src}
}

func firstLine(s string) string {
	return strings.Split(strings.TrimSpace(s), "\n")[0]
}
