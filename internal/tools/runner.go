package tools

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"

	"cigate/internal/system"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 300 * time.Second

// DefaultPython launches python-module tools.
const DefaultPython = "python3"

// Runner invokes tools one at a time. The zero value is usable and runs the
// python profile against real processes.
type Runner struct {
	Exec    Executor
	Timeout time.Duration
	Python  string
	Profile Profile
	Verbose bool
	Logger  *clog.Logger

	// OnStart and OnResult observe progress; both are optional.
	OnStart  func(ToolConfig)
	OnResult func(ToolResult)

	now func() time.Time
}

func (r *Runner) exec() Executor {
	if r.Exec == nil {
		return SystemExecutor{}
	}
	return r.Exec
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

func (r *Runner) python() string {
	if s := strings.TrimSpace(r.Python); s != "" {
		return s
	}
	return DefaultPython
}

func (r *Runner) logger() *clog.Logger {
	if r.Logger == nil {
		return system.Logger
	}
	return r.Logger
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// BuildCommand assembles the argv for cfg. Fix arguments are used only when
// fix is requested and the tool supports it; paths are appended unless the
// tool reads its scope from project configuration.
func (r *Runner) BuildCommand(cfg ToolConfig, paths []string, fix bool) []string {
	var argv []string
	if cfg.Module != "" {
		argv = []string{r.python(), "-m", cfg.Module}
	} else {
		argv = []string{cfg.Executable}
	}
	if fix && cfg.CanFix && len(cfg.FixArgs) > 0 {
		argv = append(argv, cfg.FixArgs...)
	} else {
		argv = append(argv, cfg.Args...)
	}
	if !cfg.IgnorePaths {
		argv = append(argv, paths...)
	}
	return argv
}

// unknownResult describes a tool name absent from the registry. It is marked
// critical so a mistyped CI invocation cannot pass.
func unknownResult(name string) ToolResult {
	return ToolResult{
		Tool:      name,
		Available: false,
		ExitCode:  ExitNotFound,
		Critical:  true,
		Error:     fmt.Sprintf("unknown tool: %s", name),
	}
}

// RunTool invokes one tool and records its outcome. It never returns an
// error: invocation faults are encoded in the result.
func (r *Runner) RunTool(ctx context.Context, name string, paths []string, fix bool) ToolResult {
	cfg, ok := Lookup(name)
	if !ok {
		if s := Suggest(name); len(s) > 0 {
			r.logger().Warn("unknown tool", "tool", name, "did_you_mean", strings.Join(s, ", "))
		} else {
			r.logger().Warn("unknown tool", "tool", name)
		}
		return unknownResult(name)
	}
	return r.run(ctx, cfg, paths, fix)
}

func (r *Runner) run(ctx context.Context, cfg ToolConfig, paths []string, fix bool) ToolResult {
	argv := r.BuildCommand(cfg, paths, fix)
	if r.Verbose {
		r.logger().Infof("Running: %s", strings.Join(argv, " "))
		if !cfg.IgnorePaths && len(paths) > 0 {
			r.logger().Infof("Target paths: %s", strings.Join(paths, ", "))
		}
	}

	res := ToolResult{
		Tool:        string(cfg.ID),
		Description: cfg.Description,
		Critical:    cfg.Critical,
		CanFix:      cfg.CanFix,
		Command:     argv,
	}

	start := r.clock()
	tctx, cancel := context.WithTimeout(ctx, r.timeout())
	out, err := r.exec().Exec(tctx, argv)
	cancel()
	res.DurationMS = r.clock().Sub(start).Milliseconds()

	switch {
	case err == nil:
		res.Available = true
		res.ExitCode = out.ExitCode
		res.Stdout = out.Stdout
		res.Stderr = out.Stderr
		res.Fixed = fix && cfg.CanFix
	case errors.Is(err, ErrTimeout):
		res.Available = true
		res.ExitCode = ExitTimeout
		res.Error = ErrTimeout.Error()
	case errors.Is(err, ErrNotFound):
		res.Available = false
		res.ExitCode = ExitNotFound
		res.Error = fmt.Sprintf("tool not found: %s", argv[0])
	case errors.Is(err, context.Canceled):
		res.Available = true
		res.ExitCode = ExitCanceled
		res.Error = "canceled"
	default:
		res.Available = false
		res.ExitCode = ExitCannotExecute
		res.Error = fmt.Sprintf("failed to execute %s: %v", argv[0], err)
	}
	r.logger().Debug("tool finished", "tool", res.Tool, "exit", res.ExitCode, "ms", res.DurationMS)
	return res
}

// Select resolves the tools to run. With no names it returns the runner's
// profile; otherwise the named tools, deduplicated. Either way the result
// follows PreferredOrder, with unknown names last in request order.
func (r *Runner) Select(only ...string) (known []ToolConfig, unknown []string) {
	if len(only) == 0 {
		return ForProfile(r.profile()), nil
	}
	seen := map[string]bool{}
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if cfg, ok := Lookup(name); ok {
			known = append(known, cfg)
		} else {
			unknown = append(unknown, name)
		}
	}
	SortPreferred(known)
	return known, unknown
}

func (r *Runner) profile() Profile {
	if r.Profile == "" || r.Profile == ProfileAuto {
		return ProfilePython
	}
	return r.Profile
}

// RunAll invokes the selected tools sequentially and summarises them. Each
// tool finishes before the next starts so verifiers see the files fixers
// rewrote.
func (r *Runner) RunAll(ctx context.Context, paths []string, fix bool, only ...string) Report {
	start := r.clock()
	known, unknown := r.Select(only...)

	results := make([]ToolResult, 0, len(known)+len(unknown))
	for _, cfg := range known {
		if r.OnStart != nil {
			r.OnStart(cfg)
		}
		res := r.run(ctx, cfg, slices.Clone(paths), fix)
		results = append(results, res)
		if r.OnResult != nil {
			r.OnResult(res)
		}
	}
	for _, name := range unknown {
		if r.OnStart != nil {
			r.OnStart(ToolConfig{ID: ToolID(name)})
		}
		res := r.RunTool(ctx, name, paths, fix)
		results = append(results, res)
		if r.OnResult != nil {
			r.OnResult(res)
		}
	}
	return Report{Results: results, Summary: Summarize(results, r.clock().Sub(start))}
}
