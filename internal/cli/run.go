package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cigate/internal/app"
	"cigate/internal/system"
	"cigate/internal/tools"
	"cigate/internal/ui"
)

// runOptions are the flags of the root (check) command.
type runOptions struct {
	tools    []string
	paths    []string
	fix      bool
	noFix    bool
	json     bool
	markdown bool
	tui      bool
}

func (o *runOptions) bind(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.tools, "tool", nil, "run only this tool (repeatable), e.g. ruff-lint")
	fs.StringSliceVar(&o.paths, "path", nil, "target paths (default: src tests); missing paths are skipped")
	fs.BoolVar(&o.fix, "fix", false, "auto-fix issues where the tool supports it")
	fs.BoolVar(&o.noFix, "no-fix", false, "disable auto-fixing (wins over --fix)")
	fs.BoolVar(&o.json, "json", false, "print the full report as JSON")
	fs.BoolVar(&o.markdown, "markdown", false, "print a Markdown summary (rendered on terminals)")
	fs.BoolVar(&o.tui, "tui", false, "show a live progress view on stderr")
}

func (o *runOptions) fixMode() bool { return o.fix && !o.noFix }

func runChecks(cmd *cobra.Command, args []string, g *globalOptions, o *runOptions) error {
	ctx := cmd.Context()
	sess, err := app.Load(ctx, g.overrides())
	if err != nil {
		return err
	}
	var requested []string
	if cmd.Flags().Changed("path") || len(args) > 0 {
		// positional args extend --path
		requested = append(append([]string{}, o.paths...), args...)
	}
	paths := sess.TargetPaths(requested)
	r := sess.Runner(g.verbose)
	out := cmd.OutOrStdout()

	if g.verbose {
		if gi, _ := system.GetGitInfo(ctx, sess.Root); gi.InRepo {
			system.Logger.Info("repository", "root", sess.Root, "branch", gi.Branch, "sha", gi.ShortSHA, "dirty", gi.Dirty)
		}
		system.Logger.Info("profile", "name", sess.Profile, "fix", o.fixMode(), "timeout", sess.Timeout)
	}

	var rep tools.Report
	if o.tui && !o.json {
		rep, err = ui.RunProgress(ctx, r, cmd.ErrOrStderr(), paths, o.fixMode(), o.tools...)
		if err != nil && !errors.Is(err, ui.ErrInterrupted) {
			return err
		}
	} else {
		if !o.json && !o.markdown {
			r.OnResult = func(res tools.ToolResult) {
				fmt.Fprintln(out, ui.ProgressLine(res))
			}
		}
		rep = r.RunAll(ctx, paths, o.fixMode(), o.tools...)
	}

	if werr := writeReport(out, rep, o); werr != nil {
		return werr
	}
	if errors.Is(err, ui.ErrInterrupted) {
		return exitError(1, "interrupted")
	}
	if !rep.Passed() {
		return exitError(1, "%d critical failure(s)", rep.Summary.CriticalFailures)
	}
	return nil
}

func writeReport(out io.Writer, rep tools.Report, o *runOptions) error {
	switch {
	case o.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case o.markdown:
		md := ui.Markdown(rep)
		if isTerminal(out) {
			if rendered, err := ui.RenderMarkdown(md, 100); err == nil {
				md = rendered
			}
		}
		_, err := fmt.Fprint(out, md)
		return err
	}
	ui.WriteSummary(out, rep, ui.SummaryOptions{ShowOutput: true})
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
