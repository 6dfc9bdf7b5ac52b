package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cigate/internal/app"
	"cigate/internal/system"
	"cigate/internal/tools"
	"cigate/internal/ui"
	"cigate/internal/watch"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		only     []string
		paths    []string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rerun checks whenever target files change",
		Long:  "Runs the checks once, then again after each change below the target paths. Fix mode is always off so runs do not trigger themselves.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Load(cmd.Context(), g.overrides())
			if err != nil {
				return err
			}
			var requested []string
			if cmd.Flags().Changed("path") || len(args) > 0 {
				requested = append(append([]string{}, paths...), args...)
			}
			targets := sess.TargetPaths(requested)
			watched := existing(targets)
			if len(watched) == 0 {
				watched = []string{sess.Root}
			}

			out := cmd.OutOrStdout()
			r := sess.Runner(g.verbose)
			r.OnResult = func(res tools.ToolResult) {
				fmt.Fprintln(out, ui.ProgressLine(res))
			}
			w := &watch.Watcher{
				Paths:    watched,
				Debounce: debounce,
				Run: func(ctx context.Context) {
					fmt.Fprintf(out, "\n%s %s\n", ui.AccentBold().Render("cigate"), ui.MutedStyle().Render(time.Now().Format("15:04:05")))
					rep := r.RunAll(ctx, targets, false, only...)
					ui.WriteSummary(out, rep, ui.SummaryOptions{ShowOutput: true})
				},
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := w.Loop(ctx); err != nil {
				return err
			}
			system.Logger.Info("watch stopped")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "tool", nil, "run only this tool (repeatable)")
	cmd.Flags().StringSliceVar(&paths, "path", nil, "target paths (default: src tests)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before rerunning")
	return cmd
}

func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
