package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cigate/internal/app"
	"cigate/internal/system"
	appver "cigate/internal/version"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configPath string
	profile    string
	timeout    time.Duration
	python     string
	verbose    bool
}

func (g *globalOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "config file (default: .cigate.yaml in the project root)")
	fs.StringVar(&g.profile, "profile", "", "tool family: python, rust or auto")
	fs.DurationVar(&g.timeout, "timeout", 0, "per-tool timeout (default 5m0s)")
	fs.StringVar(&g.python, "python", "", "interpreter for python-module tools (default python3)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "echo tool command lines and debug logs")
}

func (g *globalOptions) overrides() app.Overrides {
	return app.Overrides{
		ConfigPath: g.configPath,
		Profile:    g.profile,
		Timeout:    g.timeout,
		Python:     g.python,
	}
}

// NewRootCmd builds the command tree. Running the root command executes the
// checks; subcommands cover inspection and long-running modes.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	ro := &runOptions{}
	root := &cobra.Command{
		Use:   "cigate [flags] [paths...]",
		Short: "cigate – run code-quality tools for CI and report PASS/FAIL",
		Long: "cigate runs the formatter, linter, type checker and test runner of a project\n" +
			"one after another, then reports a summary. Exit code 0 means PASS, 1 means FAIL.",
		// positional args extend --path so that `--path src tests` works
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			system.SetVerbose(g.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, args, g, ro)
		},
		Version:       appver.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("cigate version {{.Version}}\n")
	g.bind(root.PersistentFlags())
	ro.bind(root.Flags())

	root.AddCommand(newListCmd(g))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newInitCmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newWatchCmd(g))
	return root
}

// Execute runs the CLI and exits with the command's exit code.
func Execute() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
