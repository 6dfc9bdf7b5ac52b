package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cigate/internal/app"
	"cigate/internal/config"
	"cigate/internal/settings"
	"cigate/internal/system"
)

func newInitCmd(g *globalOptions) *cobra.Command {
	var (
		yes   bool
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .cigate.yaml for this project",
		Long:  "Opens a form to choose profile, target paths, timeout and interpreter. With --yes the detected defaults are written without prompting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Load(cmd.Context(), g.overrides())
			if err != nil {
				return err
			}
			path := g.configPath
			if path == "" {
				path = settings.DefaultFile(sess.Root)
			}
			if _, err := os.Stat(path); err == nil && !force && yes {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := sess.Config
			if yes {
				cfg.Profile = string(sess.Profile)
			} else {
				cfg, err = settings.Run(sess.Root, sess.Config)
				if err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			system.Logger.Info("wrote config", "path", path, "profile", cfg.Profile)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write detected defaults without prompting")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file with --yes")
	return cmd
}
