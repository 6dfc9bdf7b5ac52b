package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cigate/internal/app"
	"cigate/internal/tools"
	"cigate/internal/ui"
)

type listItem struct {
	Tool        string `json:"tool"`
	Profile     string `json:"profile"`
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
	CanFix      bool   `json:"can_fix"`
	Installed   bool   `json:"installed"`
	Version     string `json:"version,omitempty"`
	Source      string `json:"source,omitempty"`
	Error       string `json:"error,omitempty"`
}

func newListCmd(g *globalOptions) *cobra.Command {
	var (
		all    bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered tools and whether they are installed",
		Long:    "Shows each tool of the active profile in run order with its stage, criticality and detected version.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Load(cmd.Context(), g.overrides())
			if err != nil {
				return err
			}
			r := sess.Runner(g.verbose)
			cfgs := tools.ForProfile(sess.Profile)
			if all {
				cfgs = tools.All()
			}
			items := make([]listItem, 0, len(cfgs))
			for _, c := range cfgs {
				res := r.CheckTool(cmd.Context(), c)
				items = append(items, listItem{
					Tool:        string(c.ID),
					Profile:     string(c.Profile),
					Stage:       c.Stage.String(),
					Description: c.Description,
					Critical:    c.Critical,
					CanFix:      c.CanFix,
					Installed:   res.Installed,
					Version:     res.Version,
					Source:      res.Source,
					Error:       res.Err,
				})
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			for _, it := range items {
				fmt.Fprintln(out, renderListItem(it))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every profile, not only the active one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func renderListItem(it listItem) string {
	var line strings.Builder
	line.WriteString(fmt.Sprintf("- %-13s %-11s ", it.Tool, "["+it.Stage+"]"))
	var flags []string
	if it.Critical {
		flags = append(flags, "critical")
	}
	if it.CanFix {
		flags = append(flags, "fixable")
	}
	line.WriteString(ui.MutedStyle().Render(fmt.Sprintf("%-18s", strings.Join(flags, ","))))
	if !it.Installed {
		line.WriteString(lipgloss.NewStyle().Foreground(ui.Vitesse.Red).Render("not installed"))
		if strings.TrimSpace(it.Error) != "" {
			line.WriteString(ui.MutedStyle().Render(fmt.Sprintf(" (%s)", it.Error)))
		}
		return line.String()
	}
	ver := strings.TrimSpace(it.Version)
	if ver == "" {
		ver = "?"
	}
	line.WriteString(ui.AccentBold().Render(ver))
	if strings.TrimSpace(it.Source) != "" {
		line.WriteString(ui.MutedStyle().Render(fmt.Sprintf(" · %s", it.Source)))
	}
	return line.String()
}
