package cli

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"cigate/internal/config"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [config|report]",
		Short:     "Print a JSON Schema for .cigate.yaml or the --json report",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"config", "report"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "config"
			if len(args) == 1 {
				kind = args[0]
			}
			var sch *jsonschema.Schema
			switch kind {
			case "config":
				sch = config.ConfigSchema()
			case "report":
				sch = config.ReportSchema()
			default:
				return fmt.Errorf("unknown schema %q (want config or report)", kind)
			}
			b, err := config.MarshalSchema(sch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
