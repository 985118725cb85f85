package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/schema"
)

// schemaCommand creates the schema command for printing JSON Schemas.
func (c *CLI) schemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "schema [" + strings.Join(schema.Names, "|") + "]",
		Short:     "Print the JSON Schema of slide input or routing results",
		ValidArgs: schema.Names,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			data, err := schema.JSON(name)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(data); err != nil {
				return err
			}
			_, err = w.Write([]byte("\n"))
			return err
		},
	}
	return cmd
}
