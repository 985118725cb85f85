package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/errors"
	"github.com/matzehuels/slidelayout/pkg/registry"
)

// layoutsCommand creates the layouts command for listing the layout catalog.
func (c *CLI) layoutsCommand() *cobra.Command {
	var (
		group  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the layouts of the slide master catalog",
		Long: `List the layouts of the slide master catalog.

The catalog comes from the [registry] section of the config file, or the
built-in corporate catalog. Layouts the active rules can produce are marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			reg := cfg.Registry()

			layouts, err := filterGroup(reg, group)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(layouts)
			}

			used := make(map[layout.Name]bool)
			for _, n := range cfg.Rules.Names() {
				used[n.Canonical()] = true
			}
			fmt.Fprintln(out, renderLayouts(layouts, used))
			printDetail("%d layouts · default %q", len(layouts), reg.Default())
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "only list layouts of this group")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print layouts as JSON")

	return cmd
}

// filterGroup returns the registry's layouts, restricted to group when set.
func filterGroup(reg *registry.Registry, group string) ([]registry.Layout, error) {
	all := reg.List()
	if group == "" {
		return all, nil
	}
	var layouts []registry.Layout
	for _, l := range all {
		if l.Group == group {
			layouts = append(layouts, l)
		}
	}
	if len(layouts) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no layouts in group %q (groups: %v)", group, reg.Groups())
	}
	return layouts, nil
}
