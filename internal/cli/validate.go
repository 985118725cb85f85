package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

// validateCommand creates the validate command for checking routed layouts
// against the catalog.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [deck]",
		Short: "Check that every routed layout exists in the catalog",
		Long: `Check that every routed layout exists in the catalog.

Without a deck, only the layouts the active rules can produce are checked.
With a deck, every slide is routed and its layout resolved, which also
covers explicit layout hints. Exits non-zero when any layout is missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			reg := cfg.Registry()

			missing := 0
			for _, name := range reg.Validate(cfg.Rules) {
				printError("rules produce %q, not in catalog", name)
				missing++
			}

			if len(args) == 1 {
				slides, err := readDeck(cmd, args[0])
				if err != nil {
					return err
				}
				prog := newProgress(c.Logger)
				r := router(cfg)
				misses := make(map[layout.Name][]int)
				for i, s := range slides {
					name := r.Route(s)
					if _, err := reg.Resolve(name); err != nil {
						misses[name] = append(misses[name], i)
						c.Logger.Debug("unresolved layout", "slide", i, "layout", name)
					}
				}
				prog.done(fmt.Sprintf("Checked %d slides", len(slides)))
				for _, name := range sortedKeys(misses) {
					printError("%q not in catalog", name)
					printDetail("slides %v", misses[name])
					missing += len(misses[name])
				}
				if len(misses) == 0 {
					printSuccess("%d slides resolved", len(slides))
				}
			}

			if missing > 0 {
				return errors.New(errors.ErrCodeLayoutNotFound, "%d unresolved layouts", missing)
			}
			printSuccess("Rules resolve against %d layouts", reg.Len())
			return nil
		},
	}

	return cmd
}
