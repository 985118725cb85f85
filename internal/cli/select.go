package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/deck"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

// selectCommand creates the select command for routing a single slide.
func (c *CLI) selectCommand() *cobra.Command {
	var (
		explain bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "select [file]",
		Short: "Pick the layout for a single slide",
		Long: `Pick the layout for a single slide.

The slide is read from file as JSON, or from standard input when file is
omitted or "-". Only the layout name is printed unless --explain is set.`,
		Example: `  # Print the layout name
  slidelayout select slide.json

  # Show which rule fired and the slide's features
  echo '{"headline":"Q3 numbers","chart":{}}' | slidelayout select --explain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slides, err := readDeck(cmd, inputPath(args))
			if err != nil {
				return err
			}
			if len(slides) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "expected one slide, got %d", len(slides))
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			exp := router(cfg).Explain(slides[0])
			c.Logger.Debug("selected layout", "layout", exp.Layout, "rule", exp.Rule)

			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(exp)
			case explain:
				printExplanation(exp)
				return nil
			default:
				_, err := fmt.Fprintln(w, exp.Layout)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show the winning rule and the slide's features")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the explanation as JSON")

	return cmd
}

// inputPath returns the positional input path, defaulting to standard input.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// readDeck reads slides from path, or from the command's input for "-".
func readDeck(cmd *cobra.Command, path string) ([]content.Slide, error) {
	if path == "-" {
		return deck.ReadJSON(cmd.InOrStdin())
	}
	return deck.Import(path)
}
