package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/deck"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

// routeOpts holds the flags of the route command.
type routeOpts struct {
	output      string
	explain     bool
	table       bool
	concurrency int
	auditURL    string
}

// routeCommand creates the route command for routing a whole deck.
func (c *CLI) routeCommand() *cobra.Command {
	opts := routeOpts{}

	cmd := &cobra.Command{
		Use:   "route [deck]",
		Short: "Pick layouts for every slide of a deck",
		Long: `Pick layouts for every slide of a deck.

The deck is a JSON array of slides, an object {"slides": [...]}, or a single
slide object. Results are written as a JSON array in input order.`,
		Example: `  # Print results as JSON
  slidelayout route deck.json

  # Write results to a file and record decisions in Redis
  slidelayout route deck.json -o layouts.json --audit redis://localhost:6379/0`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd, inputPath(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write results to file instead of stdout")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "include each slide's analysis in the results")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a results table instead of JSON")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, "slides routed in parallel")
	cmd.Flags().StringVar(&opts.auditURL, "audit", "", "audit sink URL (file://, redis://, mongodb://)")

	return cmd
}

func (c *CLI) runRoute(cmd *cobra.Command, path string, opts routeOpts) error {
	slides, err := readDeck(cmd, path)
	if err != nil {
		return err
	}
	result, err := c.route(cmd.Context(), slides, opts)
	if err != nil {
		return err
	}

	switch {
	case opts.output != "":
		if err := deck.Export(opts.output, result.Slides); err != nil {
			return err
		}
		printSuccess("Routed %d slides", len(result.Slides))
		printFile(opts.output)
		printStats(result.Stats)
		if path != "-" {
			printNextStep("Browse the deck", "slidelayout browse "+path)
		}
	case opts.table:
		fmt.Fprintln(out, renderResults(result.Slides))
		printStats(result.Stats)
	default:
		if err := deck.WriteResults(cmd.OutOrStdout(), result.Slides); err != nil {
			return err
		}
	}

	if result.AuditErr != nil {
		printWarning("audit not recorded: %v", result.AuditErr)
	}
	return nil
}

// route runs slides through a runner built from the effective config.
func (c *CLI) route(ctx context.Context, slides []content.Slide, opts routeOpts) (*pipeline.Result, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cfg, opts.auditURL)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.RouteDeck(ctx, slides, pipeline.Options{
		Explain:     opts.explain,
		Concurrency: opts.concurrency,
	})
}
