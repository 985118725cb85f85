package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/render/rulegraph"
)

// rulesOpts holds the flags of the rules command.
type rulesOpts struct {
	dot       bool
	svg       string
	asJSON    bool
	highlight string
	compact   bool
}

// rulesCommand creates the rules command for inspecting the active rule table.
func (c *CLI) rulesCommand() *cobra.Command {
	opts := rulesOpts{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the active rule table",
		Long: `Show the active rule table.

Rules are evaluated top to bottom; the first rule whose condition holds
picks the layout. Use --dot or --svg to draw the chain as a diagram.`,
		Example: `  # Print the catalog preset
  slidelayout rules --preset catalog

  # Render the chain with the chart rule highlighted
  slidelayout rules --svg rules.svg --highlight chart`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRules(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print the rule chain as Graphviz DOT")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "render the rule chain to an SVG file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the rule table as JSON")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "rule to highlight in diagrams")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "draw only the rule chain, without layouts")

	return cmd
}

func (c *CLI) runRules(cmd *cobra.Command, opts rulesOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	rules := cfg.Rules
	w := cmd.OutOrStdout()

	gopts := rulegraph.Options{Highlight: selector.RuleID(opts.highlight), Compact: opts.compact}
	switch {
	case opts.asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case opts.dot:
		_, err := io.WriteString(w, rulegraph.ToDOT(rules, gopts))
		return err
	case opts.svg != "":
		spinner := newSpinner(cmd.Context(), "Rendering rule diagram...")
		spinner.Start()
		svg, err := rulegraph.RenderSVG(cmd.Context(), rulegraph.ToDOT(rules, gopts))
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		spinner.StopWithSuccess("Rendered rule diagram (%d bytes)", len(svg))
		printFile(opts.svg)
		return nil
	}

	printKeyValue("preset", cfg.Preset)
	printKeyValue("threshold", strconv.Itoa(router(cfg).Threshold()))
	printKeyValue("charts", string(rules.ChartStrategy))
	fmt.Fprintln(out, renderRules(rules))
	if missing := cfg.Registry().Validate(rules); len(missing) > 0 {
		printWarning("%d layouts not in catalog", len(missing))
		for _, n := range missing {
			printDetail("%q", n)
		}
	}
	return nil
}

// ruleRows describes what each rule of the chain routes to.
func ruleRows(r selector.Rules) [][]string {
	var rows [][]string
	add := func(id selector.RuleID, when, name string) {
		rows = append(rows, []string{string(id), when, name})
	}

	add(selector.RuleHint, "", "layoutHint")
	add(selector.RuleContact, "", r.Contact.String())
	add(selector.RuleTitle, "", r.Title.String())
	for _, n := range r.Icons.Counts() {
		add(selector.RuleIcons, strconv.Itoa(n)+" icons", r.Icons.ByCount[n].String())
	}
	add(selector.RuleIcons, "other", r.Icons.Default.String())
	if r.ChartStrategy == selector.ChartConsolidated {
		add(selector.RuleChart, "", r.Charts.Consolidated.String())
	} else {
		add(selector.RuleChart, "subheadline", r.Charts.WithSubheadline.String())
		add(selector.RuleChart, "no subheadline", r.Charts.WithoutSubheadline.String())
	}
	add(selector.RuleTwoColumn, "", r.TwoColumn.String())
	add(selector.RuleMainContent, "two-line + subheadline", r.TwoLineTitleSubheadline.String())
	add(selector.RuleMainContent, "subheadline", r.Subheadline.String())
	add(selector.RuleMainContent, "other", r.Content.String())
	if r.EnableImageFallback {
		add(selector.RuleImage, "", r.ImageFallback.String())
	} else {
		add(selector.RuleImage, "disabled", "")
	}
	add(selector.RuleDefault, "", r.Default.String())
	return rows
}

// renderRules renders the rule table in chain order.
func renderRules(r selector.Rules) string {
	rows := ruleRows(r)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rule", "When", "Layout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 1 || (row < len(rows) && strings.TrimSpace(rows[row][2]) == "") {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
