package rulegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
)

// Options configures rule diagram rendering.
type Options struct {
	// Highlight fills the given rule, typically the one that decided a slide.
	Highlight selector.RuleID

	// Compact omits layout nodes and draws only the rule chain.
	Compact bool
}

var conditions = map[selector.RuleID]string{
	selector.RuleHint:        "layoutHint set",
	selector.RuleContact:     "type is contact\nor headline mentions contact",
	selector.RuleTitle:       "title and subtitle,\nno main content",
	selector.RuleIcons:       "icons present",
	selector.RuleChart:       "chart or chartData",
	selector.RuleTwoColumn:   "left and right content",
	selector.RuleMainContent: "main content",
	selector.RuleImage:       "image present",
	selector.RuleDefault:     "otherwise",
}

// outcome is one arrow from a rule to a layout.
type outcome struct {
	label  string
	layout layout.Name
}

// ToDOT converts a rule table to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(rules selector.Rules, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph rules {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	chain := selector.Chain()
	for _, id := range chain {
		attrs := []string{fmt.Sprintf("label=%q", string(id)+"\n"+conditions[id])}
		if id == opts.Highlight {
			attrs = append(attrs, "fillcolor=\"#ffd966\"", "penwidth=2")
		}
		if id == selector.RuleImage && !rules.EnableImageFallback {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", ruleNode(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i+1 < len(chain); i++ {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"no\", style=dashed];\n", ruleNode(chain[i]), ruleNode(chain[i+1]))
	}

	if opts.Compact {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	seen := make(map[layout.Name]bool)
	for _, id := range chain {
		for _, o := range outcomes(rules, id) {
			if !seen[o.layout] {
				seen[o.layout] = true
				fmt.Fprintf(&buf, "  %q [label=%q, shape=note, fillcolor=\"#eef3fb\"];\n", layoutNode(o.layout), string(o.layout))
			}
			var edge []string
			if o.label != "" {
				edge = append(edge, fmt.Sprintf("label=%q", o.label))
			}
			if id == selector.RuleImage && !rules.EnableImageFallback {
				edge = append(edge, "style=dotted", "color=grey")
			}
			fmt.Fprintf(&buf, "  %q -> %q", ruleNode(id), layoutNode(o.layout))
			if len(edge) > 0 {
				fmt.Fprintf(&buf, " [%s]", strings.Join(edge, ", "))
			}
			buf.WriteString(";\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func outcomes(rules selector.Rules, id selector.RuleID) []outcome {
	switch id {
	case selector.RuleHint:
		return []outcome{{"", "<layoutHint>"}}
	case selector.RuleContact:
		return []outcome{{"", rules.Contact}}
	case selector.RuleTitle:
		return []outcome{{"", rules.Title}}
	case selector.RuleIcons:
		var out []outcome
		for _, n := range rules.Icons.Counts() {
			out = append(out, outcome{strconv.Itoa(n), rules.Icons.ByCount[n]})
		}
		return append(out, outcome{"other", rules.Icons.Default})
	case selector.RuleChart:
		switch rules.ChartStrategy {
		case selector.ChartConsolidated:
			return []outcome{{"", rules.Charts.Consolidated}}
		case selector.ChartDualVariant:
			return []outcome{
				{"subheadline", rules.Charts.WithSubheadline},
				{"no subheadline", rules.Charts.WithoutSubheadline},
			}
		default:
			return []outcome{{"unknown strategy", rules.Default}}
		}
	case selector.RuleTwoColumn:
		return []outcome{{"", rules.TwoColumn}}
	case selector.RuleMainContent:
		return []outcome{
			{"2-line title + subheadline", rules.TwoLineTitleSubheadline},
			{"subheadline", rules.Subheadline},
			{"otherwise", rules.Content},
		}
	case selector.RuleImage:
		return []outcome{{"", rules.ImageFallback}}
	default:
		return []outcome{{"", rules.Default}}
	}
}

func ruleNode(id selector.RuleID) string {
	return "rule:" + string(id)
}

func layoutNode(n layout.Name) string {
	return "layout:" + string(n)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
