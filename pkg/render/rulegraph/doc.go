// Package rulegraph renders a layout rule table as a node-link diagram.
//
// # Overview
//
// Each rule of the chain becomes a box. A solid arrow leads from a rule to
// the layout it yields when it matches; a "no" arrow leads to the next rule.
// Rules with several outcomes (icon counts, chart variants, the main content
// rule) get one labelled arrow per outcome.
//
// # Usage
//
//	dot := rulegraph.ToDOT(rules, rulegraph.Options{Highlight: decision.Rule})
//	svg, err := rulegraph.RenderSVG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package rulegraph
