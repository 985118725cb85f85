// Package render holds the diagram renderers.
//
// The [rulegraph] subpackage draws the layout rule chain as a Graphviz
// diagram:
//
//	dot := rulegraph.ToDOT(rules, rulegraph.Options{})
//	svg, err := rulegraph.RenderSVG(ctx, dot)
//
// [rulegraph]: github.com/matzehuels/slidelayout/pkg/render/rulegraph
package render
