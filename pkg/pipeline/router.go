package pipeline

import (
	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
)

// Router couples an analyzer with a selector. It is immutable and safe for
// concurrent use.
type Router struct {
	analyzer *analysis.Analyzer
	selector *selector.Selector
}

// NewRouter returns a router using opts for analysis and rules for
// selection. The rule table is copied.
func NewRouter(opts analysis.Options, rules selector.Rules) *Router {
	return &Router{
		analyzer: analysis.New(opts),
		selector: selector.New(rules),
	}
}

// DefaultRouter uses the default threshold and rule table.
func DefaultRouter() *Router { return defaultRouter }

var defaultRouter = NewRouter(analysis.Options{}, selector.DefaultRules())

// LayoutForContent returns the layout name for c using the default
// analyzer and rules. Equal content always yields the same name.
func LayoutForContent(c content.Slide) layout.Name {
	return defaultRouter.Route(c)
}

// Route returns the layout name for c.
func (r *Router) Route(c content.Slide) layout.Name {
	return r.selector.Select(r.analyzer.Analyze(c))
}

// Explanation records how a layout was chosen.
type Explanation struct {
	Layout   layout.Name       `json:"layout"`
	Rule     selector.RuleID   `json:"rule"`
	Analysis analysis.Analysis `json:"analysis"`
}

// Explain routes c and returns the analysis and winning rule with the
// layout.
func (r *Router) Explain(c content.Slide) Explanation {
	a := r.analyzer.Analyze(c)
	d := r.selector.Decide(a)
	return Explanation{Layout: d.Layout, Rule: d.Rule, Analysis: a}
}

// Rules returns a copy of the router's rule table.
func (r *Router) Rules() selector.Rules { return r.selector.Rules() }

// Threshold returns the two-line title threshold in effect.
func (r *Router) Threshold() int { return r.analyzer.Threshold() }
