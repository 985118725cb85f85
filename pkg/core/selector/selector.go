package selector

import (
	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
)

// RuleID names a rule of the chain.
type RuleID string

// Rules of the chain, in evaluation order.
const (
	RuleHint        RuleID = "hint"
	RuleContact     RuleID = "contact"
	RuleTitle       RuleID = "title"
	RuleIcons       RuleID = "icons"
	RuleChart       RuleID = "chart"
	RuleTwoColumn   RuleID = "two-column"
	RuleMainContent RuleID = "main-content"
	RuleImage       RuleID = "image"
	RuleDefault     RuleID = "default"
)

var chain = []RuleID{
	RuleHint, RuleContact, RuleTitle, RuleIcons, RuleChart,
	RuleTwoColumn, RuleMainContent, RuleImage, RuleDefault,
}

// Chain returns the rules in evaluation order.
func Chain() []RuleID {
	return append([]RuleID(nil), chain...)
}

// Decision is the outcome of routing one slide.
type Decision struct {
	Layout layout.Name `json:"layout"`
	Rule   RuleID      `json:"rule"`
}

// Selector routes analyses through a rule table. It holds a private copy of
// the table and is safe for concurrent use.
type Selector struct {
	rules Rules
}

// New returns a Selector for rules. The table is copied.
func New(rules Rules) *Selector {
	return &Selector{rules: rules.Clone()}
}

// Rules returns a copy of the selector's rule table.
func (s *Selector) Rules() Rules {
	return s.rules.Clone()
}

var defaultSelector = New(DefaultRules())

// Select routes a with the default rule table.
func Select(a analysis.Analysis) layout.Name {
	return defaultSelector.Select(a)
}

// Select returns the layout for a.
func (s *Selector) Select(a analysis.Analysis) layout.Name {
	return s.Decide(a).Layout
}

// Decide returns the layout for a along with the rule that produced it.
func (s *Selector) Decide(a analysis.Analysis) Decision {
	r := &s.rules
	switch {
	case a.HasLayoutHint():
		return Decision{a.LayoutHint, RuleHint}
	case a.IsContact:
		return Decision{r.Contact, RuleContact}
	case a.IsTitle:
		return Decision{r.Title, RuleTitle}
	case a.HasIcons:
		return Decision{r.Icons.Lookup(a.IconCount), RuleIcons}
	case a.HasChart:
		return Decision{s.chartLayout(a), RuleChart}
	case a.HasLeftRightContent:
		return Decision{r.TwoColumn, RuleTwoColumn}
	case a.HasMainContent:
		return Decision{s.contentLayout(a), RuleMainContent}
	case a.HasImage && r.EnableImageFallback:
		return Decision{r.ImageFallback, RuleImage}
	default:
		return Decision{r.Default, RuleDefault}
	}
}

func (s *Selector) chartLayout(a analysis.Analysis) layout.Name {
	c := s.rules.Charts
	switch s.rules.ChartStrategy {
	case ChartConsolidated:
		return c.Consolidated
	case ChartDualVariant:
		if a.HasSubheadline {
			return c.WithSubheadline
		}
		return c.WithoutSubheadline
	default:
		return s.rules.Default
	}
}

func (s *Selector) contentLayout(a analysis.Analysis) layout.Name {
	switch {
	case a.HasTwoLineTitle && a.HasSubheadline:
		return s.rules.TwoLineTitleSubheadline
	case a.HasSubheadline:
		return s.rules.Subheadline
	default:
		return s.rules.Content
	}
}
