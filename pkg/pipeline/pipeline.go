// Package pipeline routes slide content to layout names.
//
// It joins the two pure stages of the layout core:
//
//  1. Analyze: reduce a slide to its structural features
//  2. Select: walk the rule chain and pick a layout name
//
// and adds the deck-level machinery around them (concurrency, statistics,
// logging, observability hooks and audit records). The CLI and the HTTP API
// both go through this package so they always agree on the layout.
//
// # Usage
//
// Route a single slide with the default rules:
//
//	name := pipeline.LayoutForContent(slide)
//
// Route with a configured rule table and see why a layout was chosen:
//
//	router := pipeline.NewRouter(analysis.Options{TwoLineTitleThreshold: 70}, rules)
//	exp := router.Explain(slide)
//	fmt.Println(exp.Layout, exp.Rule)
//
// Route a whole deck:
//
//	runner := pipeline.NewRunner(router, sink, logger)
//	result, err := runner.RouteDeck(ctx, slides, pipeline.Options{})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultConcurrency bounds how many slides of a deck are routed at once.
	DefaultConcurrency = 8

	// MaxConcurrency caps caller-supplied concurrency.
	MaxConcurrency = 256
)

// =============================================================================
// Options - Deck Routing Configuration
// =============================================================================

// Options configures one RouteDeck call.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Explain attaches the analysis to every slide result.
	Explain bool `json:"explain,omitempty"`

	// Concurrency bounds parallel routing. Zero selects DefaultConcurrency.
	Concurrency int `json:"concurrency,omitempty"`

	// Runtime options (not serialized)
	RequestID string      `json:"-"`
	Logger    *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of routing a deck.
type Result struct {
	// Slides holds one entry per input slide, in input order.
	Slides []SlideResult `json:"slides"`

	// Stats contains timing and distribution information.
	Stats Stats `json:"stats"`

	// AuditErr is set when the routing decisions could not be persisted.
	// The layouts in Slides are valid regardless.
	AuditErr error `json:"-"`
}

// SlideResult is the routing outcome for one slide.
type SlideResult struct {
	Index    int                `json:"index"`
	Layout   layout.Name        `json:"layout"`
	Rule     selector.RuleID    `json:"rule"`
	Analysis *analysis.Analysis `json:"analysis,omitempty"`
}

// Stats contains deck routing statistics.
type Stats struct {
	Slides    int                     `json:"slides"`
	ByRule    map[selector.RuleID]int `json:"byRule"`
	ByLayout  map[layout.Name]int     `json:"byLayout"`
	RouteTime time.Duration           `json:"routeTime"`
	AuditTime time.Duration           `json:"auditTime"`
}

// Layouts returns the chosen layout names in input order.
func (r *Result) Layouts() []layout.Name {
	out := make([]layout.Name, len(r.Slides))
	for i, s := range r.Slides {
		out[i] = s.Layout
	}
	return out
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateConcurrency checks that n is a usable concurrency bound.
// Zero is valid and means "use the default".
func ValidateConcurrency(n int) error {
	if n < 0 || n > MaxConcurrency {
		return fmt.Errorf("invalid concurrency: %d (must be between 0 and %d)", n, MaxConcurrency)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateConcurrency(o.Concurrency); err != nil {
		return err
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
