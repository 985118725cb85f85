package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slidelayout/pkg/audit"
	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/observability"
)

// Runner routes whole decks and records the decisions.
// Both CLI and API use this to avoid duplicating deck logic.
//
// The Runner stores no results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Router *Router
	Sink   audit.Sink
	Logger *log.Logger
}

// NewRunner creates a runner.
// If router is nil, the default router is used.
// If sink is nil, a NullSink is used (auditing disabled).
func NewRunner(router *Router, sink audit.Sink, logger *log.Logger) *Runner {
	if router == nil {
		router = defaultRouter
	}
	if sink == nil {
		sink = audit.NewNullSink()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Router: router,
		Sink:   sink,
		Logger: logger,
	}
}

// RouteDeck routes every slide concurrently and returns the results in
// input order. It fails only on invalid options or context cancellation; a
// failed audit write is reported in Result.AuditErr.
func (r *Runner) RouteDeck(ctx context.Context, slides []content.Slide, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Routing()
	hooks.OnRouteStart(ctx, len(slides))

	start := time.Now()
	results := make([]SlideResult, len(slides))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, s := range slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			exp := r.Router.Explain(s)
			res := SlideResult{Index: i, Layout: exp.Layout, Rule: exp.Rule}
			if opts.Explain {
				a := exp.Analysis
				res.Analysis = &a
			}
			results[i] = res
			hooks.OnSlideRouted(gctx, i, exp.Layout.String(), string(exp.Rule))
			return nil
		})
	}
	err := g.Wait()
	routeTime := time.Since(start)
	hooks.OnRouteComplete(ctx, len(slides), routeTime, err)
	if err != nil {
		return nil, fmt.Errorf("route deck: %w", err)
	}

	result := &Result{
		Slides: results,
		Stats:  collectStats(results),
	}
	result.Stats.RouteTime = routeTime

	opts.Logger.Info("routed deck",
		"slides", len(slides),
		"layouts", len(result.Stats.ByLayout),
		"duration", routeTime)

	auditStart := time.Now()
	result.AuditErr = r.audit(ctx, slides, results, opts.RequestID)
	result.Stats.AuditTime = time.Since(auditStart)
	if result.AuditErr != nil {
		opts.Logger.Warn("audit write failed", "sink", r.Sink.Name(), "err", result.AuditErr)
	} else {
		opts.Logger.Debug("audit written", "sink", r.Sink.Name(), "records", len(results))
	}

	return result, nil
}

func (r *Runner) audit(ctx context.Context, slides []content.Slide, results []SlideResult, requestID string) error {
	if len(results) == 0 {
		return nil
	}
	records := make([]audit.Record, len(results))
	for i, res := range results {
		rec := audit.NewRecord(slides[i], res.Index, res.Layout, string(res.Rule))
		rec.RequestID = requestID
		records[i] = rec
	}

	start := time.Now()
	err := r.Sink.Write(ctx, records)
	observability.Audit().OnAuditWrite(ctx, r.Sink.Name(), len(records), time.Since(start), err)
	return err
}

func collectStats(results []SlideResult) Stats {
	st := Stats{
		Slides:   len(results),
		ByRule:   make(map[selector.RuleID]int),
		ByLayout: make(map[layout.Name]int),
	}
	for _, res := range results {
		st.ByRule[res.Rule]++
		st.ByLayout[res.Layout]++
	}
	return st
}

// Close releases resources held by the runner (primarily the audit sink).
func (r *Runner) Close() error {
	if r.Sink != nil {
		return r.Sink.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
