// Package pkg provides the libraries behind slidelayout, a deterministic
// slide layout selector.
//
// # Overview
//
// Slidelayout looks at the semantic content of a slide (title, headline,
// icons, charts, two-column text, images) and picks the name of the slide
// master layout that should render it. The pkg directory is organized into
// three areas:
//
//  1. [core] - Pure domain logic (content model, analysis, rule chain)
//  2. [pipeline] - Orchestration (analyze → select, deck routing, audit)
//  3. Surfaces and infrastructure (config, registry, deck I/O, HTTP API,
//     audit sinks, schemas, diagrams)
//
// # Architecture
//
// The data flow for one slide:
//
//	JSON slide / deck
//	         ↓
//	    [deck] package (lenient decoding)
//	         ↓
//	    [core/analysis] package (structural features)
//	         ↓
//	    [core/selector] package (first matching rule wins)
//	         ↓
//	    layout name (+ rule, audit record)
//
// # Quick Start
//
//	import "github.com/matzehuels/slidelayout/pkg/pipeline"
//
//	name := pipeline.LayoutForContent(content.Slide{
//	    Headline: "Quarterly revenue",
//	    Chart:    map[string]any{"type": "bar"},
//	})
//	// name == "Chart - no sub-headline"
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/content] - The slide content model. Decoding is lenient: wrong
// types degrade to absent fields and unknown fields are kept.
//
// [core/analysis] - Reduces a slide to the booleans and counts the rules
// route on. Never fails.
//
// [core/selector] - The ordered rule chain and the rule tables (presets)
// that name its outcomes.
//
// [core/layout] - Layout names and the canonical constants.
//
// ## Orchestration
//
// [pipeline] - Router (single slide) and Runner (whole decks, concurrent,
// audited). The CLI and the HTTP API both route through it.
//
// ## Surfaces
//
// [config] - TOML/YAML configuration: preset, overrides, catalog, audit sink
// and server settings.
//
// [registry] - The layout catalog. Resolves names and reports rule outcomes
// missing from the catalog.
//
// [deck] - Reads slides and decks, writes routing results.
//
// [server] - The HTTP API.
//
// [schema] - JSON Schemas for slide input and routing results.
//
// [render/rulegraph] - Graphviz diagrams of the rule chain.
//
// ## Infrastructure
//
// [audit] - Records routing decisions to a file, Redis stream or MongoDB
// collection.
//
// [observability] - Hooks for metrics and tracing around routing, audit
// writes and HTTP requests.
//
// [errors] - Coded errors shared by every outer layer.
//
// [buildinfo] - Version information stamped at build time.
package pkg
