// Package analysis extracts the routing features of a slide.
//
// [Analyzer.Analyze] is total and pure: it never fails, never mutates its
// input, and returns a fully populated [Analysis] for any [content.Slide].
// Every feature has a defined default when its source field is absent.
//
//	a := analysis.Analyze(content.Slide{Title: "Q3 Review", Subtitle: "Draft"})
//	a.IsTitle // true
//
// Text lengths are counted in Unicode code points.
package analysis
