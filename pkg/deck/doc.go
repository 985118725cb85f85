// Package deck reads slide decks and writes routing results as JSON.
//
// # Input Shapes
//
// Three shapes are accepted:
//
//	{"headline": "Overview", "mainContent": "..."}          // one slide
//	[{"title": "Report"}, {"headline": "Overview"}]         // a bare array
//	{"slides": [{"title": "Report"}], "theme": "corporate"} // a deck object
//
// A top-level object is treated as a deck object when its "slides" member
// is an array; any other object is a single slide. Slide objects are decoded
// leniently (see [content.Slide]) so generator output with extra fields
// routes unchanged.
//
// # Output
//
// [WriteResults] emits an indented JSON array with one entry per slide:
//
//	[
//	  {"index": 0, "layout": "Title White - reports and presentations (hIHS)", "rule": "title"}
//	]
//
// The "analysis" member is present when the deck was routed with
// explanations enabled.
package deck
