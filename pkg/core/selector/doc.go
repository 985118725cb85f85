// Package selector maps a slide [analysis.Analysis] to a layout name.
//
// # Rule Chain
//
// Rules are evaluated in a fixed order and the first match wins. There is no
// scoring and no backtracking: a slide that satisfies several predicates is
// routed by whichever comes first.
//
//  1. hint: an explicit layout hint is returned unchanged
//  2. contact: contact slides
//  3. title: title and subtitle without body text
//  4. icons: routed by icon count through [IconTable]
//  5. chart: routed by [ChartStrategy]
//  6. two-column: both left and right content
//  7. main-content: two-line title with subheadline, subheadline, or plain
//  8. image: image-only slides, when enabled
//  9. default: the plain content layout
//
// # Rule Tables
//
// Two rule tables have been observed in production decks and neither is
// authoritative. They are exposed as presets:
//
//   - [PresetReference]: four icons route to "Icons 4 Columns Vertical" and
//     charts use the dual-variant scheme.
//   - [PresetCatalog]: four icons route to "Icons 4 Columns + Content" and
//     charts use a single consolidated layout.
//
// [DefaultRules] returns the reference table. Integrators pick a table with
// [Preset] or load one with the config package.
//
// The selector never checks that a name exists in any catalog.
package selector
