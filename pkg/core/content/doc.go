// Package content defines the slide content record consumed by the layout
// analyzer.
//
// # Presence
//
// Every field of [Slide] is optional. The analyzer only asks whether a field
// is present, so "absent" and "present but empty" are defined precisely:
//
//   - String fields are present when non-empty.
//   - Icons are present when the sequence has at least one element.
//   - Presence-only signals (chart, image, table and their *Data/*Path
//     aliases) are present unless nil, false, zero or the empty string.
//     See [Present].
//
// # Decoding
//
// [Slide] decodes leniently from JSON. A value of the wrong type (a number
// where a string is expected, an object where icons should be an array) is
// dropped rather than rejected, so a malformed field reads as absent.
// Unrecognized fields such as slide numbers, footers or sources are kept in
// [Slide.Extra] and written back out unchanged by [Slide.MarshalJSON].
package content
