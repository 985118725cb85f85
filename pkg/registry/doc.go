// Package registry is the layout catalog the selector's names resolve
// against.
//
// The selector produces names without checking them. Resolution happens here,
// on the rendering side: [Registry.Resolve] reports a LAYOUT_NOT_FOUND error
// for unknown names (including caller-supplied hints), and
// [Registry.ResolveOrDefault] substitutes the catalog's default template.
//
// [Builtin] returns the corporate catalog the rule presets were written for.
// [Registry.Validate] compares a rule table against a catalog, which is how
// an integrator decides which preset matches the templates they ship.
//
// Names are compared after trimming surrounding whitespace; exported slide
// masters sometimes carry a trailing space.
package registry
