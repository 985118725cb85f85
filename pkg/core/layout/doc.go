// Package layout defines the opaque layout identifier produced by the selector.
//
// A [Name] is meaningful only to an external layout registry (see
// [github.com/matzehuels/slidelayout/pkg/registry]). The core produces names
// but never resolves them: a name returned here may or may not exist in the
// catalog a renderer uses, and resolving it is the renderer's job.
//
// The constants in this package are the catalog names referenced by the
// built-in rule presets. They are provided for convenience; callers are free
// to route to any string.
package layout
