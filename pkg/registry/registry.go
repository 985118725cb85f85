package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

// separatorPrefix marks catalog entries that only separate groups in the
// slide master list.
const separatorPrefix = "~"

// Layout is a catalog entry.
type Layout struct {
	Name  layout.Name `json:"name" toml:"name" yaml:"name"`
	Group string      `json:"group,omitempty" toml:"group" yaml:"group"`
	Order int         `json:"order" toml:"-" yaml:"-"`
}

// Registry stores layouts by canonical name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[layout.Name]Layout
	order    []layout.Name
	fallback layout.Name
}

// New returns an empty registry whose default template is fallback.
func New(fallback layout.Name) *Registry {
	return &Registry{
		entries:  make(map[layout.Name]Layout),
		fallback: fallback.Canonical(),
	}
}

// IsSeparator reports whether name is a group separator rather than a layout.
func IsSeparator(name layout.Name) bool {
	return strings.HasPrefix(strings.TrimSpace(string(name)), separatorPrefix)
}

// Register adds l, replacing any entry with the same canonical name.
// Separators and empty names are ignored and reported as false.
func (r *Registry) Register(l Layout) bool {
	key := l.Name.Canonical()
	if key == "" || IsSeparator(key) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[key]; ok {
		l.Order = existing.Order
	} else {
		l.Order = len(r.order)
		r.order = append(r.order, key)
	}
	l.Name = key
	r.entries[key] = l
	return true
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Default returns the default template name.
func (r *Registry) Default() layout.Name {
	return r.fallback
}

// Has reports whether name is registered.
func (r *Registry) Has(name layout.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name.Canonical()]
	return ok
}

// Resolve returns the layout registered under name.
func (r *Registry) Resolve(name layout.Name) (Layout, error) {
	r.mu.RLock()
	l, ok := r.entries[name.Canonical()]
	r.mu.RUnlock()
	if !ok {
		return Layout{}, errors.New(errors.ErrCodeLayoutNotFound, "layout %q not in catalog", string(name))
	}
	return l, nil
}

// ResolveOrDefault resolves name, substituting the default template when the
// name is unknown. fellBack reports whether the substitution happened. An
// error is returned only if the default itself is missing.
func (r *Registry) ResolveOrDefault(name layout.Name) (l Layout, fellBack bool, err error) {
	if l, err := r.Resolve(name); err == nil {
		return l, false, nil
	}
	l, err = r.Resolve(r.fallback)
	if err != nil {
		return Layout{}, true, errors.Wrap(errors.ErrCodeLayoutNotFound, err, "default template missing")
	}
	return l, true, nil
}

// List returns all layouts in registration order.
func (r *Registry) List() []Layout {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Layout, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// Groups returns the distinct group names in registration order.
func (r *Registry) Groups() []string {
	var groups []string
	for _, l := range r.List() {
		if l.Group != "" && !slices.Contains(groups, l.Group) {
			groups = append(groups, l.Group)
		}
	}
	return groups
}

// Validate returns the names rules can produce that the registry lacks,
// sorted. Layout hints are not covered; they are resolved per slide.
func (r *Registry) Validate(rules selector.Rules) []layout.Name {
	var missing []layout.Name
	for _, name := range rules.Names() {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// FromNames builds a registry from an ordered master list. Separator entries
// ("~" followed by spaces) start a new group; each group is named after the
// first word of its first layout.
func FromNames(fallback layout.Name, names ...layout.Name) *Registry {
	r := New(fallback)
	group := ""
	for _, n := range names {
		if IsSeparator(n) {
			group = ""
			continue
		}
		if group == "" {
			group = groupName(n)
		}
		r.Register(Layout{Name: n, Group: group})
	}
	return r
}

func groupName(first layout.Name) string {
	word, _, _ := strings.Cut(strings.TrimSpace(string(first)), " ")
	return strings.ToLower(word)
}
