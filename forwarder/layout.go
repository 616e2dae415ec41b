package forwarder

import (
	"sort"
	"text/template"
)

// Layout is a named pair of templates. Source is nil for header-only layouts.
type Layout struct {
	Name   string
	Header *template.Template
	Source *template.Template
}

// Registry maps layout names to layouts.
//
// It is populated at init time and read-only afterwards, so lookups need no
// locking.
type Registry struct {
	items map[string]Layout
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[string]Layout{}}
}

// Provide stores a layout under its name and returns the registry for chaining.
func (r *Registry) Provide(l Layout) *Registry {
	r.items[l.Name] = l
	return r
}

// Lookup returns the layout registered under name.
func (r *Registry) Lookup(name string) (Layout, error) {
	l, ok := r.items[name]
	if !ok {
		return Layout{}, &UnknownLayoutError{Name: name, Known: r.Names()}
	}
	return l, nil
}

// Names returns the registered layout names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for n := range r.items {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

const (
	LayoutInline = "inline"
	LayoutSplit  = "split"
)

// Layouts holds the built-in layouts.
var Layouts = NewRegistry().
	Provide(Layout{Name: LayoutInline, Header: inlineHeaderTpl}).
	Provide(Layout{Name: LayoutSplit, Header: splitHeaderTpl, Source: splitSourceTpl})
