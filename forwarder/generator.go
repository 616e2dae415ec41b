package forwarder

import (
	"bytes"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/sghaida/hourglass/iface"
)

// Options controls naming and layout of the rendered documents.
// Zero fields take the defaults applied by New.
type Options struct {
	// HeaderName is the file name of the original declaration, e.g. "IWork.h".
	// Defaults to "<Interface>.<HeaderExt>".
	HeaderName string

	// IncludePrefix is prepended to HeaderName in the generated #include.
	// Defaults to DefaultIncludePrefix; use "./" for a same-directory include.
	IncludePrefix string

	// DetailNamespace hides the bridge. Defaults to "detail".
	DetailNamespace string

	// Layout selects a registered layout. Defaults to LayoutInline.
	Layout string

	// HeaderExt and SourceExt name the generated files. Default "h" and "cpp".
	HeaderExt string
	SourceExt string
}

// DefaultIncludePrefix points from the output directory back at the input.
const DefaultIncludePrefix = "../"

func (o *Options) applyDefaults() {
	if o.IncludePrefix == "" {
		o.IncludePrefix = DefaultIncludePrefix
	}
	if o.DetailNamespace == "" {
		o.DetailNamespace = "detail"
	}
	if o.Layout == "" {
		o.Layout = LayoutInline
	}
	if o.HeaderExt == "" {
		o.HeaderExt = "h"
	}
	if o.SourceExt == "" {
		o.SourceExt = "cpp"
	}
}

// Rendered is the output of one generation. Source is nil for header-only
// layouts.
type Rendered struct {
	Header []byte
	Source []byte
}

// Generator renders interfaces with fixed options.
type Generator struct {
	opts   Options
	layout Layout
}

// New validates opts against the built-in layouts and returns a Generator.
func New(opts Options) (*Generator, error) {
	return newWithRegistry(opts, Layouts)
}

func newWithRegistry(opts Options, reg *Registry) (*Generator, error) {
	opts.applyDefaults()
	layout, err := reg.Lookup(opts.Layout)
	if err != nil {
		return nil, err
	}
	return &Generator{opts: opts, layout: layout}, nil
}

// Generate renders the forwarding layers for decl.
func Generate(decl *iface.Interface, opts Options) (*Rendered, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Generate(decl)
}

// HeaderFile returns the generated header's file name for decl.
func (g *Generator) HeaderFile(decl *iface.Interface) string {
	return decl.Name + "." + g.opts.HeaderExt
}

// SourceFile returns the generated source's file name for decl, or "" when
// the layout is header-only.
func (g *Generator) SourceFile(decl *iface.Interface) string {
	if g.layout.Source == nil {
		return ""
	}
	return decl.Name + "." + g.opts.SourceExt
}

// document is the data every layout template is executed with.
type document struct {
	Name       string
	Namespace  string
	Detail     string
	Include    string
	HeaderFile string
	SourceFile string
	Members    members
}

// Generate renders decl with the generator's layout.
func (g *Generator) Generate(decl *iface.Interface) (*Rendered, error) {
	if decl == nil || decl.Name == "" {
		return nil, errors.New("forwarder: interface has no name")
	}
	if len(decl.Operations) == 0 {
		return nil, &iface.EmptyContractError{Interface: decl.Name}
	}

	m, err := buildMembers(decl)
	if err != nil {
		return nil, err
	}

	headerName := g.opts.HeaderName
	if headerName == "" {
		headerName = g.HeaderFile(decl)
	}

	doc := document{
		Name:       decl.Name,
		Namespace:  decl.Namespace,
		Detail:     g.opts.DetailNamespace,
		Include:    g.opts.IncludePrefix + headerName,
		HeaderFile: g.HeaderFile(decl),
		SourceFile: g.SourceFile(decl),
		Members:    m,
	}

	out := &Rendered{}
	if out.Header, err = execute(g.layout.Header, doc); err != nil {
		return nil, errors.Wrapf(err, "render %s header for %s", g.layout.Name, decl.Name)
	}
	if g.layout.Source != nil {
		if out.Source, err = execute(g.layout.Source, doc); err != nil {
			return nil, errors.Wrapf(err, "render %s source for %s", g.layout.Name, decl.Name)
		}
	}
	return out, nil
}

func execute(tpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
