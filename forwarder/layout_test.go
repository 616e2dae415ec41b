package forwarder

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLayouts_BuiltIn verifies both built-in layouts are registered.
func TestLayouts_BuiltIn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{LayoutInline, LayoutSplit}, Layouts.Names())

	inline, err := Layouts.Lookup(LayoutInline)
	require.NoError(t, err)
	assert.NotNil(t, inline.Header)
	assert.Nil(t, inline.Source)

	split, err := Layouts.Lookup(LayoutSplit)
	require.NoError(t, err)
	assert.NotNil(t, split.Header)
	assert.NotNil(t, split.Source)
}

// TestRegistry_ProvideChains verifies Provide returns the same registry.
func TestRegistry_ProvideChains(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ret := r.Provide(Layout{Name: "b"}).Provide(Layout{Name: "a"})
	require.Same(t, r, ret)
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

// TestRegistry_LookupUnknown verifies a missing layout names the known ones.
func TestRegistry_LookupUnknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry().Provide(Layout{Name: "only"})
	_, err := r.Lookup("nope")
	require.EqualError(t, err, `forwarder: unknown layout "nope" (known: only)`)
}

// TestGenerator_CustomLayout verifies a caller-provided layout is used.
func TestGenerator_CustomLayout(t *testing.T) {
	t.Parallel()

	tpl := template.Must(template.New("names").Funcs(funcs).Parse(
		"{{.Name}}|{{.Detail}}|{{.HeaderFile}}|{{lines .Members.Proxy}}"))
	r := NewRegistry().Provide(Layout{Name: "names", Header: tpl})

	g, err := newWithRegistry(Options{Layout: "names"}, r)
	require.NoError(t, err)

	out, err := g.Generate(shapeInterface())
	require.NoError(t, err)
	assert.Equal(t,
		"Shape|detail|Shape.h|"+
			"    inline double Area() const override { return bridge_->Area(); }\n"+
			"    inline void Scale(double factor) override { bridge_->Scale(factor); }",
		string(out.Header))
	assert.Empty(t, g.SourceFile(shapeInterface()))

	_, err = newWithRegistry(Options{}, r)
	var le *UnknownLayoutError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, LayoutInline, le.Name)
}
