package iface

import "strings"

// VoidReturn is the return kind of an operation that produces no result.
const VoidReturn = "void"

// Interface is a parsed behavioral contract.
type Interface struct {
	Name       string      `json:"name" yaml:"name"`
	Namespace  string      `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// QualifiedName returns Name prefixed with the enclosing namespace, if any.
func (i *Interface) QualifiedName() string {
	if i.Namespace == "" {
		return i.Name
	}
	return i.Namespace + "::" + i.Name
}

// Operation is one pure virtual member of an Interface.
type Operation struct {
	ReturnKind string      `json:"returnKind" yaml:"returnKind"`
	Name       string      `json:"name" yaml:"name"`
	Params     []Parameter `json:"params,omitempty" yaml:"params,omitempty"`
	ReadOnly   bool        `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`

	// ExceptionSpec is the exception specification as written, e.g.
	// "noexcept", "noexcept(false)" or "throw()". Empty when absent.
	ExceptionSpec string `json:"exceptionSpec,omitempty" yaml:"exceptionSpec,omitempty"`

	// Line is the 1-based line of the declaration in the source text.
	Line int `json:"line" yaml:"line"`
}

// IsVoid reports whether the operation returns nothing.
func (o Operation) IsVoid() bool { return o.ReturnKind == VoidReturn }

// Parameter is one entry of an operation's parameter list.
//
// Decl is the declaration text without any default value, with whitespace
// collapsed. Name is empty when the declaration carries no identifier.
type Parameter struct {
	Decl    string `json:"decl" yaml:"decl"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Declaration renders the parameter as it appears in a signature, including
// the default value when withDefault is set.
func (p Parameter) Declaration(withDefault bool) string {
	if withDefault && p.Default != "" {
		return p.Decl + " = " + p.Default
	}
	return p.Decl
}

// ParamList joins the operation's parameters for use inside a signature.
func (o Operation) ParamList(withDefaults bool) string {
	parts := make([]string, len(o.Params))
	for i, p := range o.Params {
		parts[i] = p.Declaration(withDefaults)
	}
	return strings.Join(parts, ", ")
}
