// Package iface recovers the shape of an abstract C++ interface from header text.
//
// It is a tolerant, pattern-based recognizer, not a C++ parser. It finds the
// first (or a named) class declaration, extracts its body by counting braces,
// and keeps only the statements that look like pure virtual operations:
//
//	virtual <return> <Name>(<params>) [const] [noexcept(...)|throw(...)] [override] = 0;
//
// Exception specifications are kept verbatim so forwarders promise exactly
// what the original does.
//
// Everything else in the body (data members, nested types, destructors, concrete
// virtuals) is treated as opaque text and ignored.
//
// The result is an Interface: a name, an optional enclosing namespace, and the
// operations in declaration order. Parsing is a pure function of its input; a
// Parser holds only options and may be shared between goroutines.
package iface
