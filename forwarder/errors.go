package forwarder

import (
	"strconv"
	"strings"
)

// UnnamedParameterError is returned when a parameter has no name to forward.
type UnnamedParameterError struct {
	Interface string
	Operation string
	Index     int // 1-based
	Decl      string
	Line      int
}

// Error implements the error interface.
func (e *UnnamedParameterError) Error() string {
	// Example: forwarder: parameter 1 ("int") of "Shape::Resize" (line 9) has no name to forward
	return "forwarder: parameter " + strconv.Itoa(e.Index) + " (" + strconv.Quote(e.Decl) + ") of " +
		strconv.Quote(e.Interface+"::"+e.Operation) + " (line " + strconv.Itoa(e.Line) +
		") has no name to forward"
}

// UnknownLayoutError is returned when a layout name is not registered.
type UnknownLayoutError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownLayoutError) Error() string {
	return "forwarder: unknown layout " + strconv.Quote(e.Name) + " (known: " + strings.Join(e.Known, ", ") + ")"
}
