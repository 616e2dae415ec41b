package iface

import "strconv"

// NotFoundError is returned when no interface declaration is recognized.
//
// Name is set when a specific interface was requested.
type NotFoundError struct{ Name string }

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return "iface: no interface declaration found"
	}
	return "iface: interface " + strconv.Quote(e.Name) + " not found"
}

// EmptyContractError is returned when an interface is recognized but none of
// its statements is a usable pure virtual operation.
type EmptyContractError struct {
	Interface string
	Line      int
}

// Error implements the error interface.
func (e *EmptyContractError) Error() string {
	// Example: iface: interface "IWork" (line 3) declares no pure virtual operations
	return "iface: interface " + strconv.Quote(e.Interface) + " (line " + strconv.Itoa(e.Line) +
		") declares no pure virtual operations"
}

// MalformedOperationError is reported when a statement carries the pure
// virtual marker but cannot be split into return kind, name and parameters.
type MalformedOperationError struct {
	Fragment string
	Line     int
	Reason   string
}

// Error implements the error interface.
func (e *MalformedOperationError) Error() string {
	return "iface: malformed operation at line " + strconv.Itoa(e.Line) + " (" + e.Reason + "): " +
		strconv.Quote(e.Fragment)
}

// DuplicateOperationError is returned when two operations share a name.
// Overloads are not supported: forwarding both would emit conflicting members.
type DuplicateOperationError struct {
	Interface string
	Name      string
	Line      int
	FirstLine int
}

// Error implements the error interface.
func (e *DuplicateOperationError) Error() string {
	return "iface: interface " + strconv.Quote(e.Interface) + " declares operation " +
		strconv.Quote(e.Name) + " twice (lines " + strconv.Itoa(e.FirstLine) + " and " +
		strconv.Itoa(e.Line) + ")"
}

// UnbalancedBlockError is returned when a brace-delimited block never closes.
type UnbalancedBlockError struct{ Line int }

// Error implements the error interface.
func (e *UnbalancedBlockError) Error() string {
	return "iface: unbalanced braces in block opened at line " + strconv.Itoa(e.Line)
}
