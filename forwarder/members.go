package forwarder

import (
	"strings"

	"github.com/sghaida/hourglass/iface"
)

const (
	implField   = "impl_"
	bridgeField = "bridge_"
)

// forwardArgs returns the comma-separated names to pass through, in
// declaration order. Rvalue references and by-value unique_ptr are moved.
func forwardArgs(decl *iface.Interface, op iface.Operation) (string, error) {
	names := make([]string, len(op.Params))
	for i, p := range op.Params {
		if p.Name == "" {
			return "", &UnnamedParameterError{
				Interface: decl.Name,
				Operation: op.Name,
				Index:     i + 1,
				Decl:      p.Decl,
				Line:      op.Line,
			}
		}
		names[i] = p.Name
		if movable(p) {
			names[i] = "std::move(" + p.Name + ")"
		}
	}
	return strings.Join(names, ", "), nil
}

// movable reports whether a named argument must be passed on as an rvalue.
func movable(p iface.Parameter) bool {
	typ := strings.TrimSpace(strings.TrimSuffix(p.Decl, p.Name))
	switch {
	case strings.HasSuffix(typ, "&&"):
		return true
	case strings.HasSuffix(typ, "&"), strings.HasSuffix(typ, "*"):
		return false
	}
	return strings.HasPrefix(typ, "std::unique_ptr<")
}

// callStatement forwards op through target. Only non-void operations
// propagate the result.
func callStatement(target string, op iface.Operation, args string) string {
	call := target + "->" + op.Name + "(" + args + ");"
	if op.IsVoid() {
		return call
	}
	return "return " + call
}

// qualifiers renders the trailing const and exception specification of a
// signature.
func qualifiers(op iface.Operation) string {
	var sb strings.Builder
	if op.ReadOnly {
		sb.WriteString(" const")
	}
	if op.ExceptionSpec != "" {
		sb.WriteString(" " + op.ExceptionSpec)
	}
	return sb.String()
}

// signature renders "<ret> <scope><name>(<params>)<qualifiers>".
func signature(op iface.Operation, scope string, withDefaults bool) string {
	return op.ReturnKind + " " + scope + op.Name + "(" + op.ParamList(withDefaults) + ")" + qualifiers(op)
}

// members holds the rendered forwarding members of one interface.
type members struct {
	BridgeInline []string
	BridgeDecls  []string
	BridgeDefs   []string
	Proxy        []string
}

func buildMembers(decl *iface.Interface) (members, error) {
	var m members
	bridge := decl.Name + "Bridge"

	for _, op := range decl.Operations {
		args, err := forwardArgs(decl, op)
		if err != nil {
			return members{}, err
		}
		toImpl := callStatement(implField, op, args)
		toBridge := callStatement(bridgeField, op, args)

		m.BridgeInline = append(m.BridgeInline, "    "+signature(op, "", true)+" { "+toImpl+" }")
		m.BridgeDecls = append(m.BridgeDecls, "    "+signature(op, "", true)+";")
		m.BridgeDefs = append(m.BridgeDefs, signature(op, bridge+"::", false)+" { "+toImpl+" }")
		m.Proxy = append(m.Proxy, "    inline "+signature(op, "", true)+" override { "+toBridge+" }")
	}
	return m, nil
}
