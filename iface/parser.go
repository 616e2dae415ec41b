package iface

import (
	"regexp"
	"strings"
)

var (
	// headerRe matches an aggregate introducer up to its opening brace. Only
	// "class" introduces a contract; the other kinds are matched so that they
	// are consumed and skipped as a whole (e.g. "enum class").
	headerRe = regexp.MustCompile(`\b(class|struct|union|enum)\b([^;{}]*)\{`)

	namespaceRe   = regexp.MustCompile(`^(?:inline\s+)?namespace(?:\s+([A-Za-z_][\w:]*))?$`)
	identRe       = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	identTailRe   = regexp.MustCompile(`[A-Za-z_]\w*$`)
	attributeRe   = regexp.MustCompile(`\[\[[^\]]*\]\]`)
	accessLabelRe = regexp.MustCompile(`^(?:(?:public|protected|private)\s*:\s*)+`)
	virtualRe     = regexp.MustCompile(`^virtual\b`)
	pureRe        = regexp.MustCompile(`=\s*0$`)
	qualifierRe   = regexp.MustCompile(`\b(const|(?:noexcept|throw)(?:\s*\([^()]*\))?|override|final)$`)
)

// words that can end a parameter declaration without being its name.
var typeWords = map[string]bool{
	"void": true, "bool": true, "char": true, "wchar_t": true, "char8_t": true,
	"char16_t": true, "char32_t": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true, "auto": true,
	"const": true, "volatile": true,
}

// words that take a parenthesized operand and can trail a parameter list.
var specifierWords = map[string]bool{
	"throw": true, "noexcept": true, "decltype": true, "requires": true,
	"alignas": true, "sizeof": true,
}

// words that qualify a type without being one.
var qualifierWords = map[string]bool{
	"const": true, "volatile": true, "struct": true, "class": true,
	"enum": true, "union": true, "typename": true,
}

// Parser turns header text into an Interface.
//
// The zero value parses the first interface in best-effort mode: operations
// that carry the pure virtual marker but cannot be decomposed are skipped and
// reported through OnSkip.
type Parser struct {
	// Interface selects a contract by name instead of taking the first one.
	Interface string

	// Strict makes the first malformed operation abort the parse.
	Strict bool

	// OnSkip, if set, is called for every operation skipped in best-effort mode.
	OnSkip func(*MalformedOperationError)
}

// Parse parses text with a zero-value Parser.
func Parse(text string) (*Interface, error) {
	return (&Parser{}).Parse(text)
}

// Parse recovers the interface declared in text.
//
// It fails with *NotFoundError when no contract is recognized,
// *EmptyContractError when the contract has no usable operation,
// *DuplicateOperationError when an operation name repeats, and, in strict
// mode, *MalformedOperationError for the first undecomposable operation.
func (p *Parser) Parse(text string) (*Interface, error) {
	src := blankComments(text)

	h, ok := p.findHeader(src)
	if !ok {
		return nil, &NotFoundError{Name: p.Interface}
	}

	body, _, err := extractBlock(src, h.open)
	if err != nil {
		return nil, err
	}

	decl := &Interface{
		Name:      h.name,
		Namespace: enclosingNamespace(src, h.start),
	}

	seen := make(map[string]int)
	bodyStart := h.open + 1
	for _, st := range statements(body) {
		op, isOp, reason := parseOperation(st.text)
		if !isOp {
			continue
		}

		// report the line of "virtual", not of a leading access label
		line := lineAt(src, bodyStart+st.offset+strings.Index(st.text, "virtual"))
		if reason != "" {
			merr := &MalformedOperationError{Fragment: collapseSpace(st.text), Line: line, Reason: reason}
			if p.Strict {
				return nil, merr
			}
			if p.OnSkip != nil {
				p.OnSkip(merr)
			}
			continue
		}

		if first, dup := seen[op.Name]; dup {
			return nil, &DuplicateOperationError{Interface: decl.Name, Name: op.Name, Line: line, FirstLine: first}
		}
		seen[op.Name] = line

		op.Line = line
		decl.Operations = append(decl.Operations, op)
	}

	if len(decl.Operations) == 0 {
		return nil, &EmptyContractError{Interface: decl.Name, Line: lineAt(src, h.start)}
	}
	return decl, nil
}

type header struct {
	name  string
	start int // offset of the "class" keyword
	open  int // offset of the opening brace
}

// findHeader returns the first class declaration with a body, or the one
// named p.Interface when set.
func (p *Parser) findHeader(src string) (header, bool) {
	for _, m := range headerRe.FindAllStringSubmatchIndex(src, -1) {
		if src[m[2]:m[3]] != "class" {
			continue
		}
		name := className(src[m[4]:m[5]])
		if name == "" {
			continue
		}
		if p.Interface != "" && name != p.Interface {
			continue
		}
		return header{name: name, start: m[0], open: m[1] - 1}, true
	}
	return header{}, false
}

// className extracts the declared name from the text between "class" and
// "{", e.g. " API_EXPORT Shape final : public Base ".
func className(s string) string {
	s = attributeRe.ReplaceAllString(s, " ")
	if i := baseClauseIndex(s); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if n := len(fields); n > 0 && fields[n-1] == "final" {
		fields = fields[:n-1]
	}
	if len(fields) == 0 {
		return ""
	}
	name := fields[len(fields)-1]
	if !identRe.MatchString(name) {
		return ""
	}
	return name
}

// baseClauseIndex returns the index of the single ':' starting a base
// clause, ignoring "::" scope separators.
func baseClauseIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 < len(s) && s[i+1] == ':' {
			i++
			continue
		}
		return i
	}
	return -1
}

// enclosingNamespace returns the "::"-joined names of the named namespaces
// that are open at offset pos in src.
func enclosingNamespace(src string, pos int) string {
	type scope struct {
		name string
		ns   bool
	}
	var (
		stack    []scope
		segStart int
	)

	for i := 0; i < pos; {
		switch src[i] {
		case '"', '\'':
			i = skipLiteral(src, i)
			continue
		case ';':
			segStart = i + 1
		case '{':
			m := namespaceRe.FindStringSubmatch(collapseSpace(src[segStart:i]))
			if m != nil {
				stack = append(stack, scope{name: m[1], ns: true})
			} else {
				stack = append(stack, scope{})
			}
			segStart = i + 1
		case '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			segStart = i + 1
		}
		i++
	}

	var names []string
	for _, s := range stack {
		if s.ns && s.name != "" {
			names = append(names, s.name)
		}
	}
	return strings.Join(names, "::")
}

// parseOperation decomposes one body statement. isOp reports whether the
// statement is a pure virtual declaration at all; a non-empty reason means it
// is one but could not be decomposed.
func parseOperation(text string) (op Operation, isOp bool, reason string) {
	s := collapseSpace(text)
	s = accessLabelRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(attributeRe.ReplaceAllString(s, ""))

	if !virtualRe.MatchString(s) {
		return Operation{}, false, ""
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "virtual"))

	loc := pureRe.FindStringIndex(s)
	if loc == nil {
		return Operation{}, false, ""
	}
	s = strings.TrimSpace(s[:loc[0]])

	for {
		m := qualifierRe.FindStringSubmatchIndex(s)
		if m == nil {
			break
		}
		switch q := s[m[2]:m[3]]; {
		case q == "const":
			op.ReadOnly = true
		case strings.HasPrefix(q, "noexcept"), strings.HasPrefix(q, "throw"):
			if op.ExceptionSpec != "" {
				return Operation{}, true, "more than one exception specification"
			}
			op.ExceptionSpec = q
		}
		s = strings.TrimSpace(s[:m[0]])
	}

	if !strings.HasSuffix(s, ")") {
		return Operation{}, true, "missing parameter list"
	}
	open := matchingOpenParen(s, len(s)-1)
	if open < 0 {
		return Operation{}, true, "unbalanced parentheses"
	}

	head := strings.TrimSpace(s[:open])
	nameLoc := identTailRe.FindStringIndex(head)
	if nameLoc == nil {
		return Operation{}, true, "missing operation name"
	}
	op.Name = head[nameLoc[0]:]
	op.ReturnKind = strings.TrimSpace(head[:nameLoc[0]])
	if specifierWords[op.Name] {
		// the last parentheses belong to a specifier we could not strip,
		// e.g. noexcept(noexcept(x))
		return Operation{}, true, "unrecognized trailing specifier " + op.Name
	}

	if strings.HasSuffix(op.ReturnKind, "~") {
		// pure virtual destructor
		return Operation{}, false, ""
	}
	if op.ReturnKind == "" {
		return Operation{}, true, "missing return type"
	}

	params, reason := parseParams(s[open+1 : len(s)-1])
	if reason != "" {
		return Operation{}, true, reason
	}
	op.Params = params
	return op, true, ""
}

// parseParams splits a parameter list and recovers each parameter's name.
// An empty list and the lone "void" both mean no parameters.
func parseParams(list string) ([]Parameter, string) {
	list = strings.TrimSpace(list)
	if list == "" || list == VoidReturn {
		return nil, ""
	}

	var params []Parameter
	for _, part := range splitTopLevel(list, ',') {
		decl, def := part, ""
		if i := indexTopLevel(part, '='); i >= 0 {
			decl, def = part[:i], part[i+1:]
		}
		decl = collapseSpace(decl)
		if decl == "" {
			return nil, "empty parameter declaration"
		}
		params = append(params, Parameter{
			Decl:    decl,
			Name:    parameterName(decl),
			Default: collapseSpace(def),
		})
	}
	return params, ""
}

// parameterName returns the identifier a parameter is declared with, or ""
// when the declaration names only a type.
func parameterName(decl string) string {
	s := decl
	for strings.HasSuffix(s, "]") {
		i := strings.LastIndexByte(s, '[')
		if i < 0 {
			return ""
		}
		s = strings.TrimSpace(s[:i])
	}

	loc := identTailRe.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	name := s[loc[0]:]
	rest := strings.TrimSpace(s[:loc[0]])

	if typeWords[name] || rest == "" || strings.HasSuffix(rest, "::") {
		return ""
	}
	for _, f := range strings.Fields(rest) {
		if !qualifierWords[f] {
			return name
		}
	}
	return ""
}
