package iface

import "strings"

// blankComments returns src with comments and preprocessor lines replaced by
// spaces. Newlines are kept so byte offsets and line numbers in the result
// match the input.
func blankComments(src string) string {
	out := []byte(src)
	lineStart := true

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			lineStart = true
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case lineStart && c == '#':
			for i < len(src) && src[i] != '\n' {
				if src[i] == '\\' && i+1 < len(src) && src[i+1] == '\n' {
					out[i] = ' '
					i += 2
					continue
				}
				out[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			stop := len(src)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			for ; i < stop; i++ {
				if src[i] != '\n' {
					out[i] = ' '
				}
			}
			lineStart = false
		case c == '"' || c == '\'':
			i = skipLiteral(src, i)
			lineStart = false
		default:
			lineStart = false
			i++
		}
	}
	return string(out)
}

// skipLiteral returns the index just past the string or character literal
// starting at s[i]. An unterminated literal ends at the end of its line.
func skipLiteral(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(s)
}

// lineAt returns the 1-based line number of offset within s.
func lineAt(s string, offset int) int {
	if offset > len(s) {
		offset = len(s)
	}
	return strings.Count(s[:offset], "\n") + 1
}

// extractBlock returns the text between the brace at s[open] and its
// matching closing brace, and the index just past that closing brace.
// Nested braces are counted, so inner scopes never end the block early.
func extractBlock(s string, open int) (body string, end int, err error) {
	if open < 0 || open >= len(s) || s[open] != '{' {
		return "", 0, &UnbalancedBlockError{Line: lineAt(s, open)}
	}

	depth := 1
	for i := open + 1; i < len(s); {
		switch s[i] {
		case '"', '\'':
			i = skipLiteral(s, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], i + 1, nil
			}
		}
		i++
	}
	return "", 0, &UnbalancedBlockError{Line: lineAt(s, open)}
}

// statement is one top-level declaration inside a block, with the offset of
// its first non-space byte relative to the block.
type statement struct {
	text   string
	offset int
}

// statements splits a block body into top-level statements. A statement ends
// at a ';' outside any brackets, or at a '}' that closes a nested scope.
func statements(body string) []statement {
	var (
		out    []statement
		parens int
		braces int
		start  int
	)

	flush := func(end int) {
		raw := body[start:end]
		trimmed := strings.TrimLeft(raw, " \t\r\n")
		if strings.TrimSpace(trimmed) != "" {
			out = append(out, statement{
				text:   strings.TrimSpace(trimmed),
				offset: start + len(raw) - len(trimmed),
			})
		}
		start = end
	}

	for i := 0; i < len(body); {
		switch body[i] {
		case '"', '\'':
			i = skipLiteral(body, i)
			continue
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
			if braces == 0 && parens == 0 {
				flush(i + 1)
			}
		case ';':
			if braces == 0 && parens == 0 {
				flush(i)
				start = i + 1
			}
		}
		i++
	}
	flush(len(body))
	return out
}

// splitTopLevel splits s on sep wherever sep is not nested inside (), [],
// {} or <>.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		start int
	)
	for _, idx := range topLevelIndexes(s, sep) {
		parts = append(parts, s[start:idx])
		start = idx + 1
	}
	return append(parts, s[start:])
}

// indexTopLevel is like strings.IndexByte but skips nested occurrences.
func indexTopLevel(s string, sep byte) int {
	idx := topLevelIndexes(s, sep)
	if len(idx) == 0 {
		return -1
	}
	return idx[0]
}

func topLevelIndexes(s string, sep byte) []int {
	var (
		out    []int
		depth  int
		angles int
		// past a top-level '=' of the current entry, where '<' is more
		// often a comparison than a template argument list
		inValue bool
	)
	for i := 0; i < len(s); {
		c := s[i]
		if c == sep && depth == 0 && angles == 0 {
			out = append(out, i)
			inValue = false
			i++
			continue
		}
		switch c {
		case '"', '\'':
			i = skipLiteral(s, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 && angles == 0 && !isComparison(s, i) {
				inValue = true
			}
		case '<':
			if depth == 0 && opensAngle(s, i, inValue) {
				angles++
			}
		case '>':
			if depth == 0 && angles > 0 {
				angles--
			}
		}
		i++
	}
	return out
}

// isComparison reports whether the '=' at s[i] belongs to ==, !=, <= or >=.
func isComparison(s string, i int) bool {
	if i+1 < len(s) && s[i+1] == '=' {
		return true
	}
	return i > 0 && strings.IndexByte("=!<>", s[i-1]) >= 0
}

// opensAngle reports whether the '<' at s[i] opens a template argument list.
// Shifts and <= never do. Inside a value only a '<' glued to a name does.
func opensAngle(s string, i int, inValue bool) bool {
	if i+1 < len(s) && (s[i+1] == '<' || s[i+1] == '=') {
		return false
	}
	if i > 0 && s[i-1] == '<' {
		return false
	}
	if !inValue {
		return true
	}
	return i > 0 && isIdentByte(s[i-1])
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// matchingOpenParen returns the index of the '(' matching the ')' at s[close].
func matchingOpenParen(s string, close int) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// collapseSpace trims s and folds every run of whitespace to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
