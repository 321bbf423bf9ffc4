package bdl

import (
	"strings"
	"unicode"
)

// parenDepth returns the running parenthesis balance of s, ignoring quoted text.
func parenDepth(s string) int {
	depth := 0
	quoted := false
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
	}
	return depth
}

// splitItems splits list contents on commas and whitespace outside quotes.
func splitItems(s string) []string {
	var (
		items  []string
		cur    strings.Builder
		quoted bool
		wasQ   bool
	)
	flush := func() {
		if cur.Len() > 0 || wasQ {
			items = append(items, cur.String())
		}
		cur.Reset()
		wasQ = false
	}
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			wasQ = true
		case quoted:
			cur.WriteRune(r)
		case r == ',' || unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return items
}

// parseValue converts the right-hand side of a keyword line into a Value.
func parseValue(raw string, isUnit func(string) bool) (Value, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}, false
	}

	if raw[0] == '(' {
		end := strings.LastIndexByte(raw, ')')
		body := raw[1:]
		if end > 0 {
			body = raw[1:end]
		}
		return Value{Items: splitItems(body), List: true}, true
	}

	if raw[0] == '"' {
		if end := strings.IndexByte(raw[1:], '"'); end >= 0 {
			return Value{Items: []string{raw[1 : end+1]}}, true
		}
		return Value{Items: []string{strings.Trim(raw, `"`)}}, true
	}

	fields := strings.Fields(raw)
	if len(fields) > 1 && isUnit(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return Value{Items: []string{strings.Join(fields, " ")}}, true
}

// positionalTokens splits a library-entry body into tokens. Quoted strings
// and parenthesised groups are single tokens; groups come back as lists.
func positionalTokens(body string) []Value {
	var (
		out   []Value
		cur   strings.Builder
		depth int
		inQ   bool
	)
	emit := func() {
		tok := strings.TrimSpace(cur.String())
		cur.Reset()
		if tok == "" {
			return
		}
		if tok[0] == '(' {
			inner := strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
			out = append(out, Value{Items: splitItems(inner), List: true})
			return
		}
		out = append(out, Value{Items: []string{strings.Trim(tok, `"`)}})
	}
	for _, r := range body {
		switch {
		case r == '"':
			inQ = !inQ
			cur.WriteRune(r)
		case inQ:
			cur.WriteRune(r)
		case r == '(':
			if depth == 0 {
				emit()
			}
			depth++
			cur.WriteRune(r)
		case r == ')':
			depth--
			cur.WriteRune(r)
			if depth <= 0 {
				depth = 0
				emit()
			}
		case unicode.IsSpace(r) && depth == 0:
			emit()
		default:
			cur.WriteRune(r)
		}
	}
	emit()
	return out
}
