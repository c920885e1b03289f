package style

import (
	"fmt"
	"strconv"
	"strings"

	"nativestyle/css"
)

// maxVarDepth limits nested var() expansion so self-referencing custom
// properties terminate.
const maxVarDepth = 16

// HasVarReference reports whether s contains a var() reference.
func HasVarReference(s string) bool {
	return strings.Contains(strings.ToLower(s), "var(")
}

// varResolver substitutes var() references. missing is called with the name
// of every reference that could not be resolved.
type varResolver struct {
	vars    map[string]any
	missing func(name string)
}

// SubstituteVars replaces var(--name[, fallback]) references in s with values
// from vars. Unresolved references without a fallback are left in place. If
// the whole value is a single reference to a non-string value, that value is
// returned as is.
func SubstituteVars(s string, vars map[string]any) any {
	r := varResolver{vars: vars}
	return r.substitute(s, 0)
}

func (r *varResolver) substitute(s string, depth int) any {
	if !HasVarReference(s) {
		return s
	}
	nodes := css.ParseValue(s)

	// a lone reference keeps the type of the custom property value
	if parts := css.Components(nodes); len(parts) == 1 && parts[0].IsFunction("var") {
		v, ok := r.lookup(parts[0], depth)
		if !ok {
			return s
		}
		return v
	}

	return css.StringifyFunc(nodes, func(n css.Node) (string, bool) {
		if !n.IsFunction("var") {
			return "", false
		}
		v, ok := r.lookup(n, depth)
		if !ok {
			return css.Stringify([]css.Node{n}), true
		}
		return formatVarValue(v), true
	})
}

// lookup resolves a single var() node, falling back to the text after the
// first comma when the name is unknown.
func (r *varResolver) lookup(n css.Node, depth int) (any, bool) {
	name, fallback, hasFallback := splitVarArgs(n)
	if depth >= maxVarDepth {
		r.report(name)
		return nil, false
	}
	if v, ok := r.vars[name]; ok && v != nil {
		if s, isString := v.(string); isString {
			return r.substitute(s, depth+1), true
		}
		return v, true
	}
	if v, ok := r.vars[strings.TrimPrefix(name, "--")]; ok && v != nil {
		if s, isString := v.(string); isString {
			return r.substitute(s, depth+1), true
		}
		return v, true
	}
	if hasFallback {
		return r.substitute(fallback, depth+1), true
	}
	r.report(name)
	return nil, false
}

func (r *varResolver) report(name string) {
	if r.missing != nil {
		r.missing(name)
	}
}

// splitVarArgs extracts the custom property name and the raw fallback text
// of a var() node.
func splitVarArgs(n css.Node) (name, fallback string, hasFallback bool) {
	for i, c := range n.Nodes {
		if c.Type == css.DivNode && c.Value == "," {
			fallback = strings.TrimSpace(css.Stringify(n.Nodes[i+1:]) + n.After)
			return name, fallback, true
		}
		if c.Type == css.WordNode && name == "" {
			name = c.Value
		}
	}
	return name, "", false
}

func formatVarValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
