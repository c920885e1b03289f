package style

import (
	"strings"

	"nativestyle/css"
)

// MatchMedia evaluates a media query (without the "@media" keyword) against
// the context. Comma separated queries match when any of them does. The host
// is always a screen, print and other media types never match. Unknown
// features do not match.
func MatchMedia(query string, ctx Context) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	var group []css.Node
	for _, n := range css.ParseValue(query) {
		if n.Type == css.DivNode && n.Value == "," {
			if matchMediaGroup(group, ctx) {
				return true
			}
			group = nil
			continue
		}
		group = append(group, n)
	}
	return matchMediaGroup(group, ctx)
}

func matchMediaGroup(nodes []css.Node, ctx Context) bool {
	parts := css.Components(nodes)
	if len(parts) == 0 {
		return false
	}

	negate := false
	if w := parts[0]; w.Type == css.WordNode {
		switch strings.ToLower(w.Value) {
		case "not":
			negate = true
			parts = parts[1:]
		case "only":
			parts = parts[1:]
		}
	}

	result := true
	for _, p := range parts {
		switch {
		case p.Type == css.WordNode && strings.EqualFold(p.Value, "and"):
		case p.Type == css.WordNode:
			switch strings.ToLower(p.Value) {
			case "all", "screen":
			default:
				result = false
			}
		case p.Type == css.FunctionNode && p.Value == "":
			if !matchMediaFeature(p, ctx) {
				result = false
			}
		default:
			result = false
		}
	}
	return result != negate
}

// matchMediaFeature evaluates a parenthesized "(name: value)" feature.
func matchMediaFeature(n css.Node, ctx Context) bool {
	var name, value string
	for i, c := range n.Nodes {
		if c.Type == css.DivNode && c.Value == ":" {
			name = strings.ToLower(strings.TrimSpace(css.Stringify(n.Nodes[:i])))
			value = strings.ToLower(strings.TrimSpace(css.Stringify(n.Nodes[i+1:])))
			break
		}
	}
	if name == "" {
		return false
	}

	width, height := ctx.ViewportWidth, ctx.ViewportHeight
	switch name {
	case "min-width", "max-width", "width", "min-height", "max-height", "height":
		limit, ok := mediaLength(value, ctx)
		if !ok {
			return false
		}
		actual := width
		if strings.HasSuffix(name, "height") {
			actual = height
		}
		switch {
		case strings.HasPrefix(name, "min-"):
			return actual >= limit
		case strings.HasPrefix(name, "max-"):
			return actual <= limit
		default:
			return actual == limit
		}

	case "orientation":
		switch value {
		case "portrait":
			return height >= width
		case "landscape":
			return width > height
		}

	case "prefers-color-scheme":
		scheme := strings.ToLower(ctx.ColorScheme)
		if scheme == "" {
			scheme = "light"
		}
		return value == scheme
	}
	return false
}

// mediaLength converts a media feature length to device independent units.
// Relative units use the root font size, not the inherited one.
func mediaLength(value string, ctx Context) (float64, bool) {
	d, ok := css.Unit(value)
	if !ok {
		return 0, false
	}
	switch d.Unit {
	case "", "px":
		return d.Number, true
	case "em", "rem":
		return d.Number * ctx.rootFontSize(), true
	}
	return 0, false
}
