package css

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// PseudoClass represents the state a rule is scoped to.
type PseudoClass int

const (
	PseudoNone  PseudoClass = iota // No pseudo-class
	PseudoHover                    // :hover
)

// String returns the CSS representation of the pseudo-class.
func (p PseudoClass) String() string {
	switch p {
	case PseudoHover:
		return ":hover"
	default:
		return ""
	}
}

// Selector represents a parsed class selector.
type Selector struct {
	Raw    string      // Original selector string
	Class  string      // Class name without dot, empty for :root
	Root   bool        // true for :root (custom property definitions)
	Pseudo PseudoClass // Pseudo-class if present
}

// IsSupported returns true if the selector can be turned into a style declaration.
func (s Selector) IsSupported() bool {
	return s.Class != "" || s.Root
}

// Rule represents a single CSS rule (selector + declarations).
// Property values are kept as raw text, value parsing is done at style
// creation time.
type Rule struct {
	Selector   Selector          // Parsed selector
	Properties map[string]string // Property name -> raw value
}

// GetProperty returns the raw value for a property.
func (r Rule) GetProperty(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string // Query text without the "@media" keyword
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// Variables returns custom properties declared in :root rules outside of
// media blocks. Later declarations win.
func (s *Stylesheet) Variables() map[string]string {
	vars := make(map[string]string)
	for _, item := range s.Items {
		if item.Rule == nil || !item.Rule.Selector.Root {
			continue
		}
		for name, val := range item.Rule.Properties {
			if strings.HasPrefix(name, "--") {
				vars[name] = val
			}
		}
	}
	return vars
}

// Declarations groups class rules into style authoring maps keyed by class
// name. Hover rules are nested under ":hover" and media rules under
// "@media <query>", which is the shape style.Create accepts. Rules for the
// same class are merged in source order, later properties win.
func (s *Stylesheet) Declarations() map[string]map[string]any {
	out := make(map[string]map[string]any)

	target := func(class string) map[string]any {
		m, ok := out[class]
		if !ok {
			m = make(map[string]any)
			out[class] = m
		}
		return m
	}
	nested := func(parent map[string]any, key string) map[string]any {
		if m, ok := parent[key].(map[string]any); ok {
			return m
		}
		m := make(map[string]any)
		parent[key] = m
		return m
	}
	apply := func(rule *Rule, media string) {
		if rule.Selector.Class == "" {
			return
		}
		dst := target(rule.Selector.Class)
		if media != "" {
			dst = nested(dst, "@media "+media)
		}
		if rule.Selector.Pseudo == PseudoHover {
			dst = nested(dst, ":hover")
		}
		for name, val := range rule.Properties {
			dst[name] = val
		}
	}

	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			apply(item.Rule, "")
		case item.MediaBlock != nil:
			for i := range item.MediaBlock.Rules {
				apply(&item.MediaBlock.Rules[i], item.MediaBlock.Query)
			}
		}
	}
	return out
}

// WriteTo writes normalized CSS text of the stylesheet to w: one declaration
// per line, properties of a rule in alphabetical order, blank line between
// top-level items.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for i, item := range s.Items {
		if i > 0 {
			cw.printf("\n")
		}
		switch {
		case item.MediaBlock != nil:
			cw.printf("@media %s {\n", item.MediaBlock.Query)
			for j := range item.MediaBlock.Rules {
				if j > 0 {
					cw.printf("\n")
				}
				cw.rule(&item.MediaBlock.Rules[j], "  ")
			}
			cw.printf("}\n")
		case item.Rule != nil:
			cw.rule(item.Rule, "")
		}
	}
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// countingWriter stops writing after the first error and counts bytes.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func (cw *countingWriter) rule(r *Rule, indent string) {
	cw.printf("%s%s {\n", indent, r.Selector.Raw)
	for _, name := range slices.Sorted(maps.Keys(r.Properties)) {
		cw.printf("%s  %s: %s;\n", indent, name, r.Properties[name])
	}
	cw.printf("%s}\n", indent)
}
