package style

import (
	"sort"
	"strings"
)

// Props is an authored rule set: property name to value. Values may be
// strings, numbers, transform operations or value-level condition maps
// ({"default": x, ":hover": y, "@media (...)": z}). Nested ":hover" and
// "@media ..." keys hold conditional rule sets. nil and bool values
// contribute nothing.
type Props map[string]any

// List is an ordered, possibly nested style list. Elements may be
// *Declaration, Props, map[string]any, List, []any, nil or bool.
type List []any

// condition gates an entry on hover state and media queries.
type condition struct {
	hover bool
	media []string
}

func (c condition) withHover() condition {
	c.hover = true
	return c
}

func (c condition) withMedia(query string) condition {
	media := make([]string, len(c.media), len(c.media)+1)
	copy(media, c.media)
	c.media = append(media, query)
	return c
}

// stage orders variants: base, media, hover, hover within media.
func (c condition) stage() int {
	s := 0
	if len(c.media) > 0 {
		s++
	}
	if c.hover {
		s += 2
	}
	return s
}

func (c condition) matches(ctx Context) bool {
	if c.hover && !ctx.Hover {
		return false
	}
	for _, q := range c.media {
		if !MatchMedia(q, ctx) {
			return false
		}
	}
	return true
}

// entry is a single authored property with its gating condition.
type entry struct {
	name  string
	value Value
	cond  condition
}

// Declaration is a compiled rule set. Transform values it holds are owned by
// it and keep their scale cache for its lifetime.
type Declaration struct {
	entries []entry
	skipped []string
}

// Create compiles props into a Declaration. Entries are ordered so that
// conditional variants come after the base rule set and longhands after the
// shorthands they refine.
func Create(props Props) *Declaration {
	d := &Declaration{}
	d.addProps(props, condition{})
	sort.SliceStable(d.entries, func(i, j int) bool {
		a, b := d.entries[i], d.entries[j]
		if sa, sb := a.cond.stage(), b.cond.stage(); sa != sb {
			return sa < sb
		}
		if sa, sb := IsShorthandProperty(a.name), IsShorthandProperty(b.name); sa != sb {
			return sa
		}
		if a.name != b.name {
			return a.name < b.name
		}
		return strings.Join(a.cond.media, ",") < strings.Join(b.cond.media, ",")
	})
	return d
}

// CreateAll compiles a set of named rule sets.
func CreateAll(sets map[string]Props) map[string]*Declaration {
	out := make(map[string]*Declaration, len(sets))
	for name, props := range sets {
		out[name] = Create(props)
	}
	return out
}

// Len returns the number of compiled entries including conditional ones.
func (d *Declaration) Len() int {
	return len(d.entries)
}

// Skipped returns authored keys that were ignored (unsupported pseudo-classes
// and at-rules).
func (d *Declaration) Skipped() []string {
	return d.skipped
}

func (d *Declaration) addProps(props map[string]any, cond condition) {
	for key, raw := range props {
		switch {
		case key == ":hover":
			if nested, ok := asProps(raw); ok {
				d.addProps(nested, cond.withHover())
			}
		case strings.HasPrefix(key, "@media"):
			if nested, ok := asProps(raw); ok {
				d.addProps(nested, cond.withMedia(mediaQuery(key)))
			}
		case strings.HasPrefix(key, ":"), strings.HasPrefix(key, "@"):
			d.skipped = append(d.skipped, key)
		default:
			d.addValue(NormalizeName(key), raw, cond)
		}
	}
}

func (d *Declaration) addValue(name string, raw any, cond condition) {
	switch v := raw.(type) {
	case nil, bool:
		return
	case map[string]any, Props:
		variants, _ := asProps(v)
		for key, sub := range variants {
			switch {
			case key == "default":
				d.addValue(name, sub, cond)
			case key == ":hover":
				d.addValue(name, sub, cond.withHover())
			case strings.HasPrefix(key, "@media"):
				d.addValue(name, sub, cond.withMedia(mediaQuery(key)))
			default:
				d.skipped = append(d.skipped, name+" "+key)
			}
		}
		return
	}
	d.entries = append(d.entries, entry{name: name, value: NewValue(name, raw), cond: cond})
}

func asProps(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Props:
		return m, true
	}
	return nil, false
}

func mediaQuery(key string) string {
	return strings.TrimSpace(strings.TrimPrefix(key, "@media"))
}
