package style

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nativestyle/css"
)

// StyleMap is a flat native style object.
type StyleMap map[string]any

// Options controls composer behavior.
type Options struct {
	// Dev reports resolution problems (unresolved custom properties,
	// unsupported units, missing viewport) at warning level instead of debug.
	Dev bool
}

// Composer resolves ordered style lists into flat native style maps.
type Composer struct {
	log  *zap.Logger
	opts Options
}

// NewComposer creates a composer.
func NewComposer(log *zap.Logger, opts Options) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{log: log.Named("composer"), opts: opts}
}

// Result is a resolved node style together with the inheritable channels
// its children receive.
type Result struct {
	Style    StyleMap
	Children Inherited
}

// Compose resolves list against ctx with a silent composer.
func Compose(list any, ctx Context) StyleMap {
	return NewComposer(nil, Options{}).Compose(list, ctx)
}

// Compose resolves list against ctx and returns the native style map.
func (c *Composer) Compose(list any, ctx Context) StyleMap {
	return c.Resolve(list, ctx).Style
}

// pending is a flattened property waiting for resolution.
type pending struct {
	value    Value
	verbatim bool
}

// Resolve flattens list depth-first (last occurrence of a property wins),
// resolves every surviving value against ctx and derives the channels the
// node passes to its children.
func (c *Composer) Resolve(list any, ctx Context) Result {
	vars := &varResolver{
		vars: ctx.CustomProperties,
		missing: func(name string) {
			c.report("unresolved custom property", zap.String("name", name))
		},
	}

	flat := make(map[string]pending)
	c.flatten(list, func(d *Declaration) {
		for _, e := range d.entries {
			if e.cond.matches(ctx) {
				c.apply(flat, e, ctx, vars)
			}
		}
	})

	out := make(StyleMap, len(flat))
	verbatim := make(map[string]bool)
	var local Inherited

	// font size goes first, em units of the other properties depend on it
	if p, ok := flat["fontSize"]; ok {
		v := c.resolveValue("fontSize", p, ctx)
		out["fontSize"] = v
		if f, ok := toFloat(v); ok {
			ctx = ctx.withLocalFontSize(f)
			local.FontSize = &f
		}
	}

	for name, p := range flat {
		if p.verbatim {
			verbatim[name] = true
		}
		if name == "fontSize" {
			continue
		}
		if name == "lineHeight" && !p.verbatim {
			// unitless line height is a multiplier of the element font size
			if n, ok := unitless(p.value); ok {
				out[name] = n * effectiveFontSize(ctx)
				continue
			}
		}
		out[name] = c.resolveValue(name, p, ctx)
	}

	if d, ok := out["direction"].(string); ok {
		if dir, ok := ParseDirection(d); ok {
			local.Direction = dir
		}
	}
	if !verbatim["textAlign"] {
		c.applyTextAlign(out, InheritDirection(ctx.EffectiveDirection(), local.Direction))
	}
	local.DisplayInside = c.applyDisplay(out, verbatim["display"])
	if InheritDisplayInside(ctx.DisplayInside, "") == DisplayFlow {
		c.dropFlexItemProperties(out, verbatim)
	}

	return Result{Style: out, Children: ctx.Inherited().Child(local)}
}

// flatten walks the style list depth-first and calls visit for every
// declaration in order. Falsy entries contribute nothing.
func (c *Composer) flatten(list any, visit func(*Declaration)) {
	switch v := list.(type) {
	case nil, bool:
	case *Declaration:
		if v != nil {
			visit(v)
		}
	case Props:
		visit(Create(v))
	case map[string]any:
		visit(Create(v))
	case List:
		for _, item := range v {
			c.flatten(item, visit)
		}
	case []any:
		for _, item := range v {
			c.flatten(item, visit)
		}
	case []*Declaration:
		for _, item := range v {
			c.flatten(item, visit)
		}
	default:
		c.log.Debug("Ignoring style list entry", zap.String("type", fmt.Sprintf("%T", v)))
	}
}

// apply records a single entry. Pass-through properties are kept verbatim,
// everything else gets custom properties substituted, shorthands expanded
// and logical names mapped.
func (c *Composer) apply(flat map[string]pending, e entry, ctx Context, vars *varResolver) {
	if ctx.isPassthrough(e.name) {
		flat[e.name] = pending{value: e.value, verbatim: true}
		return
	}

	val := e.value
	if val.Kind == KindUnparsed {
		val = classify(e.name, vars.substitute(val.Raw.(string), 0))
	}

	if sh, ok := shorthands[e.name]; ok {
		if parts, ok := sh.distribute(shorthandParts(val.Raw)); ok {
			for i, longhand := range sh.longhands {
				flat[NativeName(longhand)] = pending{value: classify(longhand, parts[i])}
			}
			return
		}
		c.report("invalid shorthand value", zap.String("property", e.name), zap.Any("value", val.Raw))
	}

	flat[NativeName(e.name)] = pending{value: val}
}

// shorthandParts splits a shorthand value into its space separated parts.
// Values with separators (such as elliptical radii) return nil.
func shorthandParts(raw any) []any {
	s, ok := raw.(string)
	if !ok {
		return []any{raw}
	}
	var parts []any
	for _, n := range css.Components(css.ParseValue(s)) {
		if n.Type == css.DivNode {
			return nil
		}
		parts = append(parts, css.Stringify([]css.Node{n}))
	}
	return parts
}

func (c *Composer) resolveValue(name string, p pending, ctx Context) any {
	if p.verbatim {
		return p.value.Raw
	}
	switch p.value.Kind {
	case KindTransform:
		return p.value.Transform.Resolve(ctx.viewportScale())
	case KindLength:
		if IsLengthProperty(name) {
			return resolveDimension(name, p.value.Length, p.value.Raw, ctx, c.report)
		}
	}
	return p.value.Raw
}

// applyTextAlign maps logical text alignment to physical sides.
func (c *Composer) applyTextAlign(out StyleMap, dir Direction) {
	align, ok := out["textAlign"].(string)
	if !ok {
		return
	}
	switch strings.ToLower(align) {
	case "start":
		out["textAlign"] = "left"
		if dir == DirectionRTL {
			out["textAlign"] = "right"
		}
	case "end":
		out["textAlign"] = "right"
		if dir == DirectionRTL {
			out["textAlign"] = "left"
		}
	}
}

// applyDisplay maps CSS display values onto the native flex model and
// returns the display mode the node establishes for its children. A
// pass-through display is only read.
func (c *Composer) applyDisplay(out StyleMap, keep bool) DisplayInside {
	display, ok := out["display"].(string)
	if !ok {
		return ""
	}
	if keep {
		return displayInside(display)
	}
	switch strings.ToLower(strings.TrimSpace(display)) {
	case "flex", "inline-flex":
		out["display"] = "flex"
		if _, ok := out["flexDirection"]; !ok {
			out["flexDirection"] = "row"
		}
		return DisplayFlex
	case "block", "flow", "flow-root", "inline", "inline-block":
		delete(out, "display")
		if _, ok := out["flexDirection"]; !ok {
			out["flexDirection"] = "column"
		}
		return DisplayFlow
	case "none", "contents":
		return ""
	default:
		c.report("unsupported display value", zap.String("value", display))
		delete(out, "display")
		return ""
	}
}

// displayInside is the display mode a display value establishes, empty
// when it establishes none.
func displayInside(display string) DisplayInside {
	switch strings.ToLower(strings.TrimSpace(display)) {
	case "flex", "inline-flex":
		return DisplayFlex
	case "block", "flow", "flow-root", "inline", "inline-block":
		return DisplayFlow
	}
	return ""
}

// dropFlexItemProperties removes properties that only apply to children of
// a flex container. Pass-through properties stay.
func (c *Composer) dropFlexItemProperties(out StyleMap, keep map[string]bool) {
	for name := range flexItemProperties {
		if _, ok := out[name]; ok && !keep[name] {
			c.report("flex item property ignored outside flex container", zap.String("property", name))
			delete(out, name)
		}
	}
}

// report logs a non-fatal resolution problem.
func (c *Composer) report(msg string, fields ...zap.Field) {
	if c.opts.Dev {
		c.log.Warn(msg, fields...)
		return
	}
	c.log.Debug(msg, fields...)
}
