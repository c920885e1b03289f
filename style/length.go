package style

import (
	"strings"

	"go.uber.org/zap"

	"nativestyle/css"
)

// warnFunc receives resolution problems that do not stop resolution.
type warnFunc func(msg string, fields ...zap.Field)

func (w warnFunc) warn(msg string, fields ...zap.Field) {
	if w != nil {
		w(msg, fields...)
	}
}

// ResolveLength converts an authored value of property name to its native
// form. Custom property references are substituted first. Properties outside
// the length set are returned after substitution only.
//
// Numbers are already in device independent units and are returned unchanged,
// px and unitless strings become numbers, percentages stay strings for the
// host layout to resolve, rem and em scale the inherited font size, viewport
// units use the context viewport. Anything else is returned unchanged.
func ResolveLength(name string, raw any, ctx Context) any {
	if s, ok := raw.(string); ok && HasVarReference(s) {
		raw = SubstituteVars(s, ctx.CustomProperties)
	}
	if !IsLengthProperty(name) {
		return raw
	}
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	d, ok := css.Unit(s)
	if !ok {
		return raw
	}
	return resolveDimension(name, d, raw, ctx, nil)
}

// resolveDimension converts a number+unit of a length property. Absolute
// and viewport lengths of typographic properties are multiplied by the font
// scale. Font relative units get the scale from their base.
func resolveDimension(name string, d css.Dimension, raw any, ctx Context, w warnFunc) any {
	scale := 1.0
	if IsTypographicProperty(name) {
		scale = ctx.fontScale()
	}

	switch d.Unit {
	case "":
		return d.Number

	case "px":
		return d.Number * scale

	case "%":
		return raw

	case "rem":
		return d.Number * inheritedFontSize(name, ctx)

	case "em":
		if name != "fontSize" && ctx.localFontSize != nil {
			return d.Number * *ctx.localFontSize
		}
		return d.Number * inheritedFontSize(name, ctx)

	case "vw", "vh", "vmin", "vmax":
		width, height := ctx.ViewportWidth, ctx.ViewportHeight
		if (d.Unit != "vh" && width <= 0) || (d.Unit != "vw" && height <= 0) {
			w.warn("viewport dimension is not set, using 0",
				zap.String("property", name), zap.String("value", d.String()))
		}
		var base float64
		switch d.Unit {
		case "vw":
			base = width
		case "vh":
			base = height
		case "vmin":
			base = min(width, height)
		case "vmax":
			base = max(width, height)
		}
		return d.Number / 100 * max(base, 0) * scale
	}

	w.warn("unsupported unit",
		zap.String("property", name), zap.String("unit", d.Unit))
	return raw
}

// inheritedFontSize is the base for rem and em. Without an ancestor font
// size the root size is used and, for typographic properties, scaled by the
// font scale. An inherited size is already scaled.
func inheritedFontSize(name string, ctx Context) float64 {
	if ctx.InheritedFontSize != nil {
		return *ctx.InheritedFontSize
	}
	if IsTypographicProperty(name) {
		return ctx.rootFontSize() * ctx.fontScale()
	}
	return ctx.rootFontSize()
}

// effectiveFontSize is the font size of the node being resolved.
func effectiveFontSize(ctx Context) float64 {
	if ctx.localFontSize != nil {
		return *ctx.localFontSize
	}
	return inheritedFontSize("fontSize", ctx)
}

// unitless reports whether v is a bare number or a numeric string without unit.
func unitless(v Value) (float64, bool) {
	if f, ok := toFloat(v.Raw); ok {
		return f, true
	}
	if v.Kind == KindLength && v.Length.Unit == "" {
		return v.Length.Number, true
	}
	if s, ok := v.Raw.(string); ok {
		if d, ok := css.Unit(strings.TrimSpace(s)); ok && d.Unit == "" {
			return d.Number, true
		}
	}
	return 0, false
}
