package style

import (
	"maps"
	"slices"
)

// DefaultRootFontSize is the host base font size used when no ancestor set one.
const DefaultRootFontSize = 16.0

// Context carries everything a resolution pass needs to turn authored style
// values into native values. It is passed by value and never mutated, use
// With to derive a modified copy.
type Context struct {
	// CustomProperties maps custom property names ("--brand") to values.
	CustomProperties map[string]any
	// InheritedFontSize is the font size set by the nearest ancestor, nil
	// means the host default.
	InheritedFontSize *float64
	// FontScale is the accessibility text scale, 0 is treated as 1.
	FontScale float64
	// Hover enables ":hover" variants.
	Hover bool
	// Passthrough lists property names copied to the output verbatim.
	Passthrough []string
	// ViewportWidth and ViewportHeight resolve vw/vh units.
	ViewportWidth  float64
	ViewportHeight float64
	// ViewportScale scales transform translations, 0 is treated as 1.
	ViewportScale float64
	// Direction is the ambient writing direction, empty means ltr.
	Direction Direction
	// DisplayInside is the layout mode established by the parent.
	DisplayInside DisplayInside
	// ColorScheme is "light" or "dark", used by prefers-color-scheme queries.
	ColorScheme string
	// RootFontSize overrides DefaultRootFontSize when positive.
	RootFontSize float64

	// localFontSize is the font size the node being resolved sets itself.
	localFontSize *float64
}

// ContextOption modifies a Context under construction.
type ContextOption func(*Context)

// NewContext builds a resolution context.
func NewContext(opts ...ContextOption) Context {
	var ctx Context
	for _, opt := range opts {
		opt(&ctx)
	}
	return ctx
}

// With returns a copy of ctx with opts applied. Maps and slices are cloned
// so the original is never affected.
func (ctx Context) With(opts ...ContextOption) Context {
	out := ctx
	out.CustomProperties = maps.Clone(ctx.CustomProperties)
	out.Passthrough = slices.Clone(ctx.Passthrough)
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// WithCustomProperties merges vars into the context's custom properties.
func WithCustomProperties(vars map[string]any) ContextOption {
	return func(ctx *Context) {
		if ctx.CustomProperties == nil {
			ctx.CustomProperties = make(map[string]any, len(vars))
		}
		maps.Copy(ctx.CustomProperties, vars)
	}
}

// WithInheritedFontSize sets the ambient font size.
func WithInheritedFontSize(size float64) ContextOption {
	return func(ctx *Context) { ctx.InheritedFontSize = &size }
}

// WithFontScale sets the accessibility text scale.
func WithFontScale(scale float64) ContextOption {
	return func(ctx *Context) { ctx.FontScale = scale }
}

// WithHover sets the hover flag.
func WithHover(hover bool) ContextOption {
	return func(ctx *Context) { ctx.Hover = hover }
}

// WithPassthrough adds names to the pass-through allow-list.
func WithPassthrough(names ...string) ContextOption {
	return func(ctx *Context) {
		for _, name := range names {
			ctx.Passthrough = append(ctx.Passthrough, NormalizeName(name))
		}
	}
}

// WithViewport sets the viewport dimensions.
func WithViewport(width, height float64) ContextOption {
	return func(ctx *Context) {
		ctx.ViewportWidth = width
		ctx.ViewportHeight = height
	}
}

// WithViewportScale sets the transform scale factor.
func WithViewportScale(scale float64) ContextOption {
	return func(ctx *Context) { ctx.ViewportScale = scale }
}

// WithDirection sets the ambient writing direction.
func WithDirection(dir Direction) ContextOption {
	return func(ctx *Context) { ctx.Direction = dir }
}

// WithColorScheme sets the preferred color scheme.
func WithColorScheme(scheme string) ContextOption {
	return func(ctx *Context) { ctx.ColorScheme = scheme }
}

// WithRootFontSize sets the host base font size.
func WithRootFontSize(size float64) ContextOption {
	return func(ctx *Context) { ctx.RootFontSize = size }
}

// WithInherited replaces all inheritable channels at once.
func WithInherited(in Inherited) ContextOption {
	return func(ctx *Context) {
		ctx.Direction = in.Direction
		ctx.InheritedFontSize = in.FontSize
		ctx.DisplayInside = in.DisplayInside
	}
}

// Inherited returns the inheritable channels in effect for the node being
// resolved.
func (ctx Context) Inherited() Inherited {
	return Inherited{
		Direction:     ctx.EffectiveDirection(),
		FontSize:      ctx.InheritedFontSize,
		DisplayInside: InheritDisplayInside(ctx.DisplayInside, ""),
	}
}

// EffectiveDirection is the ambient direction with the ltr default applied.
func (ctx Context) EffectiveDirection() Direction {
	return InheritDirection(ctx.Direction, "")
}

func (ctx Context) fontScale() float64 {
	if ctx.FontScale <= 0 {
		return 1
	}
	return ctx.FontScale
}

func (ctx Context) viewportScale() float64 {
	if ctx.ViewportScale <= 0 {
		return 1
	}
	return ctx.ViewportScale
}

func (ctx Context) rootFontSize() float64 {
	if ctx.RootFontSize > 0 {
		return ctx.RootFontSize
	}
	return DefaultRootFontSize
}

func (ctx Context) isPassthrough(name string) bool {
	return slices.Contains(ctx.Passthrough, name)
}

// withLocalFontSize records the font size a node sets for its own em units.
func (ctx Context) withLocalFontSize(size float64) Context {
	ctx.localFontSize = &size
	return ctx
}
