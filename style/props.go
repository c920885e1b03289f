package style

import (
	"strings"
)

// NormalizeName converts a property name to the camelCase form used by the
// native host. Kebab-case names ("margin-top") are accepted, custom
// properties ("--brand") keep their spelling.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") || !strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' {
			upper = sb.Len() > 0
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		sb.WriteByte(c)
	}
	return sb.String()
}

// lengthProperties is the static set of properties whose values go through
// unit resolution. Anything not listed here only gets custom property
// substitution.
var lengthProperties = map[string]bool{
	// box model
	"margin": true, "marginTop": true, "marginRight": true, "marginBottom": true, "marginLeft": true,
	"marginStart": true, "marginEnd": true, "marginHorizontal": true, "marginVertical": true,
	"marginBlock": true, "marginBlockStart": true, "marginBlockEnd": true,
	"marginInline": true, "marginInlineStart": true, "marginInlineEnd": true,
	"padding": true, "paddingTop": true, "paddingRight": true, "paddingBottom": true, "paddingLeft": true,
	"paddingStart": true, "paddingEnd": true, "paddingHorizontal": true, "paddingVertical": true,
	"paddingBlock": true, "paddingBlockStart": true, "paddingBlockEnd": true,
	"paddingInline": true, "paddingInlineStart": true, "paddingInlineEnd": true,

	// sizes
	"width": true, "height": true, "minWidth": true, "minHeight": true, "maxWidth": true, "maxHeight": true,
	"blockSize": true, "inlineSize": true, "minBlockSize": true, "minInlineSize": true,
	"maxBlockSize": true, "maxInlineSize": true, "flexBasis": true,

	// positioning
	"top": true, "right": true, "bottom": true, "left": true, "start": true, "end": true,
	"inset": true, "insetBlock": true, "insetBlockStart": true, "insetBlockEnd": true,
	"insetInline": true, "insetInlineStart": true, "insetInlineEnd": true,

	// borders and outlines
	"borderWidth": true, "borderTopWidth": true, "borderRightWidth": true, "borderBottomWidth": true,
	"borderLeftWidth": true, "borderStartWidth": true, "borderEndWidth": true,
	"borderBlockWidth": true, "borderBlockStartWidth": true, "borderBlockEndWidth": true,
	"borderInlineWidth": true, "borderInlineStartWidth": true, "borderInlineEndWidth": true,
	"borderRadius": true, "borderTopLeftRadius": true, "borderTopRightRadius": true,
	"borderBottomLeftRadius": true, "borderBottomRightRadius": true,
	"borderTopStartRadius": true, "borderTopEndRadius": true,
	"borderBottomStartRadius": true, "borderBottomEndRadius": true,
	"borderStartStartRadius": true, "borderStartEndRadius": true,
	"borderEndStartRadius": true, "borderEndEndRadius": true,
	"outlineWidth": true, "outlineOffset": true,

	// gaps
	"gap": true, "rowGap": true, "columnGap": true,

	// typography
	"fontSize": true, "lineHeight": true, "letterSpacing": true, "textIndent": true,
}

// typographicProperties are scaled by the accessibility font scale.
var typographicProperties = map[string]bool{
	"fontSize":      true,
	"lineHeight":    true,
	"letterSpacing": true,
}

// IsLengthProperty reports whether name is a length-valued property.
func IsLengthProperty(name string) bool {
	return lengthProperties[name]
}

// IsTypographicProperty reports whether name is a length property affected
// by font scaling.
func IsTypographicProperty(name string) bool {
	return typographicProperties[name]
}

// flexItemProperties only apply to children of a flex container.
var flexItemProperties = map[string]bool{
	"flex":       true,
	"flexGrow":   true,
	"flexShrink": true,
	"flexBasis":  true,
	"alignSelf":  true,
	"order":      true,
}

// shorthandKind selects how a shorthand value distributes over longhands.
type shorthandKind int

const (
	// box shorthands take 1-4 values: all, vertical/horizontal, top/horizontal/bottom, top/right/bottom/left
	shorthandBox shorthandKind = iota
	// corner shorthands take 1-4 values in top-left, top-right, bottom-right, bottom-left order
	shorthandCorner
	// pair shorthands take 1-2 values
	shorthandPair
)

type shorthand struct {
	kind      shorthandKind
	longhands []string
}

// shorthands maps composable shorthand properties to the longhands they set.
// Longhands of logical shorthands are logical names, they are mapped to native
// names afterwards.
var shorthands = map[string]shorthand{
	"margin":        {shorthandBox, []string{"marginTop", "marginRight", "marginBottom", "marginLeft"}},
	"padding":       {shorthandBox, []string{"paddingTop", "paddingRight", "paddingBottom", "paddingLeft"}},
	"inset":         {shorthandBox, []string{"top", "right", "bottom", "left"}},
	"borderWidth":   {shorthandBox, []string{"borderTopWidth", "borderRightWidth", "borderBottomWidth", "borderLeftWidth"}},
	"borderColor":   {shorthandBox, []string{"borderTopColor", "borderRightColor", "borderBottomColor", "borderLeftColor"}},
	"borderRadius":  {shorthandCorner, []string{"borderTopLeftRadius", "borderTopRightRadius", "borderBottomRightRadius", "borderBottomLeftRadius"}},
	"gap":           {shorthandPair, []string{"rowGap", "columnGap"}},
	"marginBlock":   {shorthandPair, []string{"marginBlockStart", "marginBlockEnd"}},
	"marginInline":  {shorthandPair, []string{"marginInlineStart", "marginInlineEnd"}},
	"paddingBlock":  {shorthandPair, []string{"paddingBlockStart", "paddingBlockEnd"}},
	"paddingInline": {shorthandPair, []string{"paddingInlineStart", "paddingInlineEnd"}},
	"insetBlock":    {shorthandPair, []string{"insetBlockStart", "insetBlockEnd"}},
	"insetInline":   {shorthandPair, []string{"insetInlineStart", "insetInlineEnd"}},
}

// IsShorthandProperty reports whether name is expanded into longhands.
func IsShorthandProperty(name string) bool {
	_, ok := shorthands[name]
	return ok
}

// distribute assigns shorthand parts to longhands following CSS rules.
// It returns false when the number of parts is not valid for the shorthand.
func (s shorthand) distribute(parts []any) ([]any, bool) {
	n := len(parts)
	switch s.kind {
	case shorthandPair:
		switch n {
		case 1:
			return []any{parts[0], parts[0]}, true
		case 2:
			return parts, true
		}
	case shorthandBox, shorthandCorner:
		// corner order maps onto the same index pattern as box sides
		switch n {
		case 1:
			return []any{parts[0], parts[0], parts[0], parts[0]}, true
		case 2:
			return []any{parts[0], parts[1], parts[0], parts[1]}, true
		case 3:
			return []any{parts[0], parts[1], parts[2], parts[1]}, true
		case 4:
			return parts, true
		}
	}
	return nil, false
}

// logicalProperties maps logical (writing-mode relative) authoring names to
// the names the native host understands. Inline start/end stay direction
// relative, the host flips them for rtl.
var logicalProperties = map[string]string{
	"marginBlockStart":   "marginTop",
	"marginBlockEnd":     "marginBottom",
	"marginInlineStart":  "marginStart",
	"marginInlineEnd":    "marginEnd",
	"paddingBlockStart":  "paddingTop",
	"paddingBlockEnd":    "paddingBottom",
	"paddingInlineStart": "paddingStart",
	"paddingInlineEnd":   "paddingEnd",
	"insetBlockStart":    "top",
	"insetBlockEnd":      "bottom",
	"insetInlineStart":   "start",
	"insetInlineEnd":     "end",

	"borderBlockStartWidth":  "borderTopWidth",
	"borderBlockEndWidth":    "borderBottomWidth",
	"borderInlineStartWidth": "borderStartWidth",
	"borderInlineEndWidth":   "borderEndWidth",
	"borderBlockStartColor":  "borderTopColor",
	"borderBlockEndColor":    "borderBottomColor",
	"borderInlineStartColor": "borderStartColor",
	"borderInlineEndColor":   "borderEndColor",

	"borderStartStartRadius": "borderTopStartRadius",
	"borderStartEndRadius":   "borderTopEndRadius",
	"borderEndStartRadius":   "borderBottomStartRadius",
	"borderEndEndRadius":     "borderBottomEndRadius",

	"blockSize":     "height",
	"inlineSize":    "width",
	"minBlockSize":  "minHeight",
	"maxBlockSize":  "maxHeight",
	"minInlineSize": "minWidth",
	"maxInlineSize": "maxWidth",
}

// NativeName returns the native host name for a (possibly logical) property.
func NativeName(name string) string {
	if native, ok := logicalProperties[name]; ok {
		return native
	}
	return name
}
