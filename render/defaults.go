package render

import (
	"nativestyle/style"
)

// tagDefaults are the built-in styles of known tags, applied before any
// authored style.
var tagDefaults = func() map[string]*style.Declaration {
	block := style.Props{"display": "block"}
	heading := func(size string) style.Props {
		return style.Props{"display": "block", "fontSize": size, "fontWeight": "bold"}
	}
	return style.CreateAll(map[string]style.Props{
		"div":        block,
		"section":    block,
		"article":    block,
		"header":     block,
		"footer":     block,
		"main":       block,
		"nav":        block,
		"aside":      block,
		"ul":         block,
		"ol":         block,
		"li":         block,
		"form":       block,
		"p":          block,
		"blockquote": block,
		"h1":         heading("2em"),
		"h2":         heading("1.5em"),
		"h3":         heading("1.17em"),
		"h4":         heading("1em"),
		"h5":         heading("0.83em"),
		"h6":         heading("0.67em"),
		"b":          {"fontWeight": "bold"},
		"strong":     {"fontWeight": "bold"},
		"em":         {"fontStyle": "italic"},
		"i":          {"fontStyle": "italic"},
		"code":       {"fontFamily": "monospace"},
		"pre":        {"display": "block", "fontFamily": "monospace"},
	})
}()

// textTags render as native text and receive inherited text styles.
var textTags = map[string]bool{
	"p": true, "span": true, "a": true, "label": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"b": true, "strong": true, "em": true, "i": true, "code": true, "pre": true,
}

// inheritedTextProperties flow from any element to text descendants. Font
// size is not listed, it travels through the inherited channels.
var inheritedTextProperties = map[string]bool{
	"color":              true,
	"fontFamily":         true,
	"fontStyle":          true,
	"fontVariant":        true,
	"fontWeight":         true,
	"letterSpacing":      true,
	"lineHeight":         true,
	"textAlign":          true,
	"textDecorationLine": true,
	"textIndent":         true,
	"textTransform":      true,
	"whiteSpace":         true,
	"wordSpacing":        true,
	"writingDirection":   true,
}
