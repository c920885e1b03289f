// Package render applies the style engine to a tree of elements the way a
// host view hierarchy would: tag defaults, inheritable channels flowing from
// parents to children and text styles inherited by text elements.
package render

import (
	"nativestyle/style"
	"nativestyle/utils/debug"
)

// Node is an element of the tree being styled.
type Node struct {
	Tag  string
	Text string
	// Lang sets the writing direction for the node and its subtree.
	Lang string
	// Hover marks the node as currently hovered.
	Hover    bool
	Style    style.List
	Children []*Node
}

// Element is a resolved node.
type Element struct {
	Tag      string         `yaml:"tag" json:"tag"`
	Text     string         `yaml:"text,omitempty" json:"text,omitempty"`
	Style    style.StyleMap `yaml:"style,omitempty" json:"style,omitempty"`
	Children []*Element     `yaml:"children,omitempty" json:"children,omitempty"`
}

// Dump renders the resolved tree for humans.
func (e *Element) Dump() string {
	tw := debug.NewTreeWriter()
	e.dump(tw, 0)
	return tw.String()
}

func (e *Element) dump(tw *debug.TreeWriter, depth int) {
	tw.Line(depth, "<%s>", e.Tag)
	tw.Fields(depth+1, e.Style)
	if e.Text != "" {
		tw.TextBlock(depth+1, "#text", e.Text)
	}
	for _, c := range e.Children {
		c.dump(tw, depth+1)
	}
}
