package css

import (
	"strings"
)

// NodeType identifies the kind of a value AST node.
type NodeType int

const (
	WordNode         NodeType = iota // identifiers, numbers, dimensions, hashes, operators
	StringNode                       // quoted string, Value holds the content without quotes
	CommentNode                      // /* ... */, Value holds the content without delimiters
	DivNode                          // one of ',' '/' ':' with absorbed surrounding whitespace
	SpaceNode                        // run of whitespace
	FunctionNode                     // name(...) or bare (...) when Value is empty
	UnicodeRangeNode                 // U+0025-00FF
)

// String returns the short name of the node type.
func (t NodeType) String() string {
	switch t {
	case WordNode:
		return "word"
	case StringNode:
		return "string"
	case CommentNode:
		return "comment"
	case DivNode:
		return "div"
	case SpaceNode:
		return "space"
	case FunctionNode:
		return "function"
	case UnicodeRangeNode:
		return "unicode-range"
	default:
		return "unknown"
	}
}

// Node is a single element of a parsed CSS property value.
//
// SourceIndex and SourceEndIndex are byte offsets into the parsed string,
// SourceEndIndex is exclusive. Before and After are only meaningful for
// DivNode (whitespace around the separator) and FunctionNode (whitespace
// just inside the parentheses). Nodes holds children of a FunctionNode.
type Node struct {
	Type           NodeType
	Value          string
	SourceIndex    int
	SourceEndIndex int
	Quote          string
	Before         string
	After          string
	Nodes          []Node
	Unclosed       bool
}

// ValueList is an ordered sequence of value nodes.
type ValueList []Node

// String reconstructs the original text of the list.
func (l ValueList) String() string {
	return Stringify(l)
}

// IsFunction reports whether n is a function call with the given name (case-insensitive).
func (n Node) IsFunction(name string) bool {
	return n.Type == FunctionNode && strings.EqualFold(n.Value, name)
}

// Stringify serializes nodes back to CSS text. For any list produced by
// ParseValue the result is byte-identical to the parsed input.
func Stringify(nodes []Node) string {
	var sb strings.Builder
	for i := range nodes {
		writeNode(&sb, &nodes[i], nil)
	}
	return sb.String()
}

// StringifyFunc serializes nodes like Stringify, but lets fn replace the
// serialization of any node (at any depth). When fn returns ok == false the
// node is written normally and its children are visited.
func StringifyFunc(nodes []Node, fn func(n Node) (string, bool)) string {
	var sb strings.Builder
	for i := range nodes {
		writeNode(&sb, &nodes[i], fn)
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, fn func(n Node) (string, bool)) {
	if fn != nil {
		if s, ok := fn(*n); ok {
			sb.WriteString(s)
			return
		}
	}
	switch n.Type {
	case StringNode:
		sb.WriteString(n.Quote)
		sb.WriteString(n.Value)
		if !n.Unclosed {
			sb.WriteString(n.Quote)
		}
	case CommentNode:
		sb.WriteString("/*")
		sb.WriteString(n.Value)
		if !n.Unclosed {
			sb.WriteString("*/")
		}
	case DivNode:
		sb.WriteString(n.Before)
		sb.WriteString(n.Value)
		sb.WriteString(n.After)
	case FunctionNode:
		sb.WriteString(n.Value)
		sb.WriteByte('(')
		sb.WriteString(n.Before)
		for i := range n.Nodes {
			writeNode(sb, &n.Nodes[i], fn)
		}
		sb.WriteString(n.After)
		if !n.Unclosed {
			sb.WriteByte(')')
		}
	default:
		sb.WriteString(n.Value)
	}
}

// Walk visits nodes depth-first in source order. If fn returns false for a
// function node its children are skipped.
func Walk(nodes []Node, fn func(n *Node) bool) {
	for i := range nodes {
		n := &nodes[i]
		if fn(n) && n.Type == FunctionNode {
			Walk(n.Nodes, fn)
		}
	}
}

// Arguments splits the children of a function node on ',' dividers and
// returns each argument with surrounding whitespace and comments removed.
func (n Node) Arguments() [][]Node {
	if n.Type != FunctionNode {
		return nil
	}
	var (
		args [][]Node
		cur  []Node
	)
	for _, c := range n.Nodes {
		switch {
		case c.Type == DivNode && c.Value == ",":
			args = append(args, cur)
			cur = nil
		case c.Type == SpaceNode, c.Type == CommentNode:
		default:
			cur = append(cur, c)
		}
	}
	if len(cur) > 0 || len(args) > 0 {
		args = append(args, cur)
	}
	return args
}

// Components returns the top-level nodes of a space separated value with
// whitespace and comments dropped. For "1px var(--x) 3px" it returns
// three nodes.
func Components(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == SpaceNode || n.Type == CommentNode {
			continue
		}
		out = append(out, n)
	}
	return out
}
