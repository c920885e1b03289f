package css

import (
	"nativestyle/utils/debug"
)

// Dump renders the value AST as an indented tree, one node per line with
// its type, source span and text.
func (l ValueList) Dump() string {
	tw := debug.NewTreeWriter()
	dumpNodes(tw, 0, l)
	return tw.String()
}

func dumpNodes(tw *debug.TreeWriter, depth int, nodes []Node) {
	for _, n := range nodes {
		switch n.Type {
		case FunctionNode:
			suffix := ""
			if n.Unclosed {
				suffix = " unclosed"
			}
			tw.Line(depth, "%s [%d:%d] %q%s", n.Type, n.SourceIndex, n.SourceEndIndex, n.Value, suffix)
			dumpNodes(tw, depth+1, n.Nodes)
		case StringNode:
			tw.Line(depth, "%s [%d:%d] %s%s%s", n.Type, n.SourceIndex, n.SourceEndIndex, n.Quote, n.Value, n.Quote)
		default:
			tw.Line(depth, "%s [%d:%d] %q", n.Type, n.SourceIndex, n.SourceEndIndex, n.Value)
		}
	}
}
