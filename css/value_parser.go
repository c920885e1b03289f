package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// frame is an open function (or bare parenthesis block) waiting for its ')'.
type frame struct {
	node  Node
	nodes []Node
}

// ParseValue tokenizes a CSS property value into an ordered list of nodes.
//
// Parsing never fails: an unterminated string, comment or function is
// returned with Unclosed set. Concatenating the serialization of the
// returned nodes reproduces s exactly.
func ParseValue(s string) ValueList {
	lexer := css.NewLexer(parse.NewInputString(s))

	var (
		root  []Node
		stack []*frame
		pos   int
	)

	// cur returns the node list currently being filled.
	cur := func() *[]Node {
		if len(stack) == 0 {
			return &root
		}
		return &stack[len(stack)-1].nodes
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)
		start, end := pos, pos+len(text)
		pos = end
		list := cur()

		switch tt {
		case css.WhitespaceToken:
			// whitespace directly after a divider belongs to it
			if n := len(*list); n > 0 && (*list)[n-1].Type == DivNode && (*list)[n-1].SourceEndIndex == start {
				last := &(*list)[n-1]
				last.After += text
				last.SourceEndIndex = end
				continue
			}
			*list = append(*list, Node{Type: SpaceNode, Value: text, SourceIndex: start, SourceEndIndex: end})

		case css.CommaToken, css.ColonToken:
			*list = appendDiv(*list, text, start, end)

		case css.DelimToken:
			if text == "/" {
				*list = appendDiv(*list, text, start, end)
				continue
			}
			*list = appendWord(*list, text, start, end)

		case css.StringToken, css.BadStringToken:
			*list = append(*list, stringNode(text, start, end, tt == css.BadStringToken))

		case css.CommentToken:
			*list = append(*list, commentNode(text, start, end))

		case css.UnicodeRangeToken:
			*list = append(*list, Node{Type: UnicodeRangeNode, Value: text, SourceIndex: start, SourceEndIndex: end})

		case css.FunctionToken:
			stack = append(stack, &frame{node: Node{
				Type:        FunctionNode,
				Value:       strings.TrimSuffix(text, "("),
				SourceIndex: start,
			}})

		case css.LeftParenthesisToken:
			stack = append(stack, &frame{node: Node{Type: FunctionNode, SourceIndex: start}})

		case css.RightParenthesisToken:
			if len(stack) == 0 {
				*list = appendWord(*list, text, start, end)
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			fn := closeFrame(f, end)
			parent := cur()
			*parent = append(*parent, fn)

		case css.URLToken, css.BadURLToken:
			*list = append(*list, urlNode(text, start, end))

		default:
			*list = appendWord(*list, text, start, end)
		}
	}

	// Anything the lexer refused to consume is kept as a word so the
	// result stays lossless.
	if pos < len(s) {
		list := cur()
		*list = appendWord(*list, s[pos:], pos, len(s))
	}

	// Unwind functions left open at the end of input.
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.node.Nodes = f.nodes
		f.node.Unclosed = true
		f.node.SourceEndIndex = len(s)
		if n := len(f.nodes); n > 0 && f.nodes[0].Type == SpaceNode {
			f.node.Before = f.nodes[0].Value
			f.node.Nodes = f.nodes[1:]
		}
		parent := cur()
		*parent = append(*parent, f.node)
	}
	return root
}

// closeFrame finalizes a function whose ')' ends at end. Leading and
// trailing whitespace inside the parentheses moves to Before/After.
func closeFrame(f *frame, end int) Node {
	fn := f.node
	nodes := f.nodes
	if len(nodes) > 0 && nodes[0].Type == SpaceNode {
		fn.Before = nodes[0].Value
		nodes = nodes[1:]
	}
	if n := len(nodes); n > 0 && nodes[n-1].Type == SpaceNode {
		fn.After = nodes[n-1].Value
		nodes = nodes[:n-1]
	}
	fn.Nodes = nodes
	fn.SourceEndIndex = end
	return fn
}

// appendDiv adds a divider, absorbing a directly preceding space node.
func appendDiv(list []Node, text string, start, end int) []Node {
	div := Node{Type: DivNode, Value: text, SourceIndex: start, SourceEndIndex: end}
	if n := len(list); n > 0 && list[n-1].Type == SpaceNode {
		div.Before = list[n-1].Value
		div.SourceIndex = list[n-1].SourceIndex
		list = list[:n-1]
	}
	return append(list, div)
}

// appendWord adds text as a word, extending the previous word when the two
// are adjacent in the source.
func appendWord(list []Node, text string, start, end int) []Node {
	if n := len(list); n > 0 && list[n-1].Type == WordNode && list[n-1].SourceEndIndex == start {
		list[n-1].Value += text
		list[n-1].SourceEndIndex = end
		return list
	}
	return append(list, Node{Type: WordNode, Value: text, SourceIndex: start, SourceEndIndex: end})
}

func stringNode(text string, start, end int, bad bool) Node {
	n := Node{Type: StringNode, Quote: text[:1], SourceIndex: start, SourceEndIndex: end}
	body := text[1:]
	if !bad && len(body) > 0 && body[len(body)-1] == text[0] && !escaped(body, len(body)-1) {
		n.Value = body[:len(body)-1]
		return n
	}
	n.Value = body
	n.Unclosed = true
	return n
}

// escaped reports whether the byte at i is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	count := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		count++
	}
	return count%2 == 1
}

func commentNode(text string, start, end int) Node {
	n := Node{Type: CommentNode, SourceIndex: start, SourceEndIndex: end}
	body := strings.TrimPrefix(text, "/*")
	if len(text) >= 4 && strings.HasSuffix(body, "*/") {
		n.Value = strings.TrimSuffix(body, "*/")
		return n
	}
	n.Value = body
	n.Unclosed = true
	return n
}

// urlNode turns an unquoted url(...) token into a function node with a
// single word child.
func urlNode(text string, start, end int) Node {
	name, rest, _ := strings.Cut(text, "(")
	fn := Node{Type: FunctionNode, Value: name, SourceIndex: start, SourceEndIndex: end}
	if strings.HasSuffix(rest, ")") {
		rest = strings.TrimSuffix(rest, ")")
	} else {
		fn.Unclosed = true
	}
	trimmed := strings.TrimLeft(rest, " \t\n\r\f")
	fn.Before = rest[:len(rest)-len(trimmed)]
	inner := strings.TrimRight(trimmed, " \t\n\r\f")
	fn.After = trimmed[len(inner):]
	if inner != "" {
		offset := start + len(name) + 1 + len(fn.Before)
		fn.Nodes = []Node{{Type: WordNode, Value: inner, SourceIndex: offset, SourceEndIndex: offset + len(inner)}}
	}
	return fn
}
