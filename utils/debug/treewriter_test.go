package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "view", nil, "view\n"},
		{"nested", 2, "text", nil, "    text\n"},
		{"formatted", 1, "<%s> children=%d", []any{"div", 3}, "  <div> children=3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "text", "", "text: \n"},
		{"plain", 1, "text", "Hello", "  text: \"Hello\"\n"},
		{"quotes", 0, "raw", `say "hi"`, "raw: \"say \\\"hi\\\"\"\n"},
		{"newline", 0, "raw", "a\nb", "raw: \"a\\nb\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

type opStub struct{}

func (opStub) String() string { return "rotate(45deg)" }

func TestTreeWriter_Fields(t *testing.T) {
	tw := NewTreeWriter()
	tw.Fields(1, map[string]any{
		"zIndex":      2,
		"color":       "red",
		"margin10":    1.5,
		"margin2":     0.25,
		"opacity":     float32(0.5),
		"transform":   opStub{},
		"aspectRatio": nil,
	})

	want := "  aspectRatio: <nil>\n" +
		"  color: \"red\"\n" +
		"  margin2: 0.25\n" +
		"  margin10: 1.5\n" +
		"  opacity: 0.5\n" +
		"  transform: rotate(45deg)\n" +
		"  zIndex: 2\n"
	if got := tw.String(); got != want {
		t.Errorf("Fields():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeWriter_Tree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "<div>")
	tw.Fields(1, map[string]any{"flexDirection": "column"})
	tw.Line(1, "<p>")
	tw.TextBlock(2, "text", "Hi")

	want := "<div>\n  flexDirection: \"column\"\n  <p>\n    text: \"Hi\"\n"
	if got := tw.String(); got != want {
		t.Errorf("tree:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
