package style

import (
	"testing"
)

func TestResolveLength(t *testing.T) {
	tests := []struct {
		name string
		prop string
		raw  any
		ctx  Context
		want any
	}{
		{"zero", "marginTop", 0, NewContext(), 0},
		{"zero with context", "marginTop", 0, NewContext(WithInheritedFontSize(20), WithViewport(10, 10), WithFontScale(3)), 0},
		{"zero string", "marginTop", "0", NewContext(WithInheritedFontSize(20)), 0.0},
		{"number unchanged", "width", 12.5, NewContext(), 12.5},
		{"px", "width", "10px", NewContext(), 10.0},
		{"unitless string", "height", "7", NewContext(), 7.0},
		{"rem inherited", "marginTop", "1.5rem", NewContext(WithInheritedFontSize(20)), 30.0},
		{"rem default", "marginTop", "2rem", NewContext(), 32.0},
		{"rem root override", "marginTop", "2rem", NewContext(WithRootFontSize(10)), 20.0},
		{"em inherited", "paddingLeft", "2em", NewContext(WithInheritedFontSize(8)), 16.0},
		{"vw", "width", "50vw", NewContext(WithViewport(400, 800)), 200.0},
		{"vh", "height", "25vh", NewContext(WithViewport(400, 800)), 200.0},
		{"vmin", "width", "10vmin", NewContext(WithViewport(400, 800)), 40.0},
		{"vmax", "width", "10vmax", NewContext(WithViewport(400, 800)), 80.0},
		{"missing viewport", "width", "50vw", NewContext(), 0.0},
		{"percent kept", "width", "50%", NewContext(WithViewport(400, 800)), "50%"},
		{"keyword kept", "width", "auto", NewContext(), "auto"},
		{"unknown unit kept", "width", "2pt", NewContext(), "2pt"},
		{"font scale typographic", "fontSize", "1rem", NewContext(WithFontScale(1.5)), 24.0},
		{"font scale ignored with ancestor", "fontSize", "1rem", NewContext(WithFontScale(1.5), WithInheritedFontSize(10)), 10.0},
		{"font scale not for box", "width", "1rem", NewContext(WithFontScale(1.5)), 16.0},
		{"font scale vw", "fontSize", "5vw", NewContext(WithFontScale(2), WithViewport(400, 800)), 40.0},
		{"font scale vw letter spacing", "letterSpacing", "1vw", NewContext(WithFontScale(2), WithViewport(400, 800)), 8.0},
		{"font scale vmax line height", "lineHeight", "1vmax", NewContext(WithFontScale(2), WithViewport(400, 800)), 16.0},
		{"font scale px", "fontSize", "16px", NewContext(WithFontScale(2)), 32.0},
		{"font scale unitless kept", "fontSize", "16", NewContext(WithFontScale(2)), 16.0},
		{"font scale not for box vw", "width", "50vw", NewContext(WithFontScale(2), WithViewport(400, 800)), 200.0},
		{"font scale not for box px", "marginTop", "10px", NewContext(WithFontScale(2)), 10.0},
		{"not a length property", "color", "10px", NewContext(), "10px"},
		{"substitution only", "color", "var(--c)", NewContext(WithCustomProperties(map[string]any{"--c": "red"})), "red"},
		{"substitution then length", "width", "var(--w)", NewContext(WithCustomProperties(map[string]any{"--w": "2rem"})), 32.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveLength(tt.prop, tt.raw, tt.ctx)
			if got != tt.want {
				t.Errorf("ResolveLength(%q, %v) = %v (%T), want %v (%T)", tt.prop, tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestIsLengthProperty(t *testing.T) {
	for _, name := range []string{"marginTop", "paddingInlineStart", "maxWidth", "borderRadius", "gap", "fontSize", "inset"} {
		if !IsLengthProperty(name) {
			t.Errorf("IsLengthProperty(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"color", "opacity", "zIndex", "flexGrow", "transform", "margin-top"} {
		if IsLengthProperty(name) {
			t.Errorf("IsLengthProperty(%q) = true, want false", name)
		}
	}
}

func TestSubstituteVars(t *testing.T) {
	vars := map[string]any{"--a": "1px", "--n": 2, "b": "blue"}

	tests := []struct {
		input string
		want  any
	}{
		{"var(--a)", "1px"},
		{"var(--n)", 2},
		{"calc(var(--a) + var(--n))", "calc(1px + 2)"},
		{"var(--b)", "blue"},
		{"var(--x, 3px 4px)", "3px 4px"},
		{"var(--x)", "var(--x)"},
		{"var(--x) var(--a)", "var(--x) 1px"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SubstituteVars(tt.input, vars); got != tt.want {
				t.Errorf("SubstituteVars(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
			}
		})
	}
}
