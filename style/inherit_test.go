package style

import (
	"testing"
)

func TestInheritDirection(t *testing.T) {
	tests := []struct {
		ambient, local, want Direction
	}{
		{"", "", DirectionLTR},
		{DirectionRTL, "", DirectionRTL},
		{DirectionRTL, DirectionLTR, DirectionLTR},
		{"", DirectionRTL, DirectionRTL},
		{"sideways", "", DirectionLTR},
	}

	for _, tt := range tests {
		if got := InheritDirection(tt.ambient, tt.local); got != tt.want {
			t.Errorf("InheritDirection(%q, %q) = %q, want %q", tt.ambient, tt.local, got, tt.want)
		}
	}

	if got := NewContext().EffectiveDirection(); got != DirectionLTR {
		t.Errorf("default context direction = %q, want ltr", got)
	}
	if got := NewContext().Inherited().Direction; got != DirectionLTR {
		t.Errorf("default inherited direction = %q, want ltr", got)
	}
	out := Compose(List{Props{"textAlign": "end"}}, NewContext(WithDirection(DirectionRTL)))
	if out["textAlign"] != "left" {
		t.Errorf("textAlign end in rtl = %v, want left", out["textAlign"])
	}
}

func TestInheritFontSize(t *testing.T) {
	ten, twenty := 10.0, 20.0

	if got := InheritFontSize(nil, nil); got != nil {
		t.Errorf("InheritFontSize(nil, nil) = %v, want nil", *got)
	}
	if got := InheritFontSize(&ten, nil); got == nil || *got != 10 {
		t.Errorf("ambient should be inherited, got %v", got)
	}
	if got := InheritFontSize(&ten, &twenty); got == nil || *got != 20 {
		t.Errorf("local should win, got %v", got)
	}
}

func TestInheritDisplayInside(t *testing.T) {
	if got := InheritDisplayInside("", ""); got != DisplayFlow {
		t.Errorf("default = %q, want flow", got)
	}
	if got := InheritDisplayInside(DisplayFlex, ""); got != DisplayFlex {
		t.Errorf("ambient = %q, want flex", got)
	}
	if got := InheritDisplayInside(DisplayFlex, DisplayFlow); got != DisplayFlow {
		t.Errorf("local = %q, want flow", got)
	}
}

func TestInherited_Child(t *testing.T) {
	size := 18.0
	root := Inherited{}

	child := root.Child(Inherited{FontSize: &size, DisplayInside: DisplayFlex})
	if child.Direction != DirectionLTR || child.DisplayInside != DisplayFlex || *child.FontSize != 18 {
		t.Errorf("child = %+v", child)
	}

	grandchild := child.Child(Inherited{Direction: DirectionRTL})
	if grandchild.Direction != DirectionRTL || grandchild.DisplayInside != DisplayFlex || *grandchild.FontSize != 18 {
		t.Errorf("grandchild = %+v", grandchild)
	}
}

func TestDirectionFromLocale(t *testing.T) {
	tests := []struct {
		tag  string
		want Direction
	}{
		{"en-US", DirectionLTR},
		{"ar", DirectionRTL},
		{"he-IL", DirectionRTL},
		{"fa", DirectionRTL},
		{"ur-PK", DirectionRTL},
		{"ru", DirectionLTR},
		{"az-Arab", DirectionRTL},
		{"not a tag!", DirectionLTR},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := DirectionFromLocale(tt.tag); got != tt.want {
				t.Errorf("DirectionFromLocale(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if d, ok := ParseDirection(" RTL "); !ok || d != DirectionRTL {
		t.Errorf("ParseDirection(RTL) = %q, %v", d, ok)
	}
	if _, ok := ParseDirection("auto"); ok {
		t.Error("auto should not be accepted")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"margin-top":          "marginTop",
		"marginTop":           "marginTop",
		"border-top-width":    "borderTopWidth",
		"--brand-color":       "--brand-color",
		" color ":             "color",
		"-webkit-user-select": "webkitUserSelect",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContext_WithDoesNotMutate(t *testing.T) {
	base := NewContext(WithCustomProperties(map[string]any{"--a": 1}), WithPassthrough("x"))

	derived := base.With(WithCustomProperties(map[string]any{"--b": 2}), WithPassthrough("y"), WithHover(true))

	if _, ok := base.CustomProperties["--b"]; ok {
		t.Error("base custom properties modified")
	}
	if len(base.Passthrough) != 1 || base.Hover {
		t.Errorf("base modified: %+v", base)
	}
	if derived.CustomProperties["--a"] != 1 || derived.CustomProperties["--b"] != 2 {
		t.Errorf("derived custom properties = %v", derived.CustomProperties)
	}
	if len(derived.Passthrough) != 2 {
		t.Errorf("derived passthrough = %v", derived.Passthrough)
	}
}
