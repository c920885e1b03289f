package style

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTransformValue_ScaleCache(t *testing.T) {
	tv := NewTransformValue([]TransformOp{
		{Name: "translateX", Value: 10.0},
		{Name: "rotate", Value: "45deg"},
		{Name: "translateY", Value: -4.0},
	})

	base := tv.Resolve(1)
	if &base[0] != &tv.Ops()[0] {
		t.Error("scale 1 should return the base operations")
	}

	a := tv.Resolve(2)
	b := tv.Resolve(2)
	if &a[0] != &b[0] {
		t.Error("same scale should return the cached operations")
	}
	if a[0].Value != 20.0 || a[2].Value != -8.0 {
		t.Errorf("scale 2 = %v, want translations 20 and -8", a)
	}

	c := tv.Resolve(3)
	if &c[0] == &a[0] {
		t.Error("different scale must recompute")
	}
	if c[0].Value != 30.0 || c[2].Value != -12.0 {
		t.Errorf("scale 3 = %v, want translations 30 and -12", c)
	}
	if c[1].Value != "45deg" {
		t.Errorf("rotation = %v, should not be scaled", c[1].Value)
	}

	// the scale 2 entry was evicted
	d := tv.Resolve(2)
	if &d[0] == &a[0] {
		t.Error("evicted scale should be recomputed")
	}
	if d[0].Value != 20.0 {
		t.Errorf("recomputed translateX = %v, want 20", d[0].Value)
	}

	// base sequence is never modified
	if tv.Ops()[0].Value != 10.0 {
		t.Errorf("base translateX = %v, want 10", tv.Ops()[0].Value)
	}
}

func TestTransformValue_NonNumericTranslate(t *testing.T) {
	tv := NewTransformValue([]TransformOp{{Name: "translateX", Value: "50%"}})

	if got := tv.Resolve(2)[0].Value; got != "50%" {
		t.Errorf("translateX = %v, want 50%%", got)
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		input string
		want  []TransformOp
		ok    bool
	}{
		{"translateX(10px)", []TransformOp{{"translateX", 10.0}}, true},
		{"translate(10px, 5)", []TransformOp{{"translateX", 10.0}, {"translateY", 5.0}}, true},
		{"translateY(50%)", []TransformOp{{"translateY", "50%"}}, true},
		{"scale(2)", []TransformOp{{"scale", 2.0}}, true},
		{"scale(2, 3)", []TransformOp{{"scaleX", 2.0}, {"scaleY", 3.0}}, true},
		{"SCALEX(1.5)", []TransformOp{{"scaleX", 1.5}}, true},
		{"rotate(45deg) skewX(0)", []TransformOp{{"rotate", "45deg"}, {"skewX", "0deg"}}, true},
		{"rotateZ(0.5turn)", []TransformOp{{"rotateZ", "0.5turn"}}, true},
		{"perspective(100px)", []TransformOp{{"perspective", 100.0}}, true},
		{"matrix(1, 0, 0, 1, 5, 6)", []TransformOp{{"matrix", []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 5, 6, 0, 1}}}, true},
		{"none", []TransformOp{}, true},
		{"rotate(45)", nil, false},
		{"translateX(10px", nil, false},
		{"spin(3)", nil, false},
		{"10px", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTransform(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTransform(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransformValue_String(t *testing.T) {
	ops, ok := ParseTransform("translateX(10px) rotate(45deg)")
	if !ok {
		t.Fatal("parse failed")
	}
	if got := NewTransformValue(ops).String(); got != "translateX(10) rotate(45deg)" {
		t.Errorf("String() = %q", got)
	}
}

func TestTransformOp_Marshal(t *testing.T) {
	ops := []TransformOp{{Name: "translateX", Value: 10.0}, {Name: "rotate", Value: "45deg"}}

	js, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(js) != `[{"translateX":10},{"rotate":"45deg"}]` {
		t.Errorf("json = %s", js)
	}

	ym, err := yaml.Marshal(ops)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if string(ym) != "- translateX: 10\n- rotate: 45deg\n" {
		t.Errorf("yaml = %q", ym)
	}
}
