package style

import (
	"encoding/json"
	"strconv"
	"strings"

	"nativestyle/css"
)

// TransformOp is a single native transform operation such as
// {translateX: 10} or {rotate: "45deg"}.
type TransformOp struct {
	Name  string
	Value any
}

// MarshalYAML encodes the operation as a single-key mapping.
func (op TransformOp) MarshalYAML() (any, error) {
	return map[string]any{op.Name: op.Value}, nil
}

// MarshalJSON encodes the operation as a single-key object.
func (op TransformOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{op.Name: op.Value})
}

// String formats the operation in CSS function notation.
func (op TransformOp) String() string {
	return op.Name + "(" + formatTransformArg(op.Value) + ")"
}

// transformCache holds the operations computed for one scale factor.
type transformCache struct {
	scale float64
	ops   []TransformOp
}

// TransformValue is a parsed transform owned by a single declaration. It
// remembers the result for the last viewport scale it was resolved at.
type TransformValue struct {
	ops   []TransformOp
	cache *transformCache
}

// NewTransformValue wraps a base operation sequence.
func NewTransformValue(ops []TransformOp) *TransformValue {
	return &TransformValue{ops: ops}
}

// Ops returns the unscaled operations.
func (t *TransformValue) Ops() []TransformOp {
	return t.ops
}

// Resolve returns the operations for the given viewport scale. Scale 1
// returns the base sequence itself. Translations with numeric values are
// multiplied by scale, everything else is unit independent and copied.
// Only the most recent scale is cached, asking for another one replaces it.
func (t *TransformValue) Resolve(scale float64) []TransformOp {
	if scale == 1 || scale <= 0 {
		return t.ops
	}
	if t.cache != nil && t.cache.scale == scale {
		return t.cache.ops
	}
	ops := make([]TransformOp, len(t.ops))
	for i, op := range t.ops {
		ops[i] = op
		if op.Name != "translateX" && op.Name != "translateY" {
			continue
		}
		if v, ok := op.Value.(float64); ok {
			ops[i].Value = v * scale
		}
	}
	t.cache = &transformCache{scale: scale, ops: ops}
	return ops
}

// String formats the base operations back to CSS transform syntax.
func (t *TransformValue) String() string {
	parts := make([]string, 0, len(t.ops))
	for _, op := range t.ops {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

func formatTransformArg(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strings.Join(parts, ", ")
	case string:
		return v
	}
	return ""
}

// transformNames maps lower-cased CSS transform functions to native names.
var transformNames = map[string]string{
	"translate":   "translate",
	"translatex":  "translateX",
	"translatey":  "translateY",
	"scale":       "scale",
	"scalex":      "scaleX",
	"scaley":      "scaleY",
	"scalez":      "scaleZ",
	"rotate":      "rotate",
	"rotatex":     "rotateX",
	"rotatey":     "rotateY",
	"rotatez":     "rotateZ",
	"skewx":       "skewX",
	"skewy":       "skewY",
	"perspective": "perspective",
	"matrix":      "matrix",
	"matrix3d":    "matrix3d",
}

// ParseTransform parses a CSS transform list ("translateX(10px) rotate(45deg)")
// into native operations. It returns false when any part is not a supported
// transform function.
func ParseTransform(s string) ([]TransformOp, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return []TransformOp{}, true
	}

	parts := css.Components(css.ParseValue(s))
	if len(parts) == 0 {
		return nil, false
	}

	var ops []TransformOp
	for _, fn := range parts {
		if fn.Type != css.FunctionNode || fn.Unclosed {
			return nil, false
		}
		name, ok := transformNames[strings.ToLower(fn.Value)]
		if !ok {
			return nil, false
		}
		args := transformArgs(fn)
		parsed, ok := parseTransformFunc(name, args)
		if !ok {
			return nil, false
		}
		ops = append(ops, parsed...)
	}
	return ops, true
}

func transformArgs(fn css.Node) []string {
	var args []string
	for _, arg := range fn.Arguments() {
		args = append(args, strings.TrimSpace(css.Stringify(arg)))
	}
	return args
}

func parseTransformFunc(name string, args []string) ([]TransformOp, bool) {
	switch name {
	case "translate":
		if len(args) < 1 || len(args) > 2 {
			return nil, false
		}
		ops := []TransformOp{{Name: "translateX", Value: transformLength(args[0])}}
		if len(args) == 2 {
			ops = append(ops, TransformOp{Name: "translateY", Value: transformLength(args[1])})
		}
		return ops, true

	case "translateX", "translateY", "perspective":
		if len(args) != 1 {
			return nil, false
		}
		return []TransformOp{{Name: name, Value: transformLength(args[0])}}, true

	case "scale":
		if len(args) < 1 || len(args) > 2 {
			return nil, false
		}
		x, ok := transformNumber(args[0])
		if !ok {
			return nil, false
		}
		if len(args) == 1 {
			return []TransformOp{{Name: "scale", Value: x}}, true
		}
		y, ok := transformNumber(args[1])
		if !ok {
			return nil, false
		}
		if x == y {
			return []TransformOp{{Name: "scale", Value: x}}, true
		}
		return []TransformOp{{Name: "scaleX", Value: x}, {Name: "scaleY", Value: y}}, true

	case "scaleX", "scaleY", "scaleZ":
		if len(args) != 1 {
			return nil, false
		}
		v, ok := transformNumber(args[0])
		if !ok {
			return nil, false
		}
		return []TransformOp{{Name: name, Value: v}}, true

	case "rotate", "rotateX", "rotateY", "rotateZ", "skewX", "skewY":
		if len(args) != 1 {
			return nil, false
		}
		angle, ok := transformAngle(args[0])
		if !ok {
			return nil, false
		}
		return []TransformOp{{Name: name, Value: angle}}, true

	case "matrix":
		m, ok := transformNumbers(args, 6)
		if !ok {
			return nil, false
		}
		// 2D affine matrix(a, b, c, d, tx, ty) in 4x4 column-major form
		return []TransformOp{{Name: "matrix", Value: []float64{
			m[0], m[1], 0, 0,
			m[2], m[3], 0, 0,
			0, 0, 1, 0,
			m[4], m[5], 0, 1,
		}}}, true

	case "matrix3d":
		m, ok := transformNumbers(args, 16)
		if !ok {
			return nil, false
		}
		return []TransformOp{{Name: "matrix", Value: m}}, true
	}
	return nil, false
}

// transformLength converts px and unitless lengths to numbers, other units
// are kept as text.
func transformLength(arg string) any {
	if d, ok := css.Unit(arg); ok && (d.Unit == "" || d.Unit == "px") {
		return d.Number
	}
	return arg
}

func transformNumber(arg string) (float64, bool) {
	d, ok := css.Unit(arg)
	if !ok || d.Unit != "" {
		return 0, false
	}
	return d.Number, true
}

func transformNumbers(args []string, want int) ([]float64, bool) {
	if len(args) != want {
		return nil, false
	}
	out := make([]float64, want)
	for i, arg := range args {
		v, ok := transformNumber(arg)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func transformAngle(arg string) (string, bool) {
	d, ok := css.Unit(arg)
	if !ok {
		return "", false
	}
	switch d.Unit {
	case "deg", "rad", "grad", "turn":
		return arg, true
	case "":
		if d.Number == 0 {
			return "0deg", true
		}
	}
	return "", false
}
