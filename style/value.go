package style

import (
	"strings"

	"nativestyle/css"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindPlain     Kind = iota // string or number used as is
	KindLength                // number with a unit, resolved against the context
	KindTransform             // transform list with a per-declaration scale cache
	KindUnparsed              // contains var() references, classified after substitution
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindLength:
		return "length"
	case KindTransform:
		return "transform"
	case KindUnparsed:
		return "unparsed"
	default:
		return "unknown"
	}
}

// Value is an authored property value classified for resolution.
type Value struct {
	Kind      Kind
	Raw       any             // authored value
	Length    css.Dimension   // KindLength
	Transform *TransformValue // KindTransform
}

// NewValue classifies an authored value for property name.
func NewValue(name string, raw any) Value {
	if s, ok := raw.(string); ok && HasVarReference(s) {
		return Value{Kind: KindUnparsed, Raw: raw}
	}
	return classify(name, raw)
}

// classify never produces KindUnparsed, it is used for values whose var()
// references have already been substituted.
func classify(name string, raw any) Value {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if name == "transform" {
			if ops, ok := ParseTransform(s); ok {
				return Value{Kind: KindTransform, Raw: raw, Transform: NewTransformValue(ops)}
			}
			return Value{Kind: KindPlain, Raw: raw}
		}
		if d, ok := css.Unit(s); ok {
			return Value{Kind: KindLength, Raw: raw, Length: d}
		}
	case []TransformOp:
		return Value{Kind: KindTransform, Raw: raw, Transform: NewTransformValue(v)}
	case *TransformValue:
		return Value{Kind: KindTransform, Raw: raw, Transform: v}
	}
	return Value{Kind: KindPlain, Raw: raw}
}

// toFloat converts Go numeric types to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
