package style

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is the inline writing direction.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// ParseDirection accepts "ltr" and "rtl" (case-insensitive).
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionLTR:
		return DirectionLTR, true
	case DirectionRTL:
		return DirectionRTL, true
	}
	return "", false
}

func (d Direction) valid() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// DisplayInside is the layout mode a node establishes for its children.
type DisplayInside string

const (
	DisplayFlow DisplayInside = "flow"
	DisplayFlex DisplayInside = "flex"
)

func (d DisplayInside) valid() bool {
	return d == DisplayFlow || d == DisplayFlex
}

// InheritDirection returns the direction in effect for the children of a
// node given the ambient direction and the node's own override (empty when
// the node does not set one).
func InheritDirection(ambient, local Direction) Direction {
	if local.valid() {
		return local
	}
	if ambient.valid() {
		return ambient
	}
	return DirectionLTR
}

// InheritFontSize returns the font size children inherit. nil means the host
// default.
func InheritFontSize(ambient, local *float64) *float64 {
	if local != nil {
		return local
	}
	return ambient
}

// InheritDisplayInside returns the display mode children see.
func InheritDisplayInside(ambient, local DisplayInside) DisplayInside {
	if local.valid() {
		return local
	}
	if ambient.valid() {
		return ambient
	}
	return DisplayFlow
}

// Inherited bundles the three inheritable channels. The zero value is the
// tree root: ltr, host font size, flow.
type Inherited struct {
	Direction     Direction
	FontSize      *float64
	DisplayInside DisplayInside
}

// Child combines ambient channels with a node's local overrides (zero fields
// mean "not set") into the channels for the node's children.
func (in Inherited) Child(local Inherited) Inherited {
	return Inherited{
		Direction:     InheritDirection(in.Direction, local.Direction),
		FontSize:      InheritFontSize(in.FontSize, local.FontSize),
		DisplayInside: InheritDisplayInside(in.DisplayInside, local.DisplayInside),
	}
}

// rtlScripts lists scripts written right to left.
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Syrc": true, "Thaa": true, "Nkoo": true,
	"Adlm": true, "Rohg": true, "Mand": true, "Samr": true,
}

// DirectionFromLocale derives the writing direction from a BCP 47 language
// tag. Unknown or malformed tags are ltr.
func DirectionFromLocale(tag string) Direction {
	t, err := language.Parse(tag)
	if err != nil {
		return DirectionLTR
	}
	script, _ := t.Script()
	if rtlScripts[script.String()] {
		return DirectionRTL
	}
	return DirectionLTR
}
