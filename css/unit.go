package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

// Dimension is a number with an optional unit, e.g. "1.5rem" or "50%".
type Dimension struct {
	Number float64
	Unit   string // lower-cased, empty for plain numbers
}

// String formats the dimension back into CSS notation.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Number, 'f', -1, 64) + d.Unit
}

// Unit splits a word such as "12px", "-.5em", "50%" or "3" into its number
// and unit. It returns false when the word does not start with a number or
// when the remainder is not a valid unit.
func Unit(word string) (Dimension, bool) {
	word = strings.TrimSpace(word)
	b := []byte(word)
	n := parse.Number(b)
	if n == 0 {
		return Dimension{}, false
	}
	num, err := strconv.ParseFloat(word[:n], 64)
	if err != nil {
		return Dimension{}, false
	}
	unit := word[n:]
	if unit != "%" && !isUnitName(unit) {
		return Dimension{}, false
	}
	return Dimension{Number: num, Unit: strings.ToLower(unit)}, true
}

func isUnitName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
