package config

import (
	"fmt"
	"strings"
)

// OutputFormat selects the encoding of resolved trees.
// ENUM(yaml, json, tree)
type OutputFormat int

const (
	OutputFormatYaml OutputFormat = iota
	OutputFormatJson
	OutputFormatTree
)

var outputFormatNames = []string{"yaml", "json", "tree"}

// OutputFormatNames returns the list of possible string values.
func OutputFormatNames() []string {
	return append([]string(nil), outputFormatNames...)
}

func (o OutputFormat) String() string {
	if o >= 0 && int(o) < len(outputFormatNames) {
		return outputFormatNames[o]
	}
	return fmt.Sprintf("OutputFormat(%d)", int(o))
}

// IsValid reports whether o is one of the defined values.
func (o OutputFormat) IsValid() bool {
	return o >= 0 && int(o) < len(outputFormatNames)
}

// ParseOutputFormat converts a case-insensitive name to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	for i, n := range outputFormatNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return OutputFormat(i), nil
		}
	}
	return OutputFormat(0), fmt.Errorf("%s is not a valid OutputFormat, try [%s]", name, strings.Join(outputFormatNames, ", "))
}

func (o OutputFormat) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%d is not a valid OutputFormat", int(o))
	}
	return []byte(o.String()), nil
}

func (o *OutputFormat) UnmarshalText(text []byte) error {
	v, err := ParseOutputFormat(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Ext returns the file extension used for output files of this format.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatJson:
		return ".json"
	case OutputFormatTree:
		return ".txt"
	default:
		return ".yaml"
	}
}
