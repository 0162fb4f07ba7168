package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PinID identifies an actual pin: either a pin number (13) or a symbolic label ("A0", "SDA").
// The zero value is the pin number 0, which no board uses.
type PinID struct {
	num   int
	name  string
	named bool
}

// PinNumber returns the PinID for a numeric pin
func PinNumber(n int) PinID {
	return PinID{num: n}
}

// PinName returns the PinID for a symbolic pin
func PinName(s string) PinID {
	return PinID{name: s, named: true}
}

// Number returns the pin number and true when the pin is numeric
func (p PinID) Number() (int, bool) {
	return p.num, !p.named
}

// Name returns the symbolic label and true when the pin is symbolic
func (p PinID) Name() (string, bool) {
	return p.name, p.named
}

// Value returns the pin as an int or a string, the shape downstream tools expect
func (p PinID) Value() any {
	if p.named {
		return p.name
	}
	return p.num
}

func (p PinID) String() string {
	if p.named {
		return p.name
	}
	return strconv.Itoa(p.num)
}

// MarshalJSON encodes the pin as a bare number or a bare string
func (p PinID) MarshalJSON() ([]byte, error) {
	if p.named {
		return json.Marshal(p.name)
	}
	return []byte(strconv.Itoa(p.num)), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string
func (p *PinID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PinName(s)
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("pin must be an integer or a string, got %s", data)
	}
	*p = PinNumber(n)
	return nil
}

// MarshalYAML encodes the pin as a bare scalar
func (p PinID) MarshalYAML() (any, error) {
	return p.Value(), nil
}

// UnmarshalYAML accepts an integer scalar or any other scalar as a symbolic label
func (p *PinID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: pin must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid pin number %q: %w", value.Line, value.Value, err)
		}
		*p = PinNumber(n)
		return nil
	}
	*p = PinName(value.Value)
	return nil
}

// PinKind classifies a board position
type PinKind string

const (
	PinKindSignal PinKind = "signal"
	PinKind5V     PinKind = "5v"
	PinKind3V3    PinKind = "3v3"
	PinKindGround PinKind = "gnd"
)

// Reserved reports whether pins of this kind can never be mapped
func (k PinKind) Reserved() bool {
	return k != PinKindSignal
}

// PinPosition is a resolved pin center on the logical canvas
type PinPosition struct {
	Number   int     `json:"num"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label,omitempty"`
	Kind     PinKind `json:"kind"`
	Actual   PinID   `json:"actual"`
	Disabled bool    `json:"disabled"`
}
