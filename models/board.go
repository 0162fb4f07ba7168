package models

import "sort"

// HeaderRect is the pin header rectangle on the board photo, in normalized image coordinates (0..1)
type HeaderRect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// PinGroup is one straight run of board positions in a custom layout
// Example: {"startPin": 1, "endPin": 18, "x": 0.08, "y": 0.18, "width": 0.84}
type PinGroup struct {
	StartPin int     `json:"startPin" yaml:"startPin"`
	EndPin   int     `json:"endPin" yaml:"endPin"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
}

// Count returns the number of board positions the group spans
func (g PinGroup) Count() int {
	return g.EndPin - g.StartPin + 1
}

// Contains reports whether the board position lies in the group
func (g PinGroup) Contains(n int) bool {
	return n >= g.StartPin && n <= g.EndPin
}

// CustomLayout describes boards whose pins are not a uniform dual-row header
type CustomLayout struct {
	Type      string     `json:"type" yaml:"type"` // "arduino" or "custom"
	PinGroups []PinGroup `json:"pinGroups" yaml:"pinGroups"`
}

// BoardDefinition describes a physical board and its pin header
type BoardDefinition struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Image        string         `json:"image" yaml:"image"` // local path or "drive:<fileId>"
	Header       HeaderRect     `json:"header" yaml:"header"`
	Rows         int            `json:"rows" yaml:"rows"`
	OddLabels    map[int]string `json:"oddLabels,omitempty" yaml:"oddLabels,omitempty"`
	EvenLabels   map[int]string `json:"evenLabels,omitempty" yaml:"evenLabels,omitempty"`
	V5           []int          `json:"v5,omitempty" yaml:"v5,omitempty"`
	V33          []int          `json:"v33,omitempty" yaml:"v33,omitempty"`
	GND          []int          `json:"gnd,omitempty" yaml:"gnd,omitempty"`
	CustomLayout *CustomLayout  `json:"customLayout,omitempty" yaml:"customLayout,omitempty"`
	PinMapping   map[int]PinID  `json:"pinMapping,omitempty" yaml:"pinMapping,omitempty"`
}

// HasCustomLayout reports whether the board uses pin groups instead of a uniform header
func (b BoardDefinition) HasCustomLayout() bool {
	return b.CustomLayout != nil && len(b.CustomLayout.PinGroups) > 0
}

// HasPosition reports whether n is a board position that exists on this board
func (b BoardDefinition) HasPosition(n int) bool {
	if b.HasCustomLayout() {
		for _, g := range b.CustomLayout.PinGroups {
			if g.Contains(n) {
				return true
			}
		}
		return false
	}
	return n >= 1 && n <= b.Rows*2
}

// Positions returns every board position in ascending order
func (b BoardDefinition) Positions() []int {
	var out []int
	if b.HasCustomLayout() {
		for _, g := range b.CustomLayout.PinGroups {
			for n := g.StartPin; n <= g.EndPin; n++ {
				out = append(out, n)
			}
		}
		sort.Ints(out)
		return out
	}
	for n := 1; n <= b.Rows*2; n++ {
		out = append(out, n)
	}
	return out
}

// Label returns the printed label of a board position, or "" when it has none
func (b BoardDefinition) Label(n int) string {
	if n%2 == 1 {
		return b.OddLabels[n]
	}
	return b.EvenLabels[n]
}

// Kind returns the power/ground classification of a board position
func (b BoardDefinition) Kind(n int) PinKind {
	switch {
	case containsInt(b.V5, n):
		return PinKind5V
	case containsInt(b.V33, n):
		return PinKind3V3
	case containsInt(b.GND, n):
		return PinKindGround
	default:
		return PinKindSignal
	}
}

// Reserved returns the 5V, 3.3V and ground positions, sorted and de-duplicated
func (b BoardDefinition) Reserved() []int {
	seen := make(map[int]bool)
	var out []int
	for _, set := range [][]int{b.V5, b.V33, b.GND} {
		for _, n := range set {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Ints(out)
	return out
}

func containsInt(xs []int, n int) bool {
	for _, x := range xs {
		if x == n {
			return true
		}
	}
	return false
}
