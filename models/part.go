package models

// PartDefinition describes a kind of component that can be wired to a board
// Legacy definitions set PinCount instead of MinPins/MaxPins
type PartDefinition struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Roles    []string `json:"roles" yaml:"roles"`
	MinPins  int      `json:"minPins,omitempty" yaml:"minPins,omitempty"`
	MaxPins  int      `json:"maxPins,omitempty" yaml:"maxPins,omitempty"`
	PinCount int      `json:"pinCount,omitempty" yaml:"pinCount,omitempty"`
}

// Bounds returns the effective (min, max) pin count
func (p PartDefinition) Bounds() (int, int) {
	return firstPositive(p.MinPins, p.PinCount, 1), firstPositive(p.MaxPins, p.PinCount, 1)
}

// HasRole reports whether role is one of the part's declared roles
func (p PartDefinition) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
