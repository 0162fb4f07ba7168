package engine

import (
	"fmt"
	"strings"

	"hardware-mapper/models"
)

// SelectionMode decides how many pins a new mapping may select
type SelectionMode string

const (
	// SingleMode selects exactly one pin per mapping, whatever the part declares
	SingleMode SelectionMode = "single"
	// MultiMode selects up to the part's MaxPins and requires at least its MinPins
	MultiMode SelectionMode = "multi"
)

// ParseSelectionMode parses "single" or "multi"; empty means SingleMode
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SingleMode):
		return SingleMode, nil
	case string(MultiMode):
		return MultiMode, nil
	default:
		return "", fmt.Errorf("unknown selection mode %q (want single or multi)", s)
	}
}

// Required returns the accepted (min, max) selected pin count for part
func (m SelectionMode) Required(part models.PartDefinition) (int, int) {
	if m == MultiMode {
		return part.Bounds()
	}
	return 1, 1
}

// Limit returns the largest working selection for part
func (m SelectionMode) Limit(part models.PartDefinition) int {
	_, maxPins := m.Required(part)
	return maxPins
}

// Selection is the working set of board positions picked for the next mapping
type Selection struct {
	limit int
	pins  []int
}

// NewSelection creates an empty selection holding at most limit positions
func NewSelection(limit int) *Selection {
	if limit < 1 {
		limit = 1
	}
	return &Selection{limit: limit}
}

// Toggle selects or deselects position n and reports whether the selection changed.
// Disabled positions are ignored. A full single-pin selection moves to n; a full
// multi-pin selection ignores new positions until one is deselected.
func (s *Selection) Toggle(n int, disabled map[int]bool) bool {
	if disabled[n] {
		return false
	}
	for i, p := range s.pins {
		if p == n {
			s.pins = append(s.pins[:i], s.pins[i+1:]...)
			return true
		}
	}
	switch {
	case len(s.pins) < s.limit:
		s.pins = append(s.pins, n)
	case s.limit == 1:
		s.pins = []int{n}
	default:
		return false
	}
	return true
}

// Contains reports whether n is selected
func (s *Selection) Contains(n int) bool {
	for _, p := range s.pins {
		if p == n {
			return true
		}
	}
	return false
}

// Pins returns the selected positions in selection order
func (s *Selection) Pins() []int {
	return append([]int(nil), s.pins...)
}

// Len returns the number of selected positions
func (s *Selection) Len() int {
	return len(s.pins)
}

// Limit returns the selection capacity
func (s *Selection) Limit() int {
	return s.limit
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.pins = nil
}
