// Package engine decides which pins can be selected and which new mappings are legal.
package engine

import (
	"sort"

	"hardware-mapper/geometry"
	"hardware-mapper/models"
)

// DisabledPositions returns, ascending, the board positions that cannot be selected on board:
// its power and ground pins plus every position whose actual pin is owned by a mapping of
// the same board. Mappings of other boards do not affect the result.
func DisabledPositions(board models.BoardDefinition, mappings []models.Mapping) []int {
	set := make(map[int]bool)
	for _, n := range board.Reserved() {
		set[n] = true
	}
	for _, m := range mappings {
		if m.BoardID != board.ID {
			continue
		}
		for _, pin := range m.Pins {
			for _, n := range geometry.BoardPositionsFor(board, pin) {
				set[n] = true
			}
		}
	}

	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// DisabledSet is DisabledPositions as a lookup set
func DisabledSet(board models.BoardDefinition, mappings []models.Mapping) map[int]bool {
	positions := DisabledPositions(board, mappings)
	set := make(map[int]bool, len(positions))
	for _, n := range positions {
		set[n] = true
	}
	return set
}

// UsedPins maps every actual pin in the collection to the id of the mapping owning it
func UsedPins(mappings []models.Mapping) map[models.PinID]string {
	used := make(map[models.PinID]string)
	for _, m := range mappings {
		for _, pin := range m.Pins {
			used[pin] = m.ID
		}
	}
	return used
}

// MarkDisabled flags the disabled pins of a resolved layout in place
func MarkDisabled(layout *geometry.Layout, disabled map[int]bool) {
	for i := range layout.Pins {
		layout.Pins[i].Disabled = disabled[layout.Pins[i].Number]
	}
}
