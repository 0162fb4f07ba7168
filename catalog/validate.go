package catalog

import (
	"errors"
	"fmt"
	"sort"

	"hardware-mapper/models"
)

// Validate checks board and part definitions and returns every problem found, joined
func Validate(boards []models.BoardDefinition, parts []models.PartDefinition) error {
	var errs []error

	seenBoards := make(map[string]bool)
	for _, b := range boards {
		if b.ID == "" {
			errs = append(errs, errors.New("board with empty id"))
			continue
		}
		if seenBoards[b.ID] {
			errs = append(errs, fmt.Errorf("board %q: duplicate id", b.ID))
		}
		seenBoards[b.ID] = true
		errs = append(errs, validateBoard(b)...)
	}

	seenParts := make(map[string]bool)
	for _, p := range parts {
		if p.ID == "" {
			errs = append(errs, errors.New("part with empty id"))
			continue
		}
		if seenParts[p.ID] {
			errs = append(errs, fmt.Errorf("part %q: duplicate id", p.ID))
		}
		seenParts[p.ID] = true
		errs = append(errs, validatePart(p)...)
	}

	return errors.Join(errs...)
}

func validateBoard(b models.BoardDefinition) []error {
	var errs []error

	if b.HasCustomLayout() {
		groups := append([]models.PinGroup(nil), b.CustomLayout.PinGroups...)
		sort.Slice(groups, func(i, j int) bool { return groups[i].StartPin < groups[j].StartPin })
		for i, g := range groups {
			if g.StartPin < 1 || g.EndPin < g.StartPin {
				errs = append(errs, fmt.Errorf("board %q: pin group [%d, %d] is empty or starts below 1", b.ID, g.StartPin, g.EndPin))
			}
			if i > 0 && g.StartPin <= groups[i-1].EndPin {
				errs = append(errs, fmt.Errorf("board %q: pin groups [%d, %d] and [%d, %d] overlap",
					b.ID, groups[i-1].StartPin, groups[i-1].EndPin, g.StartPin, g.EndPin))
			}
		}
	} else if b.Rows < 1 {
		errs = append(errs, fmt.Errorf("board %q: rows must be at least 1 without a custom layout, got %d", b.ID, b.Rows))
		return errs
	}

	check := func(what string, n int) {
		if !b.HasPosition(n) {
			errs = append(errs, fmt.Errorf("board %q: %s references pin %d outside the board", b.ID, what, n))
		}
	}
	for n := range b.OddLabels {
		check("oddLabels", n)
	}
	for n := range b.EvenLabels {
		check("evenLabels", n)
	}
	for _, n := range b.V5 {
		check("v5", n)
	}
	for _, n := range b.V33 {
		check("v33", n)
	}
	for _, n := range b.GND {
		check("gnd", n)
	}
	for n := range b.PinMapping {
		check("pinMapping", n)
	}

	return errs
}

func validatePart(p models.PartDefinition) []error {
	var errs []error
	minPins, maxPins := p.Bounds()
	if minPins < 1 || maxPins < minPins {
		errs = append(errs, fmt.Errorf("part %q: pin bounds must satisfy 1 <= min <= max, got min=%d max=%d", p.ID, minPins, maxPins))
	}
	if len(p.Roles) == 0 {
		errs = append(errs, fmt.Errorf("part %q: at least one role is required", p.ID))
	}
	return errs
}
