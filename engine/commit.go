package engine

import (
	"strings"

	"github.com/google/uuid"

	"hardware-mapper/catalog"
	"hardware-mapper/geometry"
	"hardware-mapper/models"
)

// AddRequest is a pending mapping: the selected board positions plus part, role and label
type AddRequest struct {
	BoardID   string
	PartID    string
	Role      string
	Positions []int
	Label     string
}

// Commit validates req against the catalog and the existing collection and builds the new mapping.
// Rejections are *ValidationError values; unknown board or part ids return the catalog's errors.
// The returned mapping stores actual pins, never raw board positions.
func Commit(cat *catalog.Catalog, existing []models.Mapping, req AddRequest, mode SelectionMode) (models.Mapping, error) {
	board, err := cat.Board(req.BoardID)
	if err != nil {
		return models.Mapping{}, err
	}
	part, err := cat.Part(req.PartID)
	if err != nil {
		return models.Mapping{}, err
	}

	if verr := checkPinCount(part, len(req.Positions), mode); verr != nil {
		return models.Mapping{}, verr
	}
	if !part.HasRole(req.Role) {
		return models.Mapping{}, reject(InvalidRole, "Role %q is not available for %s.", req.Role, part.Name)
	}

	used := UsedPins(existing)
	claimed := make(map[models.PinID]bool, len(req.Positions))
	for _, n := range req.Positions {
		if !board.HasPosition(n) {
			return models.Mapping{}, reject(UnknownPin, "Pin %d does not exist on %s.", n, board.Name)
		}
		if kind := board.Kind(n); kind.Reserved() {
			return models.Mapping{}, reject(ReservedPin, "Pin %d is reserved (%s).", n, strings.ToUpper(string(kind)))
		}
		actual := geometry.ActualPin(board, n)
		if _, taken := used[actual]; taken || claimed[actual] {
			return models.Mapping{}, reject(DuplicatePin, "Pin %d is already used by another mapping.", n)
		}
		claimed[actual] = true
	}

	return models.Mapping{
		ID:      uuid.NewString(),
		BoardID: board.ID,
		PartID:  part.ID,
		Role:    req.Role,
		Pins:    geometry.ActualPins(board, req.Positions),
		Label:   strings.TrimSpace(req.Label),
	}, nil
}

func checkPinCount(part models.PartDefinition, n int, mode SelectionMode) *ValidationError {
	minPins, maxPins := mode.Required(part)
	if n >= minPins && n <= maxPins {
		return nil
	}
	if minPins == maxPins {
		noun := "pins"
		if minPins == 1 {
			noun = "pin"
		}
		return reject(InvalidPinCount, "Select exactly %d %s for %s.", minPins, noun, part.Name)
	}
	return reject(InvalidPinCount, "Select between %d and %d pins for %s.", minPins, maxPins, part.Name)
}
