package geometry

import "hardware-mapper/models"

// ActualPin translates a board position to the pin identifier downstream tools address.
// Boards without a pin mapping entry for the position use the position itself.
func ActualPin(board models.BoardDefinition, position int) models.PinID {
	if pin, ok := board.PinMapping[position]; ok {
		return pin
	}
	return models.PinNumber(position)
}

// ActualPins translates positions in order
func ActualPins(board models.BoardDefinition, positions []int) []models.PinID {
	out := make([]models.PinID, 0, len(positions))
	for _, p := range positions {
		out = append(out, ActualPin(board, p))
	}
	return out
}

// BoardPositionsFor returns every board position, ascending, whose actual pin is pin
func BoardPositionsFor(board models.BoardDefinition, pin models.PinID) []int {
	var out []int
	for _, n := range board.Positions() {
		if ActualPin(board, n) == pin {
			out = append(out, n)
		}
	}
	return out
}
