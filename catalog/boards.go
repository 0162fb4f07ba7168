package catalog

import "hardware-mapper/models"

var raspberryPiOddLabels = map[int]string{
	1: "3V3", 3: "GPIO2", 5: "GPIO3", 7: "GPIO4", 9: "GND", 11: "GPIO17", 13: "GPIO27",
	15: "GPIO22", 17: "3V3", 19: "GPIO10", 21: "GPIO9", 23: "GPIO11", 25: "GND",
	27: "ID_SD", 29: "GPIO5", 31: "GPIO6", 33: "GPIO13", 35: "GPIO19", 37: "GPIO26", 39: "GND",
}

var raspberryPiEvenLabels = map[int]string{
	2: "5V", 4: "5V", 6: "GND", 8: "GPIO14", 10: "GPIO15", 12: "GPIO18", 14: "GND",
	16: "GPIO23", 18: "GPIO24", 20: "GND", 22: "GPIO25", 24: "GPIO8", 26: "GPIO7",
	28: "ID_SC", 30: "GND", 32: "GPIO12", 34: "GND", 36: "GPIO16", 38: "GPIO20", 40: "GPIO21",
}

// Raspberry Pi 5, photographed top-down with the header running left to right
func pi5() models.BoardDefinition {
	return models.BoardDefinition{
		ID:         "pi5",
		Name:       "Raspberry Pi 5 (40-pin)",
		Image:      "boards/pi5.jpg",
		Header:     models.HeaderRect{X: 0.103, Y: 0.000, W: 0.555, H: 0.138},
		Rows:       20,
		V5:         []int{2, 4},
		V33:        []int{1, 17},
		GND:        []int{6, 9, 14, 20, 25, 30, 34, 39},
		OddLabels:  raspberryPiOddLabels,
		EvenLabels: raspberryPiEvenLabels,
	}
}

// Raspberry Pi 4/5, portrait photo with the header running top to bottom
func pi40() models.BoardDefinition {
	return models.BoardDefinition{
		ID:         "pi40",
		Name:       "Raspberry Pi 4/5 (40-pin)",
		Image:      "boards/pi40.jpg",
		Header:     models.HeaderRect{X: 0.36, Y: 0.08, W: 0.09, H: 0.78},
		Rows:       20,
		V5:         []int{2, 4},
		V33:        []int{1, 17},
		GND:        []int{6, 9, 14, 20, 25, 30, 34, 39},
		OddLabels:  raspberryPiOddLabels,
		EvenLabels: raspberryPiEvenLabels,
	}
}

// Arduino Leonardo R3: 18 pins along the top edge, 13 along the bottom right.
// Board positions translate to the Arduino pin numbers and analog labels sketches use.
func leonardo() models.BoardDefinition {
	return models.BoardDefinition{
		ID:     "leonardo",
		Name:   "Arduino Leonardo R3",
		Image:  "boards/leonardo.png",
		Header: models.HeaderRect{X: 0.15, Y: 0.25, W: 0.7, H: 0.5},
		Rows:   31,
		V5:     []int{22},
		V33:    []int{21},
		GND:    []int{4, 23, 24},
		OddLabels: map[int]string{
			1: "SCL", 3: "AREF", 5: "~13", 7: "~11", 9: "~9", 11: "7", 13: "~5", 15: "~3",
			17: "TX1", 19: "IOREF", 21: "3.3V", 23: "GND", 25: "Vin", 27: "A1", 29: "A3", 31: "A5",
		},
		EvenLabels: map[int]string{
			2: "SDA", 4: "GND", 6: "12", 8: "~10", 10: "8", 12: "~6", 14: "4", 16: "2",
			18: "RX0", 20: "RESET", 22: "5V", 24: "GND", 26: "A0", 28: "A2", 30: "A4",
		},
		CustomLayout: &models.CustomLayout{
			Type: "arduino",
			PinGroups: []models.PinGroup{
				{StartPin: 1, EndPin: 18, X: 0.08, Y: 0.18, Width: 0.84},
				{StartPin: 19, EndPin: 31, X: 0.35, Y: 0.80, Width: 0.48},
			},
		},
		PinMapping: map[int]models.PinID{
			1: models.PinName("SCL"), 2: models.PinName("SDA"), 3: models.PinName("AREF"),
			5: models.PinNumber(13), 6: models.PinNumber(12), 7: models.PinNumber(11),
			8: models.PinNumber(10), 9: models.PinNumber(9), 10: models.PinNumber(8),
			11: models.PinNumber(7), 12: models.PinNumber(6), 13: models.PinNumber(5),
			14: models.PinNumber(4), 15: models.PinNumber(3), 16: models.PinNumber(2),
			17: models.PinNumber(1), 18: models.PinNumber(0),
			19: models.PinName("IOREF"), 20: models.PinName("RESET"), 25: models.PinName("VIN"),
			26: models.PinName("A0"), 27: models.PinName("A1"), 28: models.PinName("A2"),
			29: models.PinName("A3"), 30: models.PinName("A4"), 31: models.PinName("A5"),
		},
	}
}

func builtinBoards() []models.BoardDefinition {
	return []models.BoardDefinition{pi5(), pi40(), leonardo()}
}
