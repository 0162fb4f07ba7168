package catalog

import "hardware-mapper/models"

func builtinParts() []models.PartDefinition {
	return []models.PartDefinition{
		{ID: "led", Name: "LED", Roles: []string{"Light"}, MinPins: 1, MaxPins: 1},
		{ID: "button", Name: "Button", Roles: []string{"Press"}, MinPins: 1, MaxPins: 1},
		{ID: "relay", Name: "Relay", Roles: []string{"Switch"}, MinPins: 1, MaxPins: 1},
		{ID: "buzzer", Name: "Buzzer", Roles: []string{"Buzz"}, MinPins: 1, MaxPins: 1},
		{ID: "dht22", Name: "DHT22 (Temp/Humidity)", Roles: []string{"Temperature", "Humidity"}, MinPins: 1, MaxPins: 1},
		{ID: "hcsr04", Name: "HC-SR04 (Ultrasonic)", Roles: []string{"Trigger", "Echo"}, MinPins: 2, MaxPins: 2},
		{ID: "servo", Name: "Servo Motor", Roles: []string{"Control"}, MinPins: 1, MaxPins: 1},
		{ID: "analog_sensor", Name: "Analog Sensor", Roles: []string{"Read"}, MinPins: 1, MaxPins: 1},
		{ID: "digital_sensor", Name: "Digital Sensor", Roles: []string{"Read"}, MinPins: 1, MaxPins: 1},
		{ID: "custom", Name: "Custom (multi-pin)", Roles: []string{"Generic"}, MinPins: 1, MaxPins: 6},
	}
}
