package models

// Mapping binds one or more actual pins of a board to a part and role
// Example: {"id": "6f1c...", "boardId": "pi5", "partId": "dht22", "role": "Temperature", "pins": [7], "label": "Living Room Temp"}
type Mapping struct {
	ID      string  `json:"id"`
	BoardID string  `json:"boardId"`
	PartID  string  `json:"partId"`
	Role    string  `json:"role"`
	Pins    []PinID `json:"pins"`
	Label   string  `json:"label,omitempty"`
}

// HasPin reports whether the mapping owns the actual pin
func (m Mapping) HasPin(pin PinID) bool {
	for _, p := range m.Pins {
		if p == pin {
			return true
		}
	}
	return false
}

// MappingState is the lifecycle state of a single mapping
type MappingState string

const (
	MappingAbsent        MappingState = "absent"
	MappingPendingAdd    MappingState = "pending-add"
	MappingCommitted     MappingState = "committed"
	MappingPendingRemove MappingState = "pending-remove"
)

// MappingBatch is the wire envelope for a list of mappings
// Example: {"mappings": [{"id": "...", "boardId": "pi5", ...}]}
type MappingBatch struct {
	Mappings []Mapping `json:"mappings"`
}

// SaveMappingsResponse is returned by POST /mappings
type SaveMappingsResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// OKResponse is returned by endpoints that only acknowledge
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse carries an upstream error message
type ErrorResponse struct {
	Error string `json:"error"`
}
