package models

// Tool is a remote operation advertised by the tool catalog
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
	Scopes      []string       `json:"scopes,omitempty"`
}

// HasParam reports whether the tool's input schema declares the named property
func (t Tool) HasParam(name string) bool {
	props, ok := t.InputSchema["properties"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = props[name]
	return ok
}

// ToolCallRequest is the body of a bridge tool invocation
// Example: {"name": "register_mapping", "args": {"mappings": [...]}}
type ToolCallRequest struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolResult is the outcome of a tool invocation
type ToolResult struct {
	Text    string `json:"text,omitempty"`
	IsError bool   `json:"isError,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ToolList is the bridge response for GET /tools
type ToolList struct {
	Tools []Tool `json:"tools"`
}
