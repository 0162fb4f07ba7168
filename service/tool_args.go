package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"hardware-mapper/models"
)

// PinArgs adapts a mapping's pins to the argument name the tool declares.
// Candidates are probed in order: pin, gpio, pins. Tools without a recognised
// property receive pin.
func PinArgs(tool models.Tool, m models.Mapping) map[string]any {
	args := map[string]any{}
	var first any
	if len(m.Pins) > 0 {
		first = m.Pins[0].Value()
	}

	switch {
	case tool.HasParam("pin"):
		args["pin"] = first
	case tool.HasParam("gpio"):
		args["gpio"] = first
	case tool.HasParam("pins"):
		pins := make([]any, len(m.Pins))
		for i, p := range m.Pins {
			pins[i] = p.Value()
		}
		args["pins"] = pins
	default:
		args["pin"] = first
	}
	return args
}

// StateArgs adapts an on/off command to the tool's declared argument.
// state takes "on"/"off"; value and level take 1/0. The fallback is value.
func StateArgs(tool models.Tool, on bool) map[string]any {
	level := 0
	if on {
		level = 1
	}

	switch {
	case tool.HasParam("state"):
		state := "off"
		if on {
			state = "on"
		}
		return map[string]any{"state": state}
	case tool.HasParam("value"):
		return map[string]any{"value": level}
	case tool.HasParam("level"):
		return map[string]any{"level": level}
	default:
		return map[string]any{"value": level}
	}
}

// ActuateRequest describes a command against a mapped part
type ActuateRequest struct {
	// Role selects the first mapping whose role matches
	Role *regexp.Regexp
	// Tools are tried in order until one matches an advertised tool name
	Tools []*regexp.Regexp
	// On, when non-nil, adds on/off state arguments
	On *bool
}

// ActuateResult is the outcome of Actuate
type ActuateResult struct {
	Mapping models.Mapping
	Tool    models.Tool
	Args    map[string]any
	Result  *models.ToolResult
}

// Reading extracts the most likely measured value from the tool result,
// probing the given keys in order before falling back to the raw text
func (r ActuateResult) Reading(keys ...string) string {
	if r.Result == nil {
		return ""
	}
	if data, ok := r.Result.Data.(map[string]any); ok {
		for _, k := range append(append([]string{}, keys...), "value", "result") {
			if v, ok := data[k]; ok && v != nil {
				return fmt.Sprint(v)
			}
		}
	}
	if r.Result.Text != "" {
		return r.Result.Text
	}
	raw, _ := json.Marshal(r.Result.Data)
	return string(raw)
}

// FindMappingByRole returns the first mapping whose role matches pattern
func FindMappingByRole(mappings []models.Mapping, pattern *regexp.Regexp) (models.Mapping, bool) {
	for _, m := range mappings {
		if pattern.MatchString(m.Role) {
			return m, true
		}
	}
	return models.Mapping{}, false
}

// Actuate finds a mapping by role and a tool by name, then invokes the tool
// with arguments adapted to its input schema
func Actuate(ctx context.Context, tools ToolCatalog, mappings []models.Mapping, req ActuateRequest) (*ActuateResult, error) {
	m, ok := FindMappingByRole(mappings, req.Role)
	if !ok {
		return nil, fmt.Errorf("no saved mapping with role matching %q", req.Role.String())
	}

	available, err := tools.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	tool, ok := FindToolAny(available, req.Tools...)
	if !ok {
		return nil, fmt.Errorf("%w for role %s", ErrToolNotFound, m.Role)
	}

	args := PinArgs(tool, m)
	if req.On != nil {
		for k, v := range StateArgs(tool, *req.On) {
			args[k] = v
		}
	}

	res, err := invokeTool(ctx, tools, tool.Name, args)
	if err != nil {
		return nil, err
	}

	return &ActuateResult{Mapping: m, Tool: tool, Args: args, Result: res}, nil
}
