package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"hardware-mapper/models"
)

// RegisterMappingPattern matches tools that accept a full mapping collection
var RegisterMappingPattern = regexp.MustCompile(`(?i)register[_-]?mapping`)

// ErrToolNotFound is returned when no advertised tool matches a pattern
var ErrToolNotFound = errors.New("no matching tool")

// FindTool returns the first tool, in catalog order, whose name matches pattern
func FindTool(tools []models.Tool, pattern *regexp.Regexp) (models.Tool, bool) {
	for _, t := range tools {
		if pattern.MatchString(t.Name) {
			return t, true
		}
	}
	return models.Tool{}, false
}

// FindToolAny tries each pattern in turn and returns the first match
func FindToolAny(tools []models.Tool, patterns ...*regexp.Regexp) (models.Tool, bool) {
	for _, p := range patterns {
		if t, ok := FindTool(tools, p); ok {
			return t, true
		}
	}
	return models.Tool{}, false
}

// invokeTool calls a tool and turns a tool-level error result into a Go error
func invokeTool(ctx context.Context, tools ToolCatalog, name string, args map[string]any) (*models.ToolResult, error) {
	res, err := tools.CallTool(ctx, name, args)
	if err != nil {
		return nil, fmt.Errorf("tool %s: %w", name, err)
	}
	if res != nil && res.IsError {
		return res, fmt.Errorf("tool %s reported an error: %s", name, res.Text)
	}
	return res, nil
}
