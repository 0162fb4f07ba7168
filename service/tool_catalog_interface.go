package service

import (
	"context"

	"hardware-mapper/models"
)

// ToolCatalog lists and invokes the remote operations exposed by a tool provider
type ToolCatalog interface {
	ListTools(ctx context.Context) ([]models.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*models.ToolResult, error)
}
