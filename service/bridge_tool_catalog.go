package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"hardware-mapper/models"
)

// BridgeToolCatalog talks to an HTTP bridge in front of an MCP server.
// GET {base}/tools lists tools; POST {base}/call invokes one with {name, args}.
type BridgeToolCatalog struct {
	base   string
	client *http.Client
}

// NewBridgeToolCatalog creates a BridgeToolCatalog. A nil client uses http.DefaultClient.
func NewBridgeToolCatalog(base string, client *http.Client) *BridgeToolCatalog {
	if client == nil {
		client = http.DefaultClient
	}
	return &BridgeToolCatalog{base: trimBase(base), client: client}
}

// Ensure BridgeToolCatalog implements ToolCatalog
var _ ToolCatalog = (*BridgeToolCatalog)(nil)

// ListTools fetches the advertised tools. The bridge may answer with a bare
// array or with {"tools": [...]}.
func (c *BridgeToolCatalog) ListTools(ctx context.Context) ([]models.Tool, error) {
	var raw json.RawMessage
	if err := doJSON(ctx, c.client, http.MethodGet, c.base+"/tools", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list bridge tools: %w", err)
	}

	var tools []models.Tool
	if err := json.Unmarshal(raw, &tools); err != nil {
		var list models.ToolList
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("failed to decode bridge tool list: %w", err)
		}
		tools = list.Tools
	}

	log.Printf("✓ Bridge advertised %d tools", len(tools))
	return tools, nil
}

// CallTool invokes a tool through the bridge. The decoded response body is kept as Data.
func (c *BridgeToolCatalog) CallTool(ctx context.Context, name string, args map[string]any) (*models.ToolResult, error) {
	log.Printf("🔧 Calling bridge tool %s", name)

	var data any
	body := models.ToolCallRequest{Name: name, Args: args}
	if err := doJSON(ctx, c.client, http.MethodPost, c.base+"/call", body, &data); err != nil {
		return nil, fmt.Errorf("failed to call bridge tool %s: %w", name, err)
	}

	res := &models.ToolResult{Data: data}
	if s, ok := data.(string); ok {
		res.Text = s
	}
	return res, nil
}
