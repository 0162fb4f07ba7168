package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hardware-mapper/models"
)

// MCPToolCatalog lists and calls tools over an MCP client session
type MCPToolCatalog struct {
	session *mcp.ClientSession
}

// NewMCPToolCatalog wraps an established client session
func NewMCPToolCatalog(session *mcp.ClientSession) *MCPToolCatalog {
	return &MCPToolCatalog{session: session}
}

// ConnectMCPToolCatalog opens a streamable HTTP session to an MCP server
func ConnectMCPToolCatalog(ctx context.Context, endpoint string, httpClient *http.Client) (*MCPToolCatalog, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "hardware-mapper", Version: Version}, nil)
	transport := &mcp.StreamableClientTransport{Endpoint: endpoint, HTTPClient: httpClient}

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server %s: %w", endpoint, err)
	}

	log.Printf("✓ Connected to MCP server %s", endpoint)
	return NewMCPToolCatalog(session), nil
}

// Ensure MCPToolCatalog implements ToolCatalog
var _ ToolCatalog = (*MCPToolCatalog)(nil)

// ListTools pages through the server's tool list
func (c *MCPToolCatalog) ListTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	params := &mcp.ListToolsParams{}
	for {
		res, err := c.session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to list MCP tools: %w", err)
		}
		for _, t := range res.Tools {
			tools = append(tools, models.Tool{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: schemaMap(t.InputSchema),
			})
		}
		if res.NextCursor == "" {
			break
		}
		params = &mcp.ListToolsParams{Cursor: res.NextCursor}
	}
	return tools, nil
}

// CallTool invokes a tool. Text content is concatenated; structured content,
// or text that parses as JSON, becomes Data.
func (c *MCPToolCatalog) CallTool(ctx context.Context, name string, args map[string]any) (*models.ToolResult, error) {
	log.Printf("🔧 Calling MCP tool %s", name)

	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("failed to call MCP tool %s: %w", name, err)
	}

	var texts []string
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	out := &models.ToolResult{
		Text:    strings.Join(texts, "\n"),
		IsError: res.IsError,
		Data:    res.StructuredContent,
	}
	if isNullJSON(out.Data) && out.Text != "" {
		out.Data = nil
		var data any
		if json.Unmarshal([]byte(out.Text), &data) == nil {
			out.Data = data
		}
	}
	return out, nil
}

// Close ends the session
func (c *MCPToolCatalog) Close() error {
	return c.session.Close()
}

// schemaMap normalizes a tool input schema into a plain JSON object
func schemaMap(schema any) map[string]any {
	if schema == nil {
		return nil
	}
	if m, ok := schema.(map[string]any); ok {
		return m
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// isNullJSON reports whether v is absent or encodes as JSON null
func isNullJSON(v any) bool {
	if v == nil {
		return true
	}
	raw, err := json.Marshal(v)
	return err != nil || string(raw) == "null"
}
