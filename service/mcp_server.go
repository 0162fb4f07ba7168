package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hardware-mapper/catalog"
	"hardware-mapper/models"
	"hardware-mapper/repository"
)

// Version is reported to MCP peers
const Version = "0.1.0"

// MCPServer exposes the stored mappings and the board catalog to agents as MCP tools:
// register_mapping, list_mappings and list_boards
type MCPServer struct {
	catalog *catalog.Catalog
	repo    repository.MappingRepositoryInterface
}

// NewMCPServer creates an MCPServer backed by repo
func NewMCPServer(cat *catalog.Catalog, repo repository.MappingRepositoryInterface) *MCPServer {
	return &MCPServer{catalog: cat, repo: repo}
}

// Server builds the MCP server with all tools registered
func (s *MCPServer) Server() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "hardware-mapper", Version: Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "register_mapping",
		Description: "Store hardware pin mappings. Mappings with an existing id are replaced.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mappings": map[string]any{
					"type":        "array",
					"description": "Mappings to store",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"id", "boardId", "partId", "role", "pins"},
					},
				},
			},
			"required": []any{"mappings"},
		},
	}, s.registerMapping)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_mappings",
		Description: "List stored hardware pin mappings, optionally for one board.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"boardId": map[string]any{"type": "string", "description": "Only mappings on this board"},
			},
		},
	}, s.listMappings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_boards",
		Description: "List the boards and parts known to the catalog.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, s.listBoards)

	return server
}

func (s *MCPServer) registerMapping(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input map[string]any,
) (*mcp.CallToolResult, map[string]any, error) {
	var batch models.MappingBatch
	if err := decodeInput(input, &batch); err != nil {
		return toolError(fmt.Errorf("invalid mappings: %w", err)), nil, nil
	}
	if len(batch.Mappings) == 0 {
		return toolError(errors.New("no mappings provided")), nil, nil
	}
	for _, m := range batch.Mappings {
		if m.ID == "" {
			return toolError(errors.New("mapping without id")), nil, nil
		}
		if _, err := s.catalog.Board(m.BoardID); err != nil {
			return toolError(err), nil, nil
		}
		if _, err := s.catalog.Part(m.PartID); err != nil {
			return toolError(err), nil, nil
		}
	}

	if err := s.repo.Upsert(ctx, batch.Mappings); err != nil {
		return toolError(err), nil, nil
	}

	log.Printf("🤖 Agent registered %d mappings", len(batch.Mappings))
	return toolJSON(models.SaveMappingsResponse{OK: true, Count: len(batch.Mappings)})
}

func (s *MCPServer) listMappings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input map[string]any,
) (*mcp.CallToolResult, map[string]any, error) {
	mappings, err := s.repo.List(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}

	if boardID, _ := input["boardId"].(string); boardID != "" {
		filtered := []models.Mapping{}
		for _, m := range mappings {
			if m.BoardID == boardID {
				filtered = append(filtered, m)
			}
		}
		mappings = filtered
	}

	return toolJSON(models.MappingBatch{Mappings: mappings})
}

func (s *MCPServer) listBoards(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ map[string]any,
) (*mcp.CallToolResult, map[string]any, error) {
	type boardSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Pins     int    `json:"pins"`
		Reserved []int  `json:"reserved"`
	}

	boards := []boardSummary{}
	for _, b := range s.catalog.ListBoards() {
		boards = append(boards, boardSummary{ID: b.ID, Name: b.Name, Pins: len(b.Positions()), Reserved: b.Reserved()})
	}

	return toolJSON(map[string]any{
		"boards": boards,
		"parts":  s.catalog.ListParts(),
	})
}

// decodeInput converts loosely typed tool input into a struct through JSON
func decodeInput(input map[string]any, out any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// toolJSON returns v both as text content and as structured output
func toolJSON(v any) (*mcp.CallToolResult, map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	var structured map[string]any
	if err := json.Unmarshal(raw, &structured); err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, structured, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
