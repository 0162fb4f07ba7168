package service

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"hardware-mapper/models"
)

// CodeGenerator turns a mapping collection into firmware source for a board
type CodeGenerator interface {
	Generate(ctx context.Context, mappings []models.Mapping, boardID string) (*models.GeneratedCode, error)
}

// CodegenClient calls POST {base}/generate-code
type CodegenClient struct {
	base   string
	client *http.Client
}

// NewCodegenClient creates a CodegenClient. A nil client uses http.DefaultClient.
func NewCodegenClient(base string, client *http.Client) *CodegenClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CodegenClient{base: trimBase(base), client: client}
}

// Ensure CodegenClient implements CodeGenerator
var _ CodeGenerator = (*CodegenClient)(nil)

// Generate requests code for the mappings of one board
func (c *CodegenClient) Generate(ctx context.Context, mappings []models.Mapping, boardID string) (*models.GeneratedCode, error) {
	log.Printf("🛠️  Generating code for board %s (%d mappings)", boardID, len(mappings))

	var out models.GeneratedCode
	body := models.GenerateCodeRequest{Mappings: mappings, BoardID: boardID}
	if err := doJSON(ctx, c.client, http.MethodPost, c.base+"/generate-code", body, &out); err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	if out.Code == "" {
		return nil, fmt.Errorf("code generation failed: generator returned no code")
	}

	log.Printf("✓ Generated %d bytes of .%s code", len(out.Code), out.FileExtension)
	return &out, nil
}
