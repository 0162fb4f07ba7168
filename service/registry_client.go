package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"hardware-mapper/models"
)

// RegistryClient talks to the mapping registry server over HTTP
type RegistryClient struct {
	base   string
	client *http.Client
}

// NewRegistryClient creates a RegistryClient. A nil client uses http.DefaultClient.
func NewRegistryClient(base string, client *http.Client) *RegistryClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RegistryClient{base: trimBase(base), client: client}
}

// Ensure RegistryClient implements ExternalRegistry
var _ ExternalRegistry = (*RegistryClient)(nil)

// Health checks GET /health
func (c *RegistryClient) Health(ctx context.Context) error {
	var out models.OKResponse
	if err := doJSON(ctx, c.client, http.MethodGet, c.base+"/health", nil, &out); err != nil {
		return fmt.Errorf("registry health check failed: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("registry reported not ok")
	}
	return nil
}

// List fetches GET /mappings
func (c *RegistryClient) List(ctx context.Context) ([]models.Mapping, error) {
	var batch models.MappingBatch
	if err := doJSON(ctx, c.client, http.MethodGet, c.base+"/mappings", nil, &batch); err != nil {
		return nil, fmt.Errorf("failed to list registry mappings: %w", err)
	}
	if batch.Mappings == nil {
		batch.Mappings = []models.Mapping{}
	}
	log.Printf("📋 Registry returned %d mappings", len(batch.Mappings))
	return batch.Mappings, nil
}

// ReplaceAll sends PUT /mappings with the full collection
func (c *RegistryClient) ReplaceAll(ctx context.Context, mappings []models.Mapping) error {
	body := models.MappingBatch{Mappings: mappings}
	if err := doJSON(ctx, c.client, http.MethodPut, c.base+"/mappings", body, nil); err != nil {
		return fmt.Errorf("registry replace failed: %w", err)
	}
	log.Printf("💾 Registry now holds %d mappings", len(mappings))
	return nil
}

// Merge sends POST /mappings, which upserts by id and keeps other stored mappings
func (c *RegistryClient) Merge(ctx context.Context, mappings []models.Mapping) (int, error) {
	var out models.SaveMappingsResponse
	body := models.MappingBatch{Mappings: mappings}
	if err := doJSON(ctx, c.client, http.MethodPost, c.base+"/mappings", body, &out); err != nil {
		return 0, fmt.Errorf("registry POST failed: %w", err)
	}
	return out.Count, nil
}

// DeleteByID sends DELETE /mappings/{id}
func (c *RegistryClient) DeleteByID(ctx context.Context, id string) error {
	target := c.base + "/mappings/" + url.PathEscape(id)
	if err := doJSON(ctx, c.client, http.MethodDelete, target, nil, nil); err != nil {
		return fmt.Errorf("registry delete failed: %w", err)
	}
	return nil
}

// DeleteAll sends DELETE /mappings
func (c *RegistryClient) DeleteAll(ctx context.Context) error {
	if err := doJSON(ctx, c.client, http.MethodDelete, c.base+"/mappings", nil, nil); err != nil {
		return fmt.Errorf("registry reset failed: %w", err)
	}
	return nil
}
