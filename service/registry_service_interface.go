package service

import (
	"context"

	"hardware-mapper/models"
)

// MappingRegistryInterface defines the contract for the session's mapping collection
type MappingRegistryInterface interface {
	List() []models.Mapping
	Add(m models.Mapping)
	State(id string) models.MappingState
	Remove(ctx context.Context, id string) error
	SaveAll(ctx context.Context, tools ToolCatalog) (*SaveResult, error)
	Seed(ctx context.Context) error
	Reset()
}
