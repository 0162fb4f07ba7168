package repository

import (
	"context"
	"errors"

	"hardware-mapper/models"
)

// ErrMappingNotFound is returned when deleting an id that is not stored
var ErrMappingNotFound = errors.New("mapping not found")

// MappingRepositoryInterface defines the contract for durable mapping storage.
// List preserves insertion order; Upsert replaces same-id mappings in place.
type MappingRepositoryInterface interface {
	List(ctx context.Context) ([]models.Mapping, error)
	Upsert(ctx context.Context, mappings []models.Mapping) error
	ReplaceAll(ctx context.Context, mappings []models.Mapping) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
