package service

import (
	"context"

	"hardware-mapper/models"
	"hardware-mapper/repository"
)

// RepositoryRegistry uses a local mapping store as the external registry
type RepositoryRegistry struct {
	repo repository.MappingRepositoryInterface
}

// NewRepositoryRegistry creates a RepositoryRegistry over repo
func NewRepositoryRegistry(repo repository.MappingRepositoryInterface) *RepositoryRegistry {
	return &RepositoryRegistry{repo: repo}
}

// Ensure RepositoryRegistry implements ExternalRegistry
var _ ExternalRegistry = (*RepositoryRegistry)(nil)

func (r *RepositoryRegistry) List(ctx context.Context) ([]models.Mapping, error) {
	return r.repo.List(ctx)
}

func (r *RepositoryRegistry) ReplaceAll(ctx context.Context, mappings []models.Mapping) error {
	return r.repo.ReplaceAll(ctx, mappings)
}

func (r *RepositoryRegistry) DeleteByID(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}
