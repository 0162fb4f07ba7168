package service

import (
	"context"

	"hardware-mapper/models"
)

// ExternalRegistry is the durable store the session's mapping collection is synchronized with
type ExternalRegistry interface {
	List(ctx context.Context) ([]models.Mapping, error)
	ReplaceAll(ctx context.Context, mappings []models.Mapping) error
	DeleteByID(ctx context.Context, id string) error
}
