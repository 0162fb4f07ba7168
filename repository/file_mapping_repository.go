package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"hardware-mapper/models"
)

// FileMappingRepository stores mappings as a JSON array in a single file.
// Used when no database is configured.
type FileMappingRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileMappingRepository creates a repository backed by path. The file is created on first write.
func NewFileMappingRepository(path string) *FileMappingRepository {
	return &FileMappingRepository{path: path}
}

// Ensure FileMappingRepository implements MappingRepositoryInterface
var _ MappingRepositoryInterface = (*FileMappingRepository)(nil)

// List reads the stored mappings. A missing or empty file is an empty collection.
func (r *FileMappingRepository) List(_ context.Context) ([]models.Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Upsert inserts new mappings and replaces existing ones by id
func (r *FileMappingRepository) Upsert(_ context.Context, mappings []models.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(current))
	for i, m := range current {
		index[m.ID] = i
	}
	for _, m := range mappings {
		if i, ok := index[m.ID]; ok {
			current[i] = m
			continue
		}
		index[m.ID] = len(current)
		current = append(current, m)
	}

	return r.save(current)
}

// ReplaceAll overwrites the stored collection
func (r *FileMappingRepository) ReplaceAll(_ context.Context, mappings []models.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(mappings)
}

// Delete removes one mapping by id
func (r *FileMappingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return err
	}

	kept := current[:0]
	for _, m := range current {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(current) {
		return fmt.Errorf("%w: %s", ErrMappingNotFound, id)
	}
	return r.save(kept)
}

// DeleteAll empties the file
func (r *FileMappingRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(nil)
}

func (r *FileMappingRepository) load() ([]models.Mapping, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings file: %w", err)
	}
	if len(data) == 0 {
		return []models.Mapping{}, nil
	}

	var mappings []models.Mapping
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to decode mappings file: %w", err)
	}
	if mappings == nil {
		mappings = []models.Mapping{}
	}
	return mappings, nil
}

// save writes through a temp file and rename so readers never see a partial file
func (r *FileMappingRepository) save(mappings []models.Mapping) error {
	if mappings == nil {
		mappings = []models.Mapping{}
	}
	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mappings: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create mappings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mappings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write mappings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace mappings file: %w", err)
	}

	log.Printf("💾 Wrote %d mappings to %s", len(mappings), r.path)
	return nil
}
