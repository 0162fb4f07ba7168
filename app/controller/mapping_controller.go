package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"hardware-mapper/models"
	"hardware-mapper/repository"
)

// MappingController serves the mapping registry API
type MappingController struct {
	repository repository.MappingRepositoryInterface
}

// NewMappingController creates a new MappingController
func NewMappingController(repo repository.MappingRepositoryInterface) *MappingController {
	return &MappingController{repository: repo}
}

// Health handles GET /health
func (c *MappingController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// ListMappings handles GET /mappings
func (c *MappingController) ListMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mappings, err := c.repository.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list mappings: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.MappingBatch{Mappings: mappings})
}

// AddMappings handles POST /mappings
// Merges by id: an existing mapping with the same id is replaced, others are appended
func (c *MappingController) AddMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batch, ok := decodeBatch(w, r)
	if !ok {
		return
	}
	if len(batch.Mappings) == 0 {
		http.Error(w, "No mappings provided", http.StatusBadRequest)
		return
	}

	log.Printf("📥 Received %d mappings", len(batch.Mappings))
	if err := c.repository.Upsert(r.Context(), batch.Mappings); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save mappings: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, models.SaveMappingsResponse{OK: true, Count: len(batch.Mappings)})
}

// ReplaceMappings handles PUT /mappings
// The stored collection becomes exactly the request's mappings
func (c *MappingController) ReplaceMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	batch, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	if err := c.repository.ReplaceAll(r.Context(), batch.Mappings); err != nil {
		http.Error(w, fmt.Sprintf("Failed to replace mappings: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.SaveMappingsResponse{OK: true, Count: len(batch.Mappings)})
}

// ClearMappings handles DELETE /mappings
func (c *MappingController) ClearMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.repository.DeleteAll(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to clear mappings: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// DeleteMapping handles DELETE /mappings/:id
func (c *MappingController) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /mappings/{id}
	id := strings.TrimPrefix(r.URL.Path, "/mappings/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "mapping id is required", http.StatusBadRequest)
		return
	}

	err := c.repository.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrMappingNotFound) {
		http.Error(w, "Mapping not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to delete mapping: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.OKResponse{OK: true})
}

// decodeBatch parses a {"mappings": [...]} body; every mapping needs an id
func decodeBatch(w http.ResponseWriter, r *http.Request) (models.MappingBatch, bool) {
	var batch models.MappingBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return batch, false
	}
	for i, m := range batch.Mappings {
		if m.ID == "" || m.BoardID == "" || m.PartID == "" {
			http.Error(w, fmt.Sprintf("mapping %d: id, boardId and partId are required", i), http.StatusBadRequest)
			return batch, false
		}
		if m.Pins == nil {
			batch.Mappings[i].Pins = []models.PinID{}
		}
	}
	return batch, true
}
