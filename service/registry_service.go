package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"hardware-mapper/models"
)

const (
	msgNothingToSave = "No mappings to save. Add some hardware mappings first."
	msgToolSent      = "Mappings sent to MCP (%s)."
	msgToolMissing   = "No register_mapping tool found, mappings kept locally."
	msgToolFailed    = "register_mapping failed (%v), mappings kept locally."
	msgSaved         = "Saved %d mapping(s) to the registry."
	msgDeleted       = "Mapping deleted."
)

// ErrMappingNotInSession is returned when removing an id the session does not hold
var ErrMappingNotInSession = errors.New("mapping not in session")

// SaveResult reports the combined outcome of SaveAll. Count is zero when there was nothing to save.
type SaveResult struct {
	Count    int
	ToolName string
	ToolErr  error
	Message  string
}

// MappingRegistry owns the session's mapping collection and keeps it in step
// with an external registry. Local changes never wait for the remote side and
// are never rolled back.
type MappingRegistry struct {
	external ExternalRegistry

	mu       sync.Mutex
	mappings []models.Mapping
	removing map[string]bool
}

// NewMappingRegistry creates an empty registry synchronized with external
func NewMappingRegistry(external ExternalRegistry) *MappingRegistry {
	return &MappingRegistry{
		external: external,
		mappings: []models.Mapping{},
		removing: make(map[string]bool),
	}
}

// Ensure MappingRegistry implements MappingRegistryInterface
var _ MappingRegistryInterface = (*MappingRegistry)(nil)

// List returns a copy of the collection in insertion order
func (r *MappingRegistry) List() []models.Mapping {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Mapping, len(r.mappings))
	copy(out, r.mappings)
	return out
}

// Add appends a mapping. Validation happens before this call (engine.Commit).
func (r *MappingRegistry) Add(m models.Mapping) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings = append(r.mappings, m)
}

// State reports where a mapping is in its lifecycle
func (r *MappingRegistry) State(id string) models.MappingState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removing[id] {
		return models.MappingPendingRemove
	}
	for _, m := range r.mappings {
		if m.ID == id {
			return models.MappingCommitted
		}
	}
	return models.MappingAbsent
}

// Remove drops the mapping locally, then asks the external registry to delete it.
// A remote failure is returned but the local removal stands.
func (r *MappingRegistry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := -1
	for i, m := range r.mappings {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMappingNotInSession, id)
	}
	r.mappings = append(r.mappings[:idx:idx], r.mappings[idx+1:]...)
	r.removing[id] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.removing, id)
		r.mu.Unlock()
	}()

	if err := r.external.DeleteByID(ctx, id); err != nil {
		log.Printf("❌ Remote delete of mapping %s failed, local removal kept: %v", id, err)
		return fmt.Errorf("Delete failed: %w", err)
	}

	log.Printf("🗑️  Mapping %s deleted", id)
	return nil
}

// SaveAll pushes the collection to the first register-mapping tool (if any) and
// replaces the external registry's contents with it. Both run concurrently.
// A tool failure only changes the message; a registry failure fails the save.
// An empty collection contacts nobody and reports nothing to save.
func (r *MappingRegistry) SaveAll(ctx context.Context, tools ToolCatalog) (*SaveResult, error) {
	mappings := r.List()
	if len(mappings) == 0 {
		return &SaveResult{Message: msgNothingToSave}, nil
	}

	log.Printf("💾 Saving %d mappings", len(mappings))
	result := &SaveResult{Count: len(mappings)}

	// no shared cancellation: a registry failure must not abort the tool call
	var g errgroup.Group
	g.Go(func() error {
		result.ToolName, result.ToolErr = registerWithTool(ctx, tools, mappings)
		return nil
	})
	g.Go(func() error {
		return r.external.ReplaceAll(ctx, mappings)
	})

	if err := g.Wait(); err != nil {
		result.Message = fmt.Sprintf("Save failed: %v", err)
		log.Printf("❌ %s", result.Message)
		return result, fmt.Errorf("Save failed: %w", err)
	}
	toolMsg := msgToolMissing
	switch {
	case result.ToolErr != nil:
		toolMsg = fmt.Sprintf(msgToolFailed, result.ToolErr)
		log.Printf("⚠️  %s", toolMsg)
	case result.ToolName != "":
		toolMsg = fmt.Sprintf(msgToolSent, result.ToolName)
	}

	result.Message = toolMsg + " " + fmt.Sprintf(msgSaved, len(mappings))
	log.Printf("🎉 %s", result.Message)
	return result, nil
}

// registerWithTool invokes the first register-mapping tool with {mappings}.
// It returns an empty name when the catalog offers no such tool.
func registerWithTool(ctx context.Context, tools ToolCatalog, mappings []models.Mapping) (string, error) {
	if tools == nil {
		return "", nil
	}
	available, err := tools.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list tools: %w", err)
	}
	tool, ok := FindTool(available, RegisterMappingPattern)
	if !ok {
		return "", nil
	}
	if _, err := invokeTool(ctx, tools, tool.Name, map[string]any{"mappings": mappings}); err != nil {
		return tool.Name, err
	}
	return tool.Name, nil
}

// Seed replaces the local collection with the external registry's contents
func (r *MappingRegistry) Seed(ctx context.Context) error {
	mappings, err := r.external.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed mappings: %w", err)
	}

	r.mu.Lock()
	r.mappings = append([]models.Mapping{}, mappings...)
	r.mu.Unlock()

	log.Printf("📥 Seeded %d mappings from registry", len(mappings))
	return nil
}

// Reset empties the local collection without contacting the external registry
func (r *MappingRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings = []models.Mapping{}
}
