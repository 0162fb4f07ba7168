package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hardware-mapper/catalog"
	"hardware-mapper/engine"
	"hardware-mapper/geometry"
	"hardware-mapper/models"
)

// Workbench is one mapping session: the chosen board, part, role and label,
// the working pin selection, and the last status message.
// It is not safe for concurrent use.
type Workbench struct {
	catalog  *catalog.Catalog
	registry MappingRegistryInterface
	resolver *geometry.Resolver
	mode     engine.SelectionMode

	board     models.BoardDefinition
	part      models.PartDefinition
	role      string
	label     string
	selection *engine.Selection
	message   string
}

// NewWorkbench starts a session on the given board and part.
// Empty ids pick the first catalog entry.
func NewWorkbench(
	cat *catalog.Catalog,
	registry MappingRegistryInterface,
	resolver *geometry.Resolver,
	mode engine.SelectionMode,
	boardID, partID string,
) (*Workbench, error) {
	if resolver == nil {
		resolver = geometry.NewResolver(geometry.DefaultWidth)
	}
	w := &Workbench{
		catalog:  cat,
		registry: registry,
		resolver: resolver,
		mode:     mode,
	}

	if boardID == "" {
		boardID = cat.ListBoards()[0].ID
	}
	if partID == "" {
		partID = cat.ListParts()[0].ID
	}
	if err := w.SelectBoard(boardID); err != nil {
		return nil, err
	}
	if err := w.SelectPart(partID); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workbench) Board() models.BoardDefinition { return w.board }
func (w *Workbench) Part() models.PartDefinition   { return w.part }
func (w *Workbench) Role() string                  { return w.role }
func (w *Workbench) Label() string                 { return w.label }
func (w *Workbench) Message() string               { return w.message }
func (w *Workbench) Selected() []int               { return w.selection.Pins() }

// SelectBoard switches boards and drops the working selection
func (w *Workbench) SelectBoard(id string) error {
	board, err := w.catalog.Board(id)
	if err != nil {
		return err
	}
	w.board = board
	if w.selection != nil {
		w.selection.Clear()
	}
	w.message = ""
	return nil
}

// SelectPart switches parts, resets the role to the part's first role and
// starts a new selection sized for the part
func (w *Workbench) SelectPart(id string) error {
	part, err := w.catalog.Part(id)
	if err != nil {
		return err
	}
	w.part = part
	w.role = part.Roles[0]
	w.selection = engine.NewSelection(w.mode.Limit(part))
	w.message = ""
	return nil
}

// SelectRole picks one of the current part's roles
func (w *Workbench) SelectRole(role string) error {
	if !w.part.HasRole(role) {
		return fmt.Errorf("role %q is not available for %s", role, w.part.Name)
	}
	w.role = role
	w.message = ""
	return nil
}

// SetLabel sets the optional label for the next mapping
func (w *Workbench) SetLabel(label string) {
	w.label = label
}

// Toggle selects or deselects a board position. Disabled positions are ignored.
func (w *Workbench) Toggle(position int) bool {
	return w.selection.Toggle(position, engine.DisabledSet(w.board, w.registry.List()))
}

// Clear empties the working selection
func (w *Workbench) Clear() {
	w.selection.Clear()
}

// Disabled lists the positions of the current board that cannot be selected
func (w *Workbench) Disabled() []int {
	return engine.DisabledPositions(w.board, w.registry.List())
}

// Layout resolves the current board with disabled positions marked
func (w *Workbench) Layout() geometry.Layout {
	layout := w.resolver.Layout(w.board)
	engine.MarkDisabled(&layout, engine.DisabledSet(w.board, w.registry.List()))
	return layout
}

// State reports pending-add once the selection is complete enough to commit
func (w *Workbench) State() models.MappingState {
	minPins, maxPins := w.mode.Required(w.part)
	if n := w.selection.Len(); n >= minPins && n <= maxPins {
		return models.MappingPendingAdd
	}
	return models.MappingAbsent
}

// Add commits the working selection as a new mapping. Rejections are
// reported in Message and returned as *engine.ValidationError; the
// collection is left untouched.
func (w *Workbench) Add() (*models.Mapping, error) {
	m, err := engine.Commit(w.catalog, w.registry.List(), engine.AddRequest{
		BoardID:   w.board.ID,
		PartID:    w.part.ID,
		Role:      w.role,
		Positions: w.selection.Pins(),
		Label:     w.label,
	}, w.mode)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			w.message = verr.Message
		} else {
			w.message = err.Error()
		}
		return nil, err
	}

	w.registry.Add(m)
	w.selection.Clear()
	w.label = ""
	w.message = ""
	log.Printf("✅ Mapped %s/%s on %s pins %v", m.PartID, m.Role, m.BoardID, m.Pins)
	return &m, nil
}

// Remove deletes a mapping. The local removal stands even when the remote delete fails.
func (w *Workbench) Remove(ctx context.Context, id string) error {
	if err := w.registry.Remove(ctx, id); err != nil {
		w.message = err.Error()
		return err
	}
	w.message = msgDeleted
	return nil
}

// Save pushes the collection to the tool catalog and the external registry
func (w *Workbench) Save(ctx context.Context, tools ToolCatalog) (*SaveResult, error) {
	result, err := w.registry.SaveAll(ctx, tools)
	if result != nil {
		w.message = result.Message
	}
	return result, err
}

// Generate asks the code generator for firmware covering the current board's mappings.
// A failure is reported in Message and leaves mappings untouched.
func (w *Workbench) Generate(ctx context.Context, gen CodeGenerator) (*models.GeneratedCode, error) {
	var mappings []models.Mapping
	for _, m := range w.registry.List() {
		if m.BoardID == w.board.ID {
			mappings = append(mappings, m)
		}
	}
	if len(mappings) == 0 {
		w.message = fmt.Sprintf("No mappings for %s to generate code from.", w.board.Name)
		return nil, errors.New(w.message)
	}

	code, err := gen.Generate(ctx, mappings, w.board.ID)
	if err != nil {
		w.message = "Generate failed: " + strings.TrimPrefix(err.Error(), "code generation failed: ")
		return nil, err
	}
	w.message = fmt.Sprintf("Generated %s code for %s.", code.FileExtension, w.board.Name)
	return code, nil
}
