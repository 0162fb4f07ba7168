// Package catalog holds the static board and part definitions the mapper works with.
package catalog

import (
	"errors"
	"fmt"

	"hardware-mapper/models"
)

var (
	// ErrUnknownBoard is returned when a board id is not in the catalog
	ErrUnknownBoard = errors.New("unknown board")
	// ErrUnknownPart is returned when a part id is not in the catalog
	ErrUnknownPart = errors.New("unknown part")
)

// Catalog is an immutable registry of board and part definitions.
// Definitions returned by its methods share backing maps with the catalog and must not be mutated.
type Catalog struct {
	boards   []models.BoardDefinition
	parts    []models.PartDefinition
	boardIdx map[string]int
	partIdx  map[string]int
}

// New validates the definitions and builds a catalog. Listing order follows the input order.
func New(boards []models.BoardDefinition, parts []models.PartDefinition) (*Catalog, error) {
	if err := Validate(boards, parts); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		boards:   append([]models.BoardDefinition(nil), boards...),
		parts:    append([]models.PartDefinition(nil), parts...),
		boardIdx: make(map[string]int, len(boards)),
		partIdx:  make(map[string]int, len(parts)),
	}
	for i, b := range c.boards {
		c.boardIdx[b.ID] = i
	}
	for i, p := range c.parts {
		c.partIdx[p.ID] = i
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtinBoards(), builtinParts())
	if err != nil {
		panic(err)
	}
	return c
}

// ListBoards returns every board in catalog order
func (c *Catalog) ListBoards() []models.BoardDefinition {
	return append([]models.BoardDefinition(nil), c.boards...)
}

// ListParts returns every part in catalog order
func (c *Catalog) ListParts() []models.PartDefinition {
	return append([]models.PartDefinition(nil), c.parts...)
}

// FindBoard looks a board up by id
func (c *Catalog) FindBoard(id string) (models.BoardDefinition, bool) {
	i, ok := c.boardIdx[id]
	if !ok {
		return models.BoardDefinition{}, false
	}
	return c.boards[i], true
}

// FindPart looks a part up by id
func (c *Catalog) FindPart(id string) (models.PartDefinition, bool) {
	i, ok := c.partIdx[id]
	if !ok {
		return models.PartDefinition{}, false
	}
	return c.parts[i], true
}

// Board is FindBoard with an ErrUnknownBoard error for callers that propagate errors
func (c *Catalog) Board(id string) (models.BoardDefinition, error) {
	b, ok := c.FindBoard(id)
	if !ok {
		return b, fmt.Errorf("%w: %q", ErrUnknownBoard, id)
	}
	return b, nil
}

// Part is FindPart with an ErrUnknownPart error for callers that propagate errors
func (c *Catalog) Part(id string) (models.PartDefinition, error) {
	p, ok := c.FindPart(id)
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrUnknownPart, id)
	}
	return p, nil
}

// Merge returns a new catalog where the given definitions replace same-id entries
// and new ids are appended
func (c *Catalog) Merge(boards []models.BoardDefinition, parts []models.PartDefinition) (*Catalog, error) {
	mergedBoards := c.ListBoards()
	for _, b := range boards {
		if i, ok := c.boardIdx[b.ID]; ok {
			mergedBoards[i] = b
		} else {
			mergedBoards = append(mergedBoards, b)
		}
	}

	mergedParts := c.ListParts()
	for _, p := range parts {
		if i, ok := c.partIdx[p.ID]; ok {
			mergedParts[i] = p
		} else {
			mergedParts = append(mergedParts, p)
		}
	}

	return New(mergedBoards, mergedParts)
}
