package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hardware-mapper/catalog"
	"hardware-mapper/engine"
	"hardware-mapper/geometry"
	"hardware-mapper/models"
	"hardware-mapper/repository"
)

// SheetRenderer renders wiring sheets
type SheetRenderer interface {
	RenderHTML(ctx context.Context, boardID string, mappings []models.Mapping) (string, error)
	GeneratePDF(ctx context.Context, boardID string, mappings []models.Mapping) ([]byte, error)
}

// ThumbnailSource produces resized board photos
type ThumbnailSource interface {
	Thumbnail(ctx context.Context, board models.BoardDefinition, size string) ([]byte, error)
}

// BoardController serves the board catalog, resolved pin layouts and wiring sheets
type BoardController struct {
	catalog    *catalog.Catalog
	resolver   *geometry.Resolver
	repository repository.MappingRepositoryInterface
	sheets     SheetRenderer
	images     ThumbnailSource
}

// NewBoardController creates a new BoardController. sheets and images may be nil.
func NewBoardController(
	cat *catalog.Catalog,
	resolver *geometry.Resolver,
	repo repository.MappingRepositoryInterface,
	sheets SheetRenderer,
	images ThumbnailSource,
) *BoardController {
	return &BoardController{
		catalog:    cat,
		resolver:   resolver,
		repository: repo,
		sheets:     sheets,
		images:     images,
	}
}

// ListBoards handles GET /boards
func (c *BoardController) ListBoards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": c.catalog.ListBoards()})
}

// ListParts handles GET /parts
func (c *BoardController) ListParts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parts": c.catalog.ListParts()})
}

// GetPins handles GET /boards/:id/pins?width=&ratio=
// Returns the resolved layout with reserved and already-mapped pins disabled
func (c *BoardController) GetPins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	board, ok := c.boardFromPath(w, r, "/pins")
	if !ok {
		return
	}

	canvas := c.resolver.Canvas(board.ID)
	if v := r.URL.Query().Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || !(width > 0 && width <= geometry.MaxWidth) {
			http.Error(w, fmt.Sprintf("width must be a number in (0, %g]", geometry.MaxWidth), http.StatusBadRequest)
			return
		}
		canvas.Width = width
	}
	if v := r.URL.Query().Get("ratio"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil || !(ratio > 0 && ratio <= geometry.MaxRatio) {
			http.Error(w, fmt.Sprintf("ratio must be a number in (0, %g]", geometry.MaxRatio), http.StatusBadRequest)
			return
		}
		canvas.Ratio = ratio
	}

	mappings, err := c.repository.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list mappings: %v", err), http.StatusInternalServerError)
		return
	}

	layout := geometry.Resolve(board, canvas)
	engine.MarkDisabled(&layout, engine.DisabledSet(board, mappings))

	writeJSON(w, http.StatusOK, struct {
		geometry.Layout
		Radius float64 `json:"radius"`
	}{layout, layout.PinRadius()})
}

// GetSheet handles GET /boards/:id/sheet?format=html|pdf
func (c *BoardController) GetSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.sheets == nil {
		http.Error(w, "Wiring sheets are not configured", http.StatusNotImplemented)
		return
	}

	board, ok := c.boardFromPath(w, r, "/sheet")
	if !ok {
		return
	}

	mappings, err := c.repository.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list mappings: %v", err), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "html":
		html, err := c.sheets.RenderHTML(r.Context(), board.ID, mappings)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to render sheet: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	case "pdf":
		pdf, err := c.sheets.GeneratePDF(r.Context(), board.ID, mappings)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-wiring.pdf"`, board.ID))
		w.Write(pdf)
	default:
		http.Error(w, "format must be html or pdf", http.StatusBadRequest)
	}
}

// GetImage handles GET /boards/:id/image?size=thumb|medium
func (c *BoardController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.images == nil {
		http.Error(w, "Board images are not configured", http.StatusNotImplemented)
		return
	}

	board, ok := c.boardFromPath(w, r, "/image")
	if !ok {
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}

	data, err := c.images.Thumbnail(r.Context(), board, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load image: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// boardFromPath extracts the board from /boards/{id}{suffix}
func (c *BoardController) boardFromPath(w http.ResponseWriter, r *http.Request, suffix string) (models.BoardDefinition, bool) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/boards/"), suffix)
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "board id is required", http.StatusBadRequest)
		return models.BoardDefinition{}, false
	}

	board, err := c.catalog.Board(id)
	if errors.Is(err, catalog.ErrUnknownBoard) {
		http.Error(w, fmt.Sprintf("Board %s not found", id), http.StatusNotFound)
		return models.BoardDefinition{}, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return models.BoardDefinition{}, false
	}
	return board, true
}
