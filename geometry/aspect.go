package geometry

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/disintegration/imaging"

	"hardware-mapper/models"
)

// ImageSource opens board photos by their catalog image reference
type ImageSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// RatioFromImage decodes a photo and returns its height/width ratio.
// EXIF orientation is applied so portrait shots of a landscape board measure as portrait.
func RatioFromImage(r io.Reader) (float64, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return 0, fmt.Errorf("failed to decode board image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, fmt.Errorf("board image has no area (%dx%d)", b.Dx(), b.Dy())
	}
	return float64(b.Dy()) / float64(b.Dx()), nil
}

// Resolver lays boards out on a fixed-width canvas, remembering each board photo's aspect ratio
// once it is known. Layouts requested before then use DefaultRatio.
type Resolver struct {
	width float64

	mu     sync.RWMutex
	ratios map[string]float64
}

// NewResolver creates a Resolver for canvases of the given width (DefaultWidth when <= 0)
func NewResolver(width float64) *Resolver {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Resolver{
		width:  width,
		ratios: make(map[string]float64),
	}
}

// Ratio returns the known aspect ratio of a board photo
func (r *Resolver) Ratio(boardID string) (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ratio, ok := r.ratios[boardID]
	return ratio, ok
}

// SetRatio records a board photo's aspect ratio; later layouts of the board use it
func (r *Resolver) SetRatio(boardID string, ratio float64) {
	if ratio <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratios[boardID] = ratio
}

// Canvas returns the canvas a board is currently laid out on
func (r *Resolver) Canvas(boardID string) Canvas {
	ratio, ok := r.Ratio(boardID)
	if !ok {
		ratio = DefaultRatio
	}
	return Canvas{Width: r.width, Ratio: ratio}
}

// Layout resolves the board on its current canvas
func (r *Resolver) Layout(board models.BoardDefinition) Layout {
	return Resolve(board, r.Canvas(board.ID))
}

// LoadRatio measures the board photo through src and records its ratio.
// On failure the fallback ratio stays in effect and the error is returned for reporting.
func (r *Resolver) LoadRatio(ctx context.Context, board models.BoardDefinition, src ImageSource) error {
	if board.Image == "" {
		return fmt.Errorf("board %q has no image", board.ID)
	}

	rc, err := src.Open(ctx, board.Image)
	if err != nil {
		log.Printf("⚠️  Could not open image for board %s, keeping fallback ratio: %v", board.ID, err)
		return fmt.Errorf("failed to open board image %q: %w", board.Image, err)
	}
	defer rc.Close()

	ratio, err := RatioFromImage(rc)
	if err != nil {
		log.Printf("⚠️  Could not measure image for board %s, keeping fallback ratio: %v", board.ID, err)
		return err
	}

	r.SetRatio(board.ID, ratio)
	log.Printf("📐 Board %s aspect ratio resolved: %.4f", board.ID, ratio)
	return nil
}
