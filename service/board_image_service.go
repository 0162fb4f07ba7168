package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"hardware-mapper/geometry"
	"hardware-mapper/models"
)

const (
	driveRefPrefix = "drive:"

	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// BoardImageService opens board photos from a local directory or, for
// "drive:<fileId>" references, from Google Drive, and caches resized copies
type BoardImageService struct {
	dir      string
	drive    DriveServiceInterface
	cacheDir string
}

// NewBoardImageService creates a BoardImageService. drive may be nil when no
// credentials are configured; an empty cacheDir disables the cache.
func NewBoardImageService(dir string, drive DriveServiceInterface, cacheDir string) *BoardImageService {
	return &BoardImageService{dir: dir, drive: drive, cacheDir: cacheDir}
}

// Ensure BoardImageService implements geometry.ImageSource
var _ geometry.ImageSource = (*BoardImageService)(nil)

// Open returns the raw photo for a catalog image reference
func (s *BoardImageService) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if fileID, ok := strings.CutPrefix(ref, driveRefPrefix); ok {
		if s.drive == nil {
			return nil, fmt.Errorf("image %q is stored in Drive but no Drive credentials are configured", ref)
		}
		return s.drive.Open(ctx, fileID)
	}

	path := filepath.Join(s.dir, filepath.FromSlash(ref))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board image: %w", err)
	}
	return f, nil
}

// Thumbnail returns a JPEG copy of the board photo no larger than the size bucket
// ("thumb" or "medium"), served from the cache when present
func (s *BoardImageService) Thumbnail(ctx context.Context, board models.BoardDefinition, size string) ([]byte, error) {
	cachePath := s.cachePath(board.ID, size)
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️  Failed to read cached image %s: %v", cachePath, err)
		}
	}

	rc, err := s.Open(ctx, board.Image)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := optimizeImage(rc, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize image for board %s: %w", board.ID, err)
	}

	if cachePath != "" {
		if err := saveToCache(cachePath, data); err != nil {
			log.Printf("⚠️  %v", err)
		}
	}
	return data, nil
}

func (s *BoardImageService) cachePath(boardID, size string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, fmt.Sprintf("board_%s_%s.jpg", boardID, size))
}

func saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// optimizeImage decodes a photo, fits it inside the size bucket and re-encodes it as JPEG
func optimizeImage(r io.Reader, size string) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium":
		maxDim, quality = maxSizeMedium, qualityMedium
	default:
		maxDim, quality = maxSizeMedium, qualityMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Printf("🔄 Resizing image: %dx%d -> fit %d", bounds.Dx(), bounds.Dy(), maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
