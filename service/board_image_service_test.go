package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hardware-mapper/models"
	"hardware-mapper/service"
)

type fakeDrive struct {
	files map[string][]byte
}

func (f *fakeDrive) ListBoardImages(_ context.Context, _ string) ([]service.DriveImage, error) {
	return nil, nil
}

func (f *fakeDrive) Open(_ context.Context, fileID string) (io.ReadCloser, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func writePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBoardImageService_LocalThumbnailIsCached(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "boards"), 0o755))
	photo := filepath.Join(dir, "boards", "pi5.png")
	require.NoError(t, os.WriteFile(photo, writePNG(t, 1200, 600), 0o600))

	svc := service.NewBoardImageService(dir, nil, cache)
	board := models.BoardDefinition{ID: "pi5", Image: "boards/pi5.png"}

	thumb, err := svc.Thumbnail(context.Background(), board, "thumb")
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	require.NoError(t, os.Remove(photo))
	again, err := svc.Thumbnail(context.Background(), board, "thumb")
	require.NoError(t, err, "served from cache")
	assert.Equal(t, thumb, again)
}

func TestBoardImageService_DriveRefs(t *testing.T) {
	t.Parallel()

	board := models.BoardDefinition{ID: "nano", Image: "drive:abc123"}

	_, err := service.NewBoardImageService(t.TempDir(), nil, "").Open(context.Background(), board.Image)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Drive"))

	drive := &fakeDrive{files: map[string][]byte{"abc123": writePNG(t, 100, 400)}}
	svc := service.NewBoardImageService(t.TempDir(), drive, "")

	medium, err := svc.Thumbnail(context.Background(), board, "medium")
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(medium))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx(), "small photos are not upscaled")
}
